package cmd

import (
	"fmt"

	filecache "github.com/bnema/page-migration/internal/adapters/cache/file"
	"github.com/bnema/page-migration/internal/adapters/render/report"
	"github.com/spf13/cobra"
)

func newCacheCmd(a *app) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the prompt cache of an output directory",
	}
	cmd.PersistentFlags().StringVar(&outputDir, "output", "", "output directory holding the cache (default migration.output_dir)")

	cache := func(cmd *cobra.Command) *filecache.Cache {
		dir := outputDir
		if dir == "" {
			dir = a.settings.OutputDir
		}
		return filecache.NewCache(dir, true, newLogger(cmd.ErrOrStderr(), false))
	}

	var asJSON bool
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cached entries and their size",
		RunE: func(cmd *cobra.Command, _ []string) error {
			usage, err := cache(cmd).Usage()
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"dir":     usage.Dir,
					"entries": usage.Entries,
					"bytes":   usage.Bytes,
				})
			}

			rendered, err := report.RenderCache(report.CacheView{Dir: usage.Dir, Entries: usage.Entries, Bytes: usage.Bytes})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
	statsCmd.Flags().BoolVar(&asJSON, "json", false, "print the stats as JSON")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached prompt answer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := cache(cmd)
			if err := c.Clear(); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Cleared cache at %s\n", c.Dir())
			return err
		},
	}

	cmd.AddCommand(statsCmd, clearCmd)

	return cmd
}
