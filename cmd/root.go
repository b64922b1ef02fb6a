package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/page-migration/internal/adapters/config"
	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "pm",
		Short:         "Page migration (pm): generate migrated content with a Dust agent",
		Long:          "pm runs migration prompts against a Dust agent with an organization's content summary, caches the answers, and writes the structured results to disk.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.wire(config.Options{ConfigFile: configFile, DotEnv: config.DotEnvFile})
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/page-migration/config.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newMigrateCmd(a),
		newHealthCmd(a),
		newCacheCmd(a),
	)

	return rootCmd
}
