package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/page-migration/internal/adapters/render/report"
	"github.com/bnema/page-migration/internal/application"
	"github.com/bnema/page-migration/internal/ports"
	"github.com/spf13/cobra"
)

var errUnhealthy = errors.New("health checks failed")

func newHealthCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the Dust settings and credentials are usable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(cmd.ErrOrStderr(), false)
			svc := application.NewHealthService(application.HealthSettings{
				WorkspaceID: a.settings.Dust.WorkspaceID,
				AgentID:     a.settings.Dust.AgentID,
				APIKey:      a.settings.Dust.APIKey,
			}, a.secrets, func(apiKey string) (ports.AgentClient, error) {
				return a.newClient(apiKey, logger)
			})

			checks := svc.Check(cmd.Context())
			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), checks); err != nil {
					return err
				}
			} else {
				rendered, err := report.RenderHealth(checks)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), rendered); err != nil {
					return err
				}
			}

			if !application.Healthy(checks) {
				return errUnhealthy
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the checks as JSON")

	return cmd
}
