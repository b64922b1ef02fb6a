package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bnema/page-migration/internal/adapters/config"
	"github.com/bnema/page-migration/internal/adapters/dust"
	chainstore "github.com/bnema/page-migration/internal/adapters/secrets/chain"
	"github.com/bnema/page-migration/internal/application"
	"github.com/bnema/page-migration/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	settings config.Settings
	secrets  ports.SecretStore
}

func (a *app) wire(opts config.Options) error {
	settings, err := config.Load(viper.New(), opts)
	if err != nil {
		return fmt.Errorf("wire settings: %w", err)
	}

	secrets, err := chainstore.NewEnvPassFile(settings.SecretsDir)
	if err != nil {
		return fmt.Errorf("wire secret store chain: %w", err)
	}

	a.settings = settings
	a.secrets = secrets
	return nil
}

// apiKey prefers dust.api_key from the settings over the secret store chain.
func (a *app) apiKey(ctx context.Context) (string, error) {
	if a.settings.Dust.APIKey != "" {
		return a.settings.Dust.APIKey, nil
	}

	key, err := a.secrets.Get(ctx, application.APIKeySecret)
	if err != nil {
		return "", fmt.Errorf("resolve api key: %w", err)
	}
	return key, nil
}

func (a *app) newClient(apiKey string, logger *slog.Logger) (*dust.Client, error) {
	return dust.NewClient(dust.Config{
		BaseURL:     a.settings.Dust.BaseURL,
		WorkspaceID: a.settings.Dust.WorkspaceID,
		APIKey:      apiKey,
		ReadTimeout: a.settings.Dust.Timeout,
		Retry: dust.RetryPolicy{
			MaxRetries: a.settings.Dust.MaxRetries,
			BaseDelay:  a.settings.Dust.RetryBaseDelay,
		},
		Logger: logger,
	})
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
