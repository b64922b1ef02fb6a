package env

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/page-migration/internal/domain"
	"github.com/bnema/page-migration/internal/ports"
)

type lookupFunc func(name string) (string, bool)

// Store reads secrets from environment variables. Key "dust/api_key" maps to
// DUST_API_KEY.
type Store struct {
	lookup lookupFunc
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{lookup: os.LookupEnv}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := VariableName(key)
	if name == "" {
		return "", fmt.Errorf("env secret: empty key: %w", domain.ErrSecretNotFound)
	}

	value, ok := s.lookup(name)
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return "", fmt.Errorf("env secret %s: %w", name, domain.ErrSecretNotFound)
	}

	return value, nil
}

func VariableName(key string) string {
	trimmed := strings.Trim(strings.TrimSpace(key), "/")
	if trimmed == "" {
		return ""
	}

	replacer := strings.NewReplacer("/", "_", "-", "_", ".", "_")
	return strings.ToUpper(replacer.Replace(trimmed))
}
