package env

import (
	"context"
	"testing"

	"github.com/bnema/page-migration/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DUST_API_KEY", VariableName("dust/api_key"))
	assert.Equal(t, "DUST_API_KEY", VariableName("/dust/api-key/"))
	assert.Empty(t, VariableName("  "))
}

func TestStoreGetReadsVariable(t *testing.T) {
	t.Parallel()

	store := &Store{lookup: func(name string) (string, bool) {
		assert.Equal(t, "DUST_API_KEY", name)
		return " sk-test \n", true
	}}

	value, err := store.Get(context.Background(), "dust/api_key")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", value)
}

func TestStoreGetReportsMissingVariable(t *testing.T) {
	t.Parallel()

	store := &Store{lookup: func(string) (string, bool) { return "", false }}

	_, err := store.Get(context.Background(), "dust/api_key")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "DUST_API_KEY")
}

func TestStoreGetTreatsBlankAsMissing(t *testing.T) {
	t.Parallel()

	store := &Store{lookup: func(string) (string, bool) { return "   ", true }}

	_, err := store.Get(context.Background(), "dust/api_key")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetHonoursCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore().Get(ctx, "dust/api_key")
	require.ErrorIs(t, err, context.Canceled)
}
