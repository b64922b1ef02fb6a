package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/page-migration/internal/domain"
	portmocks "github.com/bnema/page-migration/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const apiKey = "dust/api_key"

func TestStoreGetUsesFirstBackendWhenItSucceeds(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockSecretStore(t)
	second := portmocks.NewMockSecretStore(t)
	store := NewStore(first, second)

	first.EXPECT().Get(mock.Anything, apiKey).Return("from-env", nil).Once()

	value, err := store.Get(context.Background(), apiKey)
	require.NoError(t, err)
	assert.Equal(t, "from-env", value)
}

func TestStoreGetFallsThroughBackendsInOrder(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockSecretStore(t)
	second := portmocks.NewMockSecretStore(t)
	third := portmocks.NewMockSecretStore(t)
	store := NewStore(first, second, third)

	first.EXPECT().Get(mock.Anything, apiKey).Return("", domain.ErrSecretNotFound).Once()
	second.EXPECT().Get(mock.Anything, apiKey).Return("", errors.New("pass unavailable")).Once()
	third.EXPECT().Get(mock.Anything, apiKey).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), apiKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetJoinsErrorsWhenEveryBackendFails(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockSecretStore(t)
	second := portmocks.NewMockSecretStore(t)
	store := NewStore(first, second)

	first.EXPECT().Get(mock.Anything, apiKey).Return("", domain.ErrSecretNotFound).Once()
	second.EXPECT().Get(mock.Anything, apiKey).Return("", errors.New("file failed")).Once()

	_, err := store.Get(context.Background(), apiKey)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "backend 1")
	assert.ErrorContains(t, err, "backend 2")
	assert.ErrorContains(t, err, "file failed")
}

func TestStoreGetDoesNotFallbackOnCanceledContextError(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockSecretStore(t)
	second := portmocks.NewMockSecretStore(t)
	store := NewStore(first, second)

	first.EXPECT().Get(mock.Anything, apiKey).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), apiKey)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewStoreCheckedRejectsEmptyAndNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked()
	require.ErrorIs(t, err, errNoBackends)

	_, err = NewStoreChecked(portmocks.NewMockSecretStore(t), nil)
	require.ErrorIs(t, err, errNilBackend)
}
