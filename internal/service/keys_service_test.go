package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postdeck/internal/repository"
)

func TestApiKeyLifecycle(t *testing.T) {
	svc := NewApiKeyService(repository.NewApiKeyRepository())

	key, err := svc.Create(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, key.Key, 32)

	userID, err := svc.GetUserID(context.Background(), key.Key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), userID)

	require.NoError(t, svc.Remove(context.Background(), 1, key.ID))
	_, err = svc.GetUserID(context.Background(), key.Key)
	assert.Error(t, err)
}

func TestApiKeyLimit(t *testing.T) {
	svc := NewApiKeyService(repository.NewApiKeyRepository())

	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), 1)
		require.NoError(t, err)
	}

	_, err := svc.Create(context.Background(), 1)
	assert.True(t, IsValidation(err))

	// the cap is per user
	_, err = svc.Create(context.Background(), 2)
	assert.NoError(t, err)
}

func TestApiKeyRemoveScopedToOwner(t *testing.T) {
	svc := NewApiKeyService(repository.NewApiKeyRepository())

	key, err := svc.Create(context.Background(), 1)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Remove(context.Background(), 2, key.ID), ErrNotFound)
}

func TestApiKeyUnknownKey(t *testing.T) {
	svc := NewApiKeyService(repository.NewApiKeyRepository())

	_, err := svc.GetUserID(context.Background(), "no-such-key")
	assert.Error(t, err)
}
