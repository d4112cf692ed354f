package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"cleaneye/internal/domain/entity"
)

func TestMemoryUserRepository(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)

	user.SetState(entity.StateAwaitingPhoto)
	require.NoError(t, repo.Save(ctx, user))

	again, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, again.State)
}
