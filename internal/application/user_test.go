package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"cleaneye/internal/domain/entity"
	"cleaneye/internal/infrastructure/storage"
)

func TestUserService_BeginCheck(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.BeginCheck(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)
}

func TestUserService_Cancel(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	_, err := svc.BeginCheck(ctx, 1, 10)
	require.NoError(t, err)

	user, err := svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}
