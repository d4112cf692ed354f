package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user := NewUser(1, 10)
	require.Equal(t, StateMainMenu, user.State)

	user.SetState(StateAwaitingPhoto)
	require.Equal(t, StateAwaitingPhoto, user.State)
}
