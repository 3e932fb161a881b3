package db

import (
	"context"
	"testing"

	"github.com/avoronov/gatekeeper/internal/server/users"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepositoryManager(t *testing.T) {
	m := NewInMemoryRepositoryManager()
	ctx := context.Background()

	require.NoError(t, m.RunMigrations(ctx), "no schema to migrate")

	created, err := m.Users().Create(ctx, &users.User{UserName: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	got, err := m.Users().GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.UserName)
}
