package db

import (
	"context"

	"github.com/avoronov/gatekeeper/internal/server/users"
)

// InMemoryRepositoryManager backs database-less runs: the app falls back to
// it when no database DSN is configured. Nothing survives a restart.
type InMemoryRepositoryManager struct {
	users users.Repository
}

func (m InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}
