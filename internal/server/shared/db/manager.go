// Package db wires repositories to their storage backend and owns schema
// migrations.
package db

import (
	"context"

	"github.com/avoronov/gatekeeper/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Users() users.Repository
}
