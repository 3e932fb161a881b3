package users

import (
	"context"
)

// Repository is the credential store. Username matching is exact
// (case-sensitive); callers are expected to trim usernames before lookup.
//
// Create must rely on the store's own uniqueness constraint rather than a
// check-then-insert, so a duplicate-username race cannot produce two records.
// It returns shared.ErrorLoginAlreadyExists on a duplicate username.
// Lookups return shared.ErrorNotFound when no record matches.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetUserByLogin(ctx context.Context, login string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
}
