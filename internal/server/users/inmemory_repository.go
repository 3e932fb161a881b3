package users

import (
	"context"
	"sync"
	"time"

	"github.com/avoronov/gatekeeper/internal/shared"
	"github.com/google/uuid"
)

// InMemoryRepository is a mutex-guarded credential store used in tests and
// local runs without a database. The check-and-insert in Create happens under
// one lock, preserving the uniqueness guarantee of the Postgres store.
type InMemoryRepository struct {
	mu      sync.Mutex
	byLogin map[string]*User
	byID    map[string]*User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byLogin: make(map[string]*User),
		byID:    make(map[string]*User),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byLogin[user.UserName]; ok {
		return nil, shared.ErrorLoginAlreadyExists
	}

	stored := *user
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()

	r.byLogin[stored.UserName] = &stored
	r.byID[stored.ID] = &stored

	copy := stored
	return &copy, nil
}

func (r *InMemoryRepository) GetUserByLogin(ctx context.Context, login string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byLogin[login]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	copy := *user
	return &copy, nil
}

func (r *InMemoryRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	copy := *user
	return &copy, nil
}

// Delete removes a user record. It exists so tests can exercise the
// token-valid-but-user-gone path of the session middleware.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return shared.ErrorNotFound
	}
	delete(r.byLogin, user.UserName)
	delete(r.byID, id)
	return nil
}
