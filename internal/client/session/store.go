// Package session owns the client-side authentication state: the bearer
// token and the current user, persisted in the local sqlite database and
// mirrored in memory for synchronous reads.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"

	"github.com/avoronov/gatekeeper/internal/client/migrations"
	"github.com/avoronov/gatekeeper/internal/client/repositories/metadata"
	"github.com/avoronov/gatekeeper/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Storage keys. Two entries: the raw token string and the user as JSON.
const (
	keyToken = "token"
	keyUser  = "user"
)

// User is the client's view of an account, as returned by the server.
// No password material is ever present here.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// State is an immutable snapshot of the session. Zero value means
// unauthenticated.
type State struct {
	Authenticated bool
	Token         string
	User          User
}

// Store persists the session across runs and exposes the current state to
// the UI layer. Writes from concurrent processes sharing the same database
// file are last-writer-wins; that is accepted, not guarded against.
type Store struct {
	db *sql.DB

	mu    sync.RWMutex
	state State
	subs  []chan State
}

// OpenDatabase opens (creating if needed) the local sqlite session database
// and applies migrations.
func OpenDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, err
	}

	return db, nil
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// Rehydrate loads the persisted session once at startup. A missing token or
// user leaves the session unauthenticated. A stored user value that is not
// valid JSON is treated as corruption: both keys are cleared and the session
// starts unauthenticated. Corruption is never an error to the caller.
func (s *Store) Rehydrate(ctx context.Context) error {
	repo := s.getMetadataRepo()

	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		return err
	}
	userRaw, err := repo.Get(ctx, keyUser)
	if err != nil {
		return err
	}

	if len(token) == 0 || len(userRaw) == 0 {
		return nil
	}

	var user User
	if err := json.Unmarshal(userRaw, &user); err != nil {
		return s.clear(ctx)
	}

	s.setState(State{Authenticated: true, Token: string(token), User: user})
	return nil
}

// Login persists the token and user in one transaction and flips the
// in-memory state synchronously, so readers see the new session as soon as
// Login returns.
func (s *Store) Login(ctx context.Context, token string, user User) error {
	userRaw, err := json.Marshal(user)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, keyUser, userRaw)
	})
	if err != nil {
		return err
	}

	s.setState(State{Authenticated: true, Token: token, User: user})
	return nil
}

// Logout discards the session, both durable and in-memory.
func (s *Store) Logout(ctx context.Context) error {
	return s.clear(ctx)
}

func (s *Store) clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, keyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, keyUser)
	})
	if err != nil {
		return err
	}

	s.setState(State{})
	return nil
}

// Current returns a snapshot of the session state.
func (s *Store) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe returns a channel receiving a snapshot after every state change.
// The channel has a buffer of one; a slow reader sees the latest state, not
// every intermediate one.
func (s *Store) Subscribe() <-chan State {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan State, 1)
	s.subs = append(s.subs, ch)
	return ch
}

func (s *Store) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
	for _, ch := range s.subs {
		// Drop the stale snapshot if the subscriber has not read it yet.
		select {
		case <-ch:
		default:
		}
		ch <- state
	}
}
