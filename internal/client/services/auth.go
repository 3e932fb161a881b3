// Package services contains application services for the Gatekeeper client.
// This file defines the authentication service: register, login, profile
// retrieval, and logout, on top of the API client and the session store.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/avoronov/gatekeeper/internal/client/client"
	"github.com/avoronov/gatekeeper/internal/client/session"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create a new account on the server.
//   - Login: authenticate against the server and persist the session.
//   - Profile: fetch the current user using the stored token.
//   - Logout: discard the persisted session.
//   - Ping: check server liveness.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Profile(ctx context.Context) (session.User, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client and the
// local session store.
type authService struct {
	client client.Client
	store  *session.Store
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(client client.Client, store *session.Store) AuthService {
	return &authService{client: client, store: store}
}

func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	return a.client.Register(ctx, username, string(password))
}

// Login authenticates against the server and persists token and user so the
// session survives restarts.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	token, user, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return err
	}

	if err := a.store.Login(ctx, token, user); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	return nil
}

// Profile fetches the current user with the stored token. A rejected token
// (expired or revoked subject) drops the local session so the next command
// starts unauthenticated.
func (a *authService) Profile(ctx context.Context) (session.User, error) {
	state := a.store.Current()
	if !state.Authenticated {
		return session.User{}, client.ErrUnauthorized
	}

	user, err := a.client.Profile(ctx, state.Token)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			_ = a.store.Logout(ctx)
		}
		return session.User{}, err
	}
	return user, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Logout(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
