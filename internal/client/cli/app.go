// Package cli implements the interactive command-line client for Gatekeeper.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/avoronov/gatekeeper/internal/client/client"
	"github.com/avoronov/gatekeeper/internal/client/config"
	"github.com/avoronov/gatekeeper/internal/client/services"
	"github.com/avoronov/gatekeeper/internal/client/session"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	store       *session.Store
	reader      *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := session.OpenDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	store := session.NewStore(db)
	if err := store.Rehydrate(ctx); err != nil {
		return nil, fmt.Errorf("error restoring session: %w", err)
	}

	apiClient := client.NewHTTPClient(c.ServerURL)
	as := services.NewAuthService(apiClient, store)

	return &App{config: c, authService: as, store: store, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.store.Current().Authenticated
}

func (a *App) getStatus() string {
	state := a.store.Current()
	if !state.Authenticated {
		return ""
	}
	return fmt.Sprintf("(%s)", state.User.Username)
}

func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
