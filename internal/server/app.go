// Package server initializes and runs the authentication server: it wires
// the credential store, the users service, and the HTTP endpoint, and owns
// graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/avoronov/gatekeeper/internal/logging"
	"github.com/avoronov/gatekeeper/internal/server/config"
	"github.com/avoronov/gatekeeper/internal/server/httpapi"
	"github.com/avoronov/gatekeeper/internal/server/shared/db"
	"github.com/avoronov/gatekeeper/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *users.Service
}

// NewApp validates the configuration and wires the application. A missing
// signing secret or an unreachable database is returned as an error so the
// process aborts instead of serving degraded traffic.
func NewApp(c *config.Config) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	var um db.RepositoryManager
	if c.DatabaseDSN == "" {
		// No DSN configured: run on the in-memory store. Accounts do not
		// survive a restart.
		logger.Warn(context.Background(), "No database DSN configured, using in-memory store")
		um = db.NewInMemoryRepositoryManager()
	} else {
		pm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		um = pm
	}

	us := users.NewService(um.Users(), c)

	return &App{config: c, logger: logger, userService: us}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.userService, app.config.SecretKey, app.config.CORSAllowedOrigins)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

}
