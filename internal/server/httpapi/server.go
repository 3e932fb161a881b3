// Package httpapi exposes the authentication service over HTTP: registration,
// login, and a token-protected profile endpoint.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/avoronov/gatekeeper/internal/logging"
	"github.com/avoronov/gatekeeper/internal/server/users"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	address     string
	users       *users.Service
	logger      logging.Logger
	jwtSecret   []byte
	corsOrigins string
}

func NewServer(a string, l logging.Logger, us *users.Service, secretKey string, corsOrigins string) (*Server, error) {
	return &Server{
		address:     a,
		logger:      l.With("module", "http_server"),
		users:       us,
		jwtSecret:   []byte(secretKey),
		corsOrigins: corsOrigins,
	}, nil
}

// Router builds the gin engine with all routes wired. Split out from Run so
// tests can drive the full pipeline through httptest.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(s.corsOrigins, ",")
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", s.handleHealth)

	auth := router.Group("/auth")
	{
		auth.POST("/register", s.handleRegister)
		auth.POST("/login", s.handleLogin)
	}

	protected := router.Group("")
	protected.Use(s.requireToken())
	{
		protected.GET("/profile", s.handleProfile)
	}

	return router
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
