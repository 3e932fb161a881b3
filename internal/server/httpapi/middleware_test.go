package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avoronov/gatekeeper/internal/logging"
	"github.com/avoronov/gatekeeper/internal/server/auth"
	"github.com/avoronov/gatekeeper/internal/server/config"
	"github.com/avoronov/gatekeeper/internal/server/users"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*Server, *users.InMemoryRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := users.NewInMemoryRepository()
	cfg := &config.Config{
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
		CORSAllowedOrigins:    "http://localhost:3000",
	}
	service := users.NewService(repo, cfg)
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	s, err := NewServer(":0", logger, service, cfg.SecretKey, cfg.CORSAllowedOrigins)
	require.NoError(t, err)
	return s, repo
}

func registerUser(t *testing.T, s *Server, username, password string) *users.User {
	t.Helper()
	user, err := s.users.Register(context.Background(), username, password)
	require.NoError(t, err)
	return user
}

func getProfile(t *testing.T, router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireToken_NoHeader(t *testing.T) {
	s, _ := newTestServer(t)
	router := s.Router()

	w := getProfile(t, router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "no token")
}

func TestRequireToken_NotBearerScheme(t *testing.T) {
	s, repo := newTestServer(t)
	router := s.Router()

	user, err := repo.Create(context.Background(), &users.User{UserName: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	tok, err := auth.GenerateToken(user.ID, []byte(testSecret), time.Hour)
	require.NoError(t, err)

	// A valid token under the wrong scheme is indistinguishable from no token.
	w := getProfile(t, router, "Basic "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "no token")
}

func TestRequireToken_ExpiredToken(t *testing.T) {
	s, repo := newTestServer(t)
	router := s.Router()

	user, err := repo.Create(context.Background(), &users.User{UserName: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	tok, err := auth.GenerateToken(user.ID, []byte(testSecret), -time.Minute)
	require.NoError(t, err)

	w := getProfile(t, router, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token failed")
}

func TestRequireToken_WrongSecret(t *testing.T) {
	s, repo := newTestServer(t)
	router := s.Router()

	user, err := repo.Create(context.Background(), &users.User{UserName: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	tok, err := auth.GenerateToken(user.ID, []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	w := getProfile(t, router, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token failed")
}

func TestRequireToken_Garbage(t *testing.T) {
	s, _ := newTestServer(t)
	router := s.Router()

	w := getProfile(t, router, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token failed")
}

func TestRequireToken_UserDeletedAfterIssue(t *testing.T) {
	s, repo := newTestServer(t)
	router := s.Router()

	user, err := repo.Create(context.Background(), &users.User{UserName: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	tok, err := auth.GenerateToken(user.ID, []byte(testSecret), time.Hour)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), user.ID))

	// The token still verifies, but its subject is gone: reject.
	w := getProfile(t, router, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token failed")
}

func TestRequireToken_AttachesIdentity(t *testing.T) {
	s, repo := newTestServer(t)

	user, err := repo.Create(context.Background(), &users.User{UserName: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	tok, err := auth.GenerateToken(user.ID, []byte(testSecret), time.Hour)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/check", s.requireToken(), func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		require.True(t, ok)
		assert.Equal(t, user.ID, identity.ID)
		assert.Equal(t, "alice", identity.UserName)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
