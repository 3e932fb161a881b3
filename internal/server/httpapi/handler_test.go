package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegister_Success(t *testing.T) {
	s, _ := newTestServer(t)
	router := s.Router()

	w := postJSON(t, router, "/auth/register", credentialsRequest{Username: "alice", Password: "pw1"})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp messageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Message)
}

func TestRegister_MissingFields(t *testing.T) {
	s, _ := newTestServer(t)
	router := s.Router()

	tests := []struct {
		name string
		body any
	}{
		{name: "empty username", body: credentialsRequest{Password: "pw"}},
		{name: "empty password", body: credentialsRequest{Username: "alice"}},
		{name: "not json", body: "plaintext"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, router, "/auth/register", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "message")
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	s, _ := newTestServer(t)
	router := s.Router()

	w := postJSON(t, router, "/auth/register", credentialsRequest{Username: "alice", Password: "pw1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/auth/register", credentialsRequest{Username: "alice", Password: "pw2"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_Success(t *testing.T) {
	s, _ := newTestServer(t)
	router := s.Router()

	registerUser(t, s, "alice", "pw1")

	w := postJSON(t, router, "/auth/login", credentialsRequest{Username: "alice", Password: "pw1"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp loginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, "alice", resp.User.Username)

	// The response body must not carry the password hash in any form.
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "hash")
}

func TestLogin_BadCredentials(t *testing.T) {
	s, _ := newTestServer(t)
	router := s.Router()

	registerUser(t, s, "alice", "pw1")

	wrongPassword := postJSON(t, router, "/auth/login", credentialsRequest{Username: "alice", Password: "nope"})
	unknownUser := postJSON(t, router, "/auth/login", credentialsRequest{Username: "ghost", Password: "pw1"})

	// Wrong password and unknown user are indistinguishable to the caller.
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	router := s.Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

// TestAuthFlow_Scenario drives the full register/login/profile sequence
// through the router.
func TestAuthFlow_Scenario(t *testing.T) {
	s, _ := newTestServer(t)
	router := s.Router()

	w := postJSON(t, router, "/auth/register", credentialsRequest{Username: "alice", Password: "pw1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/auth/register", credentialsRequest{Username: "alice", Password: "pw2"})
	require.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(t, router, "/auth/login", credentialsRequest{Username: "alice", Password: "pw1"})
	require.Equal(t, http.StatusOK, w.Code)

	var login loginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	profile := getProfile(t, router, "Bearer "+login.Token)
	require.Equal(t, http.StatusOK, profile.Code)

	var got userResponse
	require.NoError(t, json.Unmarshal(profile.Body.Bytes(), &got))
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, login.User.ID, got.ID)

	noHeader := getProfile(t, router, "")
	assert.Equal(t, http.StatusUnauthorized, noHeader.Code)
}
