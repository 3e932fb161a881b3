// Package client implements the HTTP API client for the Gatekeeper server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avoronov/gatekeeper/internal/client/session"
)

// Client is the remote API surface the CLI depends on. Tests substitute a
// stub; the real implementation is HTTPClient.
type Client interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, session.User, error)
	Profile(ctx context.Context, token string) (session.User, error)
	Ping(ctx context.Context) error
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// apiError maps a non-2xx response to a sentinel error, carrying the server's
// message where one is present.
func apiError(resp *http.Response) error {
	var msg messageResponse
	body, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(body, &msg)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrAlreadyExists
	case http.StatusNotFound:
		return ErrNotFound
	default:
		if msg.Message != "" {
			return fmt.Errorf("server error: %s", msg.Message)
		}
		return fmt.Errorf("server error: status %d", resp.StatusCode)
	}
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	resp, err := c.do(ctx, http.MethodPost, "/auth/register", "", credentialsRequest{Username: username, Password: password})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return apiError(resp)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, session.User, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth/login", "", credentialsRequest{Username: username, Password: password})
	if err != nil {
		return "", session.User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", session.User{}, apiError(resp)
	}

	var body loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", session.User{}, fmt.Errorf("decoding login response: %w", err)
	}
	return body.Token, body.User, nil
}

func (c *HTTPClient) Profile(ctx context.Context, token string) (session.User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/profile", token, nil)
	if err != nil {
		return session.User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return session.User{}, apiError(resp)
	}

	var user session.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return session.User{}, fmt.Errorf("decoding profile response: %w", err)
	}
	return user, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/health", "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}
