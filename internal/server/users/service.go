package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/avoronov/gatekeeper/internal/server/auth"
	"github.com/avoronov/gatekeeper/internal/server/config"
	"github.com/avoronov/gatekeeper/internal/shared"
)

type Service struct {
	repo                  Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register validates the credential pair, hashes the password, and creates
// the account. A duplicate username surfaces as shared.ErrorLoginAlreadyExists.
// The plaintext password is never stored or logged.
func (s *Service) Register(ctx context.Context, userName string, password string) (*User, error) {

	userName = strings.TrimSpace(userName)
	if userName == "" || password == "" {
		return nil, shared.ErrorValidation
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, shared.ErrorValidation) {
			return nil, err
		}
		return nil, shared.ErrorInternal
	}

	user := &User{
		UserName:     userName,
		PasswordHash: hash,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, shared.ErrorLoginAlreadyExists) {
			return nil, err
		}
		return nil, shared.ErrorInternal
	}

	return user, nil
}

// Login verifies the credential pair and on success issues a signed token.
// An unknown username and a wrong password both return
// shared.ErrorUnauthorized so the response does not reveal which was wrong.
func (s *Service) Login(ctx context.Context, userName string, password string) (string, *User, error) {

	userName = strings.TrimSpace(userName)
	if userName == "" || password == "" {
		return "", nil, shared.ErrorUnauthorized
	}

	user, err := s.repo.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return "", nil, shared.ErrorUnauthorized
		}
		return "", nil, shared.ErrorInternal
	}

	if err := auth.CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", nil, shared.ErrorUnauthorized
		}
		return "", nil, shared.ErrorInternal
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", nil, shared.ErrorInternal
	}

	return token, user, nil
}

// GetByID resolves a user by its store-assigned id.
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return nil, err
		}
		return nil, shared.ErrorInternal
	}
	return user, nil
}
