package auth

import (
	"errors"

	"github.com/avoronov/gatekeeper/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrPasswordMismatch is returned when the plaintext does not match the hash.
	ErrPasswordMismatch = errors.New("password mismatch")

	// ErrInvalidHash is returned when the stored value is not a bcrypt hash.
	ErrInvalidHash = errors.New("invalid password hash")
)

// HashPassword produces a salted bcrypt digest of plaintext. The salt is
// generated per call and embedded in the output, so no separate salt storage
// is needed. Empty plaintext is rejected.
func HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", shared.ErrorValidation
	}

	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(h), nil
}

// CheckPassword verifies plaintext against a bcrypt hash produced by
// HashPassword. It returns ErrPasswordMismatch when the password is wrong and
// ErrInvalidHash when the stored value is not a valid bcrypt hash.
func CheckPassword(plaintext, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return ErrInvalidHash
}
