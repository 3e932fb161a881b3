// Package shared defines sentinel errors and small utilities used across the
// client and server layers of Gatekeeper. Callers should use errors.Is to
// match these values.
package shared

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Registration errors.
	ErrorLoginAlreadyExists = errors.New("login already exists")

	// Token verification errors.
	ErrorTokenExpired     = errors.New("token expired")
	ErrorInvalidSignature = errors.New("invalid token signature")
	ErrorMalformedToken   = errors.New("malformed token")
)
