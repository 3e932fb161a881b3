// Package auth implements the credential primitives of the server:
// signed bearer tokens and password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/avoronov/gatekeeper/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered JWT claims plus the authenticated user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken issues an HS256-signed token for userID. The token carries
// IssuedAt and ExpiresAt = IssuedAt + validityDuration.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies tokenString against secretKey and returns the
// embedded user id. Verification uses the local wall clock; no skew allowance.
//
// Failures map to sentinel errors:
//   - shared.ErrorTokenExpired for a token past its expiry
//   - shared.ErrorInvalidSignature for a wrong key or tampered payload
//   - shared.ErrorMalformedToken for anything that does not parse as a JWT
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", shared.ErrorTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", shared.ErrorInvalidSignature
		default:
			return "", shared.ErrorMalformedToken
		}
	}

	if !token.Valid {
		return "", shared.ErrorMalformedToken
	}

	return claims.UserID, nil
}
