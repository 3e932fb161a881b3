package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/avoronov/gatekeeper/internal/server/auth"
	"github.com/avoronov/gatekeeper/internal/shared"
	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// identityKey is the gin context key the middleware stores the resolved
// identity under. Private to keep writes inside this package.
const identityKey = "gatekeeper/identity"

// Identity is the per-request resolved user, attached by requireToken and
// discarded when the request completes. It carries no password hash.
type Identity struct {
	ID       string
	UserName string
}

// IdentityFromContext returns the identity attached by requireToken.
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}

// requireToken gates a route on a valid bearer token.
//
// A missing Authorization header and a header not using the Bearer scheme are
// treated identically: no token was presented. Expired, tampered, and
// malformed tokens, and tokens whose subject no longer exists in the store,
// all produce the same rejection so the client learns nothing about which
// check failed.
func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		if !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, messageResponse{Message: "Not authorized, no token"})
			return
		}

		token := strings.TrimPrefix(header, bearerPrefix)

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, messageResponse{Message: "Not authorized, token failed"})
			return
		}

		user, err := s.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			// A verified token whose subject was deleted afterwards is
			// rejected rather than admitted with an empty identity.
			if errors.Is(err, shared.ErrorNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, messageResponse{Message: "Not authorized, token failed"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, messageResponse{Message: "Server error"})
			return
		}

		c.Set(identityKey, Identity{ID: user.ID, UserName: user.UserName})
		c.Next()
	}
}
