package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ArowuTest/conomy-backend/internal/services"
	"github.com/ArowuTest/conomy-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// Authenticator resolves a bearer token into a session
type Authenticator interface {
	Authenticate(token string) (services.Session, error)
}

// JWTAuthMiddleware creates a gin middleware for JWT authentication.
// The resolved session is stored on the context for handlers.
func JWTAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const BearerSchema = "Bearer "
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer "})
			return
		}

		sess, err := auth.Authenticate(strings.TrimSpace(authHeader[len(BearerSchema):]))
		if err != nil {
			slog.Debug("Token validation failed", "error", err, "path", c.FullPath())
			if errors.Is(err, jwt.ErrExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// AdminOnly rejects sessions without the admin role. Must run after JWTAuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !SessionFrom(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": services.ErrForbidden.Error()})
			return
		}
		c.Next()
	}
}

// SessionFrom returns the session set by JWTAuthMiddleware, or the signed-out
// session when there is none.
func SessionFrom(c *gin.Context) services.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(services.Session); ok {
			return sess
		}
	}
	return services.Session{}
}
