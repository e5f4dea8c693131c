package core

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// contextUserKey is the gin context key holding the authenticated user id.
const contextUserKey = "userID"

const bearerPrefix = "Bearer "

// RequireAuth extracts and verifies the bearer token from the Authorization
// header and attaches the resolved user id to the context. Requests without a
// well-formed `Bearer <token>` header are rejected before any store access.
func RequireAuth(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			respondError(c, http.StatusUnauthorized, "MISSING_TOKEN", "authorization header with bearer token required")
			c.Abort()
			return
		}

		// Strip the scheme and exactly one following space.
		raw := header[len(bearerPrefix):]
		if raw == "" {
			respondError(c, http.StatusUnauthorized, "MISSING_TOKEN", "authorization header with bearer token required")
			c.Abort()
			return
		}

		userID, err := tokens.Verify(raw)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "INVALID_TOKEN", "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(contextUserKey, userID)
		c.Next()
	}
}

// authedUser returns the user id attached by RequireAuth.
func authedUser(c *gin.Context) (string, bool) {
	id, _ := c.Get(contextUserKey)
	userID, ok := id.(string)
	if !ok || userID == "" {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return "", false
	}
	return userID, true
}

// CORSMiddleware validates Origin against the allowed list and sets CORS
// headers. With no configured origins every cross-origin request is allowed.
func CORSMiddleware(cfg Config) gin.HandlerFunc {
	allowed := map[string]struct{}{}
	for _, o := range cfg.AllowedOrigins {
		allowed[strings.ToLower(o)] = struct{}{}
	}

	isAllowed := func(origin string) bool {
		if origin == "" || len(allowed) == 0 {
			return true
		}
		_, ok := allowed[strings.ToLower(origin)]
		return ok
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if !isAllowed(origin) {
			respondError(c, http.StatusForbidden, "FORBIDDEN", "origin not allowed")
			c.Abort()
			return
		}
		if origin != "" {
			setCORSHeaders(c, origin)
		}

		// Preflight handling
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

func setCORSHeaders(c *gin.Context, origin string) {
	c.Header("Access-Control-Allow-Origin", origin)
	c.Header("Vary", "Origin")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
}
