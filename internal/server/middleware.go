package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	authdomain "github.com/energoledger/energoledger/internal/auth/domain"
	"github.com/energoledger/energoledger/internal/identity"
)

// AuthCookieName is the cookie the login handler sets and Authenticate reads.
const AuthCookieName = "auth_token"

// extractToken pulls the bearer token from the auth cookie or the
// Authorization header, cookie first.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AuthCookieName); err == nil && strings.TrimSpace(cookie) != "" {
		return strings.TrimSpace(cookie)
	}
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if rest, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(rest)
	}
	return ""
}

// Authenticate resolves the caller's identity and stores it in the request
// context. A missing credential is 401; a bad token or an inactive or
// deleted user is 403.
func Authenticate(auth authdomain.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			AbortWithError(c, ErrMissingCredential)
			return
		}

		id, err := auth.Identify(c.Request.Context(), raw)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Request = c.Request.WithContext(identity.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// RequireRoles allows the request through only when the caller's role name
// matches one of names (case-insensitive).
func RequireRoles(names ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity.FromContext(c.Request.Context())
		if !ok || id.RoleName == "" {
			AbortWithError(c, ErrRoleNotFound)
			return
		}
		for _, name := range names {
			if strings.EqualFold(id.RoleName, name) {
				c.Next()
				return
			}
		}
		AbortWithError(c, ErrRoleNotAuthorized)
	}
}

// RequirePermission allows the request through when the caller holds the
// permission or carries the Admin role.
func RequirePermission(p identity.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity.FromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrPermissionDenied)
			return
		}
		if !id.Allows(p) {
			AbortWithError(c, ErrPermissionDenied)
			return
		}
		c.Next()
	}
}

// RequestLogger tags every request with an id and logs its outcome.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		log.Info("http request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
