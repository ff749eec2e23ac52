package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/jwt"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/log"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/response"
)

const (
	UserIDKey     = "user_id"
	EmailKey      = "email"
	NameKey       = "name"
	RolesKey      = "roles"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "

	RoleAdmin = "admin"
)

// AuthMiddleware validates bearer tokens issued by the platform auth system.
type AuthMiddleware struct {
	tokens *jwt.Manager
}

// NewAuthMiddleware creates an auth middleware around the given JWT manager.
func NewAuthMiddleware(tokens *jwt.Manager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth returns a Gin middleware that rejects requests without a
// valid bearer token and stores the caller's identity in the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Unauthorized(c, "invalid authorization format")
			c.Abort()
			return
		}

		claims, err := m.tokens.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			response.Unauthorized(c, err.Error())
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Set(NameKey, claims.Name)
		c.Set(RolesKey, claims.Roles)

		c.Next()
	}
}

// RequireRole returns a Gin middleware that rejects authenticated callers
// missing the given role. It must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !HasRole(c, role) {
			l := log.Ctx(c.Request.Context())
			l.Warn().
				Str(log.FieldUserID, GetUserID(c)).
				Str("email", GetEmail(c)).
				Str("required_role", role).
				Msg("access denied")
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID extracts the authenticated user ID from the Gin context.
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(UserIDKey); exists {
		return id.(string)
	}
	return ""
}

// GetEmail extracts the authenticated user's email from the Gin context.
func GetEmail(c *gin.Context) string {
	if email, exists := c.Get(EmailKey); exists {
		return email.(string)
	}
	return ""
}

// HasRole reports whether the authenticated user carries the given role.
func HasRole(c *gin.Context, role string) bool {
	roles, exists := c.Get(RolesKey)
	if !exists {
		return false
	}
	for _, r := range roles.([]string) {
		if r == role {
			return true
		}
	}
	return false
}
