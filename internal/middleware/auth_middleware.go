package middleware

import (
	"errors"

	"github.com/ecommercio/storefront-backend/internal/app/model"
	apperrors "github.com/ecommercio/storefront-backend/internal/errors"
	"github.com/ecommercio/storefront-backend/internal/session"
	"github.com/gin-gonic/gin"
)

// Context keys for the signed-in identity
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
	UserRoleKey = "user_role"
)

type AuthMiddleware struct {
	sessions   session.Store
	cookieName string
}

func NewAuthMiddleware(sessions session.Store, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// resolve looks up the session for the request's cookie. A missing cookie
// and an expired session both come back as session.ErrNotFound.
func (m *AuthMiddleware) resolve(c *gin.Context) (*model.Identity, error) {
	token, err := c.Cookie(m.cookieName)
	if err != nil || token == "" {
		return nil, session.ErrNotFound
	}
	return m.sessions.Get(c.Request.Context(), token)
}

// Authenticate requires a valid, non-expired session (required)
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		identity, err := m.resolve(c)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				log.Warn("Request without valid session", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				apperrors.Unauthorized(c, "You must be signed in")
				c.Abort()
				return
			}
			log.Error("Session lookup failed", err, map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			apperrors.InternalError(c, "")
			c.Abort()
			return
		}

		c.Set(UserIDKey, identity.UserID)
		c.Set(UsernameKey, identity.Username)
		c.Set(UserRoleKey, identity.Role)

		log.Debug("Session resolved", map[string]interface{}{
			"user_id": identity.UserID,
			"role":    identity.Role,
		})

		c.Next()
	}
}

// OptionalAuthenticate resolves the session if one exists (optional)
// - Valid session: identity is set in context
// - Missing or expired session: continues as guest
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.resolve(c)
		if err != nil {
			c.Next()
			return
		}

		c.Set(UserIDKey, identity.UserID)
		c.Set(UsernameKey, identity.Username)
		c.Set(UserRoleKey, identity.Role)
		c.Next()
	}
}

// RequireAdmin passes only when the session's role is admin. It must run
// after Authenticate. The role is the one captured at login: a demoted or
// banned admin keeps access until their session expires.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		role, exists := GetUserRole(c)
		if !exists {
			log.Warn("Role information not found in context", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			apperrors.Unauthorized(c, "You must be signed in")
			c.Abort()
			return
		}

		if role != model.RoleAdmin {
			userID, _ := GetUserID(c)
			log.Warn("Admin access denied", map[string]interface{}{
				"user_id": userID,
				"role":    role,
				"path":    c.Request.URL.Path,
			})
			apperrors.RespondWithError(c, 403, apperrors.AuthzAdminOnly, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID extracts the user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetUsername extracts the username from context
func GetUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(UsernameKey)
	if !exists {
		return "", false
	}
	return username.(string), true
}

// GetUserRole extracts the user role from context
func GetUserRole(c *gin.Context) (model.UserRole, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	return role.(model.UserRole), true
}

// GetIdentity rebuilds the identity snapshot from context, if present
func GetIdentity(c *gin.Context) (*model.Identity, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return nil, false
	}
	username, _ := GetUsername(c)
	role, _ := GetUserRole(c)
	return &model.Identity{
		UserID:   userID,
		Username: username,
		Role:     role,
	}, true
}
