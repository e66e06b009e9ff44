package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/talentsafricains/showcase/internal/models"
	"github.com/talentsafricains/showcase/internal/utils"
)

// Context keys set by the auth middlewares.
const (
	CtxUserID    = "user_id"
	CtxUserEmail = "user_email"
	CtxUserRole  = "user_role"
)

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}

// AuthMiddleware requires a valid bearer token and attaches the
// token-derived identity to the request context. The identity is not
// re-validated against the database: a demoted user stays valid until
// the token expires.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization token required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			abortUnauthorized(c, "Invalid authorization format. Use: Bearer <token>")
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			if errors.Is(err, utils.ErrExpiredToken) {
				abortUnauthorized(c, "Token expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserEmail, claims.Email)
		c.Set(CtxUserRole, claims.Role)

		c.Next()
	}
}

// OptionalAuthMiddleware attaches the identity when a valid token is
// present but never rejects the request. Used by public endpoints that
// enrich their response for logged-in viewers.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || tokenString == authHeader {
			c.Next()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			c.Next()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserEmail, claims.Email)
		c.Set(CtxUserRole, claims.Role)

		c.Next()
	}
}

// RequireRole gates a route on the token-derived role. Must run after
// AuthMiddleware. Role mismatch is a 403, distinct from the 401s the
// auth middleware produces.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(CtxUserRole)
		if !exists {
			abortUnauthorized(c, "Authorization token required")
			return
		}

		if value != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Insufficient privileges",
			})
			return
		}

		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id, or 0 when the
// request is anonymous.
func CurrentUserID(c *gin.Context) uint {
	value, exists := c.Get(CtxUserID)
	if !exists {
		return 0
	}
	id, ok := value.(uint)
	if !ok {
		return 0
	}
	return id
}

// CurrentUserRole returns the authenticated user's role, or "" when
// the request is anonymous.
func CurrentUserRole(c *gin.Context) models.Role {
	value, exists := c.Get(CtxUserRole)
	if !exists {
		return ""
	}
	role, ok := value.(models.Role)
	if !ok {
		return ""
	}
	return role
}
