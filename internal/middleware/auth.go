package middleware

import (
	"errors"
	"net/http"
	"strings"

	"schoolhub/internal/models"
	"schoolhub/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// AuthRequired validates the bearer access token and stores the account
// id and role in the request context.
func AuthRequired(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "AccessToken is required."})
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		claims, err := tokens.VerifyAccessToken(raw)
		if err != nil {
			status := http.StatusForbidden
			message := "Invalid AccessToken."
			if errors.Is(err, services.ErrTokenExpired) {
				message = "AccessToken has expired."
			}
			c.AbortWithStatusJSON(status, gin.H{"message": message})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated account holds one
// of the given roles. Must run after AuthRequired.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role, ok := c.Get(RoleKey)
		if !ok || !allowed[role.(models.Role)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "No permission."})
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated account id set by AuthRequired.
func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// CurrentRole returns the authenticated role set by AuthRequired.
func CurrentRole(c *gin.Context) models.Role {
	if v, ok := c.Get(RoleKey); ok {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return ""
}
