package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teaching-program-api/internal/models"
	appErrors "github.com/noah-isme/teaching-program-api/pkg/errors"
	"github.com/noah-isme/teaching-program-api/pkg/response"
)

// RequireRoles lets the request through only when the JWT role is one of roles. It must run
// after JWT.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserKey)
		claims, ok := value.(*models.JWTClaims)
		if !exists || !ok || claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
