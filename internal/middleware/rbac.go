package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/campushq/faculty-api/internal/models"
	appErrors "github.com/campushq/faculty-api/pkg/errors"
	"github.com/campushq/faculty-api/pkg/response"
)

// RequireRole enforces role-based access control for routes. The role set is
// closed, so claims carrying anything outside the two known roles never pass.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.Claims)
		if !ok || !claims.UserType.Valid() {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowed[claims.UserType]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
