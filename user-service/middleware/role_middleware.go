package middleware

import (
	"github.com/gin-gonic/gin"

	"user-service-backend/shared/utils/apierror"
)

// RequireRole allows the request through only when the authenticated
// role is one of the given role IDs. Runs after AuthMiddleware.
func RequireRole(roleIDs ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID := c.GetInt(ContextRoleID)

		for _, allowed := range roleIDs {
			if roleID == allowed {
				c.Next()
				return
			}
		}

		apierror.Abort(c, apierror.ErrForbidden)
	}
}
