package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"user-service-backend/shared/utils/apierror"
)

type ownershipBody struct {
	UUID string `json:"uuid"`
}

// RequireOwnership restricts a request to the caller's own user record.
// Roles in the privileged list bypass the check entirely. For everyone
// else the path :id, the path :uuid and the body uuid, whichever the
// request carries, must match the authenticated claims; a request
// carrying none of them passes.
// The body is read with ShouldBindBodyWith so handlers can bind it again.
func RequireOwnership(privilegedRoles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID := c.GetInt(ContextRoleID)
		for _, privileged := range privilegedRoles {
			if roleID == privileged {
				c.Next()
				return
			}
		}

		if paramID := c.Param("id"); paramID != "" {
			id, err := strconv.ParseUint(paramID, 10, 64)
			if err != nil || uint(id) != c.GetUint(ContextUserID) {
				apierror.Abort(c, apierror.ErrForbidden)
				return
			}
		}

		if paramUUID := c.Param("uuid"); paramUUID != "" {
			if paramUUID != c.GetString(ContextUserUUID) {
				apierror.Abort(c, apierror.ErrForbidden)
				return
			}
		}

		// ContentLength is -1 for chunked bodies, so the bind is attempted
		// whenever a body exists; an empty body fails the bind and counts
		// as "no identifier".
		if c.Request.Body != nil {
			var body ownershipBody
			if err := c.ShouldBindBodyWith(&body, binding.JSON); err == nil && body.UUID != "" {
				if body.UUID != c.GetString(ContextUserUUID) {
					apierror.Abort(c, apierror.ErrForbidden)
					return
				}
			}
		}

		c.Next()
	}
}
