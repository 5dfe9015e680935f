package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"user-service-backend/shared/utils/apierror"
	utils "user-service-backend/shared/utils/auth"
	"user-service-backend/shared/utils/cache"
)

// RevocationChecker is the durable revocation ledger as the middleware
// sees it.
type RevocationChecker interface {
	IsRevoked(token string) (bool, error)
}

// Context keys set by AuthMiddleware for downstream handlers.
const (
	ContextUserID   = "userID"
	ContextUserUUID = "userUUID"
	ContextRoleID   = "roleID"
	ContextToken    = "token"
)

// AuthMiddleware authenticates the request. The checks run in a fixed
// order, each terminating the chain on failure: header presence, header
// format, revocation (cache, then ledger), signature and expiry, and
// finally claim attachment. Structural checks come first so the ledger
// round trip and the signature verification only run for plausible
// requests.
func AuthMiddleware(blacklist RevocationChecker, revocations cache.RevocationCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierror.Abort(c, apierror.ErrHeaderNotFound)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			apierror.Abort(c, apierror.ErrMalformedLogin)
			return
		}

		tokenString := parts[1]

		revoked, ok := revocations.Get(tokenString)
		if !ok {
			var err error
			revoked, err = blacklist.IsRevoked(tokenString)
			if err != nil {
				// Ledger unreachable: fail closed rather than admit a
				// token we cannot verify.
				apierror.Abort(c, apierror.ErrStoreUnavailable)
				return
			}
			revocations.Set(tokenString, revoked)
		}
		if revoked {
			apierror.Abort(c, apierror.ErrTokenBlacklisted)
			return
		}

		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			apierror.Abort(c, apierror.ErrInvalidToken)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserUUID, claims.UserUUID)
		c.Set(ContextRoleID, claims.RoleID)
		c.Set(ContextToken, tokenString)

		c.Next()
	}
}
