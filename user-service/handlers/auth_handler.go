package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"user-service-backend/shared/database/models"
	modelauth "user-service-backend/shared/database/models/auth"
	"user-service-backend/shared/utils/apierror"
	utils "user-service-backend/shared/utils/auth"
	"user-service-backend/shared/utils/cache"
)

// UserFinder looks up principals for credential verification.
type UserFinder interface {
	FindByEmail(email string) (*models.User, error)
}

// RevocationLedger is the durable blacklist the logout flow appends to.
type RevocationLedger interface {
	Record(token, reason string) (*modelauth.RevokedToken, error)
	IsRevoked(token string) (bool, error)
}

type AuthHandler struct {
	users       UserFinder
	blacklist   RevocationLedger
	revocations cache.RevocationCache
}

func NewAuthHandler(users UserFinder, blacklist RevocationLedger, revocations cache.RevocationCache) *AuthHandler {
	return &AuthHandler{
		users:       users,
		blacklist:   blacklist,
		revocations: revocations,
	}
}

// Login Request/Response structs
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"longenough1"`
}

type LoginResult struct {
	Token string `json:"token"`
	UUID  string `json:"uuid"`
}

type LoginResponse struct {
	Login LoginResult `json:"login"`
}

// POST /users/login
// @Summary User login
// @Description Verify credentials and return a JWT valid for one hour
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Login credentials"
// @Success 200 {object} handlers.LoginResponse "Successful login"
// @Failure 400 {object} apierror.APIError "Wrong password or invalid request"
// @Failure 404 {object} apierror.APIError "User not found"
// @Failure 429 {object} apierror.APIError "Too many login attempts"
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Login failed for %s: user not found", req.Email)
			apierror.Respond(c, apierror.ErrUserNotFound)
			return
		}
		log.Printf("❌ Login lookup failed: %v", err)
		apierror.Respond(c, apierror.ErrStoreUnavailable)
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		log.Printf("Login failed for %s: wrong password", req.Email)
		apierror.Respond(c, apierror.ErrIncorrectPassword)
		return
	}

	token, err := utils.GenerateJWT(user.UUID, user.ID, user.RoleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Login: LoginResult{
			Token: token,
			UUID:  user.UUID.String(),
		},
	})
}

// POST /users/logout
// @Summary User logout
// @Description Revoke the presented token. Revocation is permanent; the token stays on the blacklist past its natural expiry.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "Logged out"
// @Failure 400 {object} apierror.APIError "Token already revoked"
// @Failure 401 {object} apierror.APIError "Missing, malformed or invalid token"
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		apierror.Respond(c, apierror.ErrHeaderNotFound)
		return
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		apierror.Respond(c, apierror.ErrMalformedLogin)
		return
	}

	tokenString := parts[1]

	revoked, ok := h.revocations.Get(tokenString)
	if !ok {
		var err error
		revoked, err = h.blacklist.IsRevoked(tokenString)
		if err != nil {
			apierror.Respond(c, apierror.ErrStoreUnavailable)
			return
		}
		h.revocations.Set(tokenString, revoked)
	}
	if revoked {
		apierror.Respond(c, apierror.ErrAlreadyRevoked)
		return
	}

	if _, err := utils.ValidateJWT(tokenString); err != nil {
		apierror.Respond(c, apierror.ErrInvalidToken)
		return
	}

	if _, err := h.blacklist.Record(tokenString, "logout"); err != nil {
		log.Printf("❌ Could not record revocation: %v", err)
		apierror.Respond(c, apierror.ErrStoreUnavailable)
		return
	}

	// Synchronous cache write: a revoked token must be rejected by this
	// instance immediately, not after the cached negative expires.
	h.revocations.Set(tokenString, true)

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
