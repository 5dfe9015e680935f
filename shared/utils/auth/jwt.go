package utils

import (
	"errors"
	"strconv"
	"time"

	"user-service-backend/shared/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for every verification failure. Signature
// mismatch, malformed structure and expiry are deliberately collapsed into
// one opaque error so clients cannot probe which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	UserUUID string `json:"userUuid"`
	UserID   uint   `json:"userId"`
	RoleID   int    `json:"roleId"`
	jwt.RegisteredClaims
}

const fallbackSecret = "fallback-secret-key-for-development"

func jwtSecret() []byte {
	cfg := config.GetConfig()
	if cfg.JWTSecret == "" {
		return []byte(fallbackSecret)
	}
	return []byte(cfg.JWTSecret)
}

// GetJWTExpireDuration gets JWT expiration duration from config
func GetJWTExpireDuration() time.Duration {
	cfg := config.GetConfig()
	if cfg.JWTExpireHours == "" {
		return time.Hour
	}

	hours, err := strconv.Atoi(cfg.JWTExpireHours)
	if err != nil {
		return time.Hour
	}

	return time.Duration(hours) * time.Hour
}

// GenerateJWT signs a token carrying the user's identity claims, expiring
// after the configured duration (1 hour unless overridden).
func GenerateJWT(userUUID uuid.UUID, userID uint, roleID int) (string, error) {
	return GenerateJWTWithExpiry(userUUID, userID, roleID, GetJWTExpireDuration())
}

// GenerateJWTWithExpiry signs a token with an explicit time to live.
func GenerateJWTWithExpiry(userUUID uuid.UUID, userID uint, roleID int, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserUUID: userUUID.String(),
		UserID:   userID,
		RoleID:   roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ValidateJWT checks signature integrity and expiry and returns the
// embedded claims. Any failure yields ErrInvalidToken.
func ValidateJWT(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret(), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
