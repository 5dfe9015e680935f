package utils

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"user-service-backend/shared/database/models/auth"
)

// TokenBlacklist is the durable side of token revocation: an append-only
// ledger in the database. It is the source of truth; the revocation cache
// in front of it only bounds lookup latency.
type TokenBlacklist struct {
	db *gorm.DB
}

func NewTokenBlacklist(db *gorm.DB) *TokenBlacklist {
	return &TokenBlacklist{db: db}
}

// Record appends a revocation entry. Revoking the same token twice writes
// two entries; the ledger keeps both and IsRevoked only asks "at least
// once".
func (b *TokenBlacklist) Record(token, reason string) (*auth.RevokedToken, error) {
	if token == "" {
		return nil, errors.New("token must not be empty")
	}

	entry := auth.RevokedToken{
		Token:     token,
		RevokedAt: time.Now(),
		Reason:    reason,
	}

	if err := b.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

// IsRevoked reports whether the token appears in the ledger.
func (b *TokenBlacklist) IsRevoked(token string) (bool, error) {
	var count int64
	if err := b.db.Model(&auth.RevokedToken{}).Where("token = ?", token).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
