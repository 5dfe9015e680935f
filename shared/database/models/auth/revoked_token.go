package auth

import "time"

// RevokedToken is one entry in the append-only revocation ledger. Entries
// are never updated or deleted; the same token may appear more than once.
type RevokedToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Token     string    `json:"token" gorm:"type:text;index;not null"`
	RevokedAt time.Time `json:"revoked_at" gorm:"not null"`
	Reason    string    `json:"reason" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
