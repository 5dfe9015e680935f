package database

import (
	"gorm.io/gorm"

	"user-service-backend/shared/database/models"
)

// UserStore answers the credential lookups the auth flow needs. CRUD on
// users stays in the handlers; login only ever reads.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByEmail returns the user with the given email, excluding deleted
// accounts. Returns gorm.ErrRecordNotFound when no such user exists.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
