package database

import (
	"log"
	"time"

	"github.com/google/uuid"

	"user-service-backend/shared/config"
	"user-service-backend/shared/database/models"
	utils "user-service-backend/shared/utils/auth"
)

// SeedDatabase creates the initial privileged accounts if they do not exist
func SeedDatabase() error {
	cfg := config.GetConfig()

	seeds := []struct {
		name     string
		email    string
		password string
		roleID   int
	}{
		{"Admin", cfg.AdminEmail, cfg.AdminPassword, models.RoleAdmin},
		{"Moderator", cfg.ModEmail, cfg.ModPassword, models.RoleMod},
	}

	for _, seed := range seeds {
		var existing models.User
		if err := DB.Where("email = ?", seed.email).First(&existing).Error; err == nil {
			log.Printf("✅ Seed user already exists: %s", seed.email)
			continue
		}

		hashedPassword, err := utils.HashPassword(seed.password)
		if err != nil {
			return err
		}

		user := models.User{
			UUID:      uuid.New(),
			Name:      seed.name,
			Email:     seed.email,
			Password:  hashedPassword,
			RoleID:    seed.roleID,
			IsActive:  true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := DB.Create(&user).Error; err != nil {
			return err
		}

		log.Printf("✅ Seed user created: %s (role %d)", seed.email, seed.roleID)
	}

	return nil
}
