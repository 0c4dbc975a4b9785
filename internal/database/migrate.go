package database

import (
	"gorm.io/gorm"

	"lexhub_backend/internal/models"
)

// Migrate brings the schema up to date. uuid-ossp backs the uuid
// primary-key defaults.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.LawyerProfile{},
		&models.RefreshToken{},
		&models.Upload{},
		&models.ContactRequest{},
	)
}
