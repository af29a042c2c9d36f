package database

import (
	"fmt"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the catalog, user and OAuth tables
func Migrate(db *gorm.DB) error {
	log.Info("Migrating catalog schema")
	if err := db.AutoMigrate(&models.Sauce{}, &models.Topping{}, &models.Pizza{}); err != nil {
		return fmt.Errorf("migrate catalog: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.OAuthClient{}, &models.OAuthToken{}); err != nil {
		return fmt.Errorf("migrate auth: %w", err)
	}
	return nil
}

// MigratePromotions creates or updates the coupon table on the promotions store
func MigratePromotions(db *gorm.DB) error {
	log.Info("Migrating promotions schema")
	if err := db.AutoMigrate(&models.Coupon{}); err != nil {
		return fmt.Errorf("migrate promotions: %w", err)
	}
	return nil
}
