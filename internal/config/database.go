package config

import "github.com/franciscosanchezn/contoso-pizza-api/internal/database"

// CatalogDatabase returns the connection settings for the pizza catalog store
func (c *Config) CatalogDatabase() database.DatabaseConfig {
	return database.DatabaseConfig{
		Driver:   c.DBDriver,
		URL:      c.DatabaseURL,
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSSLMode,
		Path:     c.DBPath,
	}
}

// PromotionsDatabase returns the connection settings for a dedicated coupon store.
// The second return value is false when coupons share the catalog database
// or live in MongoDB.
func (c *Config) PromotionsDatabase() (database.DatabaseConfig, bool) {
	switch c.PromotionsDriver {
	case "sqlite":
		return database.DatabaseConfig{Driver: "sqlite", Path: c.PromotionsDBPath}, true
	case "postgres":
		return database.DatabaseConfig{Driver: "postgres", URL: c.PromotionsDBURL}, true
	default:
		return database.DatabaseConfig{}, false
	}
}
