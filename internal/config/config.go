package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		// Default to info level for other environments
		log.SetLevel(logrus.InfoLevel)
	}
}

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Port        int      `json:"port"`
	Host        string   `json:"host"`
	Environment string   `json:"environment"`
	CORSOrigins []string `json:"cors_origins"`

	// Database configuration
	DatabaseURL string `json:"database_url"`
	DBDriver    string `json:"db_driver"`
	DBHost      string `json:"db_host"`
	DBPort      string `json:"db_port"`
	DBName      string `json:"db_name"`
	DBUser      string `json:"db_user"`
	DBPassword  string `json:"db_password"`
	DBSSLMode   string `json:"db_sslmode"`
	DBPath      string `json:"db_path"`

	// Promotions store configuration. An empty driver shares the catalog database.
	PromotionsDriver string `json:"promotions_driver"`
	PromotionsDBPath string `json:"promotions_db_path"`
	PromotionsDBURL  string `json:"promotions_db_url"`
	MongoURI         string `json:"mongo_uri"`
	MongoDatabase    string `json:"mongo_database"`

	// Seed configuration
	SeedOnStartup bool   `json:"seed_on_startup"`
	SeedFile      string `json:"seed_file"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security Configuration
	JWTSecret string        `json:"jwt_secret"`
	TokenTTL  time.Duration `json:"token_ttl"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, Environment: %s, DatabaseURL: %s, DBDriver: %s, DBHost: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], DBPath: %s, PromotionsDriver: %s, PromotionsDBURL: %s, MongoURI: %s, SeedOnStartup: %t, LogLevel: %s, JWTSecret: [REDACTED], TokenTTL: %s}",
		c.Port, c.Host, c.Environment, maskDatabaseURL(c.DatabaseURL), c.DBDriver, c.DBHost, c.DBName, c.DBUser,
		c.DBPath, c.PromotionsDriver, maskDatabaseURL(c.PromotionsDBURL), maskDatabaseURL(c.MongoURI), c.SeedOnStartup, c.LogLevel, c.TokenTTL)
}

// maskDatabaseURL masks password in database URL
func maskDatabaseURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}

	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "[REDACTED_INVALID_URL]"
	}

	if parsed.User != nil {
		// Replace password with [REDACTED]
		parsed.User = url.UserPassword(parsed.User.Username(), "[REDACTED]")
	}

	return parsed.String()
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// It also validates formats like DatabaseURL and the promotions driver
// Returns an error if any environment variable is invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	dbURL := GetEnvWithDefault("DATABASE_URL", "")
	if dbURL != "" {
		if _, err := url.ParseRequestURI(dbURL); err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL format: %w", err)
		}
	}

	dbDriver, err := catalogDriver(strings.ToLower(GetEnvWithDefault("DB_DRIVER", "")), dbURL)
	if err != nil {
		return nil, err
	}

	promotionsDriver := strings.ToLower(GetEnvWithDefault("PROMOTIONS_DRIVER", ""))
	promotionsURL := GetEnvWithDefault("PROMOTIONS_DATABASE_URL", "")
	switch promotionsDriver {
	case "", "sqlite", "mongo":
	case "postgres":
		if _, err := url.ParseRequestURI(promotionsURL); err != nil {
			return nil, fmt.Errorf("PROMOTIONS_DATABASE_URL is required for the postgres promotions driver: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported PROMOTIONS_DRIVER: %s (supported: sqlite, postgres, mongo)", promotionsDriver)
	}

	config := &Config{
		Port:             port,
		Host:             GetEnvWithDefault("APP_HOST", "localhost"),
		Environment:      GetEnvWithDefault("APP_ENV", "development"),
		CORSOrigins:      splitList(GetEnvWithDefault("CORS_ORIGINS", "http://localhost:5173")),
		DatabaseURL:      dbURL,
		DBDriver:         dbDriver,
		DBHost:           GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:           GetEnvWithDefault("DB_PORT", "5432"),
		DBName:           GetEnvWithDefault("DB_NAME", "contoso_pizza"),
		DBUser:           GetEnvWithDefault("DB_USER", "user"),
		DBPassword:       GetEnvWithDefault("DB_PASSWORD", "password"),
		DBSSLMode:        GetEnvWithDefault("DB_SSLMODE", "disable"),
		DBPath:           GetEnvWithDefault("DB_PATH", "ContosoPizza.db"),
		PromotionsDriver: promotionsDriver,
		PromotionsDBPath: GetEnvWithDefault("PROMOTIONS_DB_PATH", "Promotions.db"),
		PromotionsDBURL:  promotionsURL,
		MongoURI:         GetEnvWithDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:    GetEnvWithDefault("MONGO_DATABASE", "promotions"),
		SeedOnStartup:    GetEnvAsType("SEED_ON_STARTUP", true),
		SeedFile:         GetEnvWithDefault("SEED_FILE", ""),
		LogLevel:         GetEnvWithDefault("LOG_LEVEL", "info"),
		JWTSecret:        GetEnvWithDefault("JWT_SECRET", "secret"),
		TokenTTL:         time.Duration(GetEnvAsType("TOKEN_TTL_MINUTES", 60)) * time.Minute,
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// catalogDriver resolves the catalog store driver. DATABASE_URL only describes a
// PostgreSQL store, so it selects postgres when DB_DRIVER is unset and cannot be
// combined with sqlite.
func catalogDriver(driver, dbURL string) (string, error) {
	switch {
	case driver == "" && dbURL != "":
		return "postgres", nil
	case driver == "":
		return "sqlite", nil
	case driver == "sqlite" && dbURL != "":
		return "", fmt.Errorf("DATABASE_URL is set but DB_DRIVER is sqlite; unset one of them or use DB_PATH for sqlite")
	default:
		return driver, nil
	}
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Debugf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}

// splitList turns a comma separated value into a trimmed slice, dropping empty entries
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
