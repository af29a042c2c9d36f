package main

import (
	"context"
	"fmt"

	_ "github.com/franciscosanchezn/contoso-pizza-api/docs" // Import generated docs
	"github.com/franciscosanchezn/contoso-pizza-api/internal/auth"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/config"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/controllers"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/database"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/middleware"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/repository"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/router"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/seed"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// @title Contoso Pizza API
// @version 1.0
// @description Pizza catalog with toppings, sauces and promotional coupons
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx := context.Background()

	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration := loadConfig()
	applyLogLevel(configuration.LogLevel)
	if configuration.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database connection
	db := setupDatabase(ctx, configuration)

	coupons, closeCoupons := setupPromotions(ctx, configuration, db)
	defer closeCoupons()

	// Initialize services and controllers
	handlers := router.Handlers{
		Pizzas:  controllers.NewPizzaController(services.NewPizzaService(db)),
		Catalog: controllers.NewCatalogController(services.NewCatalogService(db)),
		Coupons: controllers.NewCouponController(services.NewCouponService(coupons)),
		Auth:    controllers.NewAuthController(services.NewUserService(db), configuration.JWTSecret, configuration.TokenTTL),
		Clients: controllers.NewClientController(services.NewClientService(db)),
		OAuth:   auth.NewOAuthService(db, configuration.JWTSecret, configuration.TokenTTL),
	}

	// Initialize Gin router
	engine := router.New(handlers, router.Options{
		JWTSecret:   []byte(configuration.JWTSecret),
		CORSOrigins: configuration.CORSOrigins,
		Swagger:     configuration.Environment != "production",
	})

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	checkPanicErr(engine.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port)))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// applyLogLevel lets LOG_LEVEL override the environment default, request logs included
func applyLogLevel(raw string) {
	if config.GetEnvWithDefault("LOG_LEVEL", "") == "" {
		return
	}
	level, err := log.ParseLevel(raw)
	if err != nil {
		log.WithField("log_level", raw).Warn("Ignoring unknown LOG_LEVEL")
		return
	}
	log.SetLevel(level)
	middleware.SetLogLevel(level)
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase connects to the catalog store, migrates it and seeds it when empty
func setupDatabase(ctx context.Context, conf *config.Config) *gorm.DB {
	db, err := database.InitDatabase(conf.CatalogDatabase())
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))

	if !conf.SeedOnStartup {
		log.Info("Seeding disabled by SEED_ON_STARTUP")
		return db
	}
	catalog, err := seed.CatalogFromFile(conf.SeedFile)
	checkPanicErr(err)
	_, err = seed.NewInitializer(db, catalog).Run(ctx)
	checkPanicErr(err)
	return db
}

// setupPromotions opens the coupon store. Coupons share the catalog database
// unless PROMOTIONS_DRIVER names a store of their own.
func setupPromotions(ctx context.Context, conf *config.Config, catalogDB *gorm.DB) (repository.CouponRepository, func()) {
	if conf.PromotionsDriver == "mongo" {
		client, err := repository.ConnectMongo(ctx, conf.MongoURI)
		checkPanicErr(err)
		log.WithField("database", conf.MongoDatabase).Info("Coupons served from MongoDB")
		return repository.NewMongoCouponRepository(client.Database(conf.MongoDatabase)), func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.WithError(err).Warn("Failed to disconnect from MongoDB")
			}
		}
	}

	db := catalogDB
	if dbConfig, dedicated := conf.PromotionsDatabase(); dedicated {
		var err error
		db, err = database.InitDatabase(dbConfig)
		checkPanicErr(err)
	}
	checkPanicErr(database.MigratePromotions(db))
	return repository.NewGormCouponRepository(db), func() {}
}
