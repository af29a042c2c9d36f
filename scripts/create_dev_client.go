package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/auth"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/config"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/database"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/services"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// devPassword is the login password of the generated development users
const devPassword = "dev-password-123"

func main() {
	role := flag.String("role", auth.RoleAdmin, "User role (admin or user)")
	flag.Parse()
	if *role != auth.RoleAdmin && *role != auth.RoleUser {
		log.Fatalf("Unsupported role %q (supported: admin, user)", *role)
	}

	_ = godotenv.Load()
	conf, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := database.InitDatabase(conf.CatalogDatabase())
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	ctx := context.Background()

	// Determine client credentials based on role
	clientID, clientSecret := "dev-client", "dev-secret-123"
	if *role == auth.RoleUser {
		clientID, clientSecret = "user-client", "user-secret-123"
	}

	clients := services.NewClientService(db)
	if _, err := clients.GetClientByID(ctx, clientID); err == nil {
		fmt.Printf("Development client already exists for role '%s'!\n", *role)
		printCredentials(clientID, clientSecret)
		return
	} else if !errors.Is(err, services.ErrNotFound) {
		log.WithError(err).Fatal("Failed to look up client")
	}

	user, err := userForRole(ctx, db, *role)
	if err != nil {
		log.WithError(err).Fatal("Failed to get user for role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(clientSecret), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("Failed to hash secret")
	}

	client := &models.OAuthClient{
		ID:         clientID,
		Secret:     string(hash),
		Name:       fmt.Sprintf("Development %s Client", *role),
		Domain:     "http://localhost",
		UserID:     user.ID,
		Scopes:     "pizzas:read pizzas:write",
		GrantTypes: "client_credentials",
	}
	if err := clients.CreateClient(ctx, client); err != nil {
		log.WithError(err).Fatal("Failed to create client")
	}

	fmt.Printf("Development OAuth client created for role '%s'!\n", *role)
	fmt.Printf("User: %s (ID: %d)\n", user.Email, user.ID)
	printCredentials(clientID, clientSecret)
}

func printCredentials(clientID, clientSecret string) {
	fmt.Printf("Client ID: %s\n", clientID)
	fmt.Printf("Client Secret: %s\n", clientSecret)
	fmt.Println("\nUse these credentials for testing:")
	fmt.Printf("curl -X POST http://localhost:8080/api/v1/oauth/token \\\n")
	fmt.Printf("  -d 'grant_type=client_credentials' \\\n")
	fmt.Printf("  -d 'client_id=%s' \\\n", clientID)
	fmt.Printf("  -d 'client_secret=%s'\n", clientSecret)
}

// userForRole gets or creates the development user with the given role
func userForRole(ctx context.Context, db *gorm.DB, role string) (*models.User, error) {
	users := services.NewUserService(db)
	email := fmt.Sprintf("%s@contoso-pizza.dev", role)

	user, err := users.GetUserByEmail(ctx, email)
	if err == nil {
		fmt.Printf("Found existing user: %s (ID: %d, Role: %s)\n", user.Email, user.ID, user.Role)
		return user, nil
	}
	if !errors.Is(err, services.ErrNotFound) {
		return nil, err
	}

	user = &models.User{
		Email:    email,
		Name:     fmt.Sprintf("%s User", role),
		Password: devPassword,
		Role:     role,
	}
	if err := users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	fmt.Printf("Created new user: %s (ID: %d, Role: %s, Password: %s)\n", user.Email, user.ID, user.Role, devPassword)
	return user, nil
}
