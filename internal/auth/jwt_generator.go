package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"github.com/go-oauth2/oauth2/v4"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// CustomJWTAccessGenerate generates JWT access tokens carrying the uid and role
// of the user owning the client
type CustomJWTAccessGenerate struct {
	SignedKey    []byte
	SignedMethod *jwt.SigningMethodHMAC
	DB           *gorm.DB
}

// NewCustomJWTAccessGenerate creates a new custom JWT access token generator
func NewCustomJWTAccessGenerate(key []byte, method *jwt.SigningMethodHMAC, db *gorm.DB) *CustomJWTAccessGenerate {
	return &CustomJWTAccessGenerate{
		SignedKey:    key,
		SignedMethod: method,
		DB:           db,
	}
}

// Token implements oauth2.AccessGenerate. Only client_credentials is enabled,
// so no refresh token is ever produced.
func (g *CustomJWTAccessGenerate) Token(ctx context.Context, data *oauth2.GenerateBasic, _ bool) (string, string, error) {
	// client_credentials carries no user, the client owner stands in
	userID := data.UserID
	if userID == "" {
		userID = data.Client.GetUserID()
	}
	if userID == "" {
		return "", "", errors.New("cannot generate token: client has no owning user")
	}

	user, err := g.lookupUser(ctx, userID)
	if err != nil {
		return "", "", err
	}
	role := user.Role
	if role == "" {
		role = RoleUser
	}

	claims := NewAccessClaims(user.ID, role, data.TokenInfo.GetAccessCreateAt(), data.TokenInfo.GetAccessExpiresIn())
	claims.Audience = jwt.ClaimStrings{data.Client.GetID()}
	claims.Scope = data.TokenInfo.GetScope()

	access, err := SignAccessToken(claims, g.SignedMethod, g.SignedKey)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	return access, "", nil
}

// lookupUser reads the role from the database so tokens never carry a stale or forged role
func (g *CustomJWTAccessGenerate) lookupUser(ctx context.Context, userID string) (*models.User, error) {
	id, err := strconv.ParseUint(userID, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", err)
	}

	var user models.User
	if err := g.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %d not found", id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}
