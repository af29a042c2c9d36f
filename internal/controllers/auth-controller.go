package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/auth"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthController struct {
	userService services.UserService
	jwtSecret   []byte
	tokenTTL    time.Duration
	now         func() time.Time
}

func NewAuthController(userService services.UserService, jwtSecret string, tokenTTL time.Duration) *AuthController {
	return &AuthController{
		userService: userService,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		now:         time.Now,
	}
}

// RegisterRequest is the body accepted by Register
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

// LoginRequest is the body accepted by Login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary Register a user
// @Description Create an account with the user role
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Account details"
// @Success 201 {object} models.User
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /api/v1/auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body",
			map[string]interface{}{"error": err.Error()}))
		return
	}

	// accounts created here never start as admins
	user := &models.User{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
		Name:     req.Name,
		Role:     auth.RoleUser,
	}

	if err := ac.userService.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, services.ErrUserExists) {
			c.JSON(http.StatusConflict, models.NewAPIError(models.ErrConflict, "User already exists"))
			return
		}
		respondError(c, err, models.ErrNotFound)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Log in
// @Description Exchange email and password for a bearer access token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Router /api/v1/auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body",
			map[string]interface{}{"error": err.Error()}))
		return
	}

	user, err := ac.userService.GetUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		respondError(c, err, models.ErrNotFound)
		return
	}
	if user == nil || !user.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "Invalid credentials"))
		return
	}

	role := user.Role
	if role == "" {
		role = auth.RoleUser
	}
	claims := auth.NewAccessClaims(user.ID, role, ac.now(), ac.tokenTTL)
	tokenString, err := auth.SignAccessToken(claims, jwt.SigningMethodHS256, ac.jwtSecret)
	if err != nil {
		respondError(c, err, models.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": tokenString,
		"token_type":   "Bearer",
		"expires_in":   int64(ac.tokenTTL.Seconds()),
		"user":         user,
	})
}
