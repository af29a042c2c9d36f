package middleware

import (
	"net/http"
	"strings"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/auth"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"github.com/gin-gonic/gin"
)

// Context keys set by OAuth2Auth
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextClientID = "clientID"
	ContextScopes   = "scopes"
	ContextAuthType = "auth_type"
)

// OAuth2Auth validates bearer JWT access tokens issued by the login or token
// endpoints and stores the caller identity in the gin context
func OAuth2Auth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		// RFC 6750: Extract Bearer token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondWithOAuth2Error(c, http.StatusUnauthorized, "authorization_required",
				"Missing Authorization header. A valid Bearer token is required.")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			respondWithOAuth2Error(c, http.StatusUnauthorized, models.ErrInvalidRequest,
				"Authorization header must use Bearer scheme. Format: 'Bearer <token>'")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			respondWithOAuth2Error(c, http.StatusUnauthorized, "invalid_token", "Bearer token is empty")
			return
		}

		claims, err := auth.ParseAccessToken(tokenString, jwtSecret)
		if err != nil {
			log.WithError(err).WithField("path", c.FullPath()).Debug("Rejected access token")
			respondWithOAuth2Error(c, http.StatusUnauthorized, "invalid_token", err.Error())
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// respondWithOAuth2Error responds with RFC 6750 compliant error format
func respondWithOAuth2Error(c *gin.Context, status int, errorCode, description string) {
	c.AbortWithStatusJSON(status, models.NewOAuth2Error(errorCode, description))
}

func setClaims(c *gin.Context, claims *auth.AccessClaims) {
	// ParseAccessToken has already validated the uid
	userID, _ := claims.UserID()
	c.Set(ContextUserID, userID)
	c.Set(ContextUserRole, claims.Role)

	if claims.Scope != "" {
		c.Set(ContextScopes, claims.Scope)
	}

	// tokens from the OAuth2 endpoint name the client in aud, login tokens carry none
	if len(claims.Audience) > 0 && claims.Audience[0] != "" {
		c.Set(ContextClientID, claims.Audience[0])
		c.Set(ContextAuthType, "oauth2")
	} else {
		c.Set(ContextAuthType, "jwt")
	}
}
