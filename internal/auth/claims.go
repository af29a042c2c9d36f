package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles a token may carry
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// AccessClaims are the claims of every access token this API issues, whether
// through the OAuth2 token endpoint or through the login endpoint.
type AccessClaims struct {
	UID   string `json:"uid"`
	Role  string `json:"role"`
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the numeric user id carried in the uid claim
func (c *AccessClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.UID, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid uid claim %q: must be a positive number", c.UID)
	}
	return uint(id), nil
}

// NewAccessClaims builds claims for userID valid for ttl from issuedAt
func NewAccessClaims(userID uint, role string, issuedAt time.Time, ttl time.Duration) AccessClaims {
	return AccessClaims{
		UID:  strconv.FormatUint(uint64(userID), 10),
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
}

// SignAccessToken signs claims with an HMAC method
func SignAccessToken(claims AccessClaims, method *jwt.SigningMethodHMAC, key []byte) (string, error) {
	return jwt.NewWithClaims(method, claims).SignedString(key)
}

// ParseAccessToken verifies the signature and time claims of tokenString.
// Only HMAC signed tokens are accepted and exp is mandatory.
func ParseAccessToken(tokenString string, key []byte) (*AccessClaims, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, fmt.Errorf("token parsing failed: %w", err)
	}

	if claims.UID == "" {
		return nil, errors.New("token missing required 'uid' claim")
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	switch claims.Role {
	case RoleAdmin, RoleUser:
	case "":
		return nil, errors.New("token missing required 'role' claim")
	default:
		return nil, fmt.Errorf("invalid role '%s'. Allowed roles: admin, user", claims.Role)
	}
	return claims, nil
}
