package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccessToken(t *testing.T) {
	key := []byte(testSecret)
	now := time.Now()

	sign := func(t *testing.T, claims AccessClaims, method *jwt.SigningMethodHMAC, key []byte) string {
		t.Helper()
		token, err := SignAccessToken(claims, method, key)
		require.NoError(t, err)
		return token
	}

	t.Run("accepts HS256 and HS512", func(t *testing.T) {
		for _, method := range []*jwt.SigningMethodHMAC{jwt.SigningMethodHS256, jwt.SigningMethodHS512} {
			claims, err := ParseAccessToken(sign(t, NewAccessClaims(7, RoleUser, now, time.Hour), method, key), key)
			require.NoError(t, err, method.Alg())
			assert.Equal(t, "7", claims.UID)
		}
	})

	testCases := []struct {
		name   string
		claims AccessClaims
		key    []byte
	}{
		{name: "expired", claims: NewAccessClaims(7, RoleUser, now.Add(-2*time.Hour), time.Hour), key: key},
		{name: "wrong key", claims: NewAccessClaims(7, RoleUser, now, time.Hour), key: []byte("another-key")},
		{name: "unknown role", claims: NewAccessClaims(7, "chef", now, time.Hour), key: key},
		{name: "missing role", claims: NewAccessClaims(7, "", now, time.Hour), key: key},
		{name: "zero user", claims: NewAccessClaims(0, RoleUser, now, time.Hour), key: key},
		{name: "issued in the future", claims: NewAccessClaims(7, RoleUser, now.Add(time.Hour), time.Hour), key: key},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAccessToken(sign(t, tt.claims, jwt.SigningMethodHS256, tt.key), key)
			assert.Error(t, err)
		})
	}

	t.Run("missing exp", func(t *testing.T) {
		claims := NewAccessClaims(7, RoleUser, now, time.Hour)
		claims.ExpiresAt = nil
		_, err := ParseAccessToken(sign(t, claims, jwt.SigningMethodHS256, key), key)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseAccessToken("not-a-jwt", key)
		assert.Error(t, err)
	})
}
