package models

import (
	"time"
)

// OAuthToken persists an issued access token so it can be looked up or revoked.
// UserID and RefreshToken are nil when the grant produced no value for them.
type OAuthToken struct {
	ID           uint      `gorm:"primaryKey"`
	ClientID     string    `gorm:"index;not null"`
	UserID       *string   `gorm:"index"`
	AccessToken  string    `gorm:"uniqueIndex;not null"`
	RefreshToken *string   `gorm:"index"`
	Scopes       string    `gorm:"size:255"`
	IssuedAt     time.Time `gorm:"not null"`
	ExpiresAt    time.Time `gorm:"not null"`
	CreatedAt    time.Time
}

func (OAuthToken) TableName() string {
	return "oauth_tokens"
}

// Expired reports whether the access token is past its lifetime
func (t OAuthToken) Expired(at time.Time) bool {
	return !t.ExpiresAt.After(at)
}
