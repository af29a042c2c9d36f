package models

import "time"

// Coupon is a promotion managed outside this service; the API only reads it
type Coupon struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Expiration  time.Time `gorm:"not null;index" json:"expiration"`
	Description string    `json:"description"`
}

// Expired reports whether the coupon is no longer valid at the given instant
func (c Coupon) Expired(at time.Time) bool {
	return !c.Expiration.After(at)
}
