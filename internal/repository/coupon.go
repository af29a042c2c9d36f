// Package repository holds the coupon store implementations. Coupons live in
// their own promotions database, which may be SQL or MongoDB.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
)

// ErrCouponNotFound is returned by GetByID when no coupon has the id
var ErrCouponNotFound = errors.New("coupon not found")

// CouponRepository reads coupons from the promotions store
type CouponRepository interface {
	// List returns every coupon ordered by id
	List(ctx context.Context) ([]models.Coupon, error)
	// ListActive returns the coupons expiring strictly after now, ordered by id
	ListActive(ctx context.Context, now time.Time) ([]models.Coupon, error)
	// GetByID returns a single coupon or ErrCouponNotFound
	GetByID(ctx context.Context, id uint) (models.Coupon, error)
}
