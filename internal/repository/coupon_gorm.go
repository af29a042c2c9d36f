package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"gorm.io/gorm"
)

type gormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository reads coupons from a SQL database managed by gorm
func NewGormCouponRepository(db *gorm.DB) CouponRepository {
	return &gormCouponRepository{db: db}
}

func (r *gormCouponRepository) List(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := r.db.WithContext(ctx).Order("id").Find(&coupons).Error; err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	return coupons, nil
}

func (r *gormCouponRepository) ListActive(ctx context.Context, now time.Time) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := r.db.WithContext(ctx).Where(activeCondition(r.db), now.UTC()).Order("id").Find(&coupons).Error
	if err != nil {
		return nil, fmt.Errorf("list active coupons: %w", err)
	}
	return coupons, nil
}

func (r *gormCouponRepository) GetByID(ctx context.Context, id uint) (models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Coupon{}, fmt.Errorf("%w: %d", ErrCouponNotFound, id)
		}
		return models.Coupon{}, fmt.Errorf("load coupon %d: %w", id, err)
	}
	return coupon, nil
}

// activeCondition compares expirations as instants. SQLite stores times as text
// with whatever offset the writer used, so both sides go through julianday.
func activeCondition(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "julianday(expiration) > julianday(?)"
	}
	return "expiration > ?"
}
