package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/repository"
)

// CouponService exposes the promotions store read-only
type CouponService interface {
	// GetAllCoupons lists coupons, restricted to unexpired ones when activeOnly is set
	GetAllCoupons(ctx context.Context, activeOnly bool) ([]models.Coupon, error)
	GetCouponByID(ctx context.Context, id uint) (models.Coupon, error)
}

type couponService struct {
	repo repository.CouponRepository
	now  func() time.Time
}

func NewCouponService(repo repository.CouponRepository) CouponService {
	return &couponService{repo: repo, now: time.Now}
}

func (s *couponService) GetAllCoupons(ctx context.Context, activeOnly bool) ([]models.Coupon, error) {
	if activeOnly {
		return s.repo.ListActive(ctx, s.now().UTC())
	}
	return s.repo.List(ctx)
}

func (s *couponService) GetCouponByID(ctx context.Context, id uint) (models.Coupon, error) {
	coupon, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrCouponNotFound) {
		return models.Coupon{}, fmt.Errorf("%w: coupon %d", ErrNotFound, id)
	}
	return coupon, err
}
