package services

import (
	"context"
	"fmt"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"gorm.io/gorm"
)

// CatalogService exposes the shared toppings and sauces read-only
type CatalogService interface {
	GetAllToppings(ctx context.Context) ([]models.Topping, error)
	GetToppingByID(ctx context.Context, id uint) (models.Topping, error)
	GetAllSauces(ctx context.Context) ([]models.Sauce, error)
	GetSauceByID(ctx context.Context, id uint) (models.Sauce, error)
}

type catalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) CatalogService {
	return &catalogService{db: db}
}

func (s *catalogService) GetAllToppings(ctx context.Context) ([]models.Topping, error) {
	var toppings []models.Topping
	if err := s.db.WithContext(ctx).Order("id").Find(&toppings).Error; err != nil {
		return nil, fmt.Errorf("list toppings: %w", err)
	}
	return toppings, nil
}

func (s *catalogService) GetToppingByID(ctx context.Context, id uint) (models.Topping, error) {
	var topping models.Topping
	if err := s.db.WithContext(ctx).First(&topping, id).Error; err != nil {
		return models.Topping{}, lookupError(ErrNotFound, "topping", id, err)
	}
	return topping, nil
}

func (s *catalogService) GetAllSauces(ctx context.Context) ([]models.Sauce, error) {
	var sauces []models.Sauce
	if err := s.db.WithContext(ctx).Order("id").Find(&sauces).Error; err != nil {
		return nil, fmt.Errorf("list sauces: %w", err)
	}
	return sauces, nil
}

func (s *catalogService) GetSauceByID(ctx context.Context, id uint) (models.Sauce, error) {
	var sauce models.Sauce
	if err := s.db.WithContext(ctx).First(&sauce, id).Error; err != nil {
		return models.Sauce{}, lookupError(ErrNotFound, "sauce", id, err)
	}
	return sauce, nil
}
