package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/database"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// PizzaService provides methods to interact with the pizza database
type PizzaService interface {
	// GetAllPizzas retrieves all pizzas with their sauce and toppings
	GetAllPizzas(ctx context.Context) ([]models.Pizza, error)
	// GetPizzaByID retrieves a pizza by its ID
	GetPizzaByID(ctx context.Context, id uint) (models.Pizza, error)
	// CreatePizza creates a new pizza in the database
	CreatePizza(ctx context.Context, input models.PizzaCreateInput) (models.Pizza, error)
	// AddTopping attaches an existing topping to an existing pizza
	AddTopping(ctx context.Context, pizzaID, toppingID uint) error
	// UpdateSauce replaces the sauce of an existing pizza
	UpdateSauce(ctx context.Context, pizzaID, sauceID uint) error
	// DeletePizza deletes a pizza by its ID and reports whether it existed
	DeletePizza(ctx context.Context, id uint) (bool, error)
	// ToPublicView projects a pizza into the shape exposed to anonymous callers
	ToPublicView(pizza models.Pizza) models.PizzaDTO
}

// pizzaService is the implementation of the PizzaService interface
type pizzaService struct {
	db       *gorm.DB
	validate *validator.Validate
}

// NewPizzaService creates a new instance of PizzaService
func NewPizzaService(db *gorm.DB) PizzaService {
	return &pizzaService{
		db:       db,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// withRelations eagerly loads the sauce and toppings of every pizza in the query
func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Sauce").Preload("Toppings", func(db *gorm.DB) *gorm.DB {
		return db.Order("toppings.id")
	})
}

func (s *pizzaService) GetAllPizzas(ctx context.Context) ([]models.Pizza, error) {
	var pizzas []models.Pizza
	if err := withRelations(s.db.WithContext(ctx)).Order("id").Find(&pizzas).Error; err != nil {
		return nil, fmt.Errorf("list pizzas: %w", err)
	}
	return pizzas, nil
}

func (s *pizzaService) GetPizzaByID(ctx context.Context, id uint) (models.Pizza, error) {
	return findPizza(withRelations(s.db.WithContext(ctx)), id)
}

func findPizza(db *gorm.DB, id uint) (models.Pizza, error) {
	var pizzas []models.Pizza
	if err := db.Where("id = ?", id).Limit(2).Find(&pizzas).Error; err != nil {
		return models.Pizza{}, fmt.Errorf("load pizza %d: %w", id, err)
	}
	switch len(pizzas) {
	case 0:
		return models.Pizza{}, fmt.Errorf("%w: pizza %d", ErrNotFound, id)
	case 1:
		return pizzas[0], nil
	default:
		return models.Pizza{}, fmt.Errorf("%w: %d pizzas share id %d", ErrAmbiguousResult, len(pizzas), id)
	}
}

func (s *pizzaService) CreatePizza(ctx context.Context, input models.PizzaCreateInput) (models.Pizza, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := s.validate.StructCtx(ctx, input); err != nil {
		return models.Pizza{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	pizza := models.Pizza{Name: input.Name, Secret: input.Secret}
	if input.SauceID != 0 {
		sauceID := input.SauceID
		pizza.SauceID = &sauceID
	}
	seen := make(map[uint]bool, len(input.ToppingIDs))
	for _, id := range input.ToppingIDs {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		pizza.Toppings = append(pizza.Toppings, models.Topping{ID: id})
	}

	// only the join rows are written; referenced toppings are not touched
	if err := s.db.WithContext(ctx).Omit("Toppings.*").Create(&pizza).Error; err != nil {
		if database.IsForeignKeyViolation(err) {
			return models.Pizza{}, fmt.Errorf("%w: %v", ErrInvalidReference, err)
		}
		return models.Pizza{}, fmt.Errorf("create pizza: %w", err)
	}
	log.WithFields(logrus.Fields{"pizza_id": pizza.ID, "name": pizza.Name}).Info("Pizza created")

	return s.GetPizzaByID(ctx, pizza.ID)
}

func (s *pizzaService) AddTopping(ctx context.Context, pizzaID, toppingID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pizza, err := findPizza(tx, pizzaID)
		if err != nil {
			return err
		}
		var topping models.Topping
		if err := tx.First(&topping, toppingID).Error; err != nil {
			return lookupError(ErrInvalidReference, "topping", toppingID, err)
		}

		// the join table key makes a repeated attach a no-op
		if err := tx.Model(&pizza).Association("Toppings").Append(&topping); err != nil {
			return fmt.Errorf("attach topping %d to pizza %d: %w", toppingID, pizzaID, err)
		}
		log.WithFields(logrus.Fields{"pizza_id": pizzaID, "topping_id": toppingID}).Info("Topping attached")
		return nil
	})
}

func (s *pizzaService) UpdateSauce(ctx context.Context, pizzaID, sauceID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pizza, err := findPizza(tx, pizzaID)
		if err != nil {
			return err
		}
		var sauce models.Sauce
		if err := tx.First(&sauce, sauceID).Error; err != nil {
			return lookupError(ErrInvalidReference, "sauce", sauceID, err)
		}

		if err := tx.Model(&pizza).Update("sauce_id", sauce.ID).Error; err != nil {
			return fmt.Errorf("update sauce of pizza %d: %w", pizzaID, err)
		}
		log.WithFields(logrus.Fields{"pizza_id": pizzaID, "sauce_id": sauceID}).Info("Sauce replaced")
		return nil
	})
}

func (s *pizzaService) DeletePizza(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pizza, err := findPizza(tx, id)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		// toppings are shared, so only the join rows go with the pizza
		if err := tx.Model(&pizza).Association("Toppings").Clear(); err != nil {
			return fmt.Errorf("detach toppings of pizza %d: %w", id, err)
		}
		if err := tx.Delete(&pizza).Error; err != nil {
			return fmt.Errorf("delete pizza %d: %w", id, err)
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if deleted {
		log.WithField("pizza_id", id).Info("Pizza deleted")
	}
	return deleted, nil
}

func (s *pizzaService) ToPublicView(pizza models.Pizza) models.PizzaDTO {
	return models.NewPizzaDTO(pizza)
}
