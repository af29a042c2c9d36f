package seed

import (
	"context"
	"fmt"
	"sync"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/database"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// advisoryLockKey names the PostgreSQL advisory lock held while seeding
const advisoryLockKey int64 = 0x7069_7a7a_6173 // "pizzas"

// seedMu serializes seeding within the process. PostgreSQL additionally takes
// an advisory lock so separate processes cannot seed the same store twice.
var seedMu sync.Mutex

// Result describes what a seed run wrote
type Result struct {
	Seeded   bool `json:"seeded"`
	Toppings int  `json:"toppings"`
	Sauces   int  `json:"sauces"`
	Pizzas   int  `json:"pizzas"`
}

// Initializer writes the seed catalog into an empty store
type Initializer struct {
	db      *gorm.DB
	catalog Catalog
}

// NewInitializer creates an Initializer for db and catalog
func NewInitializer(db *gorm.DB, catalog Catalog) *Initializer {
	return &Initializer{db: db, catalog: catalog}
}

// Run seeds the store when it holds no pizzas and does nothing otherwise.
// The emptiness check and the inserts commit in a single transaction.
func (i *Initializer) Run(ctx context.Context) (Result, error) {
	seedMu.Lock()
	defer seedMu.Unlock()

	var result Result
	err := i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := acquireLock(tx); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Pizza{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count pizzas: %w", err)
		}
		if count > 0 {
			log.WithField("pizzas", count).Info("Database already seeded with initial data")
			return nil
		}

		log.Info("Database is empty, seeding initial data")
		var err error
		if result, err = i.insert(tx); err != nil {
			return err
		}
		return i.reseed(tx)
	})
	if err != nil {
		return Result{}, fmt.Errorf("seed catalog: %w", err)
	}

	if result.Seeded {
		log.WithFields(logrus.Fields{
			"toppings": result.Toppings,
			"sauces":   result.Sauces,
			"pizzas":   result.Pizzas,
		}).Info("Database seeded successfully")
	}
	return result, nil
}

func (i *Initializer) insert(tx *gorm.DB) (Result, error) {
	result := Result{Seeded: true}

	// toppings and sauces left behind by a partial seed are kept as they are
	if toppings := i.catalog.toppingModels(); len(toppings) > 0 {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&toppings)
		if res.Error != nil {
			return Result{}, fmt.Errorf("insert toppings: %w", res.Error)
		}
		result.Toppings = int(res.RowsAffected)
	}

	if sauces := i.catalog.sauceModels(); len(sauces) > 0 {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&sauces)
		if res.Error != nil {
			return Result{}, fmt.Errorf("insert sauces: %w", res.Error)
		}
		result.Sauces = int(res.RowsAffected)
	}

	// Toppings.* only writes the join rows; the toppings exist already
	if pizzas := i.catalog.pizzaModels(); len(pizzas) > 0 {
		res := tx.Omit("Toppings.*").Create(&pizzas)
		if res.Error != nil {
			return Result{}, fmt.Errorf("insert pizzas: %w", res.Error)
		}
		result.Pizzas = int(res.RowsAffected)
	}
	return result, nil
}

// reseed moves id sequences past the fixture ids
func (i *Initializer) reseed(tx *gorm.DB) error {
	for _, model := range []any{&models.Topping{}, &models.Sauce{}, &models.Pizza{}} {
		table, err := database.TableName(tx, model)
		if err != nil {
			return err
		}
		if err := database.ResetSequence(tx, table); err != nil {
			return err
		}
	}
	return nil
}

func acquireLock(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", advisoryLockKey).Error; err != nil {
		return fmt.Errorf("acquire seed lock: %w", err)
	}
	return nil
}
