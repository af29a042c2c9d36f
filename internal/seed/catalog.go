package seed

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/catalog.yaml
var defaultCatalog []byte

var maxCalories = decimal.NewFromInt(1000)

// Catalog is the fixed data set written on first boot
type Catalog struct {
	Toppings []ToppingFixture `yaml:"toppings"`
	Sauces   []SauceFixture   `yaml:"sauces"`
	Pizzas   []PizzaFixture   `yaml:"pizzas"`
}

type ToppingFixture struct {
	ID       uint   `yaml:"id"`
	Name     string `yaml:"name"`
	Calories string `yaml:"calories"`
}

type SauceFixture struct {
	ID    uint   `yaml:"id"`
	Name  string `yaml:"name"`
	Vegan bool   `yaml:"vegan"`
}

type PizzaFixture struct {
	ID       uint    `yaml:"id"`
	Name     string  `yaml:"name"`
	Secret   *string `yaml:"secret"`
	Sauce    uint    `yaml:"sauce"`
	Toppings []uint  `yaml:"toppings"`
}

// DefaultCatalog returns the embedded catalog
func DefaultCatalog() (Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// CatalogFromFile loads path, or the embedded catalog when path is empty
func CatalogFromFile(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	return LoadCatalog(path)
}

// LoadCatalog reads a catalog from a YAML file
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read seed file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog and checks that every pizza references
// sauces and toppings declared in the same document
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode seed catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func (c Catalog) validate() error {
	toppings := make(map[uint]bool, len(c.Toppings))
	for _, t := range c.Toppings {
		if t.ID == 0 || t.Name == "" {
			return fmt.Errorf("seed topping needs an id and a name: %+v", t)
		}
		if toppings[t.ID] {
			return fmt.Errorf("duplicate seed topping id %d", t.ID)
		}
		calories, err := decimal.NewFromString(t.Calories)
		if err != nil {
			return fmt.Errorf("seed topping %q calories: %w", t.Name, err)
		}
		// calories are stored as decimal(4,1)
		if calories.Abs().GreaterThanOrEqual(maxCalories) || !calories.Equal(calories.Round(1)) {
			return fmt.Errorf("seed topping %q calories %s do not fit decimal(4,1)", t.Name, t.Calories)
		}
		toppings[t.ID] = true
	}

	sauces := make(map[uint]bool, len(c.Sauces))
	for _, s := range c.Sauces {
		if s.ID == 0 || s.Name == "" {
			return fmt.Errorf("seed sauce needs an id and a name: %+v", s)
		}
		if sauces[s.ID] {
			return fmt.Errorf("duplicate seed sauce id %d", s.ID)
		}
		sauces[s.ID] = true
	}

	pizzas := make(map[uint]bool, len(c.Pizzas))
	for _, p := range c.Pizzas {
		if p.ID == 0 || p.Name == "" {
			return fmt.Errorf("seed pizza needs an id and a name: %+v", p)
		}
		if pizzas[p.ID] {
			return fmt.Errorf("duplicate seed pizza id %d", p.ID)
		}
		pizzas[p.ID] = true
		if p.Sauce != 0 && !sauces[p.Sauce] {
			return fmt.Errorf("seed pizza %q references unknown sauce %d", p.Name, p.Sauce)
		}
		for _, id := range p.Toppings {
			if !toppings[id] {
				return fmt.Errorf("seed pizza %q references unknown topping %d", p.Name, id)
			}
		}
	}
	return nil
}

func (c Catalog) toppingModels() []models.Topping {
	out := make([]models.Topping, 0, len(c.Toppings))
	for _, t := range c.Toppings {
		out = append(out, models.Topping{
			ID:       t.ID,
			Name:     t.Name,
			Calories: decimal.RequireFromString(t.Calories),
		})
	}
	return out
}

func (c Catalog) sauceModels() []models.Sauce {
	out := make([]models.Sauce, 0, len(c.Sauces))
	for _, s := range c.Sauces {
		out = append(out, models.Sauce{ID: s.ID, Name: s.Name, IsVegan: s.Vegan})
	}
	return out
}

func (c Catalog) pizzaModels() []models.Pizza {
	out := make([]models.Pizza, 0, len(c.Pizzas))
	for _, p := range c.Pizzas {
		pizza := models.Pizza{ID: p.ID, Name: p.Name, Secret: p.Secret}
		if p.Sauce != 0 {
			sauceID := p.Sauce
			pizza.SauceID = &sauceID
		}
		for _, id := range p.Toppings {
			pizza.Toppings = append(pizza.Toppings, models.Topping{ID: id})
		}
		out = append(out, pizza)
	}
	return out
}
