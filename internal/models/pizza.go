package models

import "github.com/shopspring/decimal"

func init() {
	// calories are rendered as JSON numbers rather than quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Pizza represents a pizza with its sauce and toppings.
// Secret is stored with the row but only exposed through the admin listing.
type Pizza struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Secret   *string   `json:"secret"`
	SauceID  *uint     `json:"-"`
	Sauce    *Sauce    `json:"sauce"`
	Toppings []Topping `gorm:"many2many:pizza_toppings;" json:"toppings"`
}

// Topping can be shared by any number of pizzas
type Topping struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	Name     string          `gorm:"size:100;not null" json:"name"`
	Calories decimal.Decimal `gorm:"type:decimal(4,1);not null" json:"calories"`
}

// Sauce can be shared by any number of pizzas
type Sauce struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	IsVegan bool   `gorm:"not null;default:false" json:"isVegan"`
}

// PizzaDTO is the public view of a Pizza. It never carries the secret.
type PizzaDTO struct {
	ID       uint      `json:"id"`
	Name     string    `json:"name"`
	Sauce    *Sauce    `json:"sauce"`
	Toppings []Topping `json:"toppings"`
}

// NewPizzaDTO projects a pizza into its public view
func NewPizzaDTO(p Pizza) PizzaDTO {
	toppings := p.Toppings
	if toppings == nil {
		toppings = []Topping{}
	}
	return PizzaDTO{
		ID:       p.ID,
		Name:     p.Name,
		Sauce:    p.Sauce,
		Toppings: toppings,
	}
}

// PizzaCreateInput is the payload accepted when creating a pizza.
// Referenced sauce and toppings are not checked for existence.
type PizzaCreateInput struct {
	Name       string  `json:"name" binding:"required,max=100" validate:"required,max=100"`
	Secret     *string `json:"secret,omitempty"`
	SauceID    uint    `json:"sauceId"`
	ToppingIDs []uint  `json:"toppingIds"`
}
