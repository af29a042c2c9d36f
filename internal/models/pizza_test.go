package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewPizzaDTOHidesSecret(t *testing.T) {
	secrets := map[string]*string{
		"absent":       nil,
		"empty string": strPtr(""),
		"set":          strPtr("the dough rests for 72 hours"),
	}

	for name, secret := range secrets {
		t.Run(name, func(t *testing.T) {
			pizza := Pizza{ID: 7, Name: "Margherita", Secret: secret}

			body, err := json.Marshal(NewPizzaDTO(pizza))
			require.NoError(t, err)

			var fields map[string]any
			require.NoError(t, json.Unmarshal(body, &fields))
			assert.NotContains(t, fields, "secret")
			assert.ElementsMatch(t, []string{"id", "name", "sauce", "toppings"}, keys(fields))
			if secret != nil && *secret != "" {
				assert.NotContains(t, string(body), *secret)
			}
		})
	}
}

func TestNewPizzaDTOCopiesRelations(t *testing.T) {
	sauce := &Sauce{ID: 1, Name: "Tomato", IsVegan: true}
	pizza := Pizza{
		ID:       3,
		Name:     "Pepperoni Delight",
		Sauce:    sauce,
		Toppings: []Topping{{ID: 1, Name: "Pepperoni", Calories: decimal.NewFromInt(130)}},
	}

	dto := NewPizzaDTO(pizza)

	assert.Equal(t, uint(3), dto.ID)
	assert.Equal(t, "Pepperoni Delight", dto.Name)
	assert.Equal(t, sauce, dto.Sauce)
	assert.Equal(t, pizza.Toppings, dto.Toppings)
}

func TestNewPizzaDTOWithoutToppingsRendersEmptyList(t *testing.T) {
	body, err := json.Marshal(NewPizzaDTO(Pizza{ID: 1, Name: "Plain"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Plain","sauce":null,"toppings":[]}`, string(body))
}

func TestAdminPizzaIncludesSecret(t *testing.T) {
	body, err := json.Marshal(Pizza{ID: 1, Name: "Plain", Secret: strPtr("sourdough")})
	require.NoError(t, err)
	assert.Contains(t, string(body), `"secret":"sourdough"`)
	assert.NotContains(t, string(body), "SauceID")
}

func TestToppingCaloriesRenderAsNumber(t *testing.T) {
	body, err := json.Marshal(Topping{ID: 1, Name: "Ham", Calories: decimal.RequireFromString("70.5")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Ham","calories":70.5}`, string(body))
}

func TestCouponExpired(t *testing.T) {
	now := time.Date(2025, 3, 6, 12, 0, 0, 0, time.UTC)

	assert.True(t, Coupon{Expiration: now.Add(-time.Hour)}.Expired(now))
	assert.True(t, Coupon{Expiration: now}.Expired(now))
	assert.False(t, Coupon{Expiration: now.Add(time.Hour)}.Expired(now))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
