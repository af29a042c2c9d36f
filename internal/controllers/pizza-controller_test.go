package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubPizzaService answers from a fixed pizza list and a canned error
type stubPizzaService struct {
	pizzas []models.Pizza
	err    error
	calls  []string
}

func (s *stubPizzaService) GetAllPizzas(ctx context.Context) ([]models.Pizza, error) {
	return s.pizzas, s.err
}

func (s *stubPizzaService) GetPizzaByID(ctx context.Context, id uint) (models.Pizza, error) {
	if s.err != nil {
		return models.Pizza{}, s.err
	}
	for _, p := range s.pizzas {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Pizza{}, fmt.Errorf("%w: pizza %d", services.ErrNotFound, id)
}

func (s *stubPizzaService) CreatePizza(ctx context.Context, input models.PizzaCreateInput) (models.Pizza, error) {
	if s.err != nil {
		return models.Pizza{}, s.err
	}
	return models.Pizza{ID: 42, Name: input.Name, Secret: input.Secret}, nil
}

func (s *stubPizzaService) AddTopping(ctx context.Context, pizzaID, toppingID uint) error {
	s.calls = append(s.calls, fmt.Sprintf("topping %d %d", pizzaID, toppingID))
	return s.err
}

func (s *stubPizzaService) UpdateSauce(ctx context.Context, pizzaID, sauceID uint) error {
	s.calls = append(s.calls, fmt.Sprintf("sauce %d %d", pizzaID, sauceID))
	return s.err
}

func (s *stubPizzaService) DeletePizza(ctx context.Context, id uint) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for _, p := range s.pizzas {
		if p.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubPizzaService) ToPublicView(pizza models.Pizza) models.PizzaDTO {
	return models.NewPizzaDTO(pizza)
}

func newPizzaRouter(service services.PizzaService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	c := NewPizzaController(service)
	router := gin.New()
	router.GET("/pizzas", c.GetPublicPizzas)
	router.GET("/pizzas/:id", c.GetPublicPizzaByID)
	router.GET("/admin/pizzas", c.GetAllPizzas)
	router.POST("/admin/pizzas", c.CreatePizza)
	router.PUT("/admin/pizzas/:id/toppings/:toppingId", c.AddTopping)
	router.PUT("/admin/pizzas/:id/sauce/:sauceId", c.UpdateSauce)
	router.DELETE("/admin/pizzas/:id", c.DeletePizza)
	return router
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func secretPizza() models.Pizza {
	secret := "extra garlic"
	return models.Pizza{ID: 1, Name: "Pepperoni Delight", Secret: &secret, Sauce: &models.Sauce{ID: 1, Name: "Tomato", IsVegan: true}}
}

func TestPublicPizzasHideSecret(t *testing.T) {
	router := newPizzaRouter(&stubPizzaService{pizzas: []models.Pizza{secretPizza()}})

	w := serve(router, http.MethodGet, "/pizzas", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
	assert.NotContains(t, w.Body.String(), "extra garlic")

	var views []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "Pepperoni Delight", views[0]["name"])
	assert.Equal(t, []interface{}{}, views[0]["toppings"])

	w = serve(router, http.MethodGet, "/pizzas/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "extra garlic")
}

func TestAdminListingIncludesSecret(t *testing.T) {
	router := newPizzaRouter(&stubPizzaService{pizzas: []models.Pizza{secretPizza()}})

	w := serve(router, http.MethodGet, "/admin/pizzas", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"secret":"extra garlic"`)
}

func TestGetPizzaByIDErrors(t *testing.T) {
	testCases := []struct {
		name         string
		path         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{name: "malformed id", path: "/pizzas/abc", expectedCode: http.StatusBadRequest, expectedBody: models.ErrBadRequest},
		{name: "zero id", path: "/pizzas/0", expectedCode: http.StatusBadRequest, expectedBody: models.ErrBadRequest},
		{name: "missing pizza", path: "/pizzas/99", expectedCode: http.StatusNotFound, expectedBody: models.ErrPizzaNotFound},
		{name: "store failure", path: "/pizzas/1", err: errors.New("disk on fire"), expectedCode: http.StatusInternalServerError, expectedBody: models.ErrInternalServer},
		{name: "ambiguous row", path: "/pizzas/1", err: fmt.Errorf("%w: 2 pizzas share id 1", services.ErrAmbiguousResult), expectedCode: http.StatusInternalServerError, expectedBody: models.ErrInternalServer},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			router := newPizzaRouter(&stubPizzaService{pizzas: []models.Pizza{secretPizza()}, err: tt.err})
			w := serve(router, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			assert.NotContains(t, w.Body.String(), "disk on fire")
		})
	}
}

func TestCreatePizza(t *testing.T) {
	router := newPizzaRouter(&stubPizzaService{})

	w := serve(router, http.MethodPost, "/admin/pizzas", `{"name":"Veggie","sauceId":1,"toppingIds":[5]}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/v1/public/pizzas/42", w.Header().Get("Location"))
	assert.Contains(t, w.Body.String(), `"id":42`)

	w = serve(router, http.MethodPost, "/admin/pizzas", `{"sauceId":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), models.ErrPizzaInvalidData)

	w = serve(router, http.MethodPost, "/admin/pizzas", `{"name":"`+strings.Repeat("x", 101)+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	router = newPizzaRouter(&stubPizzaService{err: fmt.Errorf("%w: name is blank", services.ErrValidation)})
	w = serve(router, http.MethodPost, "/admin/pizzas", `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), models.ErrValidationFailed)

	router = newPizzaRouter(&stubPizzaService{err: fmt.Errorf("create pizza: %w", gorm.ErrDuplicatedKey)})
	w = serve(router, http.MethodPost, "/admin/pizzas", `{"name":"Veggie"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRelationshipMutations(t *testing.T) {
	stub := &stubPizzaService{}
	router := newPizzaRouter(stub)

	w := serve(router, http.MethodPut, "/admin/pizzas/3/toppings/3", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = serve(router, http.MethodPut, "/admin/pizzas/2/sauce/2", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = serve(router, http.MethodPut, "/admin/pizzas/2/sauce/pesto", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"topping 3 3", "sauce 2 2"}, stub.calls)

	router = newPizzaRouter(&stubPizzaService{err: fmt.Errorf("%w: topping 99", services.ErrInvalidReference)})
	w = serve(router, http.MethodPut, "/admin/pizzas/3/toppings/99", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), models.ErrInvalidReference)

	router = newPizzaRouter(&stubPizzaService{err: fmt.Errorf("%w: pizza 99", services.ErrNotFound)})
	w = serve(router, http.MethodPut, "/admin/pizzas/99/sauce/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePizza(t *testing.T) {
	router := newPizzaRouter(&stubPizzaService{pizzas: []models.Pizza{secretPizza()}})

	w := serve(router, http.MethodDelete, "/admin/pizzas/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(router, http.MethodDelete, "/admin/pizzas/7", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), models.ErrPizzaNotFound)
}
