package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/services"
	"github.com/gin-gonic/gin"
)

// PizzaController handles HTTP requests related to pizzas
type PizzaController interface {
	// GetPublicPizzas lists pizzas without their secrets
	GetPublicPizzas(c *gin.Context)
	// GetPublicPizzaByID retrieves a pizza without its secret
	GetPublicPizzaByID(c *gin.Context)
	// GetAllPizzas lists pizzas including their secrets
	GetAllPizzas(c *gin.Context)
	// CreatePizza creates a new pizza
	CreatePizza(c *gin.Context)
	// AddTopping attaches a topping to a pizza
	AddTopping(c *gin.Context)
	// UpdateSauce replaces the sauce of a pizza
	UpdateSauce(c *gin.Context)
	// DeletePizza deletes a pizza by its ID
	DeletePizza(c *gin.Context)
}

type controller struct {
	service services.PizzaService
}

// NewPizzaController creates a new instance of PizzaController
func NewPizzaController(service services.PizzaService) PizzaController {
	return &controller{service: service}
}

// GetPublicPizzas godoc
// @Summary Get all pizzas
// @Description Get every pizza with its sauce and toppings
// @Tags pizzas
// @Produce json
// @Success 200 {array} models.PizzaDTO
// @Failure 500 {object} models.APIError
// @Router /api/v1/public/pizzas [get]
func (c *controller) GetPublicPizzas(ctx *gin.Context) {
	pizzas, err := c.service.GetAllPizzas(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err, models.ErrPizzaNotFound)
		return
	}

	views := make([]models.PizzaDTO, 0, len(pizzas))
	for _, pizza := range pizzas {
		views = append(views, c.service.ToPublicView(pizza))
	}
	ctx.JSON(http.StatusOK, views)
}

// GetPublicPizzaByID godoc
// @Summary Get pizza by ID
// @Description Get a single pizza by its ID
// @Tags pizzas
// @Produce json
// @Param id path int true "Pizza ID"
// @Success 200 {object} models.PizzaDTO
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/pizzas/{id} [get]
func (c *controller) GetPublicPizzaByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	pizza, err := c.service.GetPizzaByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, models.ErrPizzaNotFound)
		return
	}
	ctx.JSON(http.StatusOK, c.service.ToPublicView(pizza))
}

// GetAllPizzas godoc
// @Summary Get all pizzas with secrets
// @Description Admin listing that includes each pizza's secret
// @Tags admin
// @Produce json
// @Success 200 {array} models.Pizza
// @Failure 401 {object} models.OAuth2Error
// @Failure 403 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/pizzas [get]
func (c *controller) GetAllPizzas(ctx *gin.Context) {
	pizzas, err := c.service.GetAllPizzas(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err, models.ErrPizzaNotFound)
		return
	}
	ctx.JSON(http.StatusOK, pizzas)
}

// CreatePizza godoc
// @Summary Create a new pizza
// @Description Create a pizza from a name, an optional secret, a sauce id and topping ids
// @Tags admin
// @Accept json
// @Produce json
// @Param pizza body models.PizzaCreateInput true "Pizza to create"
// @Success 201 {object} models.Pizza
// @Failure 400 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/pizzas [post]
func (c *controller) CreatePizza(ctx *gin.Context) {
	var input models.PizzaCreateInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrPizzaInvalidData, "Invalid request body",
			map[string]interface{}{"error": err.Error()}))
		return
	}

	pizza, err := c.service.CreatePizza(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err, models.ErrPizzaNotFound)
		return
	}
	ctx.Header("Location", "/api/v1/public/pizzas/"+uintString(pizza.ID))
	ctx.JSON(http.StatusCreated, pizza)
}

// AddTopping godoc
// @Summary Add a topping to a pizza
// @Tags admin
// @Param id path int true "Pizza ID"
// @Param toppingId path int true "Topping ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/pizzas/{id}/toppings/{toppingId} [put]
func (c *controller) AddTopping(ctx *gin.Context) {
	pizzaID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	toppingID, ok := parseID(ctx, "toppingId")
	if !ok {
		return
	}

	if err := c.service.AddTopping(ctx.Request.Context(), pizzaID, toppingID); err != nil {
		respondError(ctx, err, models.ErrPizzaNotFound)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// UpdateSauce godoc
// @Summary Replace the sauce of a pizza
// @Tags admin
// @Param id path int true "Pizza ID"
// @Param sauceId path int true "Sauce ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/pizzas/{id}/sauce/{sauceId} [put]
func (c *controller) UpdateSauce(ctx *gin.Context) {
	pizzaID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	sauceID, ok := parseID(ctx, "sauceId")
	if !ok {
		return
	}

	if err := c.service.UpdateSauce(ctx.Request.Context(), pizzaID, sauceID); err != nil {
		respondError(ctx, err, models.ErrPizzaNotFound)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeletePizza godoc
// @Summary Delete a pizza
// @Description Delete a pizza by its ID. Its sauce and toppings are kept.
// @Tags admin
// @Param id path int true "Pizza ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/pizzas/{id} [delete]
func (c *controller) DeletePizza(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	deleted, err := c.service.DeletePizza(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, models.ErrPizzaNotFound)
		return
	}
	if !deleted {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrPizzaNotFound, "Pizza not found",
			map[string]interface{}{"id": id}))
		return
	}
	ctx.Status(http.StatusNoContent)
}
