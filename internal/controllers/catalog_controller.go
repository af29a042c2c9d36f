package controllers

import (
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/services"
	"github.com/gin-gonic/gin"
)

// CatalogController serves the shared toppings and sauces
type CatalogController struct {
	service services.CatalogService
}

func NewCatalogController(service services.CatalogService) *CatalogController {
	return &CatalogController{service: service}
}

// GetAllToppings godoc
// @Summary Get all toppings
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Topping
// @Router /api/v1/public/toppings [get]
func (cc *CatalogController) GetAllToppings(c *gin.Context) {
	toppings, err := cc.service.GetAllToppings(c.Request.Context())
	if err != nil {
		respondError(c, err, models.ErrToppingNotFound)
		return
	}
	c.JSON(http.StatusOK, toppings)
}

// GetToppingByID godoc
// @Summary Get topping by ID
// @Tags catalog
// @Produce json
// @Param id path int true "Topping ID"
// @Success 200 {object} models.Topping
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/toppings/{id} [get]
func (cc *CatalogController) GetToppingByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	topping, err := cc.service.GetToppingByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, models.ErrToppingNotFound)
		return
	}
	c.JSON(http.StatusOK, topping)
}

// GetAllSauces godoc
// @Summary Get all sauces
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Sauce
// @Router /api/v1/public/sauces [get]
func (cc *CatalogController) GetAllSauces(c *gin.Context) {
	sauces, err := cc.service.GetAllSauces(c.Request.Context())
	if err != nil {
		respondError(c, err, models.ErrSauceNotFound)
		return
	}
	c.JSON(http.StatusOK, sauces)
}

// GetSauceByID godoc
// @Summary Get sauce by ID
// @Tags catalog
// @Produce json
// @Param id path int true "Sauce ID"
// @Success 200 {object} models.Sauce
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/sauces/{id} [get]
func (cc *CatalogController) GetSauceByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	sauce, err := cc.service.GetSauceByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, models.ErrSauceNotFound)
		return
	}
	c.JSON(http.StatusOK, sauce)
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
