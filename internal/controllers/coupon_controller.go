package controllers

import (
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/services"
	"github.com/gin-gonic/gin"
)

// CouponController serves coupons from the promotions store
type CouponController struct {
	service services.CouponService
}

func NewCouponController(service services.CouponService) *CouponController {
	return &CouponController{service: service}
}

// GetAllCoupons godoc
// @Summary Get coupons
// @Tags coupons
// @Produce json
// @Param active query bool false "Only coupons that have not expired"
// @Success 200 {array} models.Coupon
// @Failure 400 {object} models.APIError
// @Router /api/v1/public/coupons [get]
func (cc *CouponController) GetAllCoupons(c *gin.Context) {
	activeOnly := false
	if raw := c.Query("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid active flag",
				map[string]interface{}{"active": raw}))
			return
		}
		activeOnly = parsed
	}

	coupons, err := cc.service.GetAllCoupons(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err, models.ErrCouponNotFound)
		return
	}
	c.JSON(http.StatusOK, coupons)
}

// GetCouponByID godoc
// @Summary Get coupon by ID
// @Tags coupons
// @Produce json
// @Param id path int true "Coupon ID"
// @Success 200 {object} models.Coupon
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/coupons/{id} [get]
func (cc *CouponController) GetCouponByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	coupon, err := cc.service.GetCouponByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, models.ErrCouponNotFound)
		return
	}
	c.JSON(http.StatusOK, coupon)
}
