package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/database"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// respondError writes the APIError matching err. notFoundCode names the
// missing resource when err wraps services.ErrNotFound.
func respondError(ctx *gin.Context, err error, notFoundCode string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(notFoundCode, err.Error()))
	case errors.Is(err, services.ErrInvalidReference):
		ctx.JSON(http.StatusUnprocessableEntity, models.NewAPIError(models.ErrInvalidReference, err.Error()))
	case database.IsUniqueViolation(err):
		ctx.JSON(http.StatusConflict, models.NewAPIError(models.ErrConflict, "Resource already exists"))
	default:
		_ = ctx.Error(err)
		log.WithError(err).WithField("path", ctx.FullPath()).Error("Request failed")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Internal server error"))
	}
}

// parseID reads a positive numeric path parameter, answering 400 when it is malformed
func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid "+name+" format",
			map[string]interface{}{name: ctx.Param(name)}))
		return 0, false
	}
	return uint(id), true
}
