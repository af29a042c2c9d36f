// Package router assembles the gin engine: middleware, route groups and
// swagger UI.
package router

import (
	"net/http"
	"time"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/auth"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/controllers"
	"github.com/franciscosanchezn/contoso-pizza-api/internal/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// ServiceName is reported by the health endpoint
const ServiceName = "contoso-pizza-api"

// Handlers groups everything the routes dispatch to
type Handlers struct {
	Pizzas  controllers.PizzaController
	Catalog *controllers.CatalogController
	Coupons *controllers.CouponController
	Auth    *controllers.AuthController
	Clients *controllers.ClientController
	OAuth   *auth.OAuthService
}

// Options tune the engine
type Options struct {
	JWTSecret   []byte
	CORSOrigins []string
	// Swagger mounts the documentation UI under /swagger
	Swagger bool
}

// New builds the engine serving every route of the API
func New(h Handlers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	if len(opts.CORSOrigins) > 0 {
		router.Use(middleware.CORS(opts.CORSOrigins))
	}

	router.GET("/health", healthCheckHandler)

	v1 := router.Group("/api/v1")
	{
		publicApi := v1.Group("/public")
		{
			publicApi.GET("/pizzas", h.Pizzas.GetPublicPizzas)
			publicApi.GET("/pizzas/:id", h.Pizzas.GetPublicPizzaByID)
			publicApi.GET("/toppings", h.Catalog.GetAllToppings)
			publicApi.GET("/toppings/:id", h.Catalog.GetToppingByID)
			publicApi.GET("/sauces", h.Catalog.GetAllSauces)
			publicApi.GET("/sauces/:id", h.Catalog.GetSauceByID)
			publicApi.GET("/coupons", h.Coupons.GetAllCoupons)
			publicApi.GET("/coupons/:id", h.Coupons.GetCouponByID)
		}

		authApi := v1.Group("/auth")
		{
			authApi.POST("/register", h.Auth.Register)
			authApi.POST("/login", h.Auth.Login)
		}

		if h.OAuth != nil {
			v1.POST("/oauth/token", h.OAuth.HandleToken)
		}

		protectedApi := v1.Group("/protected")
		protectedApi.Use(middleware.OAuth2Auth(opts.JWTSecret))
		{
			clientsApi := protectedApi.Group("/clients")
			{
				clientsApi.POST("", h.Clients.CreateClient)
				clientsApi.GET("", h.Clients.ListClients)
				clientsApi.GET("/:id", h.Clients.GetClient)
				clientsApi.DELETE("/:id", h.Clients.DeleteClient)
			}

			adminApi := protectedApi.Group("/admin")
			adminApi.Use(middleware.RequireRole(auth.RoleAdmin))
			{
				adminApi.GET("/pizzas", h.Pizzas.GetAllPizzas)
				adminApi.POST("/pizzas", h.Pizzas.CreatePizza)
				adminApi.PUT("/pizzas/:id/toppings/:toppingId", h.Pizzas.AddTopping)
				adminApi.PUT("/pizzas/:id/sauce/:sauceId", h.Pizzas.UpdateSauce)
				adminApi.DELETE("/pizzas/:id", h.Pizzas.DeletePizza)
			}
		}
	}

	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	return router
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   ServiceName,
	})
}
