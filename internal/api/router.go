package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/footkitshop/storefront/internal/api/handlers"
	"github.com/footkitshop/storefront/internal/api/middleware"
	"github.com/footkitshop/storefront/internal/catalog"
	"github.com/footkitshop/storefront/internal/config"
	"github.com/footkitshop/storefront/internal/repository"
)

// Deps bundles the collaborators the router hands to its handlers
type Deps struct {
	Catalog  *catalog.Store
	Checkout handlers.CheckoutService
	Webhook  handlers.WebhookProcessor
	Orders   repository.OrderStore
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, deps Deps, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Storefront: static assets and catalog lookups
	router.StaticFile("/", cfg.Catalog.IndexFile)
	router.Static("/images", deps.Catalog.ImagesDir())
	router.GET("/list_images", handlers.HandleListImages(deps.Catalog, logger))
	router.GET("/club_map", handlers.HandleClubMap(deps.Catalog, logger))
	router.GET("/success", handlers.HandleCheckoutResult("Merci ! Votre paiement a bien été reçu."))
	router.GET("/cancel", handlers.HandleCheckoutResult("Paiement annulé."))

	// Checkout and payment-processor callback
	router.POST("/create-checkout-session", handlers.HandleCreateCheckoutSession(deps.Checkout, logger))
	router.POST("/webhook", handlers.HandleWebhook(deps.Webhook, logger))

	// Admin routes (shared-secret protected)
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.AdminAuth(cfg.Admin, logger))
	{
		adminRoutes.GET("/orders", handlers.HandleListOrders(deps.Orders, logger))
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}
