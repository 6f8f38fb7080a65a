package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/footkitshop/storefront/internal/catalog"
)

// HandleListImages handles GET /list_images
func HandleListImages(store *catalog.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		files, err := store.ListImages()
		if err != nil {
			logger.Error("Failed to list images", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, files)
	}
}

// HandleClubMap handles GET /club_map
func HandleClubMap(store *catalog.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clubs, err := store.ClubMap()
		if err != nil {
			// Degraded but serviceable: the fallback table is still returned.
			logger.Warn("Serving fallback club map", zap.Error(err))
		}
		c.JSON(http.StatusOK, clubs)
	}
}

// HandleCheckoutResult serves the tiny post-payment landing pages the
// processor redirects the customer back to.
func HandleCheckoutResult(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, "<!DOCTYPE html><html><body><p>%s</p><p><a href=\"/\">Back to shop</a></p></body></html>", message)
	}
}
