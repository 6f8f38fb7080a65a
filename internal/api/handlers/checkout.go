package handlers

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/footkitshop/storefront/internal/domain"
	"github.com/footkitshop/storefront/internal/service"
	"github.com/footkitshop/storefront/pkg/errors"
)

// CheckoutService turns a cart into a hosted payment redirect URL
type CheckoutService interface {
	CreateSession(ctx context.Context, items []domain.CartItem, shipping domain.ShippingInfo) (string, error)
}

// HandleCreateCheckoutSession handles POST /create-checkout-session
func HandleCreateCheckoutSession(svc CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		items, shipping := req.ToDomain()

		url, err := svc.CreateSession(c.Request.Context(), items, shipping)
		if err != nil {
			status, msg := checkoutErrorStatus(err)
			if status >= http.StatusInternalServerError {
				logger.Error("Failed to create checkout session", zap.Error(err))
			}
			c.JSON(status, gin.H{"error": msg})
			return
		}

		c.JSON(http.StatusOK, service.CheckoutResponse{URL: url})
	}
}

func checkoutErrorStatus(err error) (int, string) {
	var invErr *errors.ErrInvalidItem
	if stderrors.As(err, &invErr) {
		return http.StatusBadRequest, invErr.Error()
	}

	var cfgErr *errors.ErrPaymentNotConfigured
	if stderrors.As(err, &cfgErr) {
		return http.StatusInternalServerError, cfgErr.Error()
	}

	var provErr *errors.ErrPaymentProvider
	if stderrors.As(err, &provErr) {
		return http.StatusBadGateway, provErr.Message
	}

	return http.StatusInternalServerError, "internal error"
}
