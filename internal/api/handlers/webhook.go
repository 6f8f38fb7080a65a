package handlers

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/footkitshop/storefront/internal/payment"
	"github.com/footkitshop/storefront/pkg/errors"
)

// WebhookProcessor handles one raw webhook delivery
type WebhookProcessor interface {
	HandleEvent(ctx context.Context, payload []byte, sigHeader string) error
}

// HandleWebhook handles POST /webhook. Responses are empty-body: 200 when
// the event was handled or deliberately discarded, 400 on signature or
// parse failure, 500 when enrichment or storage failed so the processor's
// redelivery retries the event.
func HandleWebhook(svc WebhookProcessor, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		sigHeader := c.GetHeader(payment.SignatureHeader)

		if err := svc.HandleEvent(c.Request.Context(), payload, sigHeader); err != nil {
			var storErr *errors.ErrStorage
			var provErr *errors.ErrPaymentProvider
			if stderrors.As(err, &storErr) || stderrors.As(err, &provErr) {
				// Transient: answer 5xx so the processor redelivers.
				logger.Error("Webhook processing failed", zap.Error(err))
				c.Status(http.StatusInternalServerError)
				return
			}

			logger.Warn("Webhook rejected", zap.Error(err))
			c.Status(http.StatusBadRequest)
			return
		}

		c.Status(http.StatusOK)
	}
}
