package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/footkitshop/storefront/internal/domain"
	"github.com/footkitshop/storefront/internal/payment"
	"github.com/footkitshop/storefront/internal/repository"
)

type webhookService struct {
	payments      ProcessorClient
	orders        repository.OrderStore
	webhookSecret string
	logger        *zap.Logger
}

// NewWebhookService creates the service that turns verified processor
// events into recorded orders
func NewWebhookService(
	payments ProcessorClient,
	orders repository.OrderStore,
	webhookSecret string,
	logger *zap.Logger,
) *webhookService {
	if webhookSecret == "" {
		logger.Warn("Webhook signature verification is DISABLED: no signing secret configured. " +
			"Do not run this configuration in production.")
	}
	return &webhookService{
		payments:      payments,
		orders:        orders,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// HandleEvent processes one webhook delivery: verify, filter, enrich,
// record. A nil return means the event was fully handled (including the
// discard path) and must be acknowledged so the processor stops
// redelivering it. Errors from enrichment or storage are returned so the
// processor's own retry schedule redelivers the event later.
func (s *webhookService) HandleEvent(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := payment.ConstructEvent(payload, sigHeader, s.webhookSecret)
	if err != nil {
		return err
	}

	if event.Type != payment.EventCheckoutCompleted {
		s.logger.Debug("Ignoring webhook event",
			zap.String("event_id", event.ID),
			zap.String("type", event.Type),
		)
		return nil
	}

	session, err := event.Session()
	if err != nil {
		return err
	}

	// The completion event carries no itemization; fetch it from the
	// processor before recording.
	lineItems, err := s.payments.ListLineItems(ctx, session.ID)
	if err != nil {
		s.logger.Error("Failed to fetch line items for completed session",
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
		return err
	}

	order := buildOrder(session, lineItems)
	if err := s.orders.Append(ctx, order); err != nil {
		// An order the processor confirmed but we failed to record is a
		// data-loss risk; surface it so the redelivery retries the append.
		s.logger.Error("Failed to record order",
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("Order recorded",
		zap.String("session_id", order.SessionID),
		zap.String("reference", order.Reference),
		zap.Int64("total", order.Total),
		zap.String("currency", order.Currency),
	)

	return nil
}

func buildOrder(session *payment.CheckoutSession, lineItems []payment.LineItem) *domain.Order {
	createdAt := time.Now().UTC()
	if session.Created > 0 {
		createdAt = time.Unix(session.Created, 0).UTC()
	}

	items := make([]domain.OrderItem, len(lineItems))
	for i, li := range lineItems {
		items[i] = domain.OrderItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			Amount:      li.Amount,
		}
	}

	return &domain.Order{
		SessionID: session.ID,
		Reference: uuid.New().String(),
		CreatedAt: createdAt,
		Email:     session.PayerEmail(),
		Total:     session.AmountTotal,
		Currency:  session.Currency,
		Shipping:  shippingFromMetadata(session.Metadata),
		Items:     items,
	}
}
