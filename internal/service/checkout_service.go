package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/footkitshop/storefront/internal/config"
	"github.com/footkitshop/storefront/internal/domain"
	"github.com/footkitshop/storefront/internal/payment"
	"github.com/footkitshop/storefront/internal/pricing"
	"github.com/footkitshop/storefront/pkg/errors"
)

// ProcessorClient is the slice of the payment client the services need
type ProcessorClient interface {
	Configured() bool
	CreateCheckoutSession(ctx context.Context, params payment.CheckoutSessionParams) (*payment.CheckoutSession, error)
	ListLineItems(ctx context.Context, sessionID string) ([]payment.LineItem, error)
}

// Currency all sessions are priced in
const currency = "eur"

// Metadata keys carrying the shipping snapshot through the processor. The
// session metadata is the only channel that survives to the completion
// webhook, so the whole snapshot rides in it.
const (
	metaName       = "shipping_name"
	metaAddress    = "shipping_address"
	metaCity       = "shipping_city"
	metaPostalCode = "shipping_postal_code"
	metaCountry    = "shipping_country"
	metaEmail      = "shipping_email"
	metaMethod     = "shipping_method"
)

type checkoutService struct {
	payments ProcessorClient
	pricer   *pricing.Engine
	cfg      config.PaymentConfig
	// Countries the processor may offer as shipping destinations.
	countries []string
	logger    *zap.Logger
}

// NewCheckoutService creates the service that turns carts into hosted
// payment sessions
func NewCheckoutService(
	payments ProcessorClient,
	pricer *pricing.Engine,
	cfg config.PaymentConfig,
	countries []string,
	logger *zap.Logger,
) *checkoutService {
	return &checkoutService{
		payments:  payments,
		pricer:    pricer,
		cfg:       cfg,
		countries: countries,
		logger:    logger,
	}
}

// CreateSession prices the cart, builds the processor line items, and opens
// a hosted checkout session. Returns the redirect URL the customer is sent
// to.
func (s *checkoutService) CreateSession(ctx context.Context, items []domain.CartItem, shipping domain.ShippingInfo) (string, error) {
	if !s.payments.Configured() {
		return "", &errors.ErrPaymentNotConfigured{}
	}

	for _, item := range items {
		if item.Name == "" {
			return "", &errors.ErrInvalidItem{ItemID: item.ID, Reason: "name is required"}
		}
	}

	subtotal, err := s.pricer.Subtotal(items)
	if err != nil {
		return "", err
	}
	shippingCost := s.pricer.ShippingCost(subtotal, domain.ShippingMethod(shipping.Method))

	lineItems := make([]payment.LineItemParams, 0, len(items)+1)
	for _, item := range items {
		li := payment.LineItemParams{
			Name:       item.Name,
			UnitAmount: item.UnitPrice,
			Quantity:   item.Quantity,
		}
		if item.Image != "" {
			// The processor fetches images itself, so relative storefront
			// paths must become absolute URLs.
			li.Images = []string{s.absoluteImageURL(item.Image)}
		}
		lineItems = append(lineItems, li)
	}

	if shippingCost > 0 {
		lineItems = append(lineItems, payment.LineItemParams{
			Name:       "Shipping",
			UnitAmount: shippingCost,
			Quantity:   1,
		})
	}

	base := strings.TrimSuffix(s.cfg.PublicBaseURL, "/")
	params := payment.CheckoutSessionParams{
		LineItems:         lineItems,
		Currency:          currency,
		SuccessURL:        base + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:         base + "/cancel",
		CustomerEmail:     shipping.Email,
		ShippingCountries: s.countries,
		Metadata:          shippingMetadata(shipping),
	}

	session, err := s.payments.CreateCheckoutSession(ctx, params)
	if err != nil {
		return "", err
	}

	s.logger.Info("Checkout session created",
		zap.String("session_id", session.ID),
		zap.Int64("subtotal", subtotal),
		zap.Int64("shipping_cost", shippingCost),
		zap.Int("line_items", len(lineItems)),
	)

	return session.URL, nil
}

// absoluteImageURL resolves a storefront image reference against the public
// base URL. Already-absolute references pass through untouched.
func (s *checkoutService) absoluteImageURL(image string) string {
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	base := strings.TrimSuffix(s.cfg.PublicBaseURL, "/")
	return base + "/" + strings.TrimPrefix(image, "/")
}

func shippingMetadata(shipping domain.ShippingInfo) map[string]string {
	return map[string]string{
		metaName:       shipping.Name,
		metaAddress:    shipping.Address,
		metaCity:       shipping.City,
		metaPostalCode: shipping.PostalCode,
		metaCountry:    shipping.Country,
		metaEmail:      shipping.Email,
		metaMethod:     shipping.Method,
	}
}

// shippingFromMetadata rebuilds the snapshot recorded at session creation.
// Missing keys default to empty; the webhook is not the place to reject an
// order the customer already paid for.
func shippingFromMetadata(metadata map[string]string) domain.ShippingInfo {
	return domain.ShippingInfo{
		Name:       metadata[metaName],
		Address:    metadata[metaAddress],
		City:       metadata[metaCity],
		PostalCode: metadata[metaPostalCode],
		Country:    metadata[metaCountry],
		Email:      metadata[metaEmail],
		Method:     metadata[metaMethod],
	}
}
