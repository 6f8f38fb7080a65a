package pricing

import (
	"github.com/footkitshop/storefront/internal/domain"
	"github.com/footkitshop/storefront/pkg/errors"
)

// Config holds the shipping cost table. All amounts are in minor currency
// units.
type Config struct {
	FreeShippingThreshold int64
	StandardCost          int64
	ExpressCost           int64
}

// DefaultConfig returns the storefront's stock shipping table
func DefaultConfig() Config {
	return Config{
		FreeShippingThreshold: 6000,
		StandardCost:          499,
		ExpressCost:           999,
	}
}

// Engine computes cart totals in integer minor units
type Engine struct {
	cfg Config
}

// NewEngine creates a pricing engine with the given shipping cost table
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Subtotal computes the sum of unit_price * quantity over all items.
// Rejects negative prices and non-positive quantities.
func (e *Engine) Subtotal(items []domain.CartItem) (int64, error) {
	var subtotal int64
	for _, item := range items {
		if item.UnitPrice < 0 {
			return 0, &errors.ErrInvalidItem{ItemID: item.ID, Reason: "unit price must not be negative"}
		}
		if item.Quantity <= 0 {
			return 0, &errors.ErrInvalidItem{ItemID: item.ID, Reason: "quantity must be greater than 0"}
		}
		subtotal += item.UnitPrice * int64(item.Quantity)
	}
	return subtotal, nil
}

// ShippingCost returns the shipping charge for a given subtotal and method.
// Orders at or above the free-shipping threshold ship free regardless of
// method; unknown methods price as standard.
func (e *Engine) ShippingCost(subtotal int64, method domain.ShippingMethod) int64 {
	if subtotal >= e.cfg.FreeShippingThreshold {
		return 0
	}
	if method == domain.ShippingMethodExpress {
		return e.cfg.ExpressCost
	}
	return e.cfg.StandardCost
}
