package repository

import (
	"context"

	"github.com/footkitshop/storefront/internal/domain"
)

// OrderStore is the append-only collection of recorded orders.
//
// Append must be atomic with respect to concurrent appends and must dedupe
// by session identifier: redelivered webhook events for an already-recorded
// session are a no-op. There are no update or delete operations.
type OrderStore interface {
	Append(ctx context.Context, order *domain.Order) error
	// ListAll returns every recorded order, most recent first.
	ListAll(ctx context.Context) ([]*domain.Order, error)
}
