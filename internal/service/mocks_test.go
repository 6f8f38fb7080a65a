package service

import (
	"context"
	"sync"

	"github.com/footkitshop/storefront/internal/domain"
	"github.com/footkitshop/storefront/internal/payment"
)

// mockProcessor implements ProcessorClient for tests
type mockProcessor struct {
	configured bool

	createdParams *payment.CheckoutSessionParams
	session       *payment.CheckoutSession
	createErr     error

	lineItems    []payment.LineItem
	lineItemsErr error
	listedID     string
}

func (m *mockProcessor) Configured() bool {
	return m.configured
}

func (m *mockProcessor) CreateCheckoutSession(_ context.Context, params payment.CheckoutSessionParams) (*payment.CheckoutSession, error) {
	m.createdParams = &params
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.session, nil
}

func (m *mockProcessor) ListLineItems(_ context.Context, sessionID string) ([]payment.LineItem, error) {
	m.listedID = sessionID
	if m.lineItemsErr != nil {
		return nil, m.lineItemsErr
	}
	return m.lineItems, nil
}

// memStore is an in-memory OrderStore with the same dedupe contract as the
// real backends
type memStore struct {
	mu        sync.Mutex
	orders    []*domain.Order
	appendErr error
}

func (s *memStore) Append(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	for _, existing := range s.orders {
		if existing.SessionID == order.SessionID {
			return nil
		}
	}
	s.orders = append(s.orders, order)
	return nil
}

func (s *memStore) ListAll(_ context.Context) ([]*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Order, len(s.orders))
	for i, o := range s.orders {
		out[len(s.orders)-1-i] = o
	}
	return out, nil
}
