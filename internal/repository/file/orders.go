// Package file implements the order store as a single JSON collection on
// disk. One mutex serializes the read-check-write cycle; writes go through
// a temp file and rename so a crash never leaves a half-written collection.
package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/footkitshop/storefront/internal/domain"
	"github.com/footkitshop/storefront/pkg/errors"
)

type orderStore struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

// NewOrderStore creates a file-backed order store at the given path
func NewOrderStore(path string, logger *zap.Logger) *orderStore {
	return &orderStore{
		path:   path,
		logger: logger,
	}
}

func (s *orderStore) Append(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		return &errors.ErrStorage{Op: "append", Err: err}
	}

	// Dedupe by session identifier: the processor redelivers events.
	for _, existing := range orders {
		if existing.SessionID == order.SessionID {
			s.logger.Info("Order already recorded, skipping duplicate",
				zap.String("session_id", order.SessionID),
			)
			return nil
		}
	}

	orders = append(orders, order)
	if err := s.save(orders); err != nil {
		return &errors.ErrStorage{Op: "append", Err: err}
	}

	return nil
}

func (s *orderStore) ListAll(_ context.Context) ([]*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		return nil, &errors.ErrStorage{Op: "list", Err: err}
	}

	// Most recent first. The file holds insertion order, so ties keep a
	// stable reverse-insertion ordering.
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders, nil
}

// load reads the whole collection. A missing file is an empty collection,
// not an error; a corrupt file is an error, never silently discarded data.
func (s *orderStore) load() ([]*domain.Order, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var orders []*domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderStore) save(orders []*domain.Order) error {
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".orders-*.json")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
