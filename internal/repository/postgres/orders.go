package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/footkitshop/storefront/internal/domain"
	"github.com/footkitshop/storefront/pkg/errors"
)

type orderStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderStore creates a Postgres-backed order store and ensures its schema
func NewOrderStore(ctx context.Context, db *sql.DB, logger *zap.Logger) (*orderStore, error) {
	s := &orderStore{
		db:     db,
		logger: logger,
	}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, &errors.ErrStorage{Op: "init", Err: err}
	}
	return s, nil
}

func (s *orderStore) ensureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS orders (
			session_id TEXT PRIMARY KEY,
			reference  TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			email      TEXT NOT NULL DEFAULT '',
			total      BIGINT NOT NULL,
			currency   TEXT NOT NULL,
			shipping   JSONB NOT NULL,
			items      JSONB NOT NULL
		)
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *orderStore) Append(ctx context.Context, order *domain.Order) error {
	shipping, err := json.Marshal(order.Shipping)
	if err != nil {
		return &errors.ErrStorage{Op: "append", Err: err}
	}
	items, err := json.Marshal(order.Items)
	if err != nil {
		return &errors.ErrStorage{Op: "append", Err: err}
	}

	// The session id is the primary key; ON CONFLICT DO NOTHING makes
	// redelivered events a no-op without a separate existence check.
	query := `
		INSERT INTO orders (session_id, reference, created_at, email, total, currency, shipping, items)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (session_id) DO NOTHING
	`

	result, err := s.db.ExecContext(ctx, query,
		order.SessionID,
		order.Reference,
		order.CreatedAt,
		order.Email,
		order.Total,
		order.Currency,
		shipping,
		items,
	)
	if err != nil {
		s.logger.Error("Failed to append order", zap.Error(err), zap.String("session_id", order.SessionID))
		return &errors.ErrStorage{Op: "append", Err: err}
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		s.logger.Info("Order already recorded, skipping duplicate",
			zap.String("session_id", order.SessionID),
		)
	}

	return nil
}

func (s *orderStore) ListAll(ctx context.Context) ([]*domain.Order, error) {
	query := `
		SELECT session_id, reference, created_at, email, total, currency, shipping, items
		FROM orders
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, &errors.ErrStorage{Op: "list", Err: err}
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		var order domain.Order
		var shipping, items []byte

		err := rows.Scan(
			&order.SessionID,
			&order.Reference,
			&order.CreatedAt,
			&order.Email,
			&order.Total,
			&order.Currency,
			&shipping,
			&items,
		)
		if err != nil {
			return nil, &errors.ErrStorage{Op: "list", Err: err}
		}

		if err := json.Unmarshal(shipping, &order.Shipping); err != nil {
			return nil, &errors.ErrStorage{Op: "list", Err: err}
		}
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, &errors.ErrStorage{Op: "list", Err: err}
		}

		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, &errors.ErrStorage{Op: "list", Err: err}
	}

	return orders, nil
}
