package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/footkitshop/storefront/internal/config"
	"github.com/footkitshop/storefront/internal/domain"
	filestore "github.com/footkitshop/storefront/internal/repository/file"
	pgstore "github.com/footkitshop/storefront/internal/repository/postgres"
)

// Operator tool: print the recorded orders from the configured store,
// optionally filtered to one session id.
func main() {
	var targetSession string
	if len(os.Args) > 1 {
		targetSession = os.Args[1]
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	ctx := context.Background()

	var orders []*domain.Order
	switch cfg.Orders.Backend {
	case "postgres":
		db, err := pgstore.NewConnection(cfg.Database)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		store, err := pgstore.NewOrderStore(ctx, db, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open order store: %v\n", err)
			os.Exit(1)
		}
		orders, err = store.ListAll(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list orders: %v\n", err)
			os.Exit(1)
		}
	default:
		store := filestore.NewOrderStore(cfg.Orders.File, logger)
		orders, err = store.ListAll(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list orders: %v\n", err)
			os.Exit(1)
		}
	}

	found := 0
	for _, order := range orders {
		if targetSession != "" && order.SessionID != targetSession {
			continue
		}
		found++

		fmt.Printf("%s  %s  %d %s  %s\n",
			order.CreatedAt.Format("2006-01-02 15:04:05"),
			order.Reference,
			order.Total,
			order.Currency,
			order.Email,
		)
		fmt.Printf("  session: %s\n", order.SessionID)
		fmt.Printf("  ship to: %s, %s, %s %s, %s (%s)\n",
			order.Shipping.Name,
			order.Shipping.Address,
			order.Shipping.PostalCode,
			order.Shipping.City,
			order.Shipping.Country,
			order.Shipping.Method,
		)
		for _, item := range order.Items {
			fmt.Printf("  %d x %s  %d\n", item.Quantity, item.Description, item.Amount)
		}
	}

	if targetSession != "" && found == 0 {
		fmt.Printf("No order recorded for session %q\n", targetSession)
		os.Exit(1)
	}
	if targetSession == "" {
		fmt.Printf("\n%d order(s) recorded\n", found)
	}
}
