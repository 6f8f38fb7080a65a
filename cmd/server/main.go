package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/footkitshop/storefront/internal/api"
	"github.com/footkitshop/storefront/internal/catalog"
	"github.com/footkitshop/storefront/internal/config"
	"github.com/footkitshop/storefront/internal/payment"
	"github.com/footkitshop/storefront/internal/pricing"
	"github.com/footkitshop/storefront/internal/repository"
	filestore "github.com/footkitshop/storefront/internal/repository/file"
	pgstore "github.com/footkitshop/storefront/internal/repository/postgres"
	"github.com/footkitshop/storefront/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	// Order store
	orders, closeStore, err := newOrderStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize order store: %w", err)
	}
	defer closeStore()

	// Catalog
	catalogStore, err := catalog.NewStore(cfg.Catalog, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}

	// Payment processor client and domain services
	processor := payment.NewClient(cfg.Payment, logger)
	if !processor.Configured() {
		logger.Warn("No payment processor credential configured: checkout requests will be rejected")
	}

	pricer := pricing.NewEngine(pricing.Config{
		FreeShippingThreshold: cfg.Shipping.FreeThreshold,
		StandardCost:          cfg.Shipping.StandardCost,
		ExpressCost:           cfg.Shipping.ExpressCost,
	})

	checkoutSvc := service.NewCheckoutService(processor, pricer, cfg.Payment, cfg.Shipping.Countries, logger)
	webhookSvc := service.NewWebhookService(processor, orders, cfg.Payment.WebhookSecret, logger)

	router := api.NewRouter(cfg, api.Deps{
		Catalog:  catalogStore,
		Checkout: checkoutSvc,
		Webhook:  webhookSvc,
		Orders:   orders,
	}, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("orders_backend", cfg.Orders.Backend),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func newOrderStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.OrderStore, func(), error) {
	switch cfg.Orders.Backend {
	case "postgres":
		db, err := pgstore.NewConnection(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		store, err := pgstore.NewOrderStore(ctx, db, logger)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil
	default:
		return filestore.NewOrderStore(cfg.Orders.File, logger), func() {}, nil
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zapCfg.Build()
}
