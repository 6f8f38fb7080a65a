package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Payment     PaymentConfig
	Admin       AdminConfig
	Orders      OrdersConfig
	Database    DatabaseConfig
	Catalog     CatalogConfig
	Shipping    ShippingConfig
	LogLevel    string
}

// PaymentConfig holds the external payment processor credentials and the
// public base URL used to build redirect and image URLs.
type PaymentConfig struct {
	SecretKey     string
	APIBase       string
	WebhookSecret string
	PublicBaseURL string
}

type AdminConfig struct {
	// Secret is a plaintext shared secret for development setups.
	Secret string
	// SecretHash is a bcrypt hash of the shared secret; takes precedence
	// over Secret and is required in production.
	SecretHash string
}

type OrdersConfig struct {
	// Backend selects the order store implementation: "file" or "postgres".
	Backend string
	// File is the JSON collection path used by the file backend.
	File string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CatalogConfig struct {
	ImagesDir string
	ClubsFile string
	IndexFile string
}

type ShippingConfig struct {
	FreeThreshold int64
	StandardCost  int64
	ExpressCost   int64
	// Countries the processor may offer as shipping destinations.
	Countries []string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PAYMENT_API_BASE", "https://api.payment.example.com")
	viper.SetDefault("ORDERS_BACKEND", "file")
	viper.SetDefault("ORDERS_FILE", "orders.json")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("IMAGES_DIR", "images")
	viper.SetDefault("CLUBS_FILE", "clubs.json")
	viper.SetDefault("INDEX_FILE", "index.html")
	viper.SetDefault("FREE_SHIPPING_THRESHOLD", "6000")
	viper.SetDefault("SHIPPING_COST_STANDARD", "499")
	viper.SetDefault("SHIPPING_COST_EXPRESS", "999")
	viper.SetDefault("SHIPPING_COUNTRIES", "FR,DE,BE,ES,IT")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Payment: PaymentConfig{
			SecretKey:     getEnvOrViper("PAYMENT_SECRET_KEY", ""),
			APIBase:       getEnvOrViper("PAYMENT_API_BASE", "https://api.payment.example.com"),
			WebhookSecret: getEnvOrViper("PAYMENT_WEBHOOK_SECRET", ""),
			PublicBaseURL: getEnvOrViper("PUBLIC_BASE_URL", "http://localhost:8080"),
		},
		Admin: AdminConfig{
			Secret:     getEnvOrViper("ADMIN_SECRET", ""),
			SecretHash: getEnvOrViper("ADMIN_SECRET_HASH", ""),
		},
		Orders: OrdersConfig{
			Backend: getEnvOrViper("ORDERS_BACKEND", "file"),
			File:    getEnvOrViper("ORDERS_FILE", "orders.json"),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Catalog: CatalogConfig{
			ImagesDir: getEnvOrViper("IMAGES_DIR", "images"),
			ClubsFile: getEnvOrViper("CLUBS_FILE", "clubs.json"),
			IndexFile: getEnvOrViper("INDEX_FILE", "index.html"),
		},
		Shipping: ShippingConfig{
			FreeThreshold: viper.GetInt64("FREE_SHIPPING_THRESHOLD"),
			StandardCost:  viper.GetInt64("SHIPPING_COST_STANDARD"),
			ExpressCost:   viper.GetInt64("SHIPPING_COST_EXPRESS"),
			Countries:     splitList(getEnvOrViper("SHIPPING_COUNTRIES", "FR,DE,BE,ES,IT")),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Orders.Backend != "file" && cfg.Orders.Backend != "postgres" {
		return nil, fmt.Errorf("ORDERS_BACKEND must be \"file\" or \"postgres\", got %q", cfg.Orders.Backend)
	}
	if cfg.Environment == "production" {
		if cfg.Payment.SecretKey == "" {
			return nil, fmt.Errorf("PAYMENT_SECRET_KEY is required in production")
		}
		if cfg.Payment.WebhookSecret == "" {
			return nil, fmt.Errorf("PAYMENT_WEBHOOK_SECRET is required in production")
		}
		if cfg.Admin.SecretHash == "" {
			return nil, fmt.Errorf("ADMIN_SECRET_HASH is required in production")
		}
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
