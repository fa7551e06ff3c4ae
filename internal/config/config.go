package config

import (
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort           string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64

	// Catalog backend: sqlite when CatalogDBPath is set, seeded memory otherwise.
	CatalogDBPath  string
	MigrationsPath string

	// Cart backend: "memory" or "redis".
	CartBackend string
	RedisAddr   string

	// Payment provider
	BakongBaseURL   string
	BakongToken     string
	MerchantAccount string
	MerchantName    string
	MerchantCity    string
	MerchantPhone   string
	StoreLabel      string
	TerminalLabel   string

	// Currency policy: totals are displayed in the base currency and
	// settled in the settlement currency at a fixed configured rate.
	BaseCurrency       string
	SettlementCurrency string
	SettlementRate     decimal.Decimal

	// Notifications
	TelegramToken  string
	TelegramChatID string

	// Order events
	KafkaBrokers []string

	// Artifacts
	QRDir      string
	InvoiceDir string

	// Unpaid qr orders are dropped after this TTL.
	OrderTTL time.Duration
}

func Load() *Config {
	return &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		RequestTimeout:     getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxRequestBodySize: 1 << 20, // 1MB

		CatalogDBPath:  getEnv("CATALOG_DB_PATH", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),

		CartBackend: getEnv("CART_BACKEND", "memory"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),

		BakongBaseURL:   getEnv("BAKONG_BASE_URL", "https://api-bakong.nbc.gov.kh"),
		BakongToken:     getEnv("BAKONG_TOKEN", ""),
		MerchantAccount: getEnv("MERCHANT_BANK_ACCOUNT", ""),
		MerchantName:    getEnv("MERCHANT_NAME", "HAK VENLONG"),
		MerchantCity:    getEnv("MERCHANT_CITY", "Phnom Penh"),
		MerchantPhone:   getEnv("MERCHANT_PHONE", ""),
		StoreLabel:      getEnv("STORE_LABEL", "SMOS-Store"),
		TerminalLabel:   getEnv("TERMINAL_LABEL", "Cashier-01"),

		BaseCurrency:       getEnv("BASE_CURRENCY", "USD"),
		SettlementCurrency: getEnv("SETTLEMENT_CURRENCY", "KHR"),
		SettlementRate:     getEnvDecimal("SETTLEMENT_RATE", "4060"),

		TelegramToken:  getEnv("TELEGRAM_TOKEN", ""),
		TelegramChatID: getEnv("TELEGRAM_CHAT_ID", ""),

		KafkaBrokers: getEnvList("KAFKA_BROKERS"),

		QRDir:      getEnv("QR_DIR", "static/qr_codes"),
		InvoiceDir: getEnv("INVOICE_DIR", "invoices"),

		OrderTTL: getEnvDuration("ORDER_TTL", time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvDecimal(key, defaultValue string) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	d, _ := decimal.NewFromString(defaultValue)
	return d
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
