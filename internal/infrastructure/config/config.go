package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration, read once from the environment at boot.
// Table names are resolved by each repository on its own.
type Config struct {
	Port string

	AWS   AWSConfig
	Redis RedisConfig

	Pricebook PricebookConfig
	Estimates EstimateConfig
	Review    ReviewConfig
	Payments  PaymentConfig
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// DynamoDBEndpoint points the client at DynamoDB Local when set.
	DynamoDBEndpoint string
}

type RedisConfig struct {
	// URL is empty when the catalog cache is disabled.
	URL      string
	CacheTTL time.Duration
}

type PricebookConfig struct {
	MinimumCharge float64
	SeedFile      string
}

type EstimateConfig struct {
	FollowUpDays int
	ExpiryCron   string
}

type ReviewConfig struct {
	APIKey string
	Model  string
	URL    string
}

// Enabled reports whether the AI reviewer can be built.
func (c ReviewConfig) Enabled() bool { return c.APIKey != "" }

type PaymentConfig struct {
	MercadoPagoAccessToken string
	Mock                   bool
	SandboxPayerEmail      string
}

const (
	defaultPort              = "8080"
	defaultRegion            = "us-east-1"
	defaultCatalogCacheTTL   = 5 * time.Minute
	defaultMinimumCharge     = 150
	defaultFollowUpDays      = 7
	defaultExpiryCron        = "@hourly"
	defaultSandboxPayerEmail = "test_user_br@testuser.com"
)

// FromEnv reads Config from environment variables. Malformed numeric values
// fall back to their defaults and are logged.
func FromEnv() Config {
	return Config{
		Port: getenvDefault("PORT", defaultPort),
		AWS: AWSConfig{
			Region:           getenvDefault("AWS_REGION", defaultRegion),
			AccessKeyID:      getenvDefault("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey:  getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
			DynamoDBEndpoint: os.Getenv("DYNAMODB_ENDPOINT"),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			CacheTTL: getenvDuration("CATALOG_CACHE_TTL", defaultCatalogCacheTTL),
		},
		Pricebook: PricebookConfig{
			MinimumCharge: getenvFloat("PRICEBOOK_MINIMUM_CHARGE", defaultMinimumCharge),
			SeedFile:      os.Getenv("PRICEBOOK_SEED_FILE"),
		},
		Estimates: EstimateConfig{
			FollowUpDays: getenvInt("ESTIMATE_FOLLOWUP_DAYS", defaultFollowUpDays),
			ExpiryCron:   getenvDefault("ESTIMATE_EXPIRY_CRON", defaultExpiryCron),
		},
		Review: ReviewConfig{
			APIKey: os.Getenv("AI_REVIEW_API_KEY"),
			Model:  os.Getenv("AI_REVIEW_MODEL"),
			URL:    os.Getenv("AI_REVIEW_URL"),
		},
		Payments: PaymentConfig{
			MercadoPagoAccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
			Mock:                   paymentMockEnabled(),
			SandboxPayerEmail:      getenvDefault("MERCADOPAGO_TEST_PAYER_EMAIL", defaultSandboxPayerEmail),
		},
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] invalid int key=%s value=%q err=%v", key, v, err)
		return def
	}
	return n
}

func getenvFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("[config] invalid number key=%s value=%q err=%v", key, v, err)
		return def
	}
	return f
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[config] invalid duration key=%s value=%q err=%v", key, v, err)
		return def
	}
	return d
}

func paymentMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
