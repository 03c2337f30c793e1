package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string

	// Identity provider used for the session exchange.
	IdentityURL string

	// Image generation provider.
	ImageGenURL   string
	ImageGenKey   string
	ImageGenModel string

	// Payment processor. With no StripeKey the billing service runs in
	// immediate-grant mode. With no StripeWebhookSecret the webhook
	// accepts unsigned payloads (intended for the same keyless setups).
	StripeKey           string
	StripeWebhookSecret string

	// FrontendURL is used for checkout success/cancel redirects.
	FrontendURL string

	// ImagesDir, when set, switches artifact handling to durable storage:
	// generated images are written here and served under /static/images.
	ImagesDir string

	CORSOrigins string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		MySQLDSN:            getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/quickthumb?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		RedisPass:           os.Getenv("REDIS_PASSWORD"),
		IdentityURL:         getEnv("IDENTITY_PROVIDER_URL", "https://demobackend.emergentagent.com"),
		ImageGenURL:         getEnv("IMAGEGEN_API_URL", "https://generativelanguage.googleapis.com"),
		ImageGenKey:         os.Getenv("IMAGEGEN_API_KEY"),
		ImageGenModel:       getEnv("IMAGEGEN_MODEL", "gemini-3-pro-image-preview"),
		StripeKey:           os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		FrontendURL:         getEnv("FRONTEND_URL", "http://localhost:3000"),
		ImagesDir:           os.Getenv("IMAGES_DIR"),
		CORSOrigins:         getEnv("CORS_ORIGINS", "*"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
