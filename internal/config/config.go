package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server configuration
	Port string
	Mode string

	// Database configuration
	DatabaseURL string

	// Redis configuration
	RedisURL string

	// Stripe configuration
	StripeAPIKey        string
	StripeWebhookSecret string
	CheckoutSuccessURL  string
	CheckoutCancelURL   string

	// Brevo email configuration
	BrevoAPIKey    string
	BrevoFromEmail string
	BrevoFromName  string

	// OpenAI configuration
	OpenAIAPIKey string
	OpenAIModel  string

	// CORS configuration
	AllowedOrigins []string

	// Chat rate limit configuration
	ChatRateLimitSeconds int
}

var AppConfig *Config

func InitConfig() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		// Ignore error if .env file doesn't exist
	}

	AppConfig = &Config{
		Port:                 getEnv("PORT", "5001"),
		Mode:                 getEnv("GIN_MODE", "debug"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		RedisURL:             getEnv("REDIS_URL", "redis://localhost:6379/0"),
		StripeAPIKey:         getEnv("STRIPE_API_KEY", ""),
		StripeWebhookSecret:  getEnv("STRIPE_WEBHOOK_SECRET", ""),
		CheckoutSuccessURL:   getEnv("CHECKOUT_SUCCESS_URL", "https://aebox-website.vercel.app/checkout/success"),
		CheckoutCancelURL:    getEnv("CHECKOUT_CANCEL_URL", "https://aebox-website.vercel.app/checkout/cancel"),
		BrevoAPIKey:          getEnv("BREVO_API_KEY", ""),
		BrevoFromEmail:       getEnv("BREVO_FROM_EMAIL", ""),
		BrevoFromName:        getEnv("BREVO_FROM_NAME", "AE Box"),
		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:          getEnv("OPENAI_MODEL", "gpt-4"),
		AllowedOrigins:       getEnvList("ALLOWED_ORIGINS", "https://aebox-website.vercel.app,http://localhost:3000"),
		ChatRateLimitSeconds: getEnvInt("CHAT_RATE_LIMIT_SECONDS", 5),
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
