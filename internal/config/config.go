package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const defaultGatewayBaseURL = "https://api.razorpay.com"

type Config struct {
	Port             string
	DBUrl            string
	RedisAddr        string
	RedisPassword    string
	GatewayKeyID     string
	GatewayKeySecret string
	GatewayBaseURL   string
	WebhookSecret    string
	AppEnv           string
	AppURL           string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	keyID, exists := os.LookupEnv("RAZORPAY_KEY_ID")
	if !exists || keyID == "" {
		return nil, fmt.Errorf("RAZORPAY_KEY_ID is required")
	}
	keySecret, exists := os.LookupEnv("RAZORPAY_KEY_SECRET")
	if !exists || keySecret == "" {
		return nil, fmt.Errorf("RAZORPAY_KEY_SECRET is required")
	}
	webhookSecret, exists := os.LookupEnv("RAZORPAY_WEBHOOK_SECRET")
	if !exists || webhookSecret == "" {
		return nil, fmt.Errorf("RAZORPAY_WEBHOOK_SECRET is required")
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		DBUrl:            getEnv("DB_URL", ""),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		GatewayKeyID:     keyID,
		GatewayKeySecret: keySecret,
		GatewayBaseURL:   getEnv("RAZORPAY_BASE_URL", defaultGatewayBaseURL),
		WebhookSecret:    webhookSecret,
		AppEnv:           normalizeEnv(getEnv("APP_ENV", "production")),
		AppURL:           strings.TrimRight(getEnv("APP_URL", "http://localhost:3000"), "/"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
