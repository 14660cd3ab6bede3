package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// SecretKey signs the session cookie and the admin JWT.
	SecretKey string

	StripeSecretKey     string
	StripePublicKey     string
	StripeWebhookSecret string
	DomainName          string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisAddr    string
	KafkaBrokers string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	AdminEmail        string
	AdminUsername     string
	AdminPasswordHash string
}

// Load reads configuration from the environment (an optional .env file is
// honored). Startup aborts when a secret the app cannot run without is
// missing.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "5000"),
		SecretKey:           os.Getenv("SECRET_KEY"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripePublicKey:     os.Getenv("STRIPE_PUBLIC_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		DomainName:          getEnv("DOMAIN_NAME", "http://localhost:5000"),
		DBHost:              getEnv("DB_HOST", "127.0.0.1"),
		DBPort:              getEnv("DB_PORT", "3306"),
		DBUser:              getEnv("DB_USER", "root"),
		DBPass:              os.Getenv("DB_PASS"),
		DBName:              getEnv("DB_NAME", "linea-store"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:        os.Getenv("KAFKA_BROKERS"),
		SMTPHost:            getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:            465,
		SMTPUser:            os.Getenv("SMTP_USER"),
		SMTPPass:            os.Getenv("SMTP_PASS"),
		AdminEmail:          os.Getenv("ADMIN_EMAIL"),
		AdminUsername:       getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash:   os.Getenv("ADMIN_PASSWORD_HASH"),
	}

	if port := os.Getenv("SMTP_PORT"); port != "" {
		if _, err := fmt.Sscanf(port, "%d", &cfg.SMTPPort); err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", port, err)
		}
	}

	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if cfg.StripeWebhookSecret == "" {
		return nil, fmt.Errorf("STRIPE_WEBHOOK_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
