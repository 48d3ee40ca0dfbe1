package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"consultoc-api/internal/estimator"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	PricingRegression = estimator.ModelRegression
	PricingLinear     = estimator.ModelLinear

	DefaultUnitPricePerSqm = 5500.0
)

// Config is built once in main and handed to every constructor.
type Config struct {
	Port       string
	AppURL     string
	CORSOrigin string
	GinMode    string

	DatabaseURL string

	StripeSecretKey     string
	StripeWebhookSecret string

	PricingModel    string
	UnitPricePerSqm float64

	ReportDir      string
	ReportS3Bucket string
	ReportS3Prefix string
	AWSRegion      string
	S3Endpoint     string

	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPassword   string
	SMTPFrom       string
	LeadAlertEmail string

	AdminJWTSecret string

	LogLevel  string
	LogPretty bool
}

// Load reads .env (when present) and the process environment.
// Missing required variables are reported together.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found. Using system environment variables.")
	}

	var missing []string
	must := func(key string) string {
		v, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, key)
		}
		return strings.TrimSpace(v)
	}

	cfg := &Config{
		Port:       getEnv("PORT", "8000"),
		AppURL:     strings.TrimRight(getEnv("APP_URL", "http://localhost:5173"), "/"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
		GinMode:    getEnv("GIN_MODE", "debug"),

		DatabaseURL:         must("DATABASE_URL"),
		StripeSecretKey:     must("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: must("STRIPE_WEBHOOK_SECRET"),

		PricingModel: strings.ToLower(getEnv("PRICING_MODEL", PricingRegression)),

		ReportDir:      getEnv("REPORT_DIR", "./laudos"),
		ReportS3Bucket: getEnv("REPORT_S3_BUCKET", ""),
		ReportS3Prefix: getEnv("REPORT_S3_PREFIX", "laudos/"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),

		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUser:       getEnv("SMTP_USER", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:       getEnv("SMTP_FROM", ""),
		LeadAlertEmail: getEnv("LEAD_ALERT_EMAIL", ""),

		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvBool("LOG_PRETTY", false),
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	switch cfg.PricingModel {
	case PricingRegression, PricingLinear:
	default:
		return nil, fmt.Errorf("invalid PRICING_MODEL %q (want %q or %q)", cfg.PricingModel, PricingRegression, PricingLinear)
	}

	price, err := getEnvFloat("UNIT_PRICE_PER_SQM", DefaultUnitPricePerSqm)
	if err != nil {
		return nil, err
	}
	if price <= 0 {
		return nil, fmt.Errorf("UNIT_PRICE_PER_SQM must be positive, got %v", price)
	}
	cfg.UnitPricePerSqm = price

	return cfg, nil
}

// SMTPEnabled reports whether enough SMTP settings exist to send mail.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(getEnv(key, "")) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
