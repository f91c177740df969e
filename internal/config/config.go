package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env      string
	HTTPPort string
	LogLevel string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string

	JWTIssuer       string
	JWTAudience     string
	JWTAccessSecret string
	JWTAccessTTL    time.Duration

	StripeSecretKey     string
	StripeWebhookSecret string

	CheckoutSuccessURLWeb string
	CheckoutCancelURLWeb  string
	CheckoutSuccessURLApp string
	CheckoutCancelURLApp  string

	ScanDedupWindow     time.Duration
	ScanRateLimitPerMin int
	TattooActiveFor     time.Duration
	SubscriptionPeriod  time.Duration
	ExpirySweepSchedule string

	CheckoutIdempotencyTTL time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                   getEnv("APP_ENV", "development"),
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		JWTIssuer:             getEnv("JWT_ISSUER", "zozoapp"),
		JWTAudience:           getEnv("JWT_AUDIENCE", "zozoapp-api"),
		JWTAccessSecret:       os.Getenv("JWT_ACCESS_SECRET"),
		StripeSecretKey:       os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret:   os.Getenv("STRIPE_WEBHOOK_SECRET"),
		CheckoutSuccessURLWeb: getEnv("CHECKOUT_SUCCESS_URL_WEB", "http://localhost:3000/thank-you?session_id={CHECKOUT_SESSION_ID}"),
		CheckoutCancelURLWeb:  getEnv("CHECKOUT_CANCEL_URL_WEB", "http://localhost:3000/cart"),
		CheckoutSuccessURLApp: getEnv("CHECKOUT_SUCCESS_URL_APP", "zozoapp://checkout/success"),
		CheckoutCancelURLApp:  getEnv("CHECKOUT_CANCEL_URL_APP", "zozoapp://checkout/cancel"),
		ScanRateLimitPerMin:   getEnvInt("SCAN_RATE_LIMIT_PER_MIN", 60),
		ExpirySweepSchedule:   getEnv("EXPIRY_SWEEP_SCHEDULE", "@every 10m"),
		MinioEndpoint:         os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:        os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:        os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:           getEnv("MINIO_BUCKET", "zozoapp-avatars"),
		MinioUseSSL:           getEnvBool("MINIO_USE_SSL", false),
	}

	durations := []struct {
		key  string
		def  string
		dest *time.Duration
	}{
		{"JWT_ACCESS_TTL", "15m", &cfg.JWTAccessTTL},
		{"SCAN_DEDUP_WINDOW", "10s", &cfg.ScanDedupWindow},
		{"TATTOO_ACTIVE_DURATION", "168h", &cfg.TattooActiveFor},
		{"SUBSCRIPTION_PERIOD", "744h", &cfg.SubscriptionPeriod},
		{"CHECKOUT_IDEMPOTENCY_TTL", "24h", &cfg.CheckoutIdempotencyTTL},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", d.key, err)
		}
		*d.dest = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string
	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	if len(c.JWTAccessSecret) < 32 {
		errs = append(errs, "JWT_ACCESS_SECRET must be at least 32 chars")
	}
	if c.StripeSecretKey == "" {
		errs = append(errs, "STRIPE_SECRET_KEY is required")
	}
	if c.StripeWebhookSecret == "" {
		errs = append(errs, "STRIPE_WEBHOOK_SECRET is required")
	}
	if c.JWTAccessTTL <= 0 || c.JWTAccessTTL > time.Hour {
		errs = append(errs, "JWT_ACCESS_TTL must be between 1s and 1h")
	}
	if c.ScanDedupWindow <= 0 || c.ScanDedupWindow > time.Minute {
		errs = append(errs, "SCAN_DEDUP_WINDOW must be between 1s and 1m")
	}
	if c.ScanRateLimitPerMin <= 0 {
		errs = append(errs, "SCAN_RATE_LIMIT_PER_MIN must be > 0")
	}
	if c.TattooActiveFor <= 0 {
		errs = append(errs, "TATTOO_ACTIVE_DURATION must be > 0")
	}
	if c.SubscriptionPeriod <= 0 {
		errs = append(errs, "SUBSCRIPTION_PERIOD must be > 0")
	}
	if c.CheckoutIdempotencyTTL <= 0 {
		errs = append(errs, "CHECKOUT_IDEMPOTENCY_TTL must be > 0")
	}
	if !strings.Contains(c.CheckoutSuccessURLWeb, "{CHECKOUT_SESSION_ID}") {
		errs = append(errs, "CHECKOUT_SUCCESS_URL_WEB must contain the {CHECKOUT_SESSION_ID} placeholder")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
