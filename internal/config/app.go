package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	maxConnectRetries    = 5
	connectRetryInterval = 5 * time.Second
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// AppConfig holds everything except the database DSN
type AppConfig struct {
	Env                string
	ServerPort         string
	JWTSecret          string
	JWTExpirationHours int64
	RedisURL           string
	ChatReplyDelay     time.Duration
	LoginMaxAttempts   int64
	LoginWindow        time.Duration
	LogLevel           string
	TracingEnabled     bool
	SeedDemoData       bool
	DemoFarmerPassword string
}

// LoadAppConfig reads application settings from the environment.
// Malformed optional values fall back to their defaults and are reported in warnings.
func LoadAppConfig() (*AppConfig, []string, error) {
	var warnings []string

	cfg := &AppConfig{
		Env:                getEnv("APP_ENV", EnvDevelopment),
		ServerPort:         getEnv("SERVER_PORT", "5000"),
		JWTSecret:          os.Getenv("JWT_SECRET_KEY"),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379/0"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		DemoFarmerPassword: getEnv("DEMO_FARMER_PASSWORD", "krishi123"),
	}
	if cfg.JWTSecret == "" {
		return nil, nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	var err error
	if cfg.JWTExpirationHours, err = strconv.ParseInt(getEnv("JWT_EXPIRATION_HOURS", "720"), 10, 64); err != nil || cfg.JWTExpirationHours <= 0 {
		warnings = append(warnings, "invalid JWT_EXPIRATION_HOURS, defaulting to 720")
		cfg.JWTExpirationHours = 720
	}
	if cfg.ChatReplyDelay, err = time.ParseDuration(getEnv("CHAT_REPLY_DELAY", "2s")); err != nil || cfg.ChatReplyDelay < 0 {
		warnings = append(warnings, "invalid CHAT_REPLY_DELAY, defaulting to 2s")
		cfg.ChatReplyDelay = 2 * time.Second
	}
	if cfg.LoginMaxAttempts, err = strconv.ParseInt(getEnv("LOGIN_MAX_ATTEMPTS", "5"), 10, 64); err != nil || cfg.LoginMaxAttempts <= 0 {
		warnings = append(warnings, "invalid LOGIN_MAX_ATTEMPTS, defaulting to 5")
		cfg.LoginMaxAttempts = 5
	}
	if cfg.LoginWindow, err = time.ParseDuration(getEnv("LOGIN_WINDOW", "15m")); err != nil || cfg.LoginWindow <= 0 {
		warnings = append(warnings, "invalid LOGIN_WINDOW, defaulting to 15m")
		cfg.LoginWindow = 15 * time.Minute
	}
	if cfg.TracingEnabled, err = strconv.ParseBool(getEnv("TRACING_ENABLED", "false")); err != nil {
		warnings = append(warnings, "invalid TRACING_ENABLED, tracing disabled")
		cfg.TracingEnabled = false
	}
	if cfg.SeedDemoData, err = strconv.ParseBool(getEnv("SEED_DEMO_DATA", "false")); err != nil {
		warnings = append(warnings, "invalid SEED_DEMO_DATA, seeding disabled")
		cfg.SeedDemoData = false
	}

	return cfg, warnings, nil
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == EnvProduction
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
