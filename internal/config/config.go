package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration
// Note: the generator itself is stateless; DATABASE_URL only enables the
// optional generation history
type Config struct {
	// Environment
	Environment string
	Port        string

	// Storage (optional)
	DatabaseURL string

	// Observability
	SentryDSN           string // Sentry DSN for error tracking
	CloudWatchNamespace string // CloudWatch namespace for custom metrics

	// HTTP limits
	RateLimitRPS       float64  // Sustained requests per second per client
	RateLimitBurst     int      // Burst size per client
	CORSAllowedOrigins []string // "*" allows any origin

	// Code-to-music
	CodeMusicMaxBytes int
}

func Load() *Config {
	return &Config{
		Environment:         getEnv("ENVIRONMENT", "development"),
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		SentryDSN:           getEnv("SENTRY_DSN", ""),
		CloudWatchNamespace: getEnv("CLOUDWATCH_NAMESPACE", "CodedSwitch/API"),
		RateLimitRPS:        getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 20),
		CORSAllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		CodeMusicMaxBytes:   getEnvInt("CODE_MUSIC_MAX_BYTES", 200000),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return n
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return f
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HistoryEnabled returns true if a database is configured
func (c *Config) HistoryEnabled() bool {
	return c.DatabaseURL != ""
}
