package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	// Workflow engine policy. The relevance threshold mirrors the support
	// dashboard's historical behavior: a knowledge-base hit resolves the
	// request only when its score is strictly greater than the threshold.
	KBRelevanceThreshold float64
	FacadeCallTimeout    time.Duration

	// External system-of-record wiring.
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	UseRedisKB    bool

	TicketBaseURL  string
	TicketAPIToken string
	TicketQueue    string
	HardwareQueue  string

	CORSAllowedOrigins []string

	// SendGrid email configuration
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		KBRelevanceThreshold: getEnvAsFloat("KB_RELEVANCE_THRESHOLD", 0.75),
		FacadeCallTimeout:    getEnvAsDuration("FACADE_CALL_TIMEOUT", 10*time.Second),

		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
		UseRedisKB:    getEnvAsBool("USE_REDIS_KB", false),

		TicketBaseURL:  getEnv("TICKET_BASE_URL", ""),
		TicketAPIToken: getEnv("TICKET_API_TOKEN", ""),
		TicketQueue:    getEnv("TICKET_QUEUE", "Support"),
		HardwareQueue:  getEnv("TICKET_HARDWARE_QUEUE", "Hardware Support"),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Support Team"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
