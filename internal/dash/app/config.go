package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/dash/pkg/httpx"
	"github.com/aussiebroadwan/dash/pkg/jwtx"
)

var ErrMissingSecret = errors.New("DASH_SESSION_SECRET is required")

type Config struct {
	Issuer        string        // Optional: issuer claim for session tokens (default: dash)
	SessionSecret string        // Required: HS256 secret, at least jwtx.MinSecretLength bytes
	SessionTTL    time.Duration // Optional: session lifetime (default: 12h)
	SecureCookies bool          // Optional: mark UI cookies Secure (default: false)

	AdminUsername string // Optional: first admin, created on an empty database
	AdminPassword string // Optional: required alongside AdminUsername

	DatabaseFile string // Optional: path to SQLite database file (default: ./dash.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	ActivityRetention    time.Duration // How long activity entries are kept (default: 90 days)

	// Per-route request budgets. RATELIMIT_{LOGIN,WRITE,READ}_{REQUESTS,WINDOW_SEC,BURST}
	RateLimits httpx.RateLimits
}

// LoadConfig reads the environment. Values from envFile (".env" when empty)
// fill in variables that are not already set; a missing file is fine.
func LoadConfig(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Config{
		Issuer:        getEnvOrDefault("DASH_ISSUER", "dash"),
		SessionSecret: os.Getenv("DASH_SESSION_SECRET"),
		SessionTTL:    getEnvDurationOrDefault("DASH_SESSION_TTL", jwtx.DefaultSessionTTL),
		SecureCookies: getEnvBoolOrDefault("DASH_SECURE_COOKIES", false),

		AdminUsername: os.Getenv("DASH_ADMIN_USERNAME"),
		AdminPassword: os.Getenv("DASH_ADMIN_PASSWORD"),

		DatabaseFile: getEnvOrDefault("DASH_DATABASE_FILE", "dash.db"),
		PepperFile:   getEnvOrDefault("DASH_PEPPER_FILE", "pepper"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		ActivityRetention:    getEnvDurationOrDefault("DASH_ACTIVITY_RETENTION", 90*24*time.Hour),
	}

	limits := httpx.DefaultRateLimits()
	cfg.RateLimits = httpx.RateLimits{
		Login: getEnvRateLimitOrDefault("LOGIN", limits.Login),
		Write: getEnvRateLimitOrDefault("WRITE", limits.Write),
		Read:  getEnvRateLimitOrDefault("READ", limits.Read),
	}
	return cfg, nil
}

// Validate checks what Serve needs. Migrate and seed only need the database.
func (c Config) Validate() error {
	if c.SessionSecret == "" {
		return ErrMissingSecret
	}
	if len(c.SessionSecret) < jwtx.MinSecretLength {
		return fmt.Errorf("DASH_SESSION_SECRET: %w", jwtx.ErrWeakSecret)
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return errors.New("DASH_ADMIN_USERNAME and DASH_ADMIN_PASSWORD must be set together")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// getEnvRateLimitOrDefault reads RATELIMIT_{name}_REQUESTS, _WINDOW_SEC and
// _BURST. Missing or non-positive values keep the default.
func getEnvRateLimitOrDefault(name string, defaultValue httpx.RateLimit) httpx.RateLimit {
	prefix := "RATELIMIT_" + name + "_"
	limit := defaultValue

	if n := getEnvIntOrDefault(prefix+"REQUESTS", 0); n > 0 {
		limit.Requests = n
	}
	if n := getEnvIntOrDefault(prefix+"WINDOW_SEC", 0); n > 0 {
		limit.Window = time.Duration(n) * time.Second
	}
	if n := getEnvIntOrDefault(prefix+"BURST", 0); n > 0 {
		limit.Burst = n
	}
	return limit
}
