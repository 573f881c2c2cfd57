package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Redis cache configuration
	Redis RedisConfig

	// Firebase Cloud Messaging configuration
	Firebase FirebaseConfig

	// JWT configuration
	JWT JWTConfig

	// Rate limiting configuration
	RateLimit RateLimitConfig

	// CORS configuration
	CORS CORSConfig

	// WebSocket configuration
	WebSocket WebSocketConfig

	// Analytics configuration
	Analytics AnalyticsConfig

	// Logging configuration
	Logging LoggingConfig

	// Application metadata
	App AppConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	MigrationsPath  string
	AutoMigrate     bool
}

// RedisConfig holds the optional analytics cache configuration.
// The cache is disabled when URL is empty.
type RedisConfig struct {
	URL         string
	DialTimeout time.Duration
}

// Enabled reports whether a cache is configured.
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// FirebaseConfig holds push provider configuration. Without a project id
// notifications are only logged.
type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
	CredentialsJSON string
}

// Enabled reports whether the FCM provider should be used.
func (c FirebaseConfig) Enabled() bool {
	return c.ProjectID != ""
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

// CORSConfig holds the dashboard origins allowed to call the API
type CORSConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
	MaxAge           int
}

// WebSocketConfig holds WebSocket configuration
type WebSocketConfig struct {
	AllowedOrigins  []string
	ReadBufferSize  int
	WriteBufferSize int
}

// AnalyticsConfig holds reporting settings
type AnalyticsConfig struct {
	// TimeZone is the IANA zone the agents table week starts in.
	TimeZone string
	Location *time.Location
	CacheTTL time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

// Load loads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := FromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv reads the configuration without validating it. Tools that need
// only part of the configuration check the fields they use.
func FromEnv() *Config {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using system environment variables")
	}

	return &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", ":8080"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getDurationOrDefault("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationOrDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			ConnMaxIdleTime: getDurationOrDefault("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			MigrationsPath:  getEnvOrDefault("DB_MIGRATIONS_PATH", "migrations"),
			AutoMigrate:     getBoolOrDefault("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			URL:         os.Getenv("REDIS_URL"),
			DialTimeout: getDurationOrDefault("REDIS_DIAL_TIMEOUT", 5*time.Second),
		},
		Firebase: FirebaseConfig{
			ProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
			CredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
			CredentialsJSON: os.Getenv("FIREBASE_CREDENTIALS_JSON"),
		},
		JWT: JWTConfig{
			Secret:         os.Getenv("JWT_SECRET"),
			AccessTokenTTL: getDurationOrDefault("JWT_ACCESS_TOKEN_TTL", 1*time.Hour),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getBoolOrDefault("RATE_LIMIT_ENABLED", true),
			RequestsPerSecond: getFloatOrDefault("RATE_LIMIT_RPS", 10),
			BurstSize:         getIntOrDefault("RATE_LIMIT_BURST", 20),
			TrustProxy:        getBoolOrDefault("RATE_LIMIT_TRUST_PROXY", false),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getStringSliceOrDefault("CORS_ALLOWED_ORIGINS", []string{}),
			AllowCredentials: getBoolOrDefault("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getIntOrDefault("CORS_MAX_AGE", 300),
		},
		WebSocket: WebSocketConfig{
			AllowedOrigins:  getStringSliceOrDefault("WS_ALLOWED_ORIGINS", []string{}),
			ReadBufferSize:  getIntOrDefault("WS_READ_BUFFER_SIZE", 1024),
			WriteBufferSize: getIntOrDefault("WS_WRITE_BUFFER_SIZE", 1024),
		},
		Analytics: AnalyticsConfig{
			TimeZone: getEnvOrDefault("ANALYTICS_TIMEZONE", "UTC"),
			CacheTTL: getDurationOrDefault("ANALYTICS_CACHE_TTL", 30*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
		App: AppConfig{
			Name:        getEnvOrDefault("APP_NAME", "support-analytics"),
			Version:     getEnvOrDefault("APP_VERSION", "dev"),
			Environment: getEnvOrDefault("APP_ENV", "development"),
		},
	}
}

// Validate validates the configuration and resolves the analytics time zone
func (c *Config) Validate() error {
	var errs []string

	// Required fields
	if c.Database.URL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	if c.JWT.Secret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}

	loc, err := time.LoadLocation(c.Analytics.TimeZone)
	if err != nil {
		errs = append(errs, fmt.Sprintf("ANALYTICS_TIMEZONE %q is not a valid time zone", c.Analytics.TimeZone))
	} else {
		c.Analytics.Location = loc
	}

	// Security validations
	if c.IsProduction() {
		if len(c.JWT.Secret) < 32 {
			errs = append(errs, "JWT_SECRET must be at least 32 characters in production")
		}

		if len(c.WebSocket.AllowedOrigins) == 0 {
			errs = append(errs, "WS_ALLOWED_ORIGINS must be set in production")
		}

		if len(c.CORS.AllowedOrigins) == 0 {
			errs = append(errs, "CORS_ALLOWED_ORIGINS must be set in production")
		}
	}

	// Logical validations
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, "DB_MAX_IDLE_CONNS cannot be greater than DB_MAX_OPEN_CONNS")
	}

	if c.Analytics.CacheTTL < 0 {
		errs = append(errs, "ANALYTICS_CACHE_TTL cannot be negative")
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.BurstSize <= 0) {
		errs = append(errs, "RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive when rate limiting is enabled")
	}

	if c.Firebase.CredentialsFile != "" && c.Firebase.CredentialsJSON != "" {
		errs = append(errs, "set only one of FIREBASE_CREDENTIALS_FILE and FIREBASE_CREDENTIALS_JSON")
	}

	if len(errs) > 0 {
		return errors.New("configuration errors:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// String returns a redacted string representation of the config (safe for logging)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Server: %s, DB: %s, Redis: %s, Firebase: %s, JWT: [REDACTED], RateLimit: %v, TimeZone: %s, Environment: %s}",
		c.Server.Port,
		redactURL(c.Database.URL),
		redactURL(c.Redis.URL),
		c.Firebase.ProjectID,
		c.RateLimit.Enabled,
		c.Analytics.TimeZone,
		c.App.Environment,
	)
}

// redactURL strips credentials from a connection URL
func redactURL(url string) string {
	if url == "" {
		return ""
	}
	if idx := strings.LastIndex(url, "@"); idx > 0 {
		return "[REDACTED]" + url[idx:]
	}
	return "[REDACTED]"
}
