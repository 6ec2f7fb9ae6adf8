package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server
	Port           int
	APIKey         string // API key for admin and staff routes
	TrustedProxies []string

	// Logging
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	Version     string

	// Database
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Sessions
	SessionSecret string
	SessionTTL    time.Duration

	// Invites
	InviteSecret    string
	InviteTokenTTL  time.Duration // 0 means signed invites never expire
	InviteBaseURL   string
	LegacyInviteKey string

	// Daily login limit
	DailyLoginLimit int // 0 disables the limit
	DailyResetHour  int
	ResetTimezone   string

	// Verification
	VerificationTimeout       time.Duration
	VerificationPollInterval  time.Duration
	VerificationSweepInterval time.Duration

	// Ascension
	AscensionRequiresExam bool

	// Profile snapshot cache
	ProfileCacheSize int
	ProfileCacheTTL  time.Duration

	// QR object storage, disabled when QRBucket is empty
	QRBucket          string
	QREndpoint        string
	QRRegion          string
	QRAccessKeyID     string
	QRSecretAccessKey string
	QRPublicBaseURL   string

	// Event publishing
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	// Catalog seed
	CatalogPath       string
	CatalogSchemaPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:     getEnv("VERSION", DefaultVersion),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "dreamjournal"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", DefaultSessionTTL),

		InviteSecret:    getEnv("INVITE_SECRET", ""),
		InviteTokenTTL:  getEnvAsDuration("INVITE_TOKEN_TTL", 0),
		InviteBaseURL:   getEnv("INVITE_BASE_URL", DefaultInviteBaseURL),
		LegacyInviteKey: getEnv("LEGACY_INVITE_KEY", DefaultLegacyInviteKey),

		DailyLoginLimit: getEnvAsInt("DAILY_LOGIN_LIMIT", DefaultDailyLoginLimit),
		DailyResetHour:  getEnvAsInt("DAILY_RESET_HOUR", DefaultDailyResetHour),
		ResetTimezone:   getEnv("RESET_TIMEZONE", DefaultResetTimezone),

		VerificationTimeout:       getEnvAsDuration("VERIFICATION_TIMEOUT", DefaultVerificationTimeout),
		VerificationPollInterval:  getEnvAsDuration("VERIFICATION_POLL_INTERVAL", DefaultVerificationPollInterval),
		VerificationSweepInterval: getEnvAsDuration("VERIFICATION_SWEEP_INTERVAL", DefaultVerificationSweepInterval),

		AscensionRequiresExam: getEnvAsBool("ASCENSION_REQUIRES_EXAM", false),

		ProfileCacheSize: getEnvAsInt("PROFILE_CACHE_SIZE", DefaultProfileCacheSize),
		ProfileCacheTTL:  getEnvAsDuration("PROFILE_CACHE_TTL", DefaultProfileCacheTTL),

		QRBucket:          getEnv("QR_BUCKET", ""),
		QREndpoint:        getEnv("QR_ENDPOINT", ""),
		QRRegion:          getEnv("QR_REGION", DefaultQRRegion),
		QRAccessKeyID:     getEnv("QR_ACCESS_KEY_ID", ""),
		QRSecretAccessKey: getEnv("QR_SECRET_ACCESS_KEY", ""),
		QRPublicBaseURL:   getEnv("QR_PUBLIC_BASE_URL", ""),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),

		CatalogPath:       getEnv("CATALOG_PATH", ConfigPathCatalog),
		CatalogSchemaPath: getEnv("CATALOG_SCHEMA_PATH", ConfigPathCatalogSchema),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate secrets are set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable must be set for security")
	}
	if cfg.InviteSecret == "" {
		return nil, fmt.Errorf("INVITE_SECRET environment variable must be set for security")
	}

	if cfg.DailyResetHour < 0 || cfg.DailyResetHour > 23 {
		return nil, fmt.Errorf("invalid DAILY_RESET_HOUR value: %d (must be 0-23)", cfg.DailyResetHour)
	}
	if _, err := time.LoadLocation(cfg.ResetTimezone); err != nil {
		return nil, fmt.Errorf("invalid RESET_TIMEZONE value: %w", err)
	}

	return cfg, nil
}

// ResetLocation returns the time zone that defines the login day boundary.
func (c *Config) ResetLocation() *time.Location {
	loc, err := time.LoadLocation(c.ResetTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// QRStorageEnabled reports whether rendered QR images should be uploaded.
func (c *Config) QRStorageEnabled() bool {
	return c.QRBucket != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
