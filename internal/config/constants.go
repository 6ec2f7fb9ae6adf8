package config

import "time"

const (
	// Configuration file paths
	ConfigPathCatalog       = "configs/catalog.json"
	ConfigPathCatalogSchema = "configs/schemas/catalog.schema.json"
)

// Defaults applied when the corresponding variable is unset or invalid
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultEnvironment = "dev"
	DefaultVersion     = "dev"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultSessionTTL = 720 * time.Hour

	DefaultInviteBaseURL   = "http://localhost:5173/"
	DefaultLegacyInviteKey = "jws_landing_page_2024"

	DefaultDailyLoginLimit = 5
	DefaultDailyResetHour  = 4
	DefaultResetTimezone   = "Asia/Shanghai"

	DefaultVerificationTimeout       = 120 * time.Second
	DefaultVerificationPollInterval  = 2 * time.Second
	DefaultVerificationSweepInterval = 30 * time.Second

	DefaultProfileCacheSize = 1000
	DefaultProfileCacheTTL  = 30 * time.Second

	DefaultQRRegion = "auto"

	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"
)
