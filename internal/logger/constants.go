package logger

// Accepted LOG_LEVEL values; anything else logs at info
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Environments that get source locations on every record
var developmentEnvironments = map[string]bool{
	"dev":         true,
	"development": true,
	"local":       true,
}

// Attribute keys shared by every record
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyUserID      = "user_id"
)

// Attribute keys whose values never reach the log output
var sensitiveKeys = map[string]bool{
	"password":      true,
	"token":         true,
	"invite_token":  true,
	"session":       true,
	"secret":        true,
	"authorization": true,
	"api_key":       true,
}

// RedactedValue replaces the value of any sensitive attribute
const RedactedValue = "[REDACTED]"
