package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert messages
const (
	SecurityAlertFailedAuth = "SECURITY ALERT: repeated failed admin authentication"
	SecurityAlertHighRate   = "SECURITY ALERT: blocking high request rate"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgServerStopping   = "Server stopping"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Admin authentication failed"
	LogMsgBadTrustedProxy  = "Ignoring malformed trusted proxy entry"
)

// HTTP header names
const (
	HeaderAPIKey            = "X-API-Key"
	HeaderAuthorization     = "Authorization"
	HeaderForwardedFor      = "X-Forwarded-For"
	HeaderRequestID         = "X-Request-ID"
	HeaderContentType       = "X-Content-Type-Options"
	HeaderFrameOptions      = "X-Frame-Options"
	HeaderReferrerPolicy    = "Referrer-Policy"
	HeaderPermissionsPolicy = "Permissions-Policy"
)

// Security header values. The invite page needs the camera for the scanner.
const (
	HeaderValueNoSniff    = "nosniff"
	HeaderValueDeny       = "DENY"
	HeaderValueNoReferrer = "no-referrer"
	HeaderValueCameraSelf = "camera=(self), microphone=(), geolocation=()"
)

// Server limits
const (
	MaxRequestBytes   = 1 << 20
	ReadHeaderTimeout = 5 * time.Second
	IdleTimeout       = 120 * time.Second
)

// Paths excluded from request logging
var QuietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// RedactedValue replaces credentials in logged headers
const RedactedValue = "[REDACTED]"
