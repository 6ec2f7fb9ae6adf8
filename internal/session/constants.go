package session

import "time"

// DefaultTTL is the session lifetime when none is configured
const DefaultTTL = 720 * time.Hour

// Issuer is stamped into every token
const Issuer = "dreamjournal"

// Header handling
const (
	HeaderAuthorization = "Authorization"
	BearerScheme        = "Bearer"
)

// Error messages returned to clients
const (
	ErrMsgMissingToken  = "Authorization header required"
	ErrMsgInvalidFormat = "Invalid authorization format. Use: Bearer <token>"
	ErrMsgExpired       = "Session has expired"
	ErrMsgInvalid       = "Invalid session"
)

// Log messages
const (
	LogMsgSessionRejected = "Session rejected"
)
