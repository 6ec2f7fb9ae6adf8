package account

// Log messages
const (
	LogMsgAccountRegistered = "Account registered"
	LogMsgLoginFailed       = "Password login failed"
	LogMsgLoggedIn          = "Password login succeeded"
)

const ErrMsgHashPassword = "failed to hash password"
