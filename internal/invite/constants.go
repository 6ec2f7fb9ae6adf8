package invite

import "time"

// Defaults
const (
	DefaultLegacyKey  = "jws_landing_page_2024"
	DefaultLoginLimit = 5
	DefaultResetHour  = 4

	// TokenQueryParam carries the invite token on landing links
	TokenQueryParam = "t"

	// credentialContext domain-separates derived credential secrets
	credentialContext = "credential:"

	// signedTokenSeparator splits payload and mac in signed tokens
	signedTokenSeparator = "."

	// maxClockSkew tolerates issued-at values slightly in the future
	maxClockSkew = time.Minute
)

// Log messages
const (
	LogMsgInviteIssued      = "Invite issued"
	LogMsgInviteFirstUse    = "Invite redeemed for the first time"
	LogMsgInviteRepeatUse   = "Invite used to log in"
	LogMsgInviteRaceLost    = "Invite claimed concurrently, continuing as repeat use"
	LogMsgCredentialSynced  = "Credential synced"
	LogMsgLoginLimitReached = "Daily login limit reached"
)

// Error messages
const (
	ErrMsgIllegalTransitionFmt = "illegal transition %s --%s-->"
	ErrMsgSignToken            = "failed to sign invite token"
	ErrMsgHashCredential       = "failed to hash credential"
)
