package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants.
const (
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnknownError          = "Unknown error"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidQueryParam     = "Invalid %s query parameter"
	ErrMsgMissingPathParam      = "Missing %s"
	ErrMsgMissingSession        = "Session required"
	ErrMsgQRUnavailable         = "QR image unavailable"

	// Daily reset
	ErrMsgDailyResetFailed       = "Failed to reset login counters"
	ErrMsgDailyResetNotScheduled = "Daily reset is not scheduled"

	// Lookups
	ErrMsgUserNotFoundError     = "User not found"
	ErrMsgQuestNotFoundError    = "Quest not found"
	ErrMsgItemNotFoundError     = "Item not found"
	ErrMsgInviteNotFoundError   = "Invite not found"
	ErrMsgArtifactNotFoundError = "Verification not found"

	// Quests and currencies
	ErrMsgInsufficientCoinsError       = "Not enough coins"
	ErrMsgInsufficientYCError          = "Not enough YC"
	ErrMsgInsufficientInspirationError = "Not enough inspiration to ascend"
	ErrMsgQuestLockedError             = "Quest is locked at your level"
	ErrMsgQuestAlreadyCompletedError   = "Quest already completed"
	ErrMsgVerificationRequiredError    = "This quest must be verified"
	ErrMsgVerificationNotAllowedError  = "This quest does not use verification"

	// Ascension
	ErrMsgMaxLevelError          = "Already at the highest level"
	ErrMsgAscensionConflictError = "Level changed, please retry"
	ErrMsgExamRequiredError      = "Ascension requires a verified exam"

	// Shop
	ErrMsgItemInactiveError = "Item is not available"
	ErrMsgOutOfStockError   = "Item is out of stock"

	// Verification
	ErrMsgVerificationExpiredError   = "Verification expired"
	ErrMsgVerificationCancelledError = "Verification was cancelled"
	ErrMsgArtifactResolvedError      = "Verification already resolved"
	ErrMsgArtifactConsumedError      = "Verification already used"
	ErrMsgArtifactNotVerifiedError   = "Verification not completed"
	ErrMsgArtifactMismatchError      = "Verification does not match this request"

	// Accounts and invites
	ErrMsgNicknameTakenError       = "Nickname already taken"
	ErrMsgDuplicateKeyError        = "An entry with that key already exists"
	ErrMsgInvalidCredentialsError  = "Invalid nickname or password"
	ErrMsgInviteTokenMismatchError = "Invite token does not match"
	ErrMsgInviteNotLinkedError     = "Invite is not linked to a user"
	ErrMsgInviteExpiredError       = "Invite link has expired"
	ErrMsgLoginLimitError          = "Daily login limit reached"
)

// Success messages for API responses
const (
	MsgCredentialSynced    = "Credential synced"
	MsgDeleted             = "Deleted"
	MsgDailyResetCompleted = "Login counters reset"
)

// Log messages
const (
	LogMsgEncodeResponseFailed = "Failed to encode JSON response"
	LogMsgWriteResponseFailed  = "Failed to write response buffer"
	LogMsgDecodeFailed         = "Failed to decode request"
	LogMsgReadinessFailed      = "Readiness check failed"
	LogMsgManualResetFailed    = "Manual daily reset failed"
	LogMsgRequestCancelled     = "Request cancelled before completion"
)

// Headers and limits
const (
	HeaderRetryAfter = "Retry-After"
	HeaderAdminUser  = "X-Admin-User"

	// StatusClientClosedRequest is the nginx convention for a request abandoned by its client
	StatusClientClosedRequest = 499

	maxUserMessageLength = 200
	defaultPageLimit     = 50
	maxPageLimit         = 200
	defaultAuditLimit    = 100
)
