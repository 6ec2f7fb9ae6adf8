package quest

// Log messages
const (
	LogMsgQuestCompleted         = "Quest completed"
	LogMsgCheckInCompleted       = "Check-in recorded"
	LogMsgVerificationStarted    = "Quest verification started"
	LogMsgAwaitingVerification   = "Awaiting quest verification"
	LogMsgVerificationNotSuccess = "Quest verification ended without success"
)

// Error messages
const (
	ErrMsgRequiresLevel     = "requires level %d"
	ErrMsgCoinsShort        = "requires %d coins, have %d"
	ErrMsgArtifactWrongKind = "artifact is not a quest verification"
	ErrMsgArtifactWrongUser = "artifact belongs to another user"
)
