package progression

// Log messages
const (
	LogMsgLevelAscended      = "Level ascended"
	LogMsgExamStarted        = "Ascension exam started"
	LogMsgLevelTableFallback = "Failed to load level table, using defaults"
)

// Error messages
const (
	ErrMsgExamWrongKind  = "artifact is not an ascension exam"
	ErrMsgExamWrongLevel = "exam is for level %d, next level is %d"
	ErrMsgExamWrongOwner = "artifact belongs to another user"
)
