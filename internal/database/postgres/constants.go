package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeCheckViolation is raised when a balance or level CHECK constraint fails
	PgErrorCodeCheckViolation = "23514"
	// PgErrorCodeForeignKeyViolation is raised when a referenced profile is missing
	PgErrorCodeForeignKeyViolation = "23503"
)

// Column lists shared by SELECT and RETURNING clauses
const (
	profileColumns = `id::text, nickname, level, yc, coins, inspiration, inventory, play_style, is_master, created_at, updated_at`

	questColumns = `id, category, title, description, min_level, reward_inspiration, reward_yc, cost_coins,
		needs_verification, is_active, created_at, updated_at`

	shopItemColumns = `id, title, description, cost_yc, stock, is_active, created_at, updated_at`

	levelColumns = `level, title, title_en, realm, required_inspiration, exam, perks`

	preUserColumns = `id::text, nickname, token, is_used, used_by::text, used_at, created_at`

	artifactColumns = `id::text, kind, user_id::text, quest_id, target_level, payload, status,
		created_at, expires_at, resolved_at, consumed_at, image_url`
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgFailedToRollback          = "Failed to rollback transaction"
)

// Error Messages - Queries
const (
	ErrMsgFailedToGetProfile       = "failed to get profile"
	ErrMsgFailedToCreateProfile    = "failed to create profile"
	ErrMsgFailedToListProfiles     = "failed to list profiles"
	ErrMsgFailedToApplyReward      = "failed to apply reward"
	ErrMsgFailedToAscend           = "failed to ascend level"
	ErrMsgFailedToInsertCompletion = "failed to insert completion"
	ErrMsgFailedToInsertPayment    = "failed to insert quest payment"
	ErrMsgFailedToListCompletions  = "failed to list completions"
	ErrMsgFailedToGetQuest         = "failed to get quest"
	ErrMsgFailedToSaveQuest        = "failed to save quest"
	ErrMsgFailedToGetShopItem      = "failed to get shop item"
	ErrMsgFailedToSaveShopItem     = "failed to save shop item"
	ErrMsgFailedToDebit            = "failed to debit yc"
	ErrMsgFailedToInsertRedemption = "failed to insert redemption"
	ErrMsgFailedToListLevels       = "failed to list levels"
	ErrMsgFailedToSaveLevel        = "failed to save level"
	ErrMsgFailedToGetPreUser       = "failed to get pre-user"
	ErrMsgFailedToSavePreUser      = "failed to save pre-user"
	ErrMsgFailedToSaveCredential   = "failed to save credential"
	ErrMsgFailedToGetCredential    = "failed to get credential"
	ErrMsgFailedToCountLogins      = "failed to count logins"
	ErrMsgFailedToGetArtifact      = "failed to get verification artifact"
	ErrMsgFailedToSaveArtifact     = "failed to save verification artifact"
	ErrMsgFailedToLoadDashboard    = "failed to load dashboard"
	ErrMsgFailedToWriteAudit       = "failed to write audit log"
	ErrMsgFailedToReadAudit        = "failed to read audit log"
)
