package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "quest.completed")
const (
	// EventTypeQuestCompleted is published after a quest reward commits
	EventTypeQuestCompleted = "quest.completed"

	// EventTypeCheckIn is published after a daily check-in
	EventTypeCheckIn = "quest.checkin"

	// EventTypeLevelAscended is published after a successful ascension
	EventTypeLevelAscended = "level.ascended"

	// EventTypeItemRedeemed is published after a shop redemption commits
	EventTypeItemRedeemed = "shop.item_redeemed"

	// EventTypeVerificationStatusChanged is published on every artifact transition
	EventTypeVerificationStatusChanged = "verification.status_changed"

	// EventTypeUserRegistered is published when a profile is created
	EventTypeUserRegistered = "user.registered"

	// EventTypeUserLoggedIn is published on every successful login
	EventTypeUserLoggedIn = "user.logged_in"

	// EventTypeLoginDailyReset is published when the daily login counters roll over
	EventTypeLoginDailyReset = "login.daily_reset"

	// EventTypeCatalogChanged is published when an admin mutates quests or shop items
	EventTypeCatalogChanged = "catalog.changed"
)

// Login paths recorded on user.logged_in events
const (
	LoginPathInviteFirstUse = "invite_first_use"
	LoginPathInviteRepeat   = "invite_repeat"
	LoginPathPassword       = "password"
)
