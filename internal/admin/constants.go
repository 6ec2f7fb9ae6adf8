package admin

// Audit actions
const (
	ActionCreateQuest    = "quest.create"
	ActionUpdateQuest    = "quest.update"
	ActionDeleteQuest    = "quest.delete"
	ActionCreateShopItem = "shop_item.create"
	ActionUpdateShopItem = "shop_item.update"
	ActionDeleteShopItem = "shop_item.delete"
	ActionUpdateLevel    = "level.update"
	ActionIssueInvite    = "invite.issue"
	ActionVerifyArtifact = "verification.scan"
)

// Catalog entity names carried on catalog.changed events
const (
	EntityQuest    = "quest"
	EntityShopItem = "shop_item"
	EntityLevel    = "level"
)

// Key generation
const (
	fallbackQuestKey    = "quest"
	fallbackShopItemKey = "item"
	maxKeyAttempts      = 100
)

// Listing bounds
const (
	DefaultListLimit  = 50
	MaxListLimit      = 500
	DefaultAuditLimit = 50
)

// Log messages
const (
	LogMsgAuditWriteFailed = "Failed to write admin audit entry"
	LogMsgCatalogMutated   = "Catalog mutated"
)

const ErrMsgKeyExhausted = "could not find a free key for %q"
