package domain

import (
	"fmt"
	"time"
)

// QuestCategory determines gating, idempotence and play-style effects of a quest.
type QuestCategory string

const (
	QuestCategoryDaily  QuestCategory = "daily"
	QuestCategoryLabor  QuestCategory = "labor"
	QuestCategoryPatron QuestCategory = "patron"
)

// Stored category names from the first schema revision
const (
	legacyCategoryBounty    = "bounty"
	legacyCategoryMilestone = "milestone"
)

// ParseQuestCategory accepts current and legacy category names.
func ParseQuestCategory(s string) (QuestCategory, error) {
	switch s {
	case string(QuestCategoryDaily):
		return QuestCategoryDaily, nil
	case string(QuestCategoryLabor), legacyCategoryBounty:
		return QuestCategoryLabor, nil
	case string(QuestCategoryPatron), legacyCategoryMilestone:
		return QuestCategoryPatron, nil
	default:
		return "", fmt.Errorf("%w: unknown quest category %q", ErrInvalidInput, s)
	}
}

// Repeatable reports whether the category may be completed again on a later login day.
func (c QuestCategory) Repeatable() bool {
	return c == QuestCategoryDaily
}

// CheckInQuestID is the built-in quest recorded by a scan with no pending quest.
const CheckInQuestID = "checkin"

// CheckInRewardYC is granted once per login day.
const CheckInRewardYC = 10

// CompletionStatusCompleted is the only status a completion record carries.
const CompletionStatusCompleted = "completed"

// Quest is a quest template from the catalog.
type Quest struct {
	ID                string        `json:"id"`
	Category          QuestCategory `json:"category"`
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	MinLevel          int           `json:"min_level"`
	RewardInspiration int           `json:"reward_inspiration"`
	RewardYC          int           `json:"reward_yc"`
	CostCoins         int           `json:"cost_coins"`
	NeedsVerification bool          `json:"needs_verification"`
	IsActive          bool          `json:"is_active"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// QuestView is a quest annotated for a specific user.
type QuestView struct {
	Quest
	Locked     bool `json:"locked"`
	Affordable bool `json:"affordable"`
	Completed  bool `json:"completed"`
}

// QuestCompletion is an append-only completion record.
type QuestCompletion struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	QuestID     string    `json:"quest_id"`
	Status      string    `json:"status"`
	CompletedOn time.Time `json:"completed_on"`
	CompletedAt time.Time `json:"completed_at"`
}

// Reward is the set of balance deltas a completion applies.
type Reward struct {
	Inspiration int `json:"inspiration"`
	YC          int `json:"yc"`
	CoinsSpent  int `json:"coins_spent"`
}

// CompletionResult is returned after a quest reward has been committed.
type CompletionResult struct {
	QuestID   string    `json:"quest_id"`
	Reward    Reward    `json:"reward"`
	PlayStyle PlayStyle `json:"play_style"`
	Profile   *Profile  `json:"profile"`
}

// NextPlayStyle derives the cosmetic play style after completing a quest of category c.
func NextPlayStyle(current PlayStyle, c QuestCategory) PlayStyle {
	switch c {
	case QuestCategoryPatron:
		if current == PlayStyleArtisan {
			return PlayStyleHybrid
		}
		return PlayStyleCollector
	case QuestCategoryLabor:
		if current == PlayStyleCollector {
			return PlayStyleHybrid
		}
		return PlayStyleArtisan
	default:
		return current
	}
}

// DefaultQuests is the seed quest catalog.
var DefaultQuests = []Quest{
	{ID: "d1", Category: QuestCategoryDaily, Title: "每日签到打卡", Description: "来工坊打个招呼",
		MinLevel: 1, RewardYC: 10, RewardInspiration: 5, IsActive: true},
	{ID: "d2", Category: QuestCategoryDaily, Title: "分享今日作品", Description: "在社群分享一张作品照片",
		MinLevel: 1, RewardYC: 30, RewardInspiration: 20, IsActive: true},
	{ID: "l1", Category: QuestCategoryLabor, Title: "整理毛线墙", Description: "帮助工坊整理毛线",
		MinLevel: 1, RewardYC: 50, RewardInspiration: 100, NeedsVerification: true, IsActive: true},
	{ID: "l2", Category: QuestCategoryLabor, Title: "新人带教", Description: "带一位新人完成第一件作品",
		MinLevel: 2, RewardYC: 100, RewardInspiration: 300, NeedsVerification: true, IsActive: true},
	{ID: "l3", Category: QuestCategoryLabor, Title: "市集摆摊", Description: "参与一次手作市集",
		MinLevel: 3, RewardYC: 300, RewardInspiration: 800, NeedsVerification: true, IsActive: true},
	{ID: "p1", Category: QuestCategoryPatron, Title: "材料包赞助", Description: "购买一份工坊材料包",
		MinLevel: 1, RewardYC: 0, RewardInspiration: 100, CostCoins: 168, NeedsVerification: true, IsActive: true},
	{ID: "p2", Category: QuestCategoryPatron, Title: "年度会员", Description: "成为工坊年度会员",
		MinLevel: 4, RewardYC: 500, RewardInspiration: 1000, NeedsVerification: true, IsActive: true},
}
