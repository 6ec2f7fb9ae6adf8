package domain

import "time"

// PlayStyle is a cosmetic tag derived from the kinds of quests a user completes.
type PlayStyle string

const (
	PlayStyleArtisan   PlayStyle = "Artisan"
	PlayStyleCollector PlayStyle = "Collector"
	PlayStyleHybrid    PlayStyle = "Hybrid"
)

// New profile defaults
const (
	DefaultLevel     = 1
	DefaultCoins     = 2000
	DefaultYC        = 0
	DefaultPlayStyle = PlayStyleHybrid
)

// Profile is the persisted per-user progression record.
//
// YC is the earned currency spent in the shop (currencyA). Coins (灵石) is the
// purchase-like currency charged by premium quests (currencyB).
type Profile struct {
	ID          string    `json:"id"`
	Nickname    string    `json:"nickname"`
	Level       int       `json:"level"`
	YC          int       `json:"yc"`
	Coins       int       `json:"coins"`
	Inspiration int       `json:"inspiration"`
	Inventory   []string  `json:"inventory"`
	PlayStyle   PlayStyle `json:"play_style"`
	IsMaster    bool      `json:"is_master"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProfile returns a profile populated with onboarding defaults.
func NewProfile(id, nickname string) *Profile {
	return &Profile{
		ID:        id,
		Nickname:  nickname,
		Level:     DefaultLevel,
		YC:        DefaultYC,
		Coins:     DefaultCoins,
		Inventory: []string{},
		PlayStyle: DefaultPlayStyle,
	}
}

// ProfileSnapshot is the cacheable view a client paints from between round-trips.
type ProfileSnapshot struct {
	Profile    *Profile    `json:"profile"`
	Level      LevelInfo   `json:"level"`
	SkillPaths []SkillPath `json:"skill_paths"`
	Version    int64       `json:"version"`
}

// UserSummary is the admin listing row for a profile.
type UserSummary struct {
	ID          string    `json:"id"`
	Nickname    string    `json:"nickname"`
	Level       int       `json:"level"`
	Inspiration int       `json:"inspiration"`
	YC          int       `json:"yc"`
	Coins       int       `json:"coins"`
	CreatedAt   time.Time `json:"created_at"`
}
