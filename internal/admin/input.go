package admin

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/DreamJournal_Go/internal/domain"
)

// QuestInput is the editable part of a quest template
type QuestInput struct {
	ID                string `json:"id" validate:"omitempty,max=64"`
	Category          string `json:"category" validate:"required,oneof=daily labor patron"`
	Title             string `json:"title" validate:"required,max=100"`
	Description       string `json:"description" validate:"max=1000"`
	MinLevel          int    `json:"min_level" validate:"min=1,max=10"`
	RewardInspiration int    `json:"reward_inspiration" validate:"min=0"`
	RewardYC          int    `json:"reward_yc" validate:"min=0"`
	CostCoins         int    `json:"cost_coins" validate:"min=0"`
	NeedsVerification bool   `json:"needs_verification"`
	IsActive          *bool  `json:"is_active"`
}

// ShopItemInput is the editable part of a shop item
type ShopItemInput struct {
	ID          string `json:"id" validate:"omitempty,max=64"`
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	CostYC      int    `json:"cost_yc" validate:"min=0"`
	Stock       *int   `json:"stock" validate:"omitempty,min=-1"`
	IsActive    *bool  `json:"is_active"`
}

// LevelInput edits one row of the level table
type LevelInput struct {
	Title               string   `json:"title" validate:"required,max=50"`
	TitleEN             string   `json:"title_en" validate:"max=50"`
	Realm               string   `json:"realm" validate:"max=50"`
	RequiredInspiration int      `json:"required_inspiration" validate:"min=0"`
	Exam                string   `json:"exam" validate:"max=200"`
	Perks               []string `json:"perks"`
}

var validate = validator.New()

func check(in any) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func (in QuestInput) apply(q *domain.Quest) error {
	category, err := domain.ParseQuestCategory(in.Category)
	if err != nil {
		return err
	}
	q.Category = category
	q.Title = in.Title
	q.Description = in.Description
	q.MinLevel = in.MinLevel
	q.RewardInspiration = in.RewardInspiration
	q.RewardYC = in.RewardYC
	q.CostCoins = in.CostCoins
	q.NeedsVerification = in.NeedsVerification
	q.IsActive = boolOr(in.IsActive, q.IsActive)
	return nil
}

func (in ShopItemInput) apply(i *domain.ShopItem) {
	i.Title = in.Title
	i.Description = in.Description
	i.CostYC = in.CostYC
	if in.Stock != nil {
		i.Stock = *in.Stock
	}
	i.IsActive = boolOr(in.IsActive, i.IsActive)
}
