package repository

import (
	"context"

	"github.com/osse101/DreamJournal_Go/internal/domain"
)

// Catalog defines data access for quest templates, shop items and the level table.
type Catalog interface {
	// Quest templates
	ListQuests(ctx context.Context, includeInactive bool) ([]domain.Quest, error)
	GetQuest(ctx context.Context, id string) (*domain.Quest, error)
	QuestExists(ctx context.Context, id string) (bool, error)
	CreateQuest(ctx context.Context, quest *domain.Quest) error
	UpdateQuest(ctx context.Context, quest *domain.Quest) error
	DeleteQuest(ctx context.Context, id string) error
	UpsertQuest(ctx context.Context, quest *domain.Quest) error

	// Shop items
	ListShopItems(ctx context.Context, includeInactive bool) ([]domain.ShopItem, error)
	GetShopItem(ctx context.Context, id string) (*domain.ShopItem, error)
	ShopItemExists(ctx context.Context, id string) (bool, error)
	CreateShopItem(ctx context.Context, item *domain.ShopItem) error
	UpdateShopItem(ctx context.Context, item *domain.ShopItem) error
	DeleteShopItem(ctx context.Context, id string) error
	UpsertShopItem(ctx context.Context, item *domain.ShopItem) error

	// Levels
	ListLevels(ctx context.Context) ([]domain.LevelInfo, error)
	UpsertLevel(ctx context.Context, level *domain.LevelInfo) error
}
