package repository

import (
	"context"

	"github.com/osse101/DreamJournal_Go/internal/domain"
)

// Shop defines data access for redemptions.
type Shop interface {
	BeginShopTx(ctx context.Context) (ShopTx, error)
}

// ShopTx applies a redemption atomically.
type ShopTx interface {
	ProfileTx

	GetShopItemForUpdate(ctx context.Context, itemID string) (*domain.ShopItem, error)
	// DebitForItem subtracts cost from yc and appends itemID to the inventory.
	DebitForItem(ctx context.Context, userID, itemID string, cost int) (*domain.Profile, error)
	DecrementStock(ctx context.Context, itemID string) error
	InsertRedemption(ctx context.Context, redemption *domain.Redemption) error
}
