package shop

import (
	"context"
	"fmt"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/event"
	"github.com/osse101/DreamJournal_Go/internal/logger"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

// Service implements the shop redemption flow
type Service interface {
	ListItems(ctx context.Context) ([]domain.ShopItem, error)
	Redeem(ctx context.Context, userID, itemID string) (*domain.RedemptionResult, error)
}

// ItemLister reads the shop catalog
type ItemLister interface {
	ListShopItems(ctx context.Context, includeInactive bool) ([]domain.ShopItem, error)
}

// CacheInvalidator drops cached profile snapshots after a mutation
type CacheInvalidator interface {
	Invalidate(userID string)
}

type service struct {
	repo        repository.Shop
	catalog     ItemLister
	publisher   event.Publisher
	invalidator CacheInvalidator
}

// NewService creates a new shop service
func NewService(repo repository.Shop, catalog ItemLister, publisher event.Publisher, invalidator CacheInvalidator) Service {
	return &service{
		repo:        repo,
		catalog:     catalog,
		publisher:   publisher,
		invalidator: invalidator,
	}
}

// ListItems lists active items
func (s *service) ListItems(ctx context.Context) ([]domain.ShopItem, error) {
	return s.catalog.ListShopItems(ctx, false)
}

// Redeem spends YC on one unit of an item. On any failure the balance is unchanged.
func (s *service) Redeem(ctx context.Context, userID, itemID string) (*domain.RedemptionResult, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgRedeemCalled, "user_id", userID, "item_id", itemID)

	// 1. Begin transaction
	tx, err := s.repo.BeginShopTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	// 2. Lock the profile, then the item
	profile, err := tx.GetProfileForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	item, err := tx.GetShopItemForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}

	// 3. Check eligibility
	if !item.IsActive {
		return nil, domain.ErrItemInactive
	}
	if profile.YC < item.CostYC {
		return nil, fmt.Errorf(ErrMsgYCShortFmt, domain.ErrInsufficientYC, item.CostYC, profile.YC)
	}
	if !item.InStock() {
		return nil, domain.ErrOutOfStock
	}

	// 4. Debit and record
	updated, err := tx.DebitForItem(ctx, userID, item.ID, item.CostYC)
	if err != nil {
		return nil, err
	}
	if item.Stock != domain.UnlimitedStock {
		if err := tx.DecrementStock(ctx, item.ID); err != nil {
			return nil, err
		}
	}
	if err := tx.InsertRedemption(ctx, &domain.Redemption{
		UserID:     userID,
		ShopItemID: item.ID,
		CostYC:     item.CostYC,
		Status:     domain.RedemptionStatusCompleted,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
	}

	// 5. Finalize
	if s.invalidator != nil {
		s.invalidator.Invalidate(userID)
	}
	result := &domain.RedemptionResult{
		ItemID:   item.ID,
		CostYC:   item.CostYC,
		YCBefore: profile.YC,
		YCAfter:  updated.YC,
		Profile:  updated,
	}
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewItemRedeemedEvent(userID, result))
	}

	log.Info(LogMsgItemRedeemed, "user_id", userID, "item_id", item.ID, "cost_yc", item.CostYC, "yc_after", updated.YC)
	return result, nil
}
