package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

// ShopRepository implements repository.Shop
type ShopRepository struct {
	db *pgxpool.Pool
}

// NewShopRepository creates a new shop repository
func NewShopRepository(db *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{db: db}
}

// BeginShopTx starts a transaction for a redemption
func (r *ShopRepository) BeginShopTx(ctx context.Context) (repository.ShopTx, error) {
	return beginTx(ctx, r.db)
}

// ---- pgTx shop operations ----

// GetShopItemForUpdate locks and reads a shop item row
func (t *pgTx) GetShopItemForUpdate(ctx context.Context, itemID string) (*domain.ShopItem, error) {
	i, err := scanShopItem(t.tx.QueryRow(ctx, `SELECT `+shopItemColumns+` FROM shop_items WHERE id = $1 FOR UPDATE`, itemID))
	if err != nil {
		return nil, notFoundOr(err, domain.ErrItemNotFound, ErrMsgFailedToGetShopItem)
	}
	return i, nil
}

// DebitForItem subtracts cost from yc and appends the item to the inventory
func (t *pgTx) DebitForItem(ctx context.Context, userID, itemID string, cost int) (*domain.Profile, error) {
	query := `
		UPDATE profiles
		SET yc = yc - $2, inventory = array_append(inventory, $3), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + profileColumns
	p, err := scanProfile(t.tx.QueryRow(ctx, query, userID, cost, itemID))
	if err != nil {
		if pgErrorCode(err) == PgErrorCodeCheckViolation {
			return nil, domain.ErrInsufficientYC
		}
		return nil, notFoundOr(err, domain.ErrUserNotFound, ErrMsgFailedToDebit)
	}
	return p, nil
}

// DecrementStock takes one unit from a limited item
func (t *pgTx) DecrementStock(ctx context.Context, itemID string) error {
	tag, err := t.tx.Exec(ctx, `UPDATE shop_items SET stock = stock - 1 WHERE id = $1 AND stock > 0`, itemID)
	if err != nil {
		return dbError(ErrMsgFailedToSaveShopItem, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOutOfStock
	}
	return nil
}

// InsertRedemption appends a redemption log row
func (t *pgTx) InsertRedemption(ctx context.Context, r *domain.Redemption) error {
	query := `
		INSERT INTO redemption_logs (user_id, shop_item_id, cost_yc, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, created_at
	`
	if r.Status == "" {
		r.Status = domain.RedemptionStatusCompleted
	}
	if err := t.tx.QueryRow(ctx, query, r.UserID, r.ShopItemID, r.CostYC, r.Status).Scan(&r.ID, &r.CreatedAt); err != nil {
		return dbError(ErrMsgFailedToInsertRedemption, err)
	}
	return nil
}
