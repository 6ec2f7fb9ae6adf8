package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DreamJournal_Go/internal/domain"
)

// CatalogRepository implements repository.Catalog
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func scanQuest(row pgx.Row) (*domain.Quest, error) {
	var q domain.Quest
	var category string
	err := row.Scan(
		&q.ID,
		&category,
		&q.Title,
		&q.Description,
		&q.MinLevel,
		&q.RewardInspiration,
		&q.RewardYC,
		&q.CostCoins,
		&q.NeedsVerification,
		&q.IsActive,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	parsed, err := domain.ParseQuestCategory(category)
	if err != nil {
		return nil, err
	}
	q.Category = parsed
	return &q, nil
}

func scanShopItem(row pgx.Row) (*domain.ShopItem, error) {
	var i domain.ShopItem
	err := row.Scan(&i.ID, &i.Title, &i.Description, &i.CostYC, &i.Stock, &i.IsActive, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// ---- Quest templates ----

// ListQuests returns quest templates ordered by level gate then id
func (r *CatalogRepository) ListQuests(ctx context.Context, includeInactive bool) ([]domain.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quest_templates WHERE is_active OR $1 ORDER BY min_level, id`
	rows, err := r.db.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, dbError(ErrMsgFailedToGetQuest, err)
	}
	quests, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Quest, error) {
		q, err := scanQuest(row)
		if err != nil {
			return domain.Quest{}, err
		}
		return *q, nil
	})
	if err != nil {
		return nil, dbError(ErrMsgFailedToGetQuest, err)
	}
	return quests, nil
}

// GetQuest retrieves a quest template by id, active or not
func (r *CatalogRepository) GetQuest(ctx context.Context, id string) (*domain.Quest, error) {
	q, err := scanQuest(r.db.QueryRow(ctx, `SELECT `+questColumns+` FROM quest_templates WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err, domain.ErrQuestNotFound, ErrMsgFailedToGetQuest)
	}
	return q, nil
}

// QuestExists reports whether a quest id is taken
func (r *CatalogRepository) QuestExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM quest_templates WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, dbError(ErrMsgFailedToGetQuest, err)
	}
	return exists, nil
}

// CreateQuest inserts a new quest template
func (r *CatalogRepository) CreateQuest(ctx context.Context, q *domain.Quest) error {
	query := `
		INSERT INTO quest_templates (id, category, title, description, min_level, reward_inspiration,
			reward_yc, cost_coins, needs_verification, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		q.ID, string(q.Category), q.Title, q.Description, q.MinLevel,
		q.RewardInspiration, q.RewardYC, q.CostCoins, q.NeedsVerification, q.IsActive,
	).Scan(&q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateKey
		}
		return dbError(ErrMsgFailedToSaveQuest, err)
	}
	return nil
}

// UpdateQuest replaces every editable field of a quest template
func (r *CatalogRepository) UpdateQuest(ctx context.Context, q *domain.Quest) error {
	query := `
		UPDATE quest_templates
		SET category = $2, title = $3, description = $4, min_level = $5, reward_inspiration = $6,
		    reward_yc = $7, cost_coins = $8, needs_verification = $9, is_active = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		q.ID, string(q.Category), q.Title, q.Description, q.MinLevel,
		q.RewardInspiration, q.RewardYC, q.CostCoins, q.NeedsVerification, q.IsActive,
	).Scan(&q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return notFoundOr(err, domain.ErrQuestNotFound, ErrMsgFailedToSaveQuest)
	}
	return nil
}

// DeleteQuest removes a quest template; completion records keep their quest id
func (r *CatalogRepository) DeleteQuest(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM quest_templates WHERE id = $1`, id)
	if err != nil {
		return dbError(ErrMsgFailedToSaveQuest, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuestNotFound
	}
	return nil
}

// UpsertQuest inserts or overwrites a quest template, used by catalog sync
func (r *CatalogRepository) UpsertQuest(ctx context.Context, q *domain.Quest) error {
	query := `
		INSERT INTO quest_templates (id, category, title, description, min_level, reward_inspiration,
			reward_yc, cost_coins, needs_verification, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			category = EXCLUDED.category, title = EXCLUDED.title, description = EXCLUDED.description,
			min_level = EXCLUDED.min_level, reward_inspiration = EXCLUDED.reward_inspiration,
			reward_yc = EXCLUDED.reward_yc, cost_coins = EXCLUDED.cost_coins,
			needs_verification = EXCLUDED.needs_verification, is_active = EXCLUDED.is_active,
			updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query,
		q.ID, string(q.Category), q.Title, q.Description, q.MinLevel,
		q.RewardInspiration, q.RewardYC, q.CostCoins, q.NeedsVerification, q.IsActive,
	)
	if err != nil {
		return dbError(ErrMsgFailedToSaveQuest, err)
	}
	return nil
}

// ---- Shop items ----

// ListShopItems returns shop items ordered by price
func (r *CatalogRepository) ListShopItems(ctx context.Context, includeInactive bool) ([]domain.ShopItem, error) {
	query := `SELECT ` + shopItemColumns + ` FROM shop_items WHERE is_active OR $1 ORDER BY cost_yc, id`
	rows, err := r.db.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, dbError(ErrMsgFailedToGetShopItem, err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ShopItem, error) {
		i, err := scanShopItem(row)
		if err != nil {
			return domain.ShopItem{}, err
		}
		return *i, nil
	})
	if err != nil {
		return nil, dbError(ErrMsgFailedToGetShopItem, err)
	}
	return items, nil
}

// GetShopItem retrieves a shop item by id
func (r *CatalogRepository) GetShopItem(ctx context.Context, id string) (*domain.ShopItem, error) {
	i, err := scanShopItem(r.db.QueryRow(ctx, `SELECT `+shopItemColumns+` FROM shop_items WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err, domain.ErrItemNotFound, ErrMsgFailedToGetShopItem)
	}
	return i, nil
}

// ShopItemExists reports whether a shop item id is taken
func (r *CatalogRepository) ShopItemExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM shop_items WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, dbError(ErrMsgFailedToGetShopItem, err)
	}
	return exists, nil
}

// CreateShopItem inserts a new shop item
func (r *CatalogRepository) CreateShopItem(ctx context.Context, i *domain.ShopItem) error {
	query := `
		INSERT INTO shop_items (id, title, description, cost_yc, stock, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, i.ID, i.Title, i.Description, i.CostYC, i.Stock, i.IsActive).
		Scan(&i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateKey
		}
		return dbError(ErrMsgFailedToSaveShopItem, err)
	}
	return nil
}

// UpdateShopItem replaces every editable field of a shop item
func (r *CatalogRepository) UpdateShopItem(ctx context.Context, i *domain.ShopItem) error {
	query := `
		UPDATE shop_items
		SET title = $2, description = $3, cost_yc = $4, stock = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, i.ID, i.Title, i.Description, i.CostYC, i.Stock, i.IsActive).
		Scan(&i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return notFoundOr(err, domain.ErrItemNotFound, ErrMsgFailedToSaveShopItem)
	}
	return nil
}

// DeleteShopItem removes a shop item; redemption logs keep their item id
func (r *CatalogRepository) DeleteShopItem(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM shop_items WHERE id = $1`, id)
	if err != nil {
		return dbError(ErrMsgFailedToSaveShopItem, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// UpsertShopItem inserts or overwrites a shop item, leaving live stock untouched on update
func (r *CatalogRepository) UpsertShopItem(ctx context.Context, i *domain.ShopItem) error {
	query := `
		INSERT INTO shop_items (id, title, description, cost_yc, stock, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title, description = EXCLUDED.description, cost_yc = EXCLUDED.cost_yc,
			is_active = EXCLUDED.is_active, updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, i.ID, i.Title, i.Description, i.CostYC, i.Stock, i.IsActive); err != nil {
		return dbError(ErrMsgFailedToSaveShopItem, err)
	}
	return nil
}

// ---- Levels ----

// ListLevels returns the level table in order
func (r *CatalogRepository) ListLevels(ctx context.Context) ([]domain.LevelInfo, error) {
	rows, err := r.db.Query(ctx, `SELECT `+levelColumns+` FROM levels ORDER BY level`)
	if err != nil {
		return nil, dbError(ErrMsgFailedToListLevels, err)
	}
	levels, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LevelInfo, error) {
		var l domain.LevelInfo
		err := row.Scan(&l.Level, &l.Title, &l.TitleEN, &l.Realm, &l.RequiredInspiration, &l.Exam, &l.Perks)
		return l, err
	})
	if err != nil {
		return nil, dbError(ErrMsgFailedToListLevels, err)
	}
	return levels, nil
}

// UpsertLevel inserts or overwrites a level row
func (r *CatalogRepository) UpsertLevel(ctx context.Context, l *domain.LevelInfo) error {
	query := `
		INSERT INTO levels (level, title, title_en, realm, required_inspiration, exam, perks)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (level) DO UPDATE SET
			title = EXCLUDED.title, title_en = EXCLUDED.title_en, realm = EXCLUDED.realm,
			required_inspiration = EXCLUDED.required_inspiration, exam = EXCLUDED.exam, perks = EXCLUDED.perks
	`
	perks := l.Perks
	if perks == nil {
		perks = []string{}
	}
	if _, err := r.db.Exec(ctx, query, l.Level, l.Title, l.TitleEN, l.Realm, l.RequiredInspiration, l.Exam, perks); err != nil {
		return dbError(ErrMsgFailedToSaveLevel, err)
	}
	return nil
}
