package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/validation"
)

// CatalogFile is the on-disk shape of configs/catalog.json
type CatalogFile struct {
	Version   string             `json:"version"`
	Quests    []CatalogQuest     `json:"quests"`
	ShopItems []CatalogShopItem  `json:"shop_items"`
	Levels    []domain.LevelInfo `json:"levels"`
}

// CatalogQuest keeps the category as written so legacy names can be mapped
type CatalogQuest struct {
	ID                string `json:"id"`
	Category          string `json:"category"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	MinLevel          int    `json:"min_level"`
	RewardInspiration int    `json:"reward_inspiration"`
	RewardYC          int    `json:"reward_yc"`
	CostCoins         int    `json:"cost_coins"`
	NeedsVerification bool   `json:"needs_verification"`
	IsActive          *bool  `json:"is_active"`
}

// CatalogShopItem defaults stock and activity when omitted
type CatalogShopItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CostYC      int    `json:"cost_yc"`
	Stock       *int   `json:"stock"`
	IsActive    *bool  `json:"is_active"`
}

func (c CatalogShopItem) item() domain.ShopItem {
	item := domain.ShopItem{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		CostYC:      c.CostYC,
		Stock:       domain.DefaultShopStock,
		IsActive:    true,
	}
	if c.Stock != nil {
		item.Stock = *c.Stock
	}
	if c.IsActive != nil {
		item.IsActive = *c.IsActive
	}
	return item
}

// CatalogUpserter is the write side of the catalog the sync needs
type CatalogUpserter interface {
	UpsertQuest(ctx context.Context, quest *domain.Quest) error
	UpsertShopItem(ctx context.Context, item *domain.ShopItem) error
	UpsertLevel(ctx context.Context, level *domain.LevelInfo) error
}

// CatalogSyncResult counts the rows written by a sync
type CatalogSyncResult struct {
	Quests    int
	ShopItems int
	Levels    int
}

// LoadCatalog reads and schema-checks the catalog file
func LoadCatalog(path, schemaPath string, v validation.SchemaValidator) (*CatalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}
	if err := v.ValidateBytes(data, schemaPath); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidCatalog, err)
	}

	var file CatalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}
	return &file, nil
}

// quests converts file entries to domain quests, rejecting duplicates the schema cannot see
func (f *CatalogFile) quests() ([]domain.Quest, error) {
	seen := make(map[string]bool, len(f.Quests))
	out := make([]domain.Quest, 0, len(f.Quests))
	for _, q := range f.Quests {
		if seen[q.ID] {
			return nil, fmt.Errorf("%w: duplicate quest id %q", domain.ErrInvalidInput, q.ID)
		}
		seen[q.ID] = true

		category, err := domain.ParseQuestCategory(q.Category)
		if err != nil {
			return nil, err
		}
		active := true
		if q.IsActive != nil {
			active = *q.IsActive
		}
		out = append(out, domain.Quest{
			ID:                q.ID,
			Category:          category,
			Title:             q.Title,
			Description:       q.Description,
			MinLevel:          q.MinLevel,
			RewardInspiration: q.RewardInspiration,
			RewardYC:          q.RewardYC,
			CostCoins:         q.CostCoins,
			NeedsVerification: q.NeedsVerification,
			IsActive:          active,
		})
	}
	return out, nil
}

func (f *CatalogFile) checkLevels() error {
	seen := make(map[int]bool, len(f.Levels))
	prev := 0
	for _, l := range f.Levels {
		if seen[l.Level] {
			return fmt.Errorf("%w: duplicate level %d", domain.ErrInvalidInput, l.Level)
		}
		seen[l.Level] = true
		if l.Level > 1 && l.RequiredInspiration <= prev {
			return fmt.Errorf("%w: level %d threshold must exceed the previous level", domain.ErrInvalidInput, l.Level)
		}
		prev = l.RequiredInspiration
	}
	return nil
}

// SyncCatalog upserts every quest, shop item and level from the file.
// Rows not present in the file are left alone so admin edits survive restarts.
func SyncCatalog(ctx context.Context, file *CatalogFile, repo CatalogUpserter) (*CatalogSyncResult, error) {
	quests, err := file.quests()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidCatalog, err)
	}
	if err := file.checkLevels(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidCatalog, err)
	}

	result := &CatalogSyncResult{}
	for i := range quests {
		if err := repo.UpsertQuest(ctx, &quests[i]); err != nil {
			return result, fmt.Errorf("%s: quest %s: %w", ErrMsgFailedSyncCatalog, quests[i].ID, err)
		}
		result.Quests++
	}
	for _, entry := range file.ShopItems {
		item := entry.item()
		if err := repo.UpsertShopItem(ctx, &item); err != nil {
			return result, fmt.Errorf("%s: shop item %s: %w", ErrMsgFailedSyncCatalog, item.ID, err)
		}
		result.ShopItems++
	}
	for i := range file.Levels {
		if err := repo.UpsertLevel(ctx, &file.Levels[i]); err != nil {
			return result, fmt.Errorf("%s: level %d: %w", ErrMsgFailedSyncCatalog, file.Levels[i].Level, err)
		}
		result.Levels++
	}
	return result, nil
}

// SyncCatalogFromFile loads, validates and syncs the catalog seed.
// A missing file is not an error: the migration seed already holds the defaults.
func SyncCatalogFromFile(ctx context.Context, path, schemaPath string, repo CatalogUpserter) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info(LogMsgCatalogFileMissing, "path", path)
		return nil
	}

	slog.Info(LogMsgSyncingCatalog, "path", path)
	file, err := LoadCatalog(path, schemaPath, validation.NewSchemaValidator())
	if err != nil {
		return err
	}

	result, err := SyncCatalog(ctx, file, repo)
	if err != nil {
		return err
	}

	slog.Info(LogMsgCatalogSynced,
		"version", file.Version,
		"quests", result.Quests,
		"shop_items", result.ShopItems,
		"levels", result.Levels)
	return nil
}
