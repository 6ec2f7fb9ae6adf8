package progression

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/logger"
)

// LevelLoader reads the level table
type LevelLoader interface {
	ListLevels(ctx context.Context) ([]domain.LevelInfo, error)
}

// LevelTable caches the level table read from the catalog.
// When the catalog is unreachable or empty it serves domain.DefaultLevels.
type LevelTable struct {
	loader   LevelLoader
	ttl      time.Duration
	mu       sync.RWMutex
	levels   []domain.LevelInfo
	cachedAt time.Time
	now      func() time.Time
}

// NewLevelTable creates a cache with the specified TTL
func NewLevelTable(loader LevelLoader, ttl time.Duration) *LevelTable {
	return &LevelTable{loader: loader, ttl: ttl, now: time.Now}
}

// Levels returns the table sorted by level
func (c *LevelTable) Levels(ctx context.Context) []domain.LevelInfo {
	c.mu.RLock()
	if c.levels != nil && c.now().Sub(c.cachedAt) < c.ttl {
		levels := c.levels
		c.mu.RUnlock()
		return levels
	}
	c.mu.RUnlock()

	levels, err := c.loader.ListLevels(ctx)
	if err != nil || len(levels) == 0 {
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgLevelTableFallback, "error", err)
		}
		return domain.DefaultLevels
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Level < levels[j].Level })

	c.mu.Lock()
	c.levels = levels
	c.cachedAt = c.now()
	c.mu.Unlock()
	return levels
}

// Find returns one row of the table
func (c *LevelTable) Find(ctx context.Context, level int) (domain.LevelInfo, bool) {
	return domain.FindLevel(c.Levels(ctx), level)
}

// InvalidateAll clears the cache; called when the catalog changes
func (c *LevelTable) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.levels = nil
}
