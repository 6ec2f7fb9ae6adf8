package profile

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/DreamJournal_Go/internal/domain"
)

// SnapshotSchemaVersion tags cached entries; bump it when ProfileSnapshot changes shape
const SnapshotSchemaVersion = "1.0"

type cachedSnapshot struct {
	version  string
	snapshot *domain.ProfileSnapshot
}

// snapshotCache is a size-bounded LRU whose entries also expire after ttl
type snapshotCache struct {
	lru *expirable.LRU[string, *cachedSnapshot]
}

func newSnapshotCache(size int, ttl time.Duration) *snapshotCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &snapshotCache{
		lru: expirable.NewLRU[string, *cachedSnapshot](size, nil, ttl),
	}
}

func (c *snapshotCache) Get(userID string) (*domain.ProfileSnapshot, bool) {
	entry, found := c.lru.Get(userID)
	if !found {
		return nil, false
	}
	if entry.version != SnapshotSchemaVersion {
		c.lru.Remove(userID)
		return nil, false
	}
	return entry.snapshot, true
}

func (c *snapshotCache) Set(userID string, s *domain.ProfileSnapshot) {
	c.lru.Add(userID, &cachedSnapshot{version: SnapshotSchemaVersion, snapshot: s})
}

func (c *snapshotCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}

func (c *snapshotCache) Len() int {
	return c.lru.Len()
}

func (c *snapshotCache) Clear() {
	c.lru.Purge()
}
