package profile

import "time"

// Cache defaults
const (
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 30 * time.Second
)

// Log messages
const (
	LogMsgSnapshotCacheHit = "Profile snapshot cache hit"
	LogMsgInvalidateFailed = "Failed to decode event for cache invalidation"
)

// CatalogEntityLevel is the catalog.changed entity for level table edits
const CatalogEntityLevel = "level"
