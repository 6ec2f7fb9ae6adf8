package profile

import (
	"context"
	"time"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/logger"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

// Service serves profile reads and cached snapshots
type Service interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Snapshot(ctx context.Context, userID string) (*domain.ProfileSnapshot, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.UserSummary, error)
	Invalidate(userID string)
	InvalidateAll()
}

// LevelSource provides the level table
type LevelSource interface {
	Find(ctx context.Context, level int) (domain.LevelInfo, bool)
}

type service struct {
	repo   repository.Profile
	levels LevelSource
	cache  *snapshotCache
}

// NewService creates a profile service with a snapshot cache of size entries living for ttl
func NewService(repo repository.Profile, levels LevelSource, size int, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &service{
		repo:   repo,
		levels: levels,
		cache:  newSnapshotCache(size, ttl),
	}
}

// Get always reads through to the store
func (s *service) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

// Snapshot returns the cacheable client view of a profile
func (s *service) Snapshot(ctx context.Context, userID string) (*domain.ProfileSnapshot, error) {
	if snap, ok := s.cache.Get(userID); ok {
		logger.FromContext(ctx).Debug(LogMsgSnapshotCacheHit, "user_id", userID)
		return snap, nil
	}

	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := &domain.ProfileSnapshot{
		Profile:    p,
		SkillPaths: domain.UnlockedSkillPaths(p.Level),
		Version:    p.UpdatedAt.UnixNano(),
	}
	if info, ok := s.findLevel(ctx, p.Level); ok {
		snap.Level = info
	} else {
		snap.Level = domain.LevelInfo{Level: p.Level}
	}

	s.cache.Set(userID, snap)
	return snap, nil
}

func (s *service) findLevel(ctx context.Context, level int) (domain.LevelInfo, bool) {
	if s.levels == nil {
		return domain.FindLevel(domain.DefaultLevels, level)
	}
	return s.levels.Find(ctx, level)
}

// ListUsers pages through every profile
func (s *service) ListUsers(ctx context.Context, limit, offset int) ([]domain.UserSummary, error) {
	return s.repo.ListProfiles(ctx, limit, offset)
}

// Invalidate drops the user's cached snapshot
func (s *service) Invalidate(userID string) {
	s.cache.Invalidate(userID)
}

// InvalidateAll drops every cached snapshot, used when level titles or perks change
func (s *service) InvalidateAll() {
	s.cache.Clear()
}
