package repository

import (
	"context"

	"github.com/osse101/DreamJournal_Go/internal/domain"
)

// Profile defines the interface for profile data access
type Profile interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	GetProfileByNickname(ctx context.Context, nickname string) (*domain.Profile, error)
	ListProfiles(ctx context.Context, limit, offset int) ([]domain.UserSummary, error)
}

// Progression defines data access for ascension.
type Progression interface {
	BeginProgressionTx(ctx context.Context) (ProgressionTx, error)
}

// ProgressionTx performs a guarded ascension.
type ProgressionTx interface {
	ProfileTx
	ArtifactTx

	// AscendLevel increments the level iff it still equals fromLevel and
	// inspiration still meets threshold. Returns domain.ErrAscensionConflict otherwise.
	AscendLevel(ctx context.Context, userID string, fromLevel, threshold int) (*domain.Profile, error)
}
