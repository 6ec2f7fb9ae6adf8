package repository

import (
	"context"
	"time"

	"github.com/osse101/DreamJournal_Go/internal/domain"
)

// Verification defines data access for verification artifacts.
type Verification interface {
	CreateArtifact(ctx context.Context, artifact *domain.VerificationArtifact) error
	GetArtifact(ctx context.Context, id string) (*domain.VerificationArtifact, error)
	GetArtifactByPayload(ctx context.Context, payload string) (*domain.VerificationArtifact, error)

	// TransitionArtifact moves a generated artifact to a terminal status.
	// Returns domain.ErrArtifactAlreadyResolved if it is no longer generated.
	TransitionArtifact(ctx context.Context, id string, to domain.ArtifactStatus, at time.Time) (*domain.VerificationArtifact, error)
	// ExpireStale expires every generated artifact past its deadline and returns them.
	ExpireStale(ctx context.Context, now time.Time) ([]domain.VerificationArtifact, error)
	SetImageURL(ctx context.Context, id, url string) error
}
