package repository

import (
	"context"
	"time"

	"github.com/osse101/DreamJournal_Go/internal/domain"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// ProfileTx is a transaction that has locked, or can lock, a profile row.
type ProfileTx interface {
	Tx

	// GetProfileForUpdate reads the profile with SELECT ... FOR UPDATE.
	GetProfileForUpdate(ctx context.Context, userID string) (*domain.Profile, error)
}

// ArtifactTx consumes a verified artifact inside the caller's transaction.
type ArtifactTx interface {
	// ConsumeArtifact marks a verified artifact as used and returns it.
	// A second consume returns domain.ErrArtifactConsumed.
	ConsumeArtifact(ctx context.Context, artifactID string, at time.Time) (*domain.VerificationArtifact, error)
}

// AccountTx creates a profile and its credential atomically.
type AccountTx interface {
	Tx

	CreateProfile(ctx context.Context, profile *domain.Profile) error
	SetCredential(ctx context.Context, userID string, secretHash []byte) error
}
