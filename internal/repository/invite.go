package repository

import (
	"context"
	"time"

	"github.com/osse101/DreamJournal_Go/internal/domain"
)

// Invite defines data access for pre-registration records.
type Invite interface {
	CreatePreUser(ctx context.Context, preUser *domain.PreUser) error
	GetPreUser(ctx context.Context, id string) (*domain.PreUser, error)
	GetPreUserByToken(ctx context.Context, token string) (*domain.PreUser, error)

	BeginInviteTx(ctx context.Context) (InviteTx, error)
}

// InviteTx redeems an invite for the first time.
type InviteTx interface {
	AccountTx

	LoginCounter

	GetPreUserForUpdate(ctx context.Context, id string) (*domain.PreUser, error)
	// MarkPreUserUsed links the invite to userID. It reports false when the
	// invite was already used.
	MarkPreUserUsed(ctx context.Context, id, userID string, at time.Time) (bool, error)
}

// Account defines data access for credentials.
type Account interface {
	GetProfileByNickname(ctx context.Context, nickname string) (*domain.Profile, error)
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	GetCredential(ctx context.Context, userID string) (*domain.Credential, error)
	SetCredential(ctx context.Context, userID string, secretHash []byte) error

	BeginAccountTx(ctx context.Context) (AccountTx, error)
}

// LoginCounter bumps a daily login counter.
type LoginCounter interface {
	// IncrementLoginCount bumps the counter for (userID, day) unless it has
	// reached limit. limit <= 0 means unlimited. It reports whether the bump happened.
	IncrementLoginCount(ctx context.Context, userID string, day time.Time, limit int) (int, bool, error)
}

// LoginLimit defines data access for the daily login counters.
type LoginLimit interface {
	LoginCounter

	GetLoginCount(ctx context.Context, userID string, day time.Time) (int, error)
	PurgeLoginCountersBefore(ctx context.Context, day time.Time) (int64, error)
}
