package progression

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/event"
	"github.com/osse101/DreamJournal_Go/internal/logger"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

// Service implements the level/ascension flow
type Service interface {
	GetStatus(ctx context.Context, userID string) (*domain.AscensionStatus, error)
	Ascend(ctx context.Context, userID string) (*domain.AscensionResult, error)
	StartAscensionExam(ctx context.Context, userID string) (*domain.VerificationArtifact, error)
	AscendVerified(ctx context.Context, userID, artifactID string) (*domain.AscensionResult, error)
	Levels(ctx context.Context) []domain.LevelInfo
}

// ExamIssuer creates level-scoped verification artifacts
type ExamIssuer interface {
	Create(ctx context.Context, req domain.ArtifactRequest) (*domain.VerificationArtifact, error)
}

// CacheInvalidator drops cached profile snapshots after a mutation
type CacheInvalidator interface {
	Invalidate(userID string)
}

// Deps groups the collaborators of the progression service
type Deps struct {
	Profiles     repository.Profile
	Progression  repository.Progression
	Levels       *LevelTable
	Exams        ExamIssuer
	Publisher    event.Publisher
	Invalidator  CacheInvalidator
	RequiresExam bool
	Clock        func() time.Time
}

type service struct {
	profiles     repository.Profile
	progression  repository.Progression
	levels       *LevelTable
	exams        ExamIssuer
	publisher    event.Publisher
	invalidator  CacheInvalidator
	requiresExam bool
	clock        func() time.Time
}

// NewService creates a new progression service
func NewService(d Deps) Service {
	clock := d.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		profiles:     d.Profiles,
		progression:  d.Progression,
		levels:       d.Levels,
		exams:        d.Exams,
		publisher:    d.Publisher,
		invalidator:  d.Invalidator,
		requiresExam: d.RequiresExam,
		clock:        clock,
	}
}

// Levels returns the level table
func (s *service) Levels(ctx context.Context) []domain.LevelInfo {
	return s.levels.Levels(ctx)
}

// GetStatus returns the ascension view for a user
func (s *service) GetStatus(ctx context.Context, userID string) (*domain.AscensionStatus, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildStatus(p, s.levels.Levels(ctx)), nil
}

// checkEligible returns ErrMaxLevel or a *domain.ShortfallError when the status does not allow ascension
func checkEligible(status *domain.AscensionStatus) error {
	if status.AtMaxLevel {
		return domain.ErrMaxLevel
	}
	if !status.Eligible {
		return &domain.ShortfallError{
			Level:     status.Level,
			Required:  status.Threshold,
			Current:   status.Inspiration,
			Shortfall: status.Shortfall,
		}
	}
	return nil
}

// Ascend moves an eligible user up exactly one level
func (s *service) Ascend(ctx context.Context, userID string) (*domain.AscensionResult, error) {
	if s.requiresExam {
		return nil, domain.ErrExamRequired
	}
	status, err := s.GetStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkEligible(status); err != nil {
		return nil, err
	}
	return s.ascend(ctx, userID, "")
}

// StartAscensionExam issues a level artifact for the next level
func (s *service) StartAscensionExam(ctx context.Context, userID string) (*domain.VerificationArtifact, error) {
	status, err := s.GetStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkEligible(status); err != nil {
		return nil, err
	}

	a, err := s.exams.Create(ctx, domain.ArtifactRequest{
		Kind:        domain.ArtifactKindLevel,
		UserID:      userID,
		TargetLevel: status.Level + 1,
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgExamStarted, "user_id", userID, "target_level", status.Level+1, "artifact_id", a.ID)
	return a, nil
}

// AscendVerified ascends using a verified exam artifact, consuming it
func (s *service) AscendVerified(ctx context.Context, userID, artifactID string) (*domain.AscensionResult, error) {
	return s.ascend(ctx, userID, artifactID)
}

// ascend runs the guarded level increment. Eligibility is re-checked under the row lock.
func (s *service) ascend(ctx context.Context, userID, artifactID string) (*domain.AscensionResult, error) {
	levels := s.levels.Levels(ctx)

	tx, err := s.progression.BeginProgressionTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	p, err := tx.GetProfileForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	before := buildStatus(p, levels)
	if err := checkEligible(before); err != nil {
		return nil, err
	}

	if artifactID != "" {
		a, err := tx.ConsumeArtifact(ctx, artifactID, s.clock())
		if err != nil {
			return nil, err
		}
		if a.UserID != userID {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactMismatch, ErrMsgExamWrongOwner)
		}
		if a.Kind != domain.ArtifactKindLevel || a.TargetLevel == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactMismatch, ErrMsgExamWrongKind)
		}
		if *a.TargetLevel != p.Level+1 {
			return nil, fmt.Errorf("%w: "+ErrMsgExamWrongLevel, domain.ErrArtifactMismatch, *a.TargetLevel, p.Level+1)
		}
	}

	updated, err := tx.AscendLevel(ctx, userID, p.Level, before.Threshold)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(userID)
	}

	result := &domain.AscensionResult{
		PreviousLevel:  p.Level,
		NewLevel:       updated.Level,
		NewlyUnlocked:  newlyUnlocked(p.Level, updated.Level),
		Status:         buildStatus(updated, levels),
		ExamArtifactID: artifactID,
	}
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewLevelAscendedEvent(userID, result))
	}

	logger.FromContext(ctx).Info(LogMsgLevelAscended, "user_id", userID, "from", result.PreviousLevel, "to", result.NewLevel)
	return result, nil
}
