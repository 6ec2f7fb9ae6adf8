package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DreamJournal_Go/internal/domain"
)

// VerificationRepository implements repository.Verification
type VerificationRepository struct {
	db *pgxpool.Pool
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *pgxpool.Pool) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func scanArtifact(row pgx.Row) (*domain.VerificationArtifact, error) {
	var a domain.VerificationArtifact
	var kind, status string
	err := row.Scan(
		&a.ID,
		&kind,
		&a.UserID,
		&a.QuestID,
		&a.TargetLevel,
		&a.Payload,
		&status,
		&a.CreatedAt,
		&a.ExpiresAt,
		&a.ResolvedAt,
		&a.ConsumedAt,
		&a.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	a.Kind = domain.ArtifactKind(kind)
	a.Status = domain.ArtifactStatus(status)
	return &a, nil
}

func getArtifact(ctx context.Context, q querier, where string, arg any) (*domain.VerificationArtifact, error) {
	a, err := scanArtifact(q.QueryRow(ctx, `SELECT `+artifactColumns+` FROM verification_artifacts WHERE `+where, arg))
	if err != nil {
		return nil, notFoundOr(err, domain.ErrArtifactNotFound, ErrMsgFailedToGetArtifact)
	}
	return a, nil
}

// CreateArtifact inserts a new generated artifact
func (r *VerificationRepository) CreateArtifact(ctx context.Context, a *domain.VerificationArtifact) error {
	query := `
		INSERT INTO verification_artifacts (kind, user_id, quest_id, target_level, payload, status, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id::text
	`
	err := r.db.QueryRow(ctx, query,
		string(a.Kind), a.UserID, a.QuestID, a.TargetLevel, a.Payload, string(a.Status), a.CreatedAt, a.ExpiresAt,
	).Scan(&a.ID)
	if err != nil {
		if pgErrorCode(err) == PgErrorCodeForeignKeyViolation {
			return domain.ErrUserNotFound
		}
		return dbError(ErrMsgFailedToSaveArtifact, err)
	}
	return nil
}

// GetArtifact retrieves an artifact by id
func (r *VerificationRepository) GetArtifact(ctx context.Context, id string) (*domain.VerificationArtifact, error) {
	if !validUUID(id) {
		return nil, domain.ErrArtifactNotFound
	}
	return getArtifact(ctx, r.db, `id = $1`, id)
}

// GetArtifactByPayload retrieves an artifact by its scanned payload
func (r *VerificationRepository) GetArtifactByPayload(ctx context.Context, payload string) (*domain.VerificationArtifact, error) {
	return getArtifact(ctx, r.db, `payload = $1`, payload)
}

// TransitionArtifact moves a generated artifact into a terminal state exactly once
func (r *VerificationRepository) TransitionArtifact(ctx context.Context, id string, to domain.ArtifactStatus, at time.Time) (*domain.VerificationArtifact, error) {
	if !validUUID(id) {
		return nil, domain.ErrArtifactNotFound
	}
	query := `
		UPDATE verification_artifacts
		SET status = $2, resolved_at = $3
		WHERE id = $1 AND status = 'generated'
		RETURNING ` + artifactColumns
	a, err := scanArtifact(r.db.QueryRow(ctx, query, id, string(to), at))
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, dbError(ErrMsgFailedToSaveArtifact, err)
	}
	// Either missing or already terminal
	if _, gerr := r.GetArtifact(ctx, id); gerr != nil {
		return nil, gerr
	}
	return nil, domain.ErrArtifactAlreadyResolved
}

// ExpireStale expires every pending artifact whose deadline has passed
func (r *VerificationRepository) ExpireStale(ctx context.Context, now time.Time) ([]domain.VerificationArtifact, error) {
	query := `
		UPDATE verification_artifacts
		SET status = 'expired', resolved_at = $1
		WHERE status = 'generated' AND expires_at <= $1
		RETURNING ` + artifactColumns
	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, dbError(ErrMsgFailedToSaveArtifact, err)
	}
	expired, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.VerificationArtifact, error) {
		a, err := scanArtifact(row)
		if err != nil {
			return domain.VerificationArtifact{}, err
		}
		return *a, nil
	})
	if err != nil {
		return nil, dbError(ErrMsgFailedToSaveArtifact, err)
	}
	return expired, nil
}

// SetImageURL records where the rendered QR image was uploaded
func (r *VerificationRepository) SetImageURL(ctx context.Context, id, url string) error {
	if _, err := r.db.Exec(ctx, `UPDATE verification_artifacts SET image_url = $2 WHERE id = $1`, id, url); err != nil {
		return dbError(ErrMsgFailedToSaveArtifact, err)
	}
	return nil
}
