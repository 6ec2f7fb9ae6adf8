package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

// InviteRepository implements repository.Invite and repository.LoginLimit
type InviteRepository struct {
	db *pgxpool.Pool
}

// NewInviteRepository creates a new invite repository
func NewInviteRepository(db *pgxpool.Pool) *InviteRepository {
	return &InviteRepository{db: db}
}

func scanPreUser(row pgx.Row) (*domain.PreUser, error) {
	var p domain.PreUser
	err := row.Scan(&p.ID, &p.Nickname, &p.Token, &p.IsUsed, &p.UsedBy, &p.UsedAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func getPreUser(ctx context.Context, q querier, where string, arg any) (*domain.PreUser, error) {
	p, err := scanPreUser(q.QueryRow(ctx, `SELECT `+preUserColumns+` FROM pre_users WHERE `+where, arg))
	if err != nil {
		return nil, notFoundOr(err, domain.ErrInviteNotFound, ErrMsgFailedToGetPreUser)
	}
	return p, nil
}

// CreatePreUser inserts an invite record. If ID is empty the database generates it.
func (r *InviteRepository) CreatePreUser(ctx context.Context, p *domain.PreUser) error {
	query := `
		INSERT INTO pre_users (id, nickname, token)
		VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3)
		RETURNING id::text, created_at
	`
	if err := r.db.QueryRow(ctx, query, p.ID, p.Nickname, p.Token).Scan(&p.ID, &p.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateKey
		}
		return dbError(ErrMsgFailedToSavePreUser, err)
	}
	return nil
}

// GetPreUser retrieves an invite by id
func (r *InviteRepository) GetPreUser(ctx context.Context, id string) (*domain.PreUser, error) {
	if !validUUID(id) {
		return nil, domain.ErrInviteNotFound
	}
	return getPreUser(ctx, r.db, `id = $1`, id)
}

// GetPreUserByToken retrieves an invite by exact token match
func (r *InviteRepository) GetPreUserByToken(ctx context.Context, token string) (*domain.PreUser, error) {
	return getPreUser(ctx, r.db, `token = $1`, token)
}

// BeginInviteTx starts a transaction for first-use redemption
func (r *InviteRepository) BeginInviteTx(ctx context.Context) (repository.InviteTx, error) {
	return beginTx(ctx, r.db)
}

// IncrementLoginCount atomically bumps the day's counter while it is below limit
func (r *InviteRepository) IncrementLoginCount(ctx context.Context, userID string, day time.Time, limit int) (int, bool, error) {
	return incrementLoginCount(ctx, r.db, userID, day, limit)
}

// GetLoginCount returns how many logins the user made on day
func (r *InviteRepository) GetLoginCount(ctx context.Context, userID string, day time.Time) (int, error) {
	return getLoginCount(ctx, r.db, userID, day)
}

func incrementLoginCount(ctx context.Context, q querier, userID string, day time.Time, limit int) (int, bool, error) {
	if !validUUID(userID) {
		return 0, false, domain.ErrUserNotFound
	}
	query := `
		INSERT INTO login_counters (user_id, day, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, day) DO UPDATE SET count = login_counters.count + 1
		WHERE $3 <= 0 OR login_counters.count < $3
		RETURNING count
	`
	var count int
	err := q.QueryRow(ctx, query, userID, day, limit).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			current, gerr := getLoginCount(ctx, q, userID, day)
			if gerr != nil {
				return 0, false, gerr
			}
			return current, false, nil
		}
		return 0, false, dbError(ErrMsgFailedToCountLogins, err)
	}
	return count, true, nil
}

func getLoginCount(ctx context.Context, q querier, userID string, day time.Time) (int, error) {
	var count int
	err := q.QueryRow(ctx, `SELECT count FROM login_counters WHERE user_id = $1 AND day = $2`, userID, day).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, dbError(ErrMsgFailedToCountLogins, err)
	}
	return count, nil
}

// PurgeLoginCountersBefore deletes counters for days before day
func (r *InviteRepository) PurgeLoginCountersBefore(ctx context.Context, day time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM login_counters WHERE day < $1`, day)
	if err != nil {
		return 0, dbError(ErrMsgFailedToCountLogins, err)
	}
	return tag.RowsAffected(), nil
}

// ---- pgTx invite operations ----

// GetPreUserForUpdate locks and reads an invite row
func (t *pgTx) GetPreUserForUpdate(ctx context.Context, id string) (*domain.PreUser, error) {
	if !validUUID(id) {
		return nil, domain.ErrInviteNotFound
	}
	return getPreUser(ctx, t.tx, `id = $1 FOR UPDATE`, id)
}

// MarkPreUserUsed links an unused invite to a profile; used_by never changes afterwards
func (t *pgTx) MarkPreUserUsed(ctx context.Context, id, userID string, at time.Time) (bool, error) {
	tag, err := t.tx.Exec(ctx,
		`UPDATE pre_users SET is_used = TRUE, used_by = $2, used_at = $3 WHERE id = $1 AND is_used = FALSE`,
		id, userID, at,
	)
	if err != nil {
		return false, dbError(ErrMsgFailedToSavePreUser, err)
	}
	return tag.RowsAffected() == 1, nil
}

// IncrementLoginCount counts a login inside the transaction, so a first-use
// profile and its first login commit together
func (t *pgTx) IncrementLoginCount(ctx context.Context, userID string, day time.Time, limit int) (int, bool, error) {
	return incrementLoginCount(ctx, t.tx, userID, day, limit)
}
