package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DreamJournal_Go/internal/domain"
)

// AdminRepository implements repository.Admin
type AdminRepository struct {
	db *pgxpool.Pool
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// Dashboard collects headline counts in one round-trip
func (r *AdminRepository) Dashboard(ctx context.Context, day time.Time) (*domain.Dashboard, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM profiles),
			(SELECT COUNT(*) FROM quest_templates),
			(SELECT COUNT(*) FROM shop_items),
			(SELECT COUNT(*) FROM user_quests WHERE completed_on = $1)
	`
	var d domain.Dashboard
	if err := r.db.QueryRow(ctx, query, day).Scan(&d.UserCount, &d.QuestCount, &d.ShopItemCount, &d.CompletedToday); err != nil {
		return nil, dbError(ErrMsgFailedToLoadDashboard, err)
	}
	return &d, nil
}

// AppendAudit writes an entry and trims the log to the newest retain rows
func (r *AdminRepository) AppendAudit(ctx context.Context, e *domain.AuditEntry, retain int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return dbError(ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	err = tx.QueryRow(ctx,
		`INSERT INTO admin_audit_logs (actor, action, target) VALUES ($1, $2, $3) RETURNING id, created_at`,
		e.Actor, e.Action, e.Target,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return dbError(ErrMsgFailedToWriteAudit, err)
	}

	if retain > 0 {
		_, err = tx.Exec(ctx, `
			DELETE FROM admin_audit_logs
			WHERE id NOT IN (SELECT id FROM admin_audit_logs ORDER BY id DESC LIMIT $1)
		`, retain)
		if err != nil {
			return dbError(ErrMsgFailedToWriteAudit, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return dbError(ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// ListAudit returns the newest entries first
func (r *AdminRepository) ListAudit(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, actor, action, target, created_at FROM admin_audit_logs ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, dbError(ErrMsgFailedToReadAudit, err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.AuditEntry])
	if err != nil {
		return nil, dbError(ErrMsgFailedToReadAudit, err)
	}
	return entries, nil
}
