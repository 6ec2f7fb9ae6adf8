package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error(ErrMsgFailedToRollback, "error", err)
	}
}

// ---- Common Helper Functions ----

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// validUUID reports whether s parses as a UUID. Ids that are not UUIDs can
// never match a row, so callers map them straight to not-found.
func validUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// dbError wraps a driver error so services can match domain.ErrDatabaseError.
func dbError(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, domain.ErrDatabaseError, err)
}

// notFoundOr maps pgx.ErrNoRows to notFound and wraps anything else.
func notFoundOr(err error, notFound error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	return dbError(msg, err)
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == PgErrorCodeUniqueViolation
}

// beginTx starts a new transaction wrapped in pgTx.
// Use SafeRollback (or pgTx.Rollback) in defer to ensure proper cleanup.
func beginTx(ctx context.Context, db *pgxpool.Pool) (*pgTx, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, dbError(ErrMsgFailedToBeginTransaction, err)
	}
	return &pgTx{tx: tx}, nil
}

// pgTx implements every repository transaction interface over one pgx.Tx.
type pgTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *pgTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return dbError(ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// Rollback aborts the transaction; rolling back a committed transaction returns pgx.ErrTxClosed.
func (t *pgTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// ---- End Common Helper Functions ----
