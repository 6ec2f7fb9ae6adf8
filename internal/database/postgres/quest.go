package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

// QuestRepository implements repository.Quest
type QuestRepository struct {
	db *pgxpool.Pool
}

// NewQuestRepository creates a new quest repository
func NewQuestRepository(db *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{db: db}
}

// CompletedQuestIDs returns the quests the user cannot complete again on day
func (r *QuestRepository) CompletedQuestIDs(ctx context.Context, userID string, day time.Time) (map[string]bool, error) {
	completed := make(map[string]bool)
	if !validUUID(userID) {
		return completed, nil
	}
	query := `
		SELECT DISTINCT quest_id
		FROM user_quests
		WHERE user_id = $1 AND (NOT repeatable OR completed_on = $2)
	`
	rows, err := r.db.Query(ctx, query, userID, day)
	if err != nil {
		return nil, dbError(ErrMsgFailedToListCompletions, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dbError(ErrMsgFailedToListCompletions, err)
	}
	for _, id := range ids {
		completed[id] = true
	}
	return completed, nil
}

// CountCompletionsOn counts completion records for a login day
func (r *QuestRepository) CountCompletionsOn(ctx context.Context, day time.Time) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_quests WHERE completed_on = $1`, day).Scan(&n); err != nil {
		return 0, dbError(ErrMsgFailedToListCompletions, err)
	}
	return n, nil
}

// BeginQuestTx starts a transaction for applying a quest reward
func (r *QuestRepository) BeginQuestTx(ctx context.Context) (repository.QuestTx, error) {
	return beginTx(ctx, r.db)
}

// ---- pgTx quest operations ----

// ApplyReward credits a reward and debits any coin cost in a single update.
// The CHECK constraints reject a negative coin balance.
func (t *pgTx) ApplyReward(ctx context.Context, userID string, reward domain.Reward, style domain.PlayStyle) (*domain.Profile, error) {
	query := `
		UPDATE profiles
		SET inspiration = inspiration + $2,
		    yc = yc + $3,
		    coins = coins - $4,
		    play_style = $5,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + profileColumns
	p, err := scanProfile(t.tx.QueryRow(ctx, query, userID, reward.Inspiration, reward.YC, reward.CoinsSpent, string(style)))
	if err != nil {
		if pgErrorCode(err) == PgErrorCodeCheckViolation {
			return nil, domain.ErrInsufficientCoins
		}
		return nil, notFoundOr(err, domain.ErrUserNotFound, ErrMsgFailedToApplyReward)
	}
	return p, nil
}

// InsertCompletion appends a completion record; the partial unique indexes reject duplicates
func (t *pgTx) InsertCompletion(ctx context.Context, c *domain.QuestCompletion, repeatable bool) error {
	query := `
		INSERT INTO user_quests (user_id, quest_id, status, repeatable, completed_on, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text
	`
	if c.Status == "" {
		c.Status = domain.CompletionStatusCompleted
	}
	err := t.tx.QueryRow(ctx, query, c.UserID, c.QuestID, c.Status, repeatable, c.CompletedOn, c.CompletedAt).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrQuestAlreadyCompleted
		}
		return dbError(ErrMsgFailedToInsertCompletion, err)
	}
	return nil
}

// InsertQuestPayment records the coin cost paid for a quest
func (t *pgTx) InsertQuestPayment(ctx context.Context, userID, questID string, coins int) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO quest_payments (user_id, quest_id, cost_coins) VALUES ($1, $2, $3)`,
		userID, questID, coins,
	)
	if err != nil {
		return dbError(ErrMsgFailedToInsertPayment, err)
	}
	return nil
}
