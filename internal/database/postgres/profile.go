package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

// ProfileRepository implements repository.Profile, repository.Progression and repository.Account
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	var style string
	err := row.Scan(
		&p.ID,
		&p.Nickname,
		&p.Level,
		&p.YC,
		&p.Coins,
		&p.Inspiration,
		&p.Inventory,
		&style,
		&p.IsMaster,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.PlayStyle = domain.PlayStyle(style)
	if p.Inventory == nil {
		p.Inventory = []string{}
	}
	return &p, nil
}

func getProfile(ctx context.Context, q querier, userID string, forUpdate bool) (*domain.Profile, error) {
	if !validUUID(userID) {
		return nil, domain.ErrUserNotFound
	}
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	p, err := scanProfile(q.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, notFoundOr(err, domain.ErrUserNotFound, ErrMsgFailedToGetProfile)
	}
	return p, nil
}

func createProfile(ctx context.Context, q querier, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (nickname, level, yc, coins, inspiration, inventory, play_style, is_master)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id::text, created_at, updated_at
	`
	if p.Inventory == nil {
		p.Inventory = []string{}
	}
	err := q.QueryRow(ctx, query,
		p.Nickname,
		p.Level,
		p.YC,
		p.Coins,
		p.Inspiration,
		p.Inventory,
		string(p.PlayStyle),
		p.IsMaster,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNicknameTaken
		}
		return dbError(ErrMsgFailedToCreateProfile, err)
	}
	return nil
}

func setCredential(ctx context.Context, q querier, userID string, secretHash []byte) error {
	query := `
		INSERT INTO credentials (user_id, secret_hash, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET secret_hash = EXCLUDED.secret_hash, updated_at = NOW()
	`
	if !validUUID(userID) {
		return domain.ErrUserNotFound
	}
	if _, err := q.Exec(ctx, query, userID, secretHash); err != nil {
		if pgErrorCode(err) == PgErrorCodeForeignKeyViolation {
			return domain.ErrUserNotFound
		}
		return dbError(ErrMsgFailedToSaveCredential, err)
	}
	return nil
}

// GetProfile retrieves a profile by id
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return getProfile(ctx, r.db, userID, false)
}

// GetProfileByNickname retrieves a profile by its unique nickname
func (r *ProfileRepository) GetProfileByNickname(ctx context.Context, nickname string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE nickname = $1`
	p, err := scanProfile(r.db.QueryRow(ctx, query, nickname))
	if err != nil {
		return nil, notFoundOr(err, domain.ErrUserNotFound, ErrMsgFailedToGetProfile)
	}
	return p, nil
}

// ListProfiles returns profiles ordered by level and inspiration, highest first
func (r *ProfileRepository) ListProfiles(ctx context.Context, limit, offset int) ([]domain.UserSummary, error) {
	query := `
		SELECT id::text, nickname, level, inspiration, yc, coins, created_at
		FROM profiles
		ORDER BY level DESC, inspiration DESC, created_at
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, dbError(ErrMsgFailedToListProfiles, err)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.UserSummary, error) {
		var u domain.UserSummary
		err := row.Scan(&u.ID, &u.Nickname, &u.Level, &u.Inspiration, &u.YC, &u.Coins, &u.CreatedAt)
		return u, err
	})
	if err != nil {
		return nil, dbError(ErrMsgFailedToListProfiles, err)
	}
	return users, nil
}

// GetCredential returns the stored credential for a user
func (r *ProfileRepository) GetCredential(ctx context.Context, userID string) (*domain.Credential, error) {
	if !validUUID(userID) {
		return nil, domain.ErrInvalidCredentials
	}
	var c domain.Credential
	err := r.db.QueryRow(ctx,
		`SELECT user_id::text, secret_hash, updated_at FROM credentials WHERE user_id = $1`, userID,
	).Scan(&c.UserID, &c.SecretHash, &c.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrInvalidCredentials, ErrMsgFailedToGetCredential)
	}
	return &c, nil
}

// SetCredential creates or replaces the credential for a user
func (r *ProfileRepository) SetCredential(ctx context.Context, userID string, secretHash []byte) error {
	return setCredential(ctx, r.db, userID, secretHash)
}

// BeginAccountTx starts a transaction for creating an account
func (r *ProfileRepository) BeginAccountTx(ctx context.Context) (repository.AccountTx, error) {
	return beginTx(ctx, r.db)
}

// BeginProgressionTx starts a transaction for an ascension
func (r *ProfileRepository) BeginProgressionTx(ctx context.Context) (repository.ProgressionTx, error) {
	return beginTx(ctx, r.db)
}

// ---- pgTx profile operations ----

// GetProfileForUpdate locks and reads a profile row
func (t *pgTx) GetProfileForUpdate(ctx context.Context, userID string) (*domain.Profile, error) {
	return getProfile(ctx, t.tx, userID, true)
}

// CreateProfile inserts a profile and fills its generated fields
func (t *pgTx) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	return createProfile(ctx, t.tx, profile)
}

// SetCredential creates or replaces a credential inside the transaction
func (t *pgTx) SetCredential(ctx context.Context, userID string, secretHash []byte) error {
	return setCredential(ctx, t.tx, userID, secretHash)
}

// AscendLevel performs the guarded single-step level increment
func (t *pgTx) AscendLevel(ctx context.Context, userID string, fromLevel, threshold int) (*domain.Profile, error) {
	query := `
		UPDATE profiles
		SET level = level + 1, updated_at = NOW()
		WHERE id = $1 AND level = $2 AND inspiration >= $3 AND level < $4
		RETURNING ` + profileColumns
	p, err := scanProfile(t.tx.QueryRow(ctx, query, userID, fromLevel, threshold, domain.MaxLevel))
	if err != nil {
		return nil, notFoundOr(err, domain.ErrAscensionConflict, ErrMsgFailedToAscend)
	}
	return p, nil
}

// ConsumeArtifact marks a verified artifact as used
func (t *pgTx) ConsumeArtifact(ctx context.Context, artifactID string, at time.Time) (*domain.VerificationArtifact, error) {
	if !validUUID(artifactID) {
		return nil, domain.ErrArtifactNotFound
	}
	a, err := getArtifact(ctx, t.tx, `id = $1 FOR UPDATE`, artifactID)
	if err != nil {
		return nil, err
	}
	if a.Status != domain.ArtifactStatusVerified {
		return nil, domain.ErrArtifactNotVerified
	}
	if a.ConsumedAt != nil {
		return nil, domain.ErrArtifactConsumed
	}
	if _, err := t.tx.Exec(ctx,
		`UPDATE verification_artifacts SET consumed_at = $2 WHERE id = $1 AND consumed_at IS NULL`,
		artifactID, at,
	); err != nil {
		return nil, dbError(ErrMsgFailedToSaveArtifact, err)
	}
	a.ConsumedAt = &at
	return a, nil
}
