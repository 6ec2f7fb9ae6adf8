package invite

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/event"
	"github.com/osse101/DreamJournal_Go/internal/logger"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

// Service implements invite issuance and the landing flow
type Service interface {
	Resolve(ctx context.Context, token string) (*domain.InviteResolution, error)
	Redeem(ctx context.Context, token, nickname string) (*domain.LoginResult, error)
	SyncCredential(ctx context.Context, preUserID, token string) error
	IssueInvite(ctx context.Context, nickname string) (*domain.Invite, error)
}

// SessionIssuer mints a session for an authenticated profile
type SessionIssuer interface {
	Issue(userID, nickname string) (string, time.Time, error)
}

// Deps groups the collaborators of the invite service
type Deps struct {
	Invites   repository.Invite
	Accounts  repository.Account
	Limiter   *LoginLimiter
	Codec     *TokenCodec
	Sessions  SessionIssuer
	Publisher event.Publisher
	Secret    string
	BaseURL   string
	Clock     func() time.Time
}

type service struct {
	invites   repository.Invite
	accounts  repository.Account
	limiter   *LoginLimiter
	codec     *TokenCodec
	sessions  SessionIssuer
	publisher event.Publisher
	machine   *Machine
	secret    []byte
	baseURL   string
	clock     func() time.Time
	hashCost  int
}

// NewService creates a new invite service
func NewService(d Deps) Service {
	clock := d.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		invites:   d.Invites,
		accounts:  d.Accounts,
		limiter:   d.Limiter,
		codec:     d.Codec,
		sessions:  d.Sessions,
		publisher: d.Publisher,
		machine:   NewMachine(),
		secret:    []byte(d.Secret),
		baseURL:   d.BaseURL,
		clock:     clock,
		hashCost:  bcrypt.DefaultCost,
	}
}

// lookup finds the invite behind token: exact stored token first, then the decoded id.
// Expiry only applies to invites nobody has claimed yet.
func (s *service) lookup(ctx context.Context, token string) (*domain.PreUser, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrInviteNotFound
	}

	var decoded *domain.PreUser
	p, err := s.invites.GetPreUserByToken(ctx, token)
	switch {
	case err == nil:
		decoded = p
	case !errors.Is(err, domain.ErrInviteNotFound):
		return nil, err
	}

	tok, decErr := s.codec.Decode(token)
	if decoded == nil {
		if decErr != nil {
			return nil, decErr
		}
		if decoded, err = s.invites.GetPreUser(ctx, tok.PreUserID); err != nil {
			return nil, err
		}
		// A signed invite is only reachable through its own signed token.
		if tok.Legacy && IsSigned(decoded.Token) {
			return nil, domain.ErrInviteNotFound
		}
	}

	if !decoded.IsUsed && decErr == nil && s.codec.Expired(tok) {
		return nil, domain.ErrInviteExpired
	}
	return decoded, nil
}

// Resolve reports where a token leads without changing anything
func (s *service) Resolve(ctx context.Context, token string) (*domain.InviteResolution, error) {
	f := s.machine.start()
	if err := f.fire(TriggerTokenReceived); err != nil {
		return nil, err
	}

	p, err := s.lookup(ctx, token)
	if err != nil {
		if ferr := f.fire(TriggerTokenUnknown); ferr != nil {
			return nil, ferr
		}
		return &domain.InviteResolution{State: string(f.state)}, err
	}

	trigger := TriggerInviteUnused
	if p.IsUsed {
		trigger = TriggerInviteUsed
	}
	if err := f.fire(trigger); err != nil {
		return nil, err
	}

	return &domain.InviteResolution{
		State:        string(f.state),
		PreUserID:    p.ID,
		NicknameHint: p.Nickname,
		IsUsed:       p.IsUsed,
		UsedBy:       p.UsedBy,
	}, nil
}

// Redeem walks the landing flow to an authenticated session.
// A used invite always logs into its linked profile.
func (s *service) Redeem(ctx context.Context, token, nickname string) (*domain.LoginResult, error) {
	log := logger.FromContext(ctx)
	f := s.machine.start()
	if err := f.fire(TriggerTokenReceived); err != nil {
		return nil, err
	}

	p, err := s.lookup(ctx, token)
	if err != nil {
		return nil, err
	}

	if p.IsUsed {
		if err := f.fire(TriggerInviteUsed); err != nil {
			return nil, err
		}
		return s.repeatUse(ctx, f, p)
	}

	if err := f.fire(TriggerInviteUnused); err != nil {
		return nil, err
	}

	profile, claimed, err := s.firstUse(ctx, p, nickname)
	if err != nil {
		return s.exhausted(f, err)
	}
	if claimed != nil {
		log.Info(LogMsgInviteRaceLost, "pre_user_id", p.ID)
		if err := f.fire(TriggerRaceLost); err != nil {
			return nil, err
		}
		return s.repeatUse(ctx, f, claimed)
	}

	log.Info(LogMsgInviteFirstUse, "pre_user_id", p.ID, "user_id", profile.ID)
	return s.issue(ctx, f, profile, domain.LoginPathInviteFirstUse, true)
}

// firstUse creates the profile, counts its first login and claims the invite in
// one transaction. When another request claimed the invite first it returns the
// re-read invite instead.
func (s *service) firstUse(ctx context.Context, p *domain.PreUser, nickname string) (*domain.Profile, *domain.PreUser, error) {
	if strings.TrimSpace(nickname) == "" {
		nickname = p.Nickname
	}
	name, err := domain.NormalizeNickname(nickname)
	if err != nil {
		return nil, nil, err
	}

	tx, err := s.invites.BeginInviteTx(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	locked, err := tx.GetPreUserForUpdate(ctx, p.ID)
	if err != nil {
		return nil, nil, err
	}
	if locked.IsUsed {
		return nil, locked, nil
	}

	profile := domain.NewProfile("", name)
	if err := tx.CreateProfile(ctx, profile); err != nil {
		return nil, nil, err
	}
	if err := s.limiter.AcquireWith(ctx, tx, profile.ID, s.clock()); err != nil {
		return nil, nil, err
	}

	hash, err := s.hashDerivedSecret(p.ID)
	if err != nil {
		return nil, nil, err
	}
	if err := tx.SetCredential(ctx, profile.ID, hash); err != nil {
		return nil, nil, err
	}

	marked, err := tx.MarkPreUserUsed(ctx, p.ID, profile.ID, s.clock())
	if err != nil {
		return nil, nil, err
	}
	if !marked {
		repository.SafeRollback(ctx, tx)
		claimed, err := s.invites.GetPreUser(ctx, p.ID)
		if err != nil {
			return nil, nil, err
		}
		return nil, claimed, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
	}
	return profile, nil, nil
}

func (s *service) repeatUse(ctx context.Context, f *flow, p *domain.PreUser) (*domain.LoginResult, error) {
	if p.UsedBy == nil {
		return nil, domain.ErrInviteNotLinked
	}
	profile, err := s.accounts.GetProfile(ctx, *p.UsedBy)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx, profile.ID, s.clock()); err != nil {
		return s.exhausted(f, err)
	}

	hash, err := s.hashDerivedSecret(p.ID)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.SetCredential(ctx, profile.ID, hash); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgInviteRepeatUse, "pre_user_id", p.ID, "user_id", profile.ID)
	return s.issue(ctx, f, profile, domain.LoginPathInviteRepeat, false)
}

func (s *service) exhausted(f *flow, err error) (*domain.LoginResult, error) {
	var limitErr *domain.LoginLimitError
	if !errors.As(err, &limitErr) {
		return nil, err
	}
	if ferr := f.fire(TriggerLimitExceeded); ferr != nil {
		return nil, ferr
	}
	return &domain.LoginResult{State: string(f.state)}, err
}

func (s *service) issue(ctx context.Context, f *flow, profile *domain.Profile, path string, created bool) (*domain.LoginResult, error) {
	token, expiresAt, err := s.sessions.Issue(profile.ID, profile.Nickname)
	if err != nil {
		return nil, err
	}
	if err := f.fire(TriggerSessionIssued); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewUserLoggedInEvent(profile, path, created))
	}

	return &domain.LoginResult{
		State:     string(f.state),
		Token:     token,
		ExpiresAt: expiresAt,
		Profile:   profile,
		Created:   created,
	}, nil
}

// SyncCredential rewrites the linked profile's credential from the server-keyed secret.
// The caller proves possession of the invite by presenting its stored token.
func (s *service) SyncCredential(ctx context.Context, preUserID, token string) error {
	preUserID = strings.TrimSpace(preUserID)
	token = strings.TrimSpace(token)
	if preUserID == "" || token == "" {
		return fmt.Errorf("%w: pre_user_id and token are required", domain.ErrInvalidInput)
	}

	p, err := s.invites.GetPreUser(ctx, preUserID)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(p.Token), []byte(token)) != 1 {
		return domain.ErrInviteTokenMismatch
	}
	if !p.IsUsed || p.UsedBy == nil {
		return domain.ErrInviteNotLinked
	}

	profile, err := s.accounts.GetProfile(ctx, *p.UsedBy)
	if err != nil {
		return err
	}

	hash, err := s.hashDerivedSecret(p.ID)
	if err != nil {
		return err
	}
	if err := s.accounts.SetCredential(ctx, profile.ID, hash); err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgCredentialSynced, "pre_user_id", p.ID, "user_id", profile.ID)
	return nil
}

// IssueInvite pre-registers nickname and returns a signed landing link
func (s *service) IssueInvite(ctx context.Context, nickname string) (*domain.Invite, error) {
	name, err := domain.NormalizeNickname(nickname)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	token, err := s.codec.Sign(id)
	if err != nil {
		return nil, err
	}

	p := &domain.PreUser{ID: id, Nickname: name, Token: token}
	if err := s.invites.CreatePreUser(ctx, p); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgInviteIssued, "pre_user_id", p.ID, "nickname", p.Nickname)
	return &domain.Invite{PreUser: p, Link: s.link(token)}, nil
}

func (s *service) link(token string) string {
	q := url.Values{}
	q.Set(TokenQueryParam, token)
	sep := "?"
	if strings.Contains(s.baseURL, "?") {
		sep = "&"
	}
	return s.baseURL + sep + q.Encode()
}

// DeriveSecret returns the server-keyed credential secret for an invite
func DeriveSecret(secret []byte, preUserID string) string {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(credentialContext + preUserID))
	return hex.EncodeToString(h.Sum(nil))
}

func (s *service) hashDerivedSecret(preUserID string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DeriveSecret(s.secret, preUserID)), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgHashCredential, err)
	}
	return hash, nil
}
