package account

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/event"
	"github.com/osse101/DreamJournal_Go/internal/invite"
	"github.com/osse101/DreamJournal_Go/internal/logger"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

// Service handles nickname/password accounts
type Service interface {
	Register(ctx context.Context, nickname, password string) (*domain.LoginResult, error)
	Login(ctx context.Context, nickname, password string) (*domain.LoginResult, error)
}

type service struct {
	repo      repository.Account
	limiter   *invite.LoginLimiter
	sessions  invite.SessionIssuer
	publisher event.Publisher
	clock     func() time.Time
	hashCost  int
}

// NewService creates a new account service
func NewService(repo repository.Account, limiter *invite.LoginLimiter, sessions invite.SessionIssuer, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		limiter:   limiter,
		sessions:  sessions,
		publisher: publisher,
		clock:     time.Now,
		hashCost:  bcrypt.DefaultCost,
	}
}

func checkPassword(password string) error {
	if utf8.RuneCountInString(password) < domain.MinPasswordLength {
		return fmt.Errorf("%w: at least %d characters", domain.ErrPasswordTooShort, domain.MinPasswordLength)
	}
	return nil
}

// Register creates a profile with a password credential and logs it in
func (s *service) Register(ctx context.Context, nickname, password string) (*domain.LoginResult, error) {
	name, err := domain.NormalizeNickname(nickname)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgHashPassword, err)
	}

	tx, err := s.repo.BeginAccountTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	profile := domain.NewProfile("", name)
	if err := tx.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}
	if err := tx.SetCredential(ctx, profile.ID, hash); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
	}

	logger.FromContext(ctx).Info(LogMsgAccountRegistered, "user_id", profile.ID, "nickname", profile.Nickname)
	return s.session(ctx, profile, true)
}

// Login authenticates by nickname and password.
// Unknown nicknames and wrong passwords are indistinguishable to the caller.
func (s *service) Login(ctx context.Context, nickname, password string) (*domain.LoginResult, error) {
	log := logger.FromContext(ctx)
	name, err := domain.NormalizeNickname(nickname)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	profile, err := s.repo.GetProfileByNickname(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			log.Info(LogMsgLoginFailed, "nickname", name, "reason", "unknown nickname")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	cred, err := s.repo.GetCredential(ctx, profile.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(cred.SecretHash, []byte(password)); err != nil {
		log.Info(LogMsgLoginFailed, "user_id", profile.ID, "reason", "password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	log.Info(LogMsgLoggedIn, "user_id", profile.ID)
	return s.session(ctx, profile, false)
}

func (s *service) session(ctx context.Context, profile *domain.Profile, created bool) (*domain.LoginResult, error) {
	if err := s.limiter.Acquire(ctx, profile.ID, s.clock()); err != nil {
		if errors.Is(err, domain.ErrLoginLimitExceeded) {
			return &domain.LoginResult{State: string(invite.StateExhausted)}, err
		}
		return nil, err
	}

	token, expiresAt, err := s.sessions.Issue(profile.ID, profile.Nickname)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewUserLoggedInEvent(profile, domain.LoginPathPassword, created))
	}

	return &domain.LoginResult{
		State:     string(invite.StateAuthenticated),
		Token:     token,
		ExpiresAt: expiresAt,
		Profile:   profile,
		Created:   created,
	}, nil
}
