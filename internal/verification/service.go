package verification

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/event"
	"github.com/osse101/DreamJournal_Go/internal/logger"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

// Service manages the verification artifact lifecycle.
// generated is the only state with outgoing transitions; each artifact ends in exactly one terminal state.
type Service interface {
	Create(ctx context.Context, req domain.ArtifactRequest) (*domain.VerificationArtifact, error)
	Get(ctx context.Context, id string) (*domain.VerificationArtifact, error)
	GetOwned(ctx context.Context, userID, id string) (*domain.VerificationArtifact, error)
	Verify(ctx context.Context, payload string) (*domain.VerificationArtifact, error)
	Cancel(ctx context.Context, userID, id string) (*domain.VerificationArtifact, error)
	Expire(ctx context.Context, id string) (*domain.VerificationArtifact, error)
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
	QRImage(ctx context.Context, userID, id string) ([]byte, error)
}

// Options tunes the service; zero values fall back to defaults
type Options struct {
	Timeout  time.Duration
	Renderer Renderer
	Store    ObjectStore
	Clock    func() time.Time
}

type service struct {
	repo      repository.Verification
	publisher event.Publisher
	renderer  Renderer
	store     ObjectStore
	timeout   time.Duration
	clock     func() time.Time
}

// NewService creates a verification service
func NewService(repo repository.Verification, publisher event.Publisher, opts Options) Service {
	s := &service{
		repo:      repo,
		publisher: publisher,
		renderer:  opts.Renderer,
		store:     opts.Store,
		timeout:   opts.Timeout,
		clock:     opts.Clock,
	}
	if s.renderer == nil {
		s.renderer = NewQRRenderer(DefaultQRSize)
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return s
}

var payloadEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

func newPayload() (string, error) {
	buf := make([]byte, payloadEntropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgGeneratePayload, err)
	}
	return PayloadPrefix + strings.ToLower(payloadEncoding.EncodeToString(buf)), nil
}

// Create stores a new generated artifact and, when an object store is configured, uploads its QR image
func (s *service) Create(ctx context.Context, req domain.ArtifactRequest) (*domain.VerificationArtifact, error) {
	log := logger.FromContext(ctx)

	a := &domain.VerificationArtifact{
		Kind:   req.Kind,
		UserID: req.UserID,
		Status: domain.ArtifactStatusGenerated,
	}
	switch req.Kind {
	case domain.ArtifactKindQuest:
		if req.QuestID == "" {
			return nil, fmt.Errorf("%w: %s: quest id required", domain.ErrInvalidInput, ErrMsgInvalidRequest)
		}
		questID := req.QuestID
		a.QuestID = &questID
	case domain.ArtifactKindLevel:
		if req.TargetLevel < 1 || req.TargetLevel > domain.MaxLevel {
			return nil, fmt.Errorf("%w: %s: target level %d", domain.ErrInvalidInput, ErrMsgInvalidRequest, req.TargetLevel)
		}
		level := req.TargetLevel
		a.TargetLevel = &level
	default:
		return nil, fmt.Errorf("%w: %s: kind %q", domain.ErrInvalidInput, ErrMsgInvalidRequest, req.Kind)
	}

	payload, err := newPayload()
	if err != nil {
		return nil, err
	}
	now := s.clock()
	a.Payload = payload
	a.CreatedAt = now
	a.ExpiresAt = now.Add(s.timeout)

	if err := s.repo.CreateArtifact(ctx, a); err != nil {
		return nil, err
	}
	log.Info(LogMsgArtifactCreated, "artifact_id", a.ID, "kind", a.Kind, "user_id", a.UserID)

	if s.store != nil {
		s.uploadQR(ctx, a)
	}
	return a, nil
}

// uploadQR is best effort; the image can always be rendered on demand
func (s *service) uploadQR(ctx context.Context, a *domain.VerificationArtifact) {
	log := logger.FromContext(ctx)

	png, err := s.renderer.Render(a.Payload)
	if err != nil {
		log.Warn(LogMsgQRUploadFailed, "artifact_id", a.ID, "error", err)
		return
	}
	url, err := s.store.Put(ctx, QRObjectKeyPrefix+a.ID+QRObjectKeySuffix, png, QRContentType)
	if err != nil {
		log.Warn(LogMsgQRUploadFailed, "artifact_id", a.ID, "error", err)
		return
	}
	if err := s.repo.SetImageURL(ctx, a.ID, url); err != nil {
		log.Warn(LogMsgQRImageURLSaveFailed, "artifact_id", a.ID, "error", err)
		return
	}
	a.ImageURL = &url
}

// Get returns the artifact, expiring it first if its deadline has passed
func (s *service) Get(ctx context.Context, id string) (*domain.VerificationArtifact, error) {
	a, err := s.repo.GetArtifact(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.ExpiredAt(s.clock()) {
		return s.Expire(ctx, id)
	}
	return a, nil
}

// GetOwned is Get restricted to the artifact's owner; other users see not-found
func (s *service) GetOwned(ctx context.Context, userID, id string) (*domain.VerificationArtifact, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, domain.ErrArtifactNotFound
	}
	return a, nil
}

// Verify is the scanner entry point
func (s *service) Verify(ctx context.Context, payload string) (*domain.VerificationArtifact, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrInvalidInput)
	}

	a, err := s.repo.GetArtifactByPayload(ctx, payload)
	if err != nil {
		return nil, err
	}
	if a.ExpiredAt(s.clock()) {
		if _, err := s.Expire(ctx, a.ID); err != nil {
			return nil, err
		}
		return nil, domain.ErrVerificationExpired
	}
	if a.Status == domain.ArtifactStatusExpired {
		return nil, domain.ErrVerificationExpired
	}
	if a.Status.Terminal() {
		return nil, domain.ErrArtifactAlreadyResolved
	}

	verified, err := s.transition(ctx, a.ID, domain.ArtifactStatusVerified)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgArtifactVerified, "artifact_id", verified.ID, "user_id", verified.UserID)
	return verified, nil
}

// Cancel abandons a pending artifact; nothing else is mutated
func (s *service) Cancel(ctx context.Context, userID, id string) (*domain.VerificationArtifact, error) {
	a, err := s.GetOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if a.Status.Terminal() {
		return nil, resolvedError(a.Status)
	}

	cancelled, err := s.transition(ctx, id, domain.ArtifactStatusCancelled)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgArtifactCancelled, "artifact_id", id, "user_id", userID)
	return cancelled, nil
}

// Expire forces a pending artifact to expired. An artifact that already
// reached a terminal state is returned unchanged.
func (s *service) Expire(ctx context.Context, id string) (*domain.VerificationArtifact, error) {
	a, err := s.transition(ctx, id, domain.ArtifactStatusExpired)
	if errors.Is(err, domain.ErrArtifactAlreadyResolved) {
		return s.repo.GetArtifact(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgArtifactExpired, "artifact_id", id)
	return a, nil
}

// ExpireStale is the bulk sweep run by the expiry worker
func (s *service) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	expired, err := s.repo.ExpireStale(ctx, now)
	if err != nil {
		return 0, err
	}
	for i := range expired {
		s.publish(ctx, event.NewVerificationStatusChangedEvent(&expired[i]))
	}
	if len(expired) > 0 {
		logger.FromContext(ctx).Info(LogMsgStaleArtifactsSwept, "count", len(expired))
	}
	return int64(len(expired)), nil
}

// QRImage renders the owner's artifact payload as a PNG
func (s *service) QRImage(ctx context.Context, userID, id string) ([]byte, error) {
	a, err := s.GetOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(a.Payload)
}

func (s *service) transition(ctx context.Context, id string, to domain.ArtifactStatus) (*domain.VerificationArtifact, error) {
	a, err := s.repo.TransitionArtifact(ctx, id, to, s.clock())
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event.NewVerificationStatusChangedEvent(a))
	return a, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}

// resolvedError maps a terminal status to the error a caller acting on it should see
func resolvedError(status domain.ArtifactStatus) error {
	switch status {
	case domain.ArtifactStatusExpired:
		return domain.ErrVerificationExpired
	case domain.ArtifactStatusCancelled:
		return domain.ErrVerificationCancelled
	default:
		return domain.ErrArtifactAlreadyResolved
	}
}
