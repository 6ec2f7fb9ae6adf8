package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/event"
	"github.com/osse101/DreamJournal_Go/internal/logger"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

// Service backs the guild admin panel
type Service interface {
	ListQuests(ctx context.Context) ([]domain.Quest, error)
	CreateQuest(ctx context.Context, actor string, in QuestInput) (*domain.Quest, error)
	UpdateQuest(ctx context.Context, actor, id string, in QuestInput) (*domain.Quest, error)
	DeleteQuest(ctx context.Context, actor, id string) error

	ListShopItems(ctx context.Context) ([]domain.ShopItem, error)
	CreateShopItem(ctx context.Context, actor string, in ShopItemInput) (*domain.ShopItem, error)
	UpdateShopItem(ctx context.Context, actor, id string, in ShopItemInput) (*domain.ShopItem, error)
	DeleteShopItem(ctx context.Context, actor, id string) error

	ListUsers(ctx context.Context, limit, offset int) ([]domain.UserSummary, error)
	ListLevels(ctx context.Context) []domain.LevelInfo
	UpdateLevel(ctx context.Context, actor string, level int, in LevelInput) (*domain.LevelInfo, error)
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
	AuditLog(ctx context.Context, limit int) ([]domain.AuditEntry, error)

	IssueInvite(ctx context.Context, actor, nickname string) (*domain.Invite, error)
	VerifyArtifact(ctx context.Context, actor, payload string) (*domain.VerificationArtifact, error)
}

// UserLister pages through profiles
type UserLister interface {
	ListUsers(ctx context.Context, limit, offset int) ([]domain.UserSummary, error)
}

// LevelTable is the cached level table
type LevelTable interface {
	Levels(ctx context.Context) []domain.LevelInfo
	InvalidateAll()
}

// InviteIssuer creates invites
type InviteIssuer interface {
	IssueInvite(ctx context.Context, nickname string) (*domain.Invite, error)
}

// Scanner resolves a scanned verification payload
type Scanner interface {
	Verify(ctx context.Context, payload string) (*domain.VerificationArtifact, error)
}

// Deps groups the collaborators of the admin service
type Deps struct {
	Catalog   repository.Catalog
	Admin     repository.Admin
	Users     UserLister
	Levels    LevelTable
	Invites   InviteIssuer
	Scanner   Scanner
	Publisher event.Publisher
	Day       domain.DayBoundary
	Clock     func() time.Time
}

type service struct {
	catalog   repository.Catalog
	admin     repository.Admin
	users     UserLister
	levels    LevelTable
	invites   InviteIssuer
	scanner   Scanner
	publisher event.Publisher
	day       domain.DayBoundary
	clock     func() time.Time
}

// NewService creates a new admin service
func NewService(d Deps) Service {
	clock := d.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		catalog:   d.Catalog,
		admin:     d.Admin,
		users:     d.Users,
		levels:    d.Levels,
		invites:   d.Invites,
		scanner:   d.Scanner,
		publisher: d.Publisher,
		day:       d.Day,
		clock:     clock,
	}
}

// audit records a mutation. A failed write is logged and never fails the mutation.
func (s *service) audit(ctx context.Context, actor, action, target string) {
	if strings.TrimSpace(actor) == "" {
		actor = domain.DefaultAdminActor
	}
	entry := &domain.AuditEntry{Actor: actor, Action: action, Target: target}
	if err := s.admin.AppendAudit(ctx, entry, domain.AuditLogRetention); err != nil {
		logger.FromContext(ctx).Warn(LogMsgAuditWriteFailed, "action", action, "target", target, "error", err)
	}
}

func (s *service) catalogChanged(ctx context.Context, actor, action, entity, id string) {
	logger.FromContext(ctx).Info(LogMsgCatalogMutated, "entity", entity, "id", id, "action", action)
	s.audit(ctx, actor, action, id)
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewCatalogChangedEvent(entity, id, action))
	}
}

// uniqueKey returns base, or base-2, base-3... whichever is free
func uniqueKey(ctx context.Context, base string, exists func(context.Context, string) (bool, error)) (string, error) {
	for n := 1; n <= maxKeyAttempts; n++ {
		key := base
		if n > 1 {
			key = base + "-" + strconv.Itoa(n)
		}
		taken, err := exists(ctx, key)
		if err != nil {
			return "", err
		}
		if !taken {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: "+ErrMsgKeyExhausted, domain.ErrDuplicateKey, base)
}

func keyFor(explicit, title, fallback string) string {
	if k := strings.TrimSpace(explicit); k != "" {
		return k
	}
	if k := slug.Make(title); k != "" {
		return k
	}
	return fallback
}

// ListQuests returns every quest template, inactive ones included
func (s *service) ListQuests(ctx context.Context) ([]domain.Quest, error) {
	return s.catalog.ListQuests(ctx, true)
}

// CreateQuest adds a quest template. Without an explicit id the key is slugged from the title.
func (s *service) CreateQuest(ctx context.Context, actor string, in QuestInput) (*domain.Quest, error) {
	if err := check(in); err != nil {
		return nil, err
	}

	q := &domain.Quest{IsActive: true}
	if err := in.apply(q); err != nil {
		return nil, err
	}

	if explicit := strings.TrimSpace(in.ID); explicit != "" {
		q.ID = explicit
	} else {
		key, err := uniqueKey(ctx, keyFor("", in.Title, fallbackQuestKey), s.catalog.QuestExists)
		if err != nil {
			return nil, err
		}
		q.ID = key
	}

	if err := s.catalog.CreateQuest(ctx, q); err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, actor, ActionCreateQuest, EntityQuest, q.ID)
	return q, nil
}

// UpdateQuest replaces the editable fields of an existing quest
func (s *service) UpdateQuest(ctx context.Context, actor, id string, in QuestInput) (*domain.Quest, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	q, err := s.catalog.GetQuest(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(q); err != nil {
		return nil, err
	}
	if err := s.catalog.UpdateQuest(ctx, q); err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, actor, ActionUpdateQuest, EntityQuest, q.ID)
	return q, nil
}

// DeleteQuest removes a quest template
func (s *service) DeleteQuest(ctx context.Context, actor, id string) error {
	if err := s.catalog.DeleteQuest(ctx, id); err != nil {
		return err
	}
	s.catalogChanged(ctx, actor, ActionDeleteQuest, EntityQuest, id)
	return nil
}

// ListShopItems returns every shop item, inactive ones included
func (s *service) ListShopItems(ctx context.Context) ([]domain.ShopItem, error) {
	return s.catalog.ListShopItems(ctx, true)
}

// CreateShopItem adds a shop item, defaulting stock to domain.DefaultShopStock
func (s *service) CreateShopItem(ctx context.Context, actor string, in ShopItemInput) (*domain.ShopItem, error) {
	if err := check(in); err != nil {
		return nil, err
	}

	item := &domain.ShopItem{Stock: domain.DefaultShopStock, IsActive: true}
	in.apply(item)

	if explicit := strings.TrimSpace(in.ID); explicit != "" {
		item.ID = explicit
	} else {
		key, err := uniqueKey(ctx, keyFor("", in.Title, fallbackShopItemKey), s.catalog.ShopItemExists)
		if err != nil {
			return nil, err
		}
		item.ID = key
	}

	if err := s.catalog.CreateShopItem(ctx, item); err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, actor, ActionCreateShopItem, EntityShopItem, item.ID)
	return item, nil
}

// UpdateShopItem replaces the editable fields of an existing item
func (s *service) UpdateShopItem(ctx context.Context, actor, id string, in ShopItemInput) (*domain.ShopItem, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	item, err := s.catalog.GetShopItem(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(item)
	if err := s.catalog.UpdateShopItem(ctx, item); err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, actor, ActionUpdateShopItem, EntityShopItem, item.ID)
	return item, nil
}

// DeleteShopItem removes a shop item
func (s *service) DeleteShopItem(ctx context.Context, actor, id string) error {
	if err := s.catalog.DeleteShopItem(ctx, id); err != nil {
		return err
	}
	s.catalogChanged(ctx, actor, ActionDeleteShopItem, EntityShopItem, id)
	return nil
}

// ListUsers pages through profiles with bounded limits
func (s *service) ListUsers(ctx context.Context, limit, offset int) ([]domain.UserSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)
	offset = max(offset, 0)
	return s.users.ListUsers(ctx, limit, offset)
}

// ListLevels returns the level table
func (s *service) ListLevels(ctx context.Context) []domain.LevelInfo {
	return s.levels.Levels(ctx)
}

// UpdateLevel rewrites one level row and drops the cached table
func (s *service) UpdateLevel(ctx context.Context, actor string, level int, in LevelInput) (*domain.LevelInfo, error) {
	if level < 1 || level > domain.MaxLevel {
		return nil, fmt.Errorf("%w: level must be 1-%d", domain.ErrInvalidInput, domain.MaxLevel)
	}
	if err := check(in); err != nil {
		return nil, err
	}

	info := &domain.LevelInfo{
		Level:               level,
		Title:               in.Title,
		TitleEN:             in.TitleEN,
		Realm:               in.Realm,
		RequiredInspiration: in.RequiredInspiration,
		Exam:                in.Exam,
		Perks:               in.Perks,
	}
	if info.Perks == nil {
		info.Perks = []string{}
	}
	if err := s.catalog.UpsertLevel(ctx, info); err != nil {
		return nil, err
	}
	s.levels.InvalidateAll()
	s.catalogChanged(ctx, actor, ActionUpdateLevel, EntityLevel, strconv.Itoa(level))
	return info, nil
}

// Dashboard summarises activity for the current login day
func (s *service) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	return s.admin.Dashboard(ctx, s.day.Day(s.clock()))
}

// AuditLog returns the newest audit entries
func (s *service) AuditLog(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 || limit > domain.AuditLogRetention {
		limit = DefaultAuditLimit
	}
	return s.admin.ListAudit(ctx, limit)
}

// IssueInvite pre-registers a nickname
func (s *service) IssueInvite(ctx context.Context, actor, nickname string) (*domain.Invite, error) {
	inv, err := s.invites.IssueInvite(ctx, nickname)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, actor, ActionIssueInvite, inv.PreUser.ID)
	return inv, nil
}

// VerifyArtifact is the staff scanner
func (s *service) VerifyArtifact(ctx context.Context, actor, payload string) (*domain.VerificationArtifact, error) {
	a, err := s.scanner.Verify(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, actor, ActionVerifyArtifact, a.ID)
	return a, nil
}
