package repository

import (
	"context"
	"time"

	"github.com/osse101/DreamJournal_Go/internal/domain"
)

// Admin defines data access for guild admin reporting and auditing.
type Admin interface {
	Dashboard(ctx context.Context, day time.Time) (*domain.Dashboard, error)
	// AppendAudit records an entry and prunes everything beyond the retention window.
	AppendAudit(ctx context.Context, entry *domain.AuditEntry, retain int) error
	ListAudit(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}
