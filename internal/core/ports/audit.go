package ports

import (
	"context"

	"github.com/openblog/blog-api/internal/core/domain"
)

// AuditEvent is the wire format handed to the audit dispatcher after a
// successful mutation.
type AuditEvent struct {
	ActorID    string
	Action     string // "create", "update", "delete", "moderate", "login", "register"
	Resource   string // "user", "post", "comment", "category"
	ResourceID string
}

// AuditRepository persists and reads back audit records.
type AuditRepository interface {
	Insert(ctx context.Context, rec *domain.AuditRecord) error
	ListRecent(ctx context.Context, limit int) ([]*domain.AuditRecord, error)
}

// AuditService turns events into stored records and serves the activity feed.
type AuditService interface {
	Record(ctx context.Context, event AuditEvent) error
	Recent(ctx context.Context, limit int) ([]*domain.AuditRecord, error)
}
