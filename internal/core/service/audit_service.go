package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/ports"
)

const defaultActivityLimit = 50

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService backed by the given repository.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists one audit event. Called from dispatcher workers, never from
// the request path.
func (s *auditService) Record(ctx context.Context, event ports.AuditEvent) error {
	rec := &domain.AuditRecord{
		ID:         uuid.NewString(),
		ActorID:    event.ActorID,
		Action:     event.Action,
		Resource:   event.Resource,
		ResourceID: event.ResourceID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		s.log.Error().Err(err).Str("resource", event.Resource).Str("action", event.Action).Msg("failed to persist audit record")
		return err
	}
	return nil
}

func (s *auditService) Recent(ctx context.Context, limit int) ([]*domain.AuditRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultActivityLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
