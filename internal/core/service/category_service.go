package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/ports"
)

// CategoryService implements category CRUD. Reads are public; mutations are
// admin-only.
type CategoryService struct {
	categories ports.CategoryRepository
	sink       AuditSink
	log        zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, sink AuditSink, log zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, sink: sink, log: log}
}

func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, caller ports.Caller, in ports.UpsertCategoryInput) (*domain.Category, error) {
	if caller.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	category := &domain.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.log.Info().Str("category_id", category.ID).Str("name", name).Msg("category created")
	emit(s.sink, ports.AuditEvent{ActorID: caller.ID, Action: "create", Resource: "category", ResourceID: category.ID})
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, caller ports.Caller, id string, in ports.UpsertCategoryInput) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrValidation
	}
	category.Name = name
	category.Description = in.Description
	category.UpdatedAt = time.Now().UTC()

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	emit(s.sink, ports.AuditEvent{ActorID: caller.ID, Action: "update", Resource: "category", ResourceID: id})
	return category, nil
}

// Delete removes the category. Posts keep their category_id reference; the
// store treats a dangling category as uncategorized rather than blocking the
// delete, since categories label posts but never own them.
func (s *CategoryService) Delete(ctx context.Context, caller ports.Caller, id string) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}
	if caller.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	emit(s.sink, ports.AuditEvent{ActorID: caller.ID, Action: "delete", Resource: "category", ResourceID: id})
	return nil
}
