package ports

import (
	"context"

	"github.com/openblog/blog-api/internal/core/domain"
)

// UpsertCategoryInput carries the writable category fields.
type UpsertCategoryInput struct {
	Name        string
	Description string
}

// CategoryService defines use-case operations for categories. Reads are
// public; mutations are admin-only.
type CategoryService interface {
	List(ctx context.Context) ([]*domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, caller Caller, in UpsertCategoryInput) (*domain.Category, error)
	Update(ctx context.Context, caller Caller, id string, in UpsertCategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, caller Caller, id string) error
}
