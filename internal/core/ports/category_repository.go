package ports

import (
	"context"

	"github.com/openblog/blog-api/internal/core/domain"
)

// CategoryRepository defines persistence for categories. Name uniqueness is
// enforced by the store.
type CategoryRepository interface {
	// Create returns domain.ErrCategoryExists when the name is taken.
	Create(ctx context.Context, c *domain.Category) error
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
}
