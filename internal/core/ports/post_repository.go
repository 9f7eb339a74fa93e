package ports

import (
	"context"

	"github.com/openblog/blog-api/internal/core/domain"
)

// ListPostsFilter carries query parameters for listing posts.
type ListPostsFilter struct {
	CategoryID string // optional: filter by category
	UserID     string // optional: filter by author
	Page       int    // 1-based
	Limit      int    // capped at 100 by the service
}

// PostRepository defines persistence for posts.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, filter ListPostsFilter) ([]*domain.Post, int64, error)
	Update(ctx context.Context, p *domain.Post) error
	Delete(ctx context.Context, id string) error
	// DeleteByUserID removes all posts owned by a user (account deletion
	// cascade). Returns the ids of the removed posts so their comments can be
	// cascaded as well.
	DeleteByUserID(ctx context.Context, userID string) ([]string, error)
}
