package ports

import (
	"context"

	"github.com/openblog/blog-api/internal/core/domain"
)

// ListCommentsFilter carries query parameters for listing a post's comments.
type ListCommentsFilter struct {
	PostID       string
	ParentID     string // optional: only direct replies to this comment
	ApprovedOnly bool   // hide unapproved comments from regular callers
	Page         int
	Limit        int
}

// CommentRepository defines persistence for comments.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByPost(ctx context.Context, filter ListCommentsFilter) ([]*domain.Comment, int64, error)
	Update(ctx context.Context, c *domain.Comment) error
	Delete(ctx context.Context, id string) error
	// DeleteByPostID removes every comment on a post (post deletion cascade).
	DeleteByPostID(ctx context.Context, postID string) error
	// DeleteByUserID removes every comment written by a user (account
	// deletion cascade).
	DeleteByUserID(ctx context.Context, userID string) error
}
