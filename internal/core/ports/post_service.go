package ports

import (
	"context"

	"github.com/openblog/blog-api/internal/core/domain"
)

// ListPostsInput carries parameters for the post list endpoint.
type ListPostsInput struct {
	CategoryID string
	UserID     string
	Page       int
	Limit      int
}

// ListPostsResult is a page of posts plus pagination metadata.
type ListPostsResult struct {
	Items      []*domain.Post
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CreatePostInput carries the fields a caller supplies when creating a post.
// The owner is always the caller; id and timestamps are system-assigned.
type CreatePostInput struct {
	Title      string
	Body       string
	CategoryID string
}

// ReplacePostInput is the full-replace update (PUT): every mutable field is
// resubmitted.
type ReplacePostInput struct {
	Title      string
	Body       string
	CategoryID string
}

// PatchPostInput is the partial-merge update (PATCH): nil fields keep their
// stored value.
type PatchPostInput struct {
	Title      *string
	Body       *string
	CategoryID *string
}

// PostService defines use-case operations for posts. Mutations check ownership
// (owner or admin) before touching the store; deletes cascade to comments.
type PostService interface {
	List(ctx context.Context, in ListPostsInput) (*ListPostsResult, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	Create(ctx context.Context, caller Caller, in CreatePostInput) (*domain.Post, error)
	Replace(ctx context.Context, caller Caller, id string, in ReplacePostInput) (*domain.Post, error)
	Patch(ctx context.Context, caller Caller, id string, in PatchPostInput) (*domain.Post, error)
	Delete(ctx context.Context, caller Caller, id string) error
}
