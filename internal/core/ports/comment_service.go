package ports

import (
	"context"

	"github.com/openblog/blog-api/internal/core/domain"
)

// ListCommentsInput carries parameters for listing a post's comments.
type ListCommentsInput struct {
	PostID string
	Page   int
	Limit  int
}

// ListCommentsResult is a page of comments plus pagination metadata.
type ListCommentsResult struct {
	Items      []*domain.Comment
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CreateCommentInput carries the caller-supplied comment fields. ParentID, if
// set, must reference a comment on the same post.
type CreateCommentInput struct {
	Body     string
	ParentID string
}

// CommentService defines use-case operations for comments. All operations are
// scoped to a post: a comment id that exists but belongs to a different post
// is reported as not found.
type CommentService interface {
	// ListByPost returns approved comments; moderators and admins also see
	// unapproved ones.
	ListByPost(ctx context.Context, caller Caller, in ListCommentsInput) (*ListCommentsResult, error)
	Get(ctx context.Context, caller Caller, postID, commentID string) (*domain.Comment, error)
	Create(ctx context.Context, caller Caller, postID string, in CreateCommentInput) (*domain.Comment, error)
	// Update changes the body only; owner or admin.
	Update(ctx context.Context, caller Caller, postID, commentID, body string) (*domain.Comment, error)
	Delete(ctx context.Context, caller Caller, postID, commentID string) error
	// Moderate toggles the approved flag; moderator or admin, ownership
	// irrelevant.
	Moderate(ctx context.Context, caller Caller, commentID string, approved bool) (*domain.Comment, error)
}
