package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openblog/blog-api/internal/core/authz"
	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/ports"
)

// CommentService implements comment CRUD, threading, and moderation.
type CommentService struct {
	comments ports.CommentRepository
	posts    ports.PostRepository
	sink     AuditSink
	log      zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, posts ports.PostRepository, sink AuditSink, log zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, posts: posts, sink: sink, log: log}
}

// ListByPost returns the post's comments. Regular and anonymous callers only
// see approved comments; moderators and admins see everything.
func (s *CommentService) ListByPost(ctx context.Context, caller ports.Caller, in ports.ListCommentsInput) (*ports.ListCommentsResult, error) {
	if _, err := s.posts.FindByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	page, limit := normalizePage(in.Page, in.Limit)
	items, total, err := s.comments.ListByPost(ctx, ports.ListCommentsFilter{
		PostID:       in.PostID,
		ApprovedOnly: !authz.CanModerate(caller.Role),
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return nil, err
	}
	return &ports.ListCommentsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *CommentService) Get(ctx context.Context, caller ports.Caller, postID, commentID string) (*domain.Comment, error) {
	comment, err := s.commentOnPost(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	// Unapproved comments are only visible to their owner and moderation.
	if !comment.Approved && comment.UserID != caller.ID && !authz.CanModerate(caller.Role) {
		return nil, domain.ErrCommentNotFound
	}
	return comment, nil
}

// Create inserts a comment on the post, owned by the caller. A parent
// reference must name a comment on the same post; because the parent must
// already exist and parent links are immutable, a chain can never cycle.
func (s *CommentService) Create(ctx context.Context, caller ports.Caller, postID string, in ports.CreateCommentInput) (*domain.Comment, error) {
	if in.Body == "" {
		return nil, domain.ErrValidation
	}
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	if in.ParentID != "" {
		parent, err := s.comments.FindByID(ctx, in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, domain.ErrInvalidParent
		}
	}

	now := time.Now().UTC()
	comment := &domain.Comment{
		ID:        uuid.NewString(),
		Body:      in.Body,
		UserID:    caller.ID,
		PostID:    postID,
		ParentID:  in.ParentID,
		Approved:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.log.Info().Str("comment_id", comment.ID).Str("post_id", postID).Str("user_id", caller.ID).Msg("comment created")
	emit(s.sink, ports.AuditEvent{ActorID: caller.ID, Action: "create", Resource: "comment", ResourceID: comment.ID})
	return comment, nil
}

// Update changes the body only. Owner or admin.
func (s *CommentService) Update(ctx context.Context, caller ports.Caller, postID, commentID, body string) (*domain.Comment, error) {
	if body == "" {
		return nil, domain.ErrValidation
	}
	comment, err := s.commentOnPost(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if authz.Decide(authz.Input{
		CallerRole: caller.Role,
		CallerID:   caller.ID,
		OwnerID:    comment.UserID,
		Action:     authz.ActionUpdate,
	}) != authz.Allow {
		return nil, domain.ErrForbidden
	}

	comment.Body = body
	comment.UpdatedAt = time.Now().UTC()
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	emit(s.sink, ports.AuditEvent{ActorID: caller.ID, Action: "update", Resource: "comment", ResourceID: commentID})
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, caller ports.Caller, postID, commentID string) error {
	comment, err := s.commentOnPost(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if authz.Decide(authz.Input{
		CallerRole: caller.Role,
		CallerID:   caller.ID,
		OwnerID:    comment.UserID,
		Action:     authz.ActionDelete,
	}) != authz.Allow {
		return domain.ErrForbidden
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}
	emit(s.sink, ports.AuditEvent{ActorID: caller.ID, Action: "delete", Resource: "comment", ResourceID: commentID})
	return nil
}

// Moderate sets the approved flag. Moderator or admin; ownership irrelevant.
func (s *CommentService) Moderate(ctx context.Context, caller ports.Caller, commentID string, approved bool) (*domain.Comment, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if authz.Decide(authz.Input{
		CallerRole: caller.Role,
		CallerID:   caller.ID,
		OwnerID:    comment.UserID,
		Action:     authz.ActionModerate,
	}) != authz.Allow {
		return nil, domain.ErrForbidden
	}

	comment.Approved = approved
	comment.UpdatedAt = time.Now().UTC()
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.log.Info().Str("comment_id", commentID).Bool("approved", approved).Str("moderator", caller.ID).Msg("comment moderated")
	emit(s.sink, ports.AuditEvent{ActorID: caller.ID, Action: "moderate", Resource: "comment", ResourceID: commentID})
	return comment, nil
}

// commentOnPost loads a comment and verifies it belongs to the post in the
// path. A mismatch is reported as not found, the same as a missing comment.
func (s *CommentService) commentOnPost(ctx context.Context, postID, commentID string) (*domain.Comment, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, domain.ErrCommentNotFound
	}
	return comment, nil
}
