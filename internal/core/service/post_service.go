package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openblog/blog-api/internal/core/authz"
	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/ports"
)

// PostService implements post CRUD with ownership enforcement.
type PostService struct {
	posts      ports.PostRepository
	comments   ports.CommentRepository
	categories ports.CategoryRepository
	sink       AuditSink
	log        zerolog.Logger
}

func NewPostService(posts ports.PostRepository, comments ports.CommentRepository, categories ports.CategoryRepository, sink AuditSink, log zerolog.Logger) *PostService {
	return &PostService{posts: posts, comments: comments, categories: categories, sink: sink, log: log}
}

func (s *PostService) List(ctx context.Context, in ports.ListPostsInput) (*ports.ListPostsResult, error) {
	page, limit := normalizePage(in.Page, in.Limit)
	items, total, err := s.posts.List(ctx, ports.ListPostsFilter{
		CategoryID: in.CategoryID,
		UserID:     in.UserID,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	return &ports.ListPostsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// Create inserts a post owned by the caller. A category reference, when
// given, must point at an existing category.
func (s *PostService) Create(ctx context.Context, caller ports.Caller, in ports.CreatePostInput) (*domain.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.Body == "" {
		return nil, domain.ErrValidation
	}
	if in.CategoryID != "" {
		if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	post := &domain.Post{
		ID:         uuid.NewString(),
		Title:      title,
		Body:       in.Body,
		UserID:     caller.ID,
		CategoryID: in.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.log.Info().Str("post_id", post.ID).Str("user_id", caller.ID).Msg("post created")
	emit(s.sink, ports.AuditEvent{ActorID: caller.ID, Action: "create", Resource: "post", ResourceID: post.ID})
	return post, nil
}

// Replace is the full-replace update: every mutable field is resubmitted and
// overwrites the stored value. Ownership is immutable.
func (s *PostService) Replace(ctx context.Context, caller ports.Caller, id string, in ports.ReplacePostInput) (*domain.Post, error) {
	post, err := s.authorizedPost(ctx, caller, id, authz.ActionUpdate)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" || in.Body == "" {
		return nil, domain.ErrValidation
	}
	if in.CategoryID != "" {
		if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
			return nil, err
		}
	}

	post.Title = title
	post.Body = in.Body
	post.CategoryID = in.CategoryID
	post.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	emit(s.sink, ports.AuditEvent{ActorID: caller.ID, Action: "update", Resource: "post", ResourceID: post.ID})
	return post, nil
}

// Patch is the partial-merge update: only non-nil fields change; everything
// else keeps its stored value.
func (s *PostService) Patch(ctx context.Context, caller ports.Caller, id string, in ports.PatchPostInput) (*domain.Post, error) {
	post, err := s.authorizedPost(ctx, caller, id, authz.ActionUpdate)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, domain.ErrValidation
		}
		post.Title = title
	}
	if in.Body != nil {
		if *in.Body == "" {
			return nil, domain.ErrValidation
		}
		post.Body = *in.Body
	}
	if in.CategoryID != nil {
		if *in.CategoryID != "" {
			if _, err := s.categories.FindByID(ctx, *in.CategoryID); err != nil {
				return nil, err
			}
		}
		post.CategoryID = *in.CategoryID
	}
	post.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	emit(s.sink, ports.AuditEvent{ActorID: caller.ID, Action: "update", Resource: "post", ResourceID: post.ID})
	return post, nil
}

// Delete removes the post and cascades to its comments. Comments go first so
// a failure never leaves comments referencing a missing post.
func (s *PostService) Delete(ctx context.Context, caller ports.Caller, id string) error {
	post, err := s.authorizedPost(ctx, caller, id, authz.ActionDelete)
	if err != nil {
		return err
	}

	if err := s.comments.DeleteByPostID(ctx, id); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("post_id", post.ID).Str("deleted_by", caller.ID).Msg("post deleted")
	emit(s.sink, ports.AuditEvent{ActorID: caller.ID, Action: "delete", Resource: "post", ResourceID: id})
	return nil
}

// authorizedPost resolves the post first (a miss is not found, never
// forbidden) and then runs the ownership check.
func (s *PostService) authorizedPost(ctx context.Context, caller ports.Caller, id string, action authz.Action) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if authz.Decide(authz.Input{
		CallerRole: caller.Role,
		CallerID:   caller.ID,
		OwnerID:    post.UserID,
		Action:     action,
	}) != authz.Allow {
		return nil, domain.ErrForbidden
	}
	return post, nil
}
