package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/openblog/blog-api/internal/core/authz"
	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/ports"
)

// UserService implements account management. Every mutation resolves the
// target first (miss = not found) and then consults the authorization
// procedure before touching the store.
type UserService struct {
	users    ports.UserRepository
	creds    ports.CredentialsRepository
	posts    ports.PostRepository
	comments ports.CommentRepository
	sink     AuditSink
	log      zerolog.Logger
}

func NewUserService(users ports.UserRepository, creds ports.CredentialsRepository, posts ports.PostRepository, comments ports.CommentRepository, sink AuditSink, log zerolog.Logger) *UserService {
	return &UserService{users: users, creds: creds, posts: posts, comments: comments, sink: sink, log: log}
}

func (s *UserService) List(ctx context.Context, in ports.ListUsersInput) (*ports.ListUsersResult, error) {
	page, limit := normalizePage(in.Page, in.Limit)
	items, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.ListUsersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, caller ports.Caller, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if authz.Decide(authz.Input{
		CallerRole: caller.Role,
		CallerID:   caller.ID,
		OwnerID:    user.ID,
		Action:     authz.ActionUpdate,
	}) != authz.Allow {
		return nil, domain.ErrForbidden
	}

	prev := *user

	// Validate and prepare every submitted field before the first write so a
	// rejected field never leaves an earlier one persisted.
	changed := false
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return nil, domain.ErrValidation
		}
		user.Username = username
		changed = true
	}
	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if email == "" {
			return nil, domain.ErrValidation
		}
		user.Email = email
		changed = true
	}
	var newHash string
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.ErrValidation
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		newHash = string(hash)
	}

	if changed {
		user.UpdatedAt = time.Now().UTC()
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	if newHash != "" {
		if err := s.creds.UpdateHash(ctx, id, newHash); err != nil {
			if changed {
				if rbErr := s.users.Update(ctx, &prev); rbErr != nil {
					s.log.Error().Err(rbErr).Str("user_id", id).Msg("rollback of user update failed")
				}
			}
			return nil, err
		}
	}

	emit(s.sink, ports.AuditEvent{ActorID: caller.ID, Action: "update", Resource: "user", ResourceID: id})
	return user, nil
}

// Delete removes an account and everything it owns: the user's comments, each
// of the user's posts along with that post's comments, the credentials, and
// finally the user record. Children go first so a failure mid-cascade never
// leaves orphans pointing at a missing user.
func (s *UserService) Delete(ctx context.Context, caller ports.Caller, id string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}

	if caller.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	if err := s.comments.DeleteByUserID(ctx, id); err != nil {
		return err
	}
	postIDs, err := s.posts.DeleteByUserID(ctx, id)
	if err != nil {
		return err
	}
	for _, postID := range postIDs {
		if err := s.comments.DeleteByPostID(ctx, postID); err != nil {
			return err
		}
	}
	if err := s.creds.DeleteByUserID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("user_id", id).Str("deleted_by", caller.ID).Int("posts_removed", len(postIDs)).Msg("user deleted")
	emit(s.sink, ports.AuditEvent{ActorID: caller.ID, Action: "delete", Resource: "user", ResourceID: id})
	return nil
}

// Manage changes another user's role or active flag. Admin only; the role
// must be one of the three known values.
func (s *UserService) Manage(ctx context.Context, caller ports.Caller, in ports.ManageUserInput) (*domain.User, error) {
	if caller.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Role != nil {
		if !domain.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidRole
		}
		user.Role = *in.Role
	}
	if in.Active != nil {
		user.Active = *in.Active
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Bool("active", user.Active).Msg("user managed")
	emit(s.sink, ports.AuditEvent{ActorID: caller.ID, Action: "update", Resource: "user", ResourceID: user.ID})
	return user, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
