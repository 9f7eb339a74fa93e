package ports

import (
	"context"

	"github.com/openblog/blog-api/internal/core/domain"
)

// ListUsersInput carries pagination for the user list endpoint.
type ListUsersInput struct {
	Page  int
	Limit int
}

// ListUsersResult is a page of users plus pagination metadata.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UpdateUserInput carries the mutable account fields. Nil means "leave as is".
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
}

// ManageUserInput is the admin-only role/active mutation.
type ManageUserInput struct {
	UserID string
	Role   *string
	Active *bool
}

// UserService defines account management operations. Ownership and role checks
// happen here, before any mutation.
type UserService interface {
	List(ctx context.Context, in ListUsersInput) (*ListUsersResult, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	// Update lets a user edit their own account, or an admin edit anyone's.
	Update(ctx context.Context, caller Caller, id string, in UpdateUserInput) (*domain.User, error)
	// Delete is admin-only and cascades to the user's posts and comments.
	Delete(ctx context.Context, caller Caller, id string) error
	// Manage is admin-only: change another user's role or active flag.
	Manage(ctx context.Context, caller Caller, in ManageUserInput) (*domain.User, error)
}
