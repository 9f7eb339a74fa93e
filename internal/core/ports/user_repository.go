package ports

import (
	"context"
	"time"

	"github.com/openblog/blog-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Username and email
// uniqueness is enforced by the store itself (unique indexes), not by a
// pre-check, so concurrent duplicate creates resolve to exactly one winner.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// username or email is already taken.
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns a page of users and the total count.
	List(ctx context.Context, page, limit int) ([]*domain.User, int64, error)
	// Update replaces the stored user document. Returns domain.ErrUserExists
	// on a uniqueness violation and domain.ErrUserNotFound when absent.
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// CredentialsRepository persists the sensitive half of an account. Only the
// auth service talks to it.
type CredentialsRepository interface {
	Create(ctx context.Context, creds *domain.Credentials) error
	// FindByUserID returns domain.ErrInvalidCredentials when the user has no
	// credentials record (an unauthenticatable account).
	FindByUserID(ctx context.Context, userID string) (*domain.Credentials, error)
	UpdateHash(ctx context.Context, userID, passwordHash string) error
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
	DeleteByUserID(ctx context.Context, userID string) error
}
