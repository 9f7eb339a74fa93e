package ports

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/openblog/blog-api/internal/core/domain"
)

// Claims is the bearer-token payload. The role claim is trusted until the
// token expires, so role changes only take effect at the next login.
type Claims struct {
	jwt.RegisteredClaims
	Role     string `json:"role"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Caller identifies the authenticated actor behind a request. A zero Caller
// is an anonymous request.
type Caller struct {
	ID   string
	Role string
}

// UpdateProfileInput carries the self-service profile changes. Nil fields are
// left untouched (partial merge).
type UpdateProfileInput struct {
	Username *string
	Email    *string
	Password *string
}

// AuthService implements registration, login, and profile management.
type AuthService interface {
	// Register creates a user plus credentials, forcing role "user" and an
	// active account, and returns a signed token for immediate login.
	Register(ctx context.Context, username, email, password string) (string, *domain.User, error)
	// Login verifies email+password against stored credentials and updates
	// last_login on success.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error)
}
