package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/ports"
)

// AuthService implements registration, login, and profile management.
type AuthService struct {
	users     ports.UserRepository
	creds     ports.CredentialsRepository
	jwtSecret string
	tokenTTL  time.Duration
	sink      AuditSink
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, creds ports.CredentialsRepository, jwtSecret string, tokenTTL time.Duration, sink AuditSink, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, creds: creds, jwtSecret: jwtSecret, tokenTTL: tokenTTL, sink: sink, log: log}
}

// Register creates a user and its credentials. The role is always "user" and
// the account starts active, regardless of what the caller sends. Uniqueness
// of username/email is resolved by the store's unique indexes, not a
// pre-check, so two concurrent registrations cannot both win.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" || password == "" {
		return "", nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Role:      domain.RoleUser,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return "", nil, err
	}

	creds := &domain.Credentials{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.creds.Create(ctx, creds); err != nil {
		// Roll back the half-created account so it is not left
		// unauthenticatable.
		if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("user_id", user.ID).Msg("rollback of user create failed")
		}
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("username", username).Msg("user registered")
	emit(s.sink, ports.AuditEvent{ActorID: user.ID, Action: "register", Resource: "user", ResourceID: user.ID})

	return token, user, nil
}

// Login verifies email+password. Unknown email, wrong password, a missing
// credentials record, and an inactive account all surface as
// ErrInvalidCredentials so the response does not reveal which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	creds, err := s.creds.FindByUserID(ctx, user.ID)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		return "", nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.creds.TouchLastLogin(ctx, user.ID, now); err != nil {
		// Non-fatal: last_login is bookkeeping, the login itself succeeded.
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last_login")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	emit(s.sink, ports.AuditEvent{ActorID: user.ID, Action: "login", Resource: "user", ResourceID: user.ID})
	return token, user, nil
}

// Profile returns the caller's own account.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile applies a partial merge to the caller's own account. Username
// and email changes go through the store's uniqueness enforcement; a password
// change rewrites the credentials hash.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
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
		if err := s.creds.UpdateHash(ctx, userID, newHash); err != nil {
			if changed {
				if rbErr := s.users.Update(ctx, &prev); rbErr != nil {
					s.log.Error().Err(rbErr).Str("user_id", userID).Msg("rollback of profile update failed")
				}
			}
			return nil, err
		}
	}

	emit(s.sink, ports.AuditEvent{ActorID: userID, Action: "update", Resource: "user", ResourceID: userID})
	return user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := ports.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		Role:     user.Role,
		Email:    user.Email,
		Username: user.Username,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
