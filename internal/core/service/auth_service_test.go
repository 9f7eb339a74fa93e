package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/ports"
)

func newAuthService(users *stubUserRepo, creds *stubCredsRepo, sink AuditSink) *AuthService {
	return NewAuthService(users, creds, "secret", time.Hour, sink, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	users, creds := newStubUserRepo(), newStubCredsRepo()
	sink := &recordingSink{}
	svc := newAuthService(users, creds, sink)

	token, user, err := svc.Register(context.Background(), "alice", "Alice@Example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role %q, got %q", domain.RoleUser, user.Role)
	}
	if !user.Active {
		t.Fatalf("expected account to start active")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}

	stored, err := creds.FindByUserID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("credentials not stored: %v", err)
	}
	if stored.PasswordHash == "s3cretpass" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cretpass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	if len(sink.events) != 1 || sink.events[0].Action != "register" {
		t.Fatalf("expected one register audit event, got %+v", sink.events)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubCredsRepo(), nil)

	for _, tc := range []struct{ username, email, password string }{
		{"", "a@example.com", "pass1234"},
		{"alice", "", "pass1234"},
		{"alice", "a@example.com", ""},
	} {
		if _, _, err := svc.Register(context.Background(), tc.username, tc.email, tc.password); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation for %+v, got %v", tc, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubCredsRepo(), nil)

	if _, _, err := svc.Register(context.Background(), "bob", "bob@example.com", "pass1234"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "bob", "other@example.com", "pass1234"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for duplicate username, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "robert", "bob@example.com", "pass1234"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for duplicate email, got %v", err)
	}
}

func TestAuthService_Register_CredsFailureRollsBackUser(t *testing.T) {
	users, creds := newStubUserRepo(), newStubCredsRepo()
	creds.failCreate = errors.New("write failed")
	svc := newAuthService(users, creds, nil)

	if _, _, err := svc.Register(context.Background(), "carol", "carol@example.com", "pass1234"); err == nil {
		t.Fatalf("expected register to fail")
	}
	if len(users.users) != 0 {
		t.Fatalf("expected user create to be rolled back, found %d users", len(users.users))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	users, creds := newStubUserRepo(), newStubCredsRepo()
	svc := newAuthService(users, creds, nil)

	if _, _, err := svc.Register(context.Background(), "carol", "carol@example.com", "s3cretpass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "Carol@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := &ports.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Subject != user.ID {
		t.Fatalf("expected subject %q, got %q", user.ID, claims.Subject)
	}
	if claims.Role != domain.RoleUser {
		t.Fatalf("expected role claim %q, got %q", domain.RoleUser, claims.Role)
	}

	stored, _ := creds.FindByUserID(context.Background(), user.ID)
	if stored.LastLogin.IsZero() {
		t.Fatalf("expected last_login to be set")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubCredsRepo(), nil)

	_, _, _ = svc.Register(context.Background(), "dave", "dave@example.com", "goodpass1")
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass12"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubCredsRepo(), nil)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass1234"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	users, creds := newStubUserRepo(), newStubCredsRepo()
	svc := newAuthService(users, creds, nil)

	_, user, err := svc.Register(context.Background(), "eve", "eve@example.com", "pass1234")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	stored := users.users[user.ID]
	stored.Active = false

	if _, _, err := svc.Login(context.Background(), "eve@example.com", "pass1234"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for inactive account, got %v", err)
	}
}

func TestAuthService_UpdateProfile_PasswordChange(t *testing.T) {
	users, creds := newStubUserRepo(), newStubCredsRepo()
	svc := newAuthService(users, creds, nil)

	_, user, err := svc.Register(context.Background(), "frank", "frank@example.com", "oldpass12")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	newPass := "newpass34"
	if _, err := svc.UpdateProfile(context.Background(), user.ID, ports.UpdateProfileInput{Password: &newPass}); err != nil {
		t.Fatalf("update profile failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "frank@example.com", "oldpass12"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected old password to stop working, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "frank@example.com", newPass); err != nil {
		t.Fatalf("expected new password to work, got %v", err)
	}
}

func TestAuthService_UpdateProfile_PartialMerge(t *testing.T) {
	users, creds := newStubUserRepo(), newStubCredsRepo()
	svc := newAuthService(users, creds, nil)

	_, user, err := svc.Register(context.Background(), "grace", "grace@example.com", "pass1234")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	username := "grace2"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, ports.UpdateProfileInput{Username: &username})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.Username != "grace2" {
		t.Fatalf("expected username grace2, got %q", updated.Username)
	}
	if updated.Email != "grace@example.com" {
		t.Fatalf("expected email unchanged, got %q", updated.Email)
	}
}

func TestAuthService_UpdateProfile_RejectedFieldPersistsNothing(t *testing.T) {
	users, creds := newStubUserRepo(), newStubCredsRepo()
	svc := newAuthService(users, creds, nil)

	_, user, err := svc.Register(context.Background(), "henry", "henry@example.com", "pass1234")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	username, password := "henry2", ""
	_, err = svc.UpdateProfile(context.Background(), user.ID, ports.UpdateProfileInput{Username: &username, Password: &password})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	stored, err := users.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("find user failed: %v", err)
	}
	if stored.Username != "henry" {
		t.Fatalf("expected username unchanged after rejected update, got %q", stored.Username)
	}
}

func TestAuthService_UpdateProfile_HashWriteFailureRollsBack(t *testing.T) {
	users, creds := newStubUserRepo(), newStubCredsRepo()
	svc := newAuthService(users, creds, nil)

	_, user, err := svc.Register(context.Background(), "iris", "iris@example.com", "pass1234")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	creds.failUpdateHash = errors.New("write failed")
	username, password := "iris2", "newpass56"
	if _, err := svc.UpdateProfile(context.Background(), user.ID, ports.UpdateProfileInput{Username: &username, Password: &password}); err == nil {
		t.Fatalf("expected hash write failure to surface")
	}

	stored, err := users.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("find user failed: %v", err)
	}
	if stored.Username != "iris" {
		t.Fatalf("expected username rolled back after hash write failure, got %q", stored.Username)
	}
}
