package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/ports"
)

type userFixture struct {
	users    *stubUserRepo
	creds    *stubCredsRepo
	posts    *stubPostRepo
	comments *stubCommentRepo
	svc      *UserService
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:    newStubUserRepo(),
		creds:    newStubCredsRepo(),
		posts:    newStubPostRepo(),
		comments: newStubCommentRepo(),
	}
	f.svc = NewUserService(f.users, f.creds, f.posts, f.comments, nil, zerolog.Nop())
	return f
}

func (f *userFixture) seedUser(id, username, role string) {
	now := time.Now().UTC()
	_ = f.users.Create(context.Background(), &domain.User{
		ID: id, Username: username, Email: username + "@example.com",
		Role: role, Active: true, CreatedAt: now, UpdatedAt: now,
	})
	_ = f.creds.Create(context.Background(), &domain.Credentials{ID: id + "-c", UserID: id, PasswordHash: "hash"})
}

func TestUserService_Update_SelfOrAdmin(t *testing.T) {
	f := newUserFixture()
	f.seedUser("u1", "alice", domain.RoleUser)
	f.seedUser("u2", "bob", domain.RoleUser)

	username := "alice2"
	if _, err := f.svc.Update(context.Background(), ports.Caller{ID: "u2", Role: domain.RoleUser}, "u1", ports.UpdateUserInput{Username: &username}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other user, got %v", err)
	}
	if _, err := f.svc.Update(context.Background(), ports.Caller{ID: "u1", Role: domain.RoleUser}, "u1", ports.UpdateUserInput{Username: &username}); err != nil {
		t.Fatalf("self update failed: %v", err)
	}

	email := "new@example.com"
	updated, err := f.svc.Update(context.Background(), ports.Caller{ID: "root", Role: domain.RoleAdmin}, "u1", ports.UpdateUserInput{Email: &email})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.Email != "new@example.com" {
		t.Fatalf("expected updated email, got %q", updated.Email)
	}
}

func TestUserService_Update_DuplicateUsername(t *testing.T) {
	f := newUserFixture()
	f.seedUser("u1", "alice", domain.RoleUser)
	f.seedUser("u2", "bob", domain.RoleUser)

	taken := "bob"
	if _, err := f.svc.Update(context.Background(), ports.Caller{ID: "u1", Role: domain.RoleUser}, "u1", ports.UpdateUserInput{Username: &taken}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Update_RejectedFieldPersistsNothing(t *testing.T) {
	f := newUserFixture()
	f.seedUser("u1", "alice", domain.RoleUser)

	username, password := "alice2", ""
	_, err := f.svc.Update(context.Background(), ports.Caller{ID: "u1", Role: domain.RoleUser}, "u1", ports.UpdateUserInput{Username: &username, Password: &password})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	stored, err := f.users.FindByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("find user failed: %v", err)
	}
	if stored.Username != "alice" {
		t.Fatalf("expected username unchanged after rejected update, got %q", stored.Username)
	}
}

func TestUserService_Update_HashWriteFailureRollsBack(t *testing.T) {
	f := newUserFixture()
	f.seedUser("u1", "alice", domain.RoleUser)

	f.creds.failUpdateHash = errors.New("write failed")
	username, password := "alice2", "newpass56"
	if _, err := f.svc.Update(context.Background(), ports.Caller{ID: "u1", Role: domain.RoleUser}, "u1", ports.UpdateUserInput{Username: &username, Password: &password}); err == nil {
		t.Fatalf("expected hash write failure to surface")
	}

	stored, err := f.users.FindByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("find user failed: %v", err)
	}
	if stored.Username != "alice" {
		t.Fatalf("expected username rolled back after hash write failure, got %q", stored.Username)
	}
}

func TestUserService_Delete_AdminOnlyAfterLookup(t *testing.T) {
	f := newUserFixture()
	f.seedUser("u1", "alice", domain.RoleUser)

	// A miss reports not found even to non-admins; the role check comes
	// after resolution.
	if err := f.svc.Delete(context.Background(), ports.Caller{ID: "u2", Role: domain.RoleUser}, "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), ports.Caller{ID: "u2", Role: domain.RoleUser}, "u1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}
}

func TestUserService_Delete_Cascades(t *testing.T) {
	f := newUserFixture()
	f.seedUser("u1", "alice", domain.RoleUser)
	f.seedUser("u2", "bob", domain.RoleUser)

	_ = f.posts.Create(context.Background(), &domain.Post{ID: "p1", UserID: "u1", Title: "t", Body: "b"})
	_ = f.posts.Create(context.Background(), &domain.Post{ID: "p2", UserID: "u2", Title: "t", Body: "b"})
	// alice's comment on bob's post, bob's comment on alice's post
	_ = f.comments.Create(context.Background(), &domain.Comment{ID: "c1", PostID: "p2", UserID: "u1", Body: "x", Approved: true})
	_ = f.comments.Create(context.Background(), &domain.Comment{ID: "c2", PostID: "p1", UserID: "u2", Body: "y", Approved: true})

	if err := f.svc.Delete(context.Background(), ports.Caller{ID: "root", Role: domain.RoleAdmin}, "u1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := f.users.FindByID(context.Background(), "u1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user removed, got %v", err)
	}
	if _, err := f.creds.FindByUserID(context.Background(), "u1"); err == nil {
		t.Fatalf("expected credentials removed")
	}
	if _, err := f.posts.FindByID(context.Background(), "p1"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected alice's post removed, got %v", err)
	}
	if _, err := f.comments.FindByID(context.Background(), "c1"); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected alice's comment removed, got %v", err)
	}
	// bob's comment sat on alice's post, so the cascade takes it too
	if _, err := f.comments.FindByID(context.Background(), "c2"); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected comment on deleted post removed, got %v", err)
	}
	if _, err := f.posts.FindByID(context.Background(), "p2"); err != nil {
		t.Fatalf("expected bob's post to survive, got %v", err)
	}
}

func TestUserService_Manage(t *testing.T) {
	f := newUserFixture()
	f.seedUser("u1", "alice", domain.RoleUser)

	role := domain.RoleModerator
	if _, err := f.svc.Manage(context.Background(), ports.Caller{ID: "u1", Role: domain.RoleUser}, ports.ManageUserInput{UserID: "u1", Role: &role}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}

	bad := "superuser"
	if _, err := f.svc.Manage(context.Background(), ports.Caller{ID: "root", Role: domain.RoleAdmin}, ports.ManageUserInput{UserID: "u1", Role: &bad}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}

	inactive := false
	user, err := f.svc.Manage(context.Background(), ports.Caller{ID: "root", Role: domain.RoleAdmin}, ports.ManageUserInput{UserID: "u1", Role: &role, Active: &inactive})
	if err != nil {
		t.Fatalf("manage failed: %v", err)
	}
	if user.Role != domain.RoleModerator || user.Active {
		t.Fatalf("expected moderator+inactive, got role=%q active=%v", user.Role, user.Active)
	}
}

func TestNormalizePage(t *testing.T) {
	for _, tc := range []struct{ page, limit, wantPage, wantLimit int }{
		{0, 0, 1, 20},
		{-3, -1, 1, 20},
		{2, 50, 2, 50},
		{1, 500, 1, 100},
	} {
		page, limit := normalizePage(tc.page, tc.limit)
		if page != tc.wantPage || limit != tc.wantLimit {
			t.Fatalf("normalizePage(%d,%d) = (%d,%d), want (%d,%d)", tc.page, tc.limit, page, limit, tc.wantPage, tc.wantLimit)
		}
	}
}
