package service

import (
	"context"
	"time"

	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/ports"
)

// recordingSink captures audit events emitted by the services under test.
type recordingSink struct {
	events []ports.AuditEvent
}

func (s *recordingSink) Enqueue(event ports.AuditEvent) {
	s.events = append(s.events, event)
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func clonePost(p *domain.Post) *domain.Post {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func cloneComment(c *domain.Comment) *domain.Comment {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func cloneCategory(c *domain.Category) *domain.Category {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

type stubUserRepo struct {
	users map[string]*domain.User
	order []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	r.order = append(r.order, user.ID)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, page, limit int) ([]*domain.User, int64, error) {
	start := (page - 1) * limit
	var out []*domain.User
	for i := start; i < len(r.order) && i < start+limit; i++ {
		out = append(out, cloneUser(r.users[r.order[i]]))
	}
	return out, int64(len(r.order)), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for id, u := range r.users {
		if id != user.ID && (u.Username == user.Username || u.Email == user.Email) {
			return domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type stubCredsRepo struct {
	creds          map[string]*domain.Credentials // keyed by user id
	failCreate     error                          // when set, Create always fails
	failUpdateHash error                          // when set, UpdateHash always fails
}

func newStubCredsRepo() *stubCredsRepo {
	return &stubCredsRepo{creds: make(map[string]*domain.Credentials)}
}

func (r *stubCredsRepo) Create(_ context.Context, creds *domain.Credentials) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	if _, ok := r.creds[creds.UserID]; ok {
		return domain.ErrUserExists
	}
	clone := *creds
	r.creds[creds.UserID] = &clone
	return nil
}

func (r *stubCredsRepo) FindByUserID(_ context.Context, userID string) (*domain.Credentials, error) {
	c, ok := r.creds[userID]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	clone := *c
	return &clone, nil
}

func (r *stubCredsRepo) UpdateHash(_ context.Context, userID, passwordHash string) error {
	if r.failUpdateHash != nil {
		return r.failUpdateHash
	}
	c, ok := r.creds[userID]
	if !ok {
		return domain.ErrInvalidCredentials
	}
	c.PasswordHash = passwordHash
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubCredsRepo) TouchLastLogin(_ context.Context, userID string, at time.Time) error {
	c, ok := r.creds[userID]
	if !ok {
		return domain.ErrInvalidCredentials
	}
	c.LastLogin = at
	return nil
}

func (r *stubCredsRepo) DeleteByUserID(_ context.Context, userID string) error {
	delete(r.creds, userID)
	return nil
}

type stubPostRepo struct {
	posts map[string]*domain.Post
	order []string
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) error {
	r.posts[p.ID] = clonePost(p)
	r.order = append(r.order, p.ID)
	return nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) List(_ context.Context, filter ports.ListPostsFilter) ([]*domain.Post, int64, error) {
	var matched []*domain.Post
	for _, id := range r.order {
		p := r.posts[id]
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.UserID != "" && p.UserID != filter.UserID {
			continue
		}
		matched = append(matched, clonePost(p))
	}
	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubPostRepo) Update(_ context.Context, p *domain.Post) error {
	if _, ok := r.posts[p.ID]; !ok {
		return domain.ErrPostNotFound
	}
	r.posts[p.ID] = clonePost(p)
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *stubPostRepo) DeleteByUserID(_ context.Context, userID string) ([]string, error) {
	var removed []string
	for _, id := range append([]string(nil), r.order...) {
		if r.posts[id].UserID == userID {
			removed = append(removed, id)
			_ = r.Delete(context.Background(), id)
		}
	}
	return removed, nil
}

type stubCommentRepo struct {
	comments map[string]*domain.Comment
	order    []string
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) error {
	r.comments[c.ID] = cloneComment(c)
	r.order = append(r.order, c.ID)
	return nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	return cloneComment(c), nil
}

func (r *stubCommentRepo) ListByPost(_ context.Context, filter ports.ListCommentsFilter) ([]*domain.Comment, int64, error) {
	var matched []*domain.Comment
	for _, id := range r.order {
		c := r.comments[id]
		if c.PostID != filter.PostID {
			continue
		}
		if filter.ApprovedOnly && !c.Approved {
			continue
		}
		if filter.ParentID != "" && c.ParentID != filter.ParentID {
			continue
		}
		matched = append(matched, cloneComment(c))
	}
	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubCommentRepo) Update(_ context.Context, c *domain.Comment) error {
	if _, ok := r.comments[c.ID]; !ok {
		return domain.ErrCommentNotFound
	}
	r.comments[c.ID] = cloneComment(c)
	return nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *stubCommentRepo) DeleteByPostID(_ context.Context, postID string) error {
	for _, id := range append([]string(nil), r.order...) {
		if r.comments[id].PostID == postID {
			_ = r.Delete(context.Background(), id)
		}
	}
	return nil
}

func (r *stubCommentRepo) DeleteByUserID(_ context.Context, userID string) error {
	for _, id := range append([]string(nil), r.order...) {
		if r.comments[id].UserID == userID {
			_ = r.Delete(context.Background(), id)
		}
	}
	return nil
}

type stubCategoryRepo struct {
	categories map[string]*domain.Category
	order      []string
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return domain.ErrCategoryExists
		}
	}
	r.categories[c.ID] = cloneCategory(c)
	r.order = append(r.order, c.ID)
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return cloneCategory(c), nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, id := range r.order {
		out = append(out, cloneCategory(r.categories[id]))
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *domain.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	for id, existing := range r.categories {
		if id != c.ID && existing.Name == c.Name {
			return domain.ErrCategoryExists
		}
	}
	r.categories[c.ID] = cloneCategory(c)
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.categories, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
