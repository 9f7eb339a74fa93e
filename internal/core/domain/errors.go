package domain

import "errors"

// Authentication failures. ErrInvalidCredentials deliberately covers unknown
// email, wrong password, and inactive account so callers cannot distinguish them.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing token")
	ErrInvalidToken       = errors.New("invalid token")
)

// Authorization denial. Distinct from not-found: existence is resolved before
// the permission check, so a missing resource is always reported as not found.
var ErrForbidden = errors.New("access forbidden")

// Lookup misses, per entity.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// Uniqueness conflicts, surfaced by the store's unique indexes.
var (
	ErrUserExists     = errors.New("username or email already exists")
	ErrCategoryExists = errors.New("category name already exists")
)

// Write-time integrity violations.
var (
	ErrInvalidParent = errors.New("parent comment does not belong to this post")
	ErrInvalidRole   = errors.New("invalid role")
)

// ErrValidation wraps malformed or missing input.
var ErrValidation = errors.New("validation failed")
