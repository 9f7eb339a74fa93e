package handler

import "github.com/openblog/blog-api/internal/core/domain"

// updateUserRequest carries a partial merge of account fields.
type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=80"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// manageUserRequest is the admin role/active mutation.
type manageUserRequest struct {
	UserID string  `json:"user_id"   validate:"required"`
	Role   *string `json:"role"      validate:"omitempty,oneof=user moderator admin"`
	Active *bool   `json:"is_active"`
}

type listUsersResponse struct {
	Users      []*domain.User     `json:"users"`
	Pagination paginationResponse `json:"pagination"`
}
