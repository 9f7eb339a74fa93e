package handler

import "github.com/openblog/blog-api/internal/core/domain"

type createCommentRequest struct {
	Body     string `json:"body"      validate:"required"`
	ParentID string `json:"parent_id"`
}

type updateCommentRequest struct {
	Body string `json:"body" validate:"required"`
}

// moderateCommentRequest uses a pointer so "approve" and "hide" are both
// explicit; an absent flag is a validation error, not a default.
type moderateCommentRequest struct {
	Approved *bool `json:"is_approved" validate:"required"`
}

type commentResponse struct {
	Comment *domain.Comment `json:"comment"`
}

type listCommentsResponse struct {
	Comments   []*domain.Comment  `json:"comments"`
	Pagination paginationResponse `json:"pagination"`
}
