package handler

import "github.com/openblog/blog-api/internal/core/domain"

type createPostRequest struct {
	Title      string `json:"title"       validate:"required,max=100"`
	Body       string `json:"body"        validate:"required"`
	CategoryID string `json:"category_id"`
}

// replacePostRequest is the full-replace update: every mutable field must be
// resubmitted.
type replacePostRequest struct {
	Title      string `json:"title"       validate:"required,max=100"`
	Body       string `json:"body"        validate:"required"`
	CategoryID string `json:"category_id"`
}

// patchPostRequest is the partial-merge update: absent fields keep their
// stored value; unknown keys are ignored by the JSON decoder.
type patchPostRequest struct {
	Title      *string `json:"title"       validate:"omitempty,min=1,max=100"`
	Body       *string `json:"body"        validate:"omitempty,min=1"`
	CategoryID *string `json:"category_id"`
}

type postResponse struct {
	Post *domain.Post `json:"post"`
}

type listPostsResponse struct {
	Posts      []*domain.Post     `json:"posts"`
	Pagination paginationResponse `json:"pagination"`
}
