package handler

// messageResponse is the envelope for informational responses (and mirrors
// the error envelope rendered by the central error handler).
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse documents the error envelope in the swagger annotations; the
// actual rendering happens in the central error handler.
type errorResponse struct {
	Message string `json:"message"`
}

// paginationResponse is the shared pagination block on list responses.
type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}
