package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openblog/blog-api/internal/api/metrics"
	"github.com/openblog/blog-api/internal/core/ports"
)

// CommentHandler handles HTTP requests for comments, including moderation.
type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// List handles GET /posts/:post_id/comments. Anonymous callers see approved
// comments only; moderators and admins see everything.
//
// @Summary      List a post's comments
// @Tags         comments
// @Produce      json
// @Param        post_id  path      string  true   "Post id"
// @Param        page     query     int     false  "Page (1-based)"
// @Param        limit    query     int     false  "Page size (max 100)"
// @Success      200      {object}  listCommentsResponse
// @Failure      404      {object}  errorResponse
// @Router       /posts/{post_id}/comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	result, err := h.service.ListByPost(c.Request().Context(), ctxCallerOrAnon(c), ports.ListCommentsInput{
		PostID: c.Param("post_id"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listCommentsResponse{
		Comments: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /posts/:post_id/comments/:comment_id.
//
// @Summary      Get a comment
// @Tags         comments
// @Produce      json
// @Param        post_id     path      string  true  "Post id"
// @Param        comment_id  path      string  true  "Comment id"
// @Success      200         {object}  commentResponse
// @Failure      404         {object}  errorResponse
// @Router       /posts/{post_id}/comments/{comment_id} [get]
func (h *CommentHandler) Get(c echo.Context) error {
	comment, err := h.service.Get(c.Request().Context(), ctxCallerOrAnon(c), c.Param("post_id"), c.Param("comment_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commentResponse{Comment: comment})
}

// Create handles POST /posts/:post_id/comments.
//
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id  path      string                true  "Post id"
// @Param        body     body      createCommentRequest  true  "Comment"
// @Success      201      {object}  commentResponse
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /posts/{post_id}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.service.Create(c.Request().Context(), caller, c.Param("post_id"), ports.CreateCommentInput{
		Body:     req.Body,
		ParentID: req.ParentID,
	})
	if err != nil {
		return err
	}

	metrics.CommentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, commentResponse{Comment: comment})
}

// Update handles PUT /posts/:post_id/comments/:comment_id — body only, owner
// or admin.
//
// @Summary      Edit a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id     path      string                true  "Post id"
// @Param        comment_id  path      string                true  "Comment id"
// @Param        body        body      updateCommentRequest  true  "New body"
// @Success      200         {object}  commentResponse
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /posts/{post_id}/comments/{comment_id} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req updateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.service.Update(c.Request().Context(), caller, c.Param("post_id"), c.Param("comment_id"), req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commentResponse{Comment: comment})
}

// Delete handles DELETE /posts/:post_id/comments/:comment_id — owner or admin.
//
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        post_id     path      string  true  "Post id"
// @Param        comment_id  path      string  true  "Comment id"
// @Success      200         {object}  messageResponse
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /posts/{post_id}/comments/{comment_id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("post_id"), c.Param("comment_id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "comment deleted"})
}

// Moderate handles PUT /comments/:comment_id/moderate — moderator or admin.
//
// @Summary      Toggle comment visibility
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        comment_id  path      string                  true  "Comment id"
// @Param        body        body      moderateCommentRequest  true  "Visibility"
// @Success      200         {object}  commentResponse
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /comments/{comment_id}/moderate [put]
func (h *CommentHandler) Moderate(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req moderateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.service.Moderate(c.Request().Context(), caller, c.Param("comment_id"), *req.Approved)
	if err != nil {
		return err
	}

	outcome := "hidden"
	if comment.Approved {
		outcome = "approved"
	}
	metrics.ModerationTotal.WithLabelValues(outcome).Inc()
	return c.JSON(http.StatusOK, commentResponse{Comment: comment})
}
