package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openblog/blog-api/internal/api/metrics"
	"github.com/openblog/blog-api/internal/core/ports"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List handles GET /posts.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Param        category_id  query     string  false  "Filter by category"
// @Param        user_id      query     string  false  "Filter by author"
// @Param        page         query     int     false  "Page (1-based)"
// @Param        limit        query     int     false  "Page size (max 100)"
// @Success      200          {object}  listPostsResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	result, err := h.service.List(c.Request().Context(), ports.ListPostsInput{
		CategoryID: c.QueryParam("category_id"),
		UserID:     c.QueryParam("user_id"),
		Page:       queryInt(c, "page"),
		Limit:      queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listPostsResponse{
		Posts: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /posts/:post_id.
//
// @Summary      Get a post by id
// @Tags         posts
// @Produce      json
// @Param        post_id  path      string  true  "Post id"
// @Success      200      {object}  postResponse
// @Failure      404      {object}  errorResponse
// @Router       /posts/{post_id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.service.Get(c.Request().Context(), c.Param("post_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postResponse{Post: post})
}

// Create handles POST /posts. The owner is always the caller.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post details"
// @Success      201   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.Create(c.Request().Context(), caller, ports.CreatePostInput{
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, postResponse{Post: post})
}

// Replace handles PUT /posts/:post_id — full replace, owner or admin.
//
// @Summary      Replace a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id  path      string              true  "Post id"
// @Param        body     body      replacePostRequest  true  "Full post"
// @Success      200      {object}  postResponse
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /posts/{post_id} [put]
func (h *PostHandler) Replace(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req replacePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.Replace(c.Request().Context(), caller, c.Param("post_id"), ports.ReplacePostInput{
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postResponse{Post: post})
}

// Patch handles PATCH /posts/:post_id — partial merge, owner or admin.
//
// @Summary      Partially update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id  path      string            true  "Post id"
// @Param        body     body      patchPostRequest  true  "Fields to change"
// @Success      200      {object}  postResponse
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /posts/{post_id} [patch]
func (h *PostHandler) Patch(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req patchPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.Patch(c.Request().Context(), caller, c.Param("post_id"), ports.PatchPostInput{
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postResponse{Post: post})
}

// Delete handles DELETE /posts/:post_id — owner or admin, cascades to comments.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        post_id  path      string  true  "Post id"
// @Success      200      {object}  messageResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /posts/{post_id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("post_id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "post deleted"})
}
