package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

// PostHandler handles HTTP requests for the community blog.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

type postRequest struct {
	Title string   `json:"title" validate:"required"`
	Body  string   `json:"body" validate:"required"`
	Tags  []string `json:"tags"`
}

type commentRequest struct {
	Body string `json:"body" validate:"required"`
}

type postResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags,omitempty"`
	LikeCount int64     `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type listPostsResponse struct {
	Items      []*postResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

type likeResponse struct {
	AlreadyLiked bool  `json:"already_liked"`
	LikeCount    int64 `json:"like_count"`
}

func toPostResponse(p *domain.Post) *postResponse {
	return &postResponse{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Title:     p.Title,
		Body:      p.Body,
		Tags:      p.Tags,
		LikeCount: p.LikeCount,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toCommentResponse(cm *domain.Comment) *commentResponse {
	return &commentResponse{
		ID:        cm.ID,
		PostID:    cm.PostID,
		AuthorID:  cm.AuthorID,
		Body:      cm.Body,
		CreatedAt: cm.CreatedAt,
	}
}

// Create publishes a new post by the caller.
//
// @Summary      Create a post
// @Tags         blog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postRequest  true  "Post content"
// @Success      201   {object}  postResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.Create(c.Request().Context(), userID, ctxRole(c), ports.PostInput{
		Title: req.Title,
		Body:  req.Body,
		Tags:  req.Tags,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toPostResponse(post))
}

// Update edits a post. Only the author or an admin may edit.
//
// @Summary      Update a post
// @Tags         blog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Post id"
// @Param        body  body      postRequest  true  "Post content"
// @Success      200   {object}  postResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.Update(c.Request().Context(), c.Param("id"), userID, ctxRole(c) == domain.RoleAdmin, ports.PostInput{
		Title: req.Title,
		Body:  req.Body,
		Tags:  req.Tags,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Delete removes a post. Only the author or an admin may delete.
//
// @Summary      Delete a post
// @Tags         blog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Post id"
// @Success      204  "deleted"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID, ctxRole(c) == domain.RoleAdmin); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Get returns one post.
//
// @Summary      Get a post
// @Tags         blog
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// List returns posts, newest first.
//
// @Summary      List posts
// @Tags         blog
// @Produce      json
// @Param        author_id  query     string  false  "Scope to one author"
// @Param        tag        query     string  false  "Exact tag match"
// @Param        page       query     int     false  "Page (1-based)"
// @Param        limit      query     int     false  "Page size"
// @Success      200        {object}  listPostsResponse
// @Router       /v1/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListPostsFilter{
		AuthorID: c.QueryParam("author_id"),
		Tag:      c.QueryParam("tag"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	items := make([]*postResponse, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, toPostResponse(p))
	}
	return c.JSON(http.StatusOK, listPostsResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Comment adds a comment to a post.
//
// @Summary      Comment on a post
// @Tags         blog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Post id"
// @Param        body  body      commentRequest  true  "Comment content"
// @Success      201   {object}  commentResponse
// @Failure      404   {object}  map[string]string
// @Router       /v1/posts/{id}/comments [post]
func (h *PostHandler) Comment(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.service.Comment(c.Request().Context(), c.Param("id"), userID, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// Comments lists a post's comments, oldest first.
//
// @Summary      List comments
// @Tags         blog
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {array}   commentResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/posts/{id}/comments [get]
func (h *PostHandler) Comments(c echo.Context) error {
	comments, err := h.service.Comments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	items := make([]*commentResponse, 0, len(comments))
	for _, cm := range comments {
		items = append(items, toCommentResponse(cm))
	}
	return c.JSON(http.StatusOK, items)
}

// Like records the caller's like. Liking twice is a no-op.
//
// @Summary      Like a post
// @Tags         blog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  likeResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/posts/{id}/likes [post]
func (h *PostHandler) Like(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Like(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likeResponse{
		AlreadyLiked: result.AlreadyLiked,
		LikeCount:    result.LikeCount,
	})
}
