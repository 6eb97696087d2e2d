package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkpost/blog-system/internal/core/domain"
	"github.com/inkpost/blog-system/internal/core/ports"
	"github.com/inkpost/blog-system/internal/infrastructure/metrics"
)

// HeaderIdempotencyKey lets clients retry POST /posts safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// PostHandler handles HTTP requests for blog posts.
type PostHandler struct {
	content       ports.ContentService
	renderer      ports.MarkdownRenderer
	idempotency   ports.IdempotencyStore
	pageSize      int
	featuredCount int
	log           zerolog.Logger
	now           func() time.Time
}

// PostHandlerConfig carries the listing settings. Idempotency may be nil, in
// which case Idempotency-Key headers are ignored.
type PostHandlerConfig struct {
	PageSize      int
	FeaturedCount int
	Idempotency   ports.IdempotencyStore
}

func NewPostHandler(content ports.ContentService, renderer ports.MarkdownRenderer, cfg PostHandlerConfig, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		content:       content,
		renderer:      renderer,
		idempotency:   cfg.Idempotency,
		pageSize:      cfg.PageSize,
		featuredCount: cfg.FeaturedCount,
		log:           log,
		now:           time.Now,
	}
}

// List handles GET /posts.
//
// @Summary      List posts, newest first
// @Tags         posts
// @Produce      json
// @Param        page  query     int  false  "Page number (1-based)"
// @Success      200   {object}  listPostsResponse
// @Failure      400   {object}  errorResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(h.content.List(), h.pageSize, page, h.now()))
}

// Featured handles GET /posts/featured.
//
// @Summary      Newest posts for the home page
// @Tags         posts
// @Produce      json
// @Success      200   {array}   postSummaryResponse
// @Router       /posts/featured [get]
func (h *PostHandler) Featured(c echo.Context) error {
	now := h.now()
	posts := h.content.Featured(h.featuredCount)
	out := make([]postSummaryResponse, len(posts))
	for i, p := range posts {
		out[i] = toSummaryResponse(p, now)
	}
	return c.JSON(http.StatusOK, out)
}

// Mine handles GET /me/posts, the dashboard listing.
//
// @Summary      List the current identity's posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number (1-based)"
// @Success      200   {object}  listPostsResponse
// @Failure      401   {object}  errorResponse
// @Router       /me/posts [get]
func (h *PostHandler) Mine(c echo.Context) error {
	identityID, err := ctxIdentityID(c)
	if err != nil {
		return err
	}
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(h.content.ListByOwner(identityID), h.pageSize, page, h.now()))
}

// Get handles GET /posts/:id.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, ok := h.content.GetByID(c.Param("id"))
	if !ok {
		return domain.ErrPostNotFound
	}
	return c.JSON(http.StatusOK, toPostResponse(*post, h.now()))
}

// HTML handles GET /posts/:id/html.
//
// @Summary      Render a post body as HTML
// @Tags         posts
// @Produce      html
// @Param        id   path      string  true  "Post id"
// @Success      200  {string}  string
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id}/html [get]
func (h *PostHandler) HTML(c echo.Context) error {
	post, ok := h.content.GetByID(c.Param("id"))
	if !ok {
		return domain.ErrPostNotFound
	}

	start := time.Now()
	body, err := h.renderer.Render(post.Content)
	metrics.MarkdownRenderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, body)
}

// Create handles POST /posts.
//
// @Summary      Publish a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Client-generated key for safe retries"
// @Param        body             body      createPostRequest  true   "Post"
// @Success      201              {object}  postResponse
// @Success      200              {object}  postResponse  "Replay of an earlier request with the same key"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	identityID, err := ctxIdentityID(c)
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

	ctx := c.Request().Context()
	key := c.Request().Header.Get(HeaderIdempotencyKey)
	useKey := key != "" && h.idempotency != nil

	if useKey {
		postID, found, err := h.idempotency.Lookup(ctx, identityID, key)
		if err != nil {
			return err
		}
		if found {
			if post, ok := h.content.GetByID(postID); ok {
				return c.JSON(http.StatusOK, toPostResponse(*post, h.now()))
			}
		}
	}

	post, err := h.content.Create(ctx, req.Title, req.Content)
	metrics.PostOperationsTotal.WithLabelValues("create", resultLabel(err)).Inc()
	if err != nil {
		return err
	}

	if useKey {
		if err := h.idempotency.Remember(ctx, identityID, key, post.ID); err != nil {
			h.log.Warn().Err(err).Str("post_id", post.ID).Msg("failed to remember idempotency key")
		}
	}

	c.Response().Header().Set(echo.HeaderLocation, "/posts/"+post.ID)
	return c.JSON(http.StatusCreated, toPostResponse(*post, h.now()))
}

// Update handles PUT /posts/:id.
//
// @Summary      Edit a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post id"
// @Param        body  body      updatePostRequest  true  "Post"
// @Success      200   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.content.Update(c.Request().Context(), c.Param("id"), req.Title, req.Content)
	metrics.PostOperationsTotal.WithLabelValues("update", resultLabel(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(*post, h.now()))
}

// Delete handles DELETE /posts/:id.
//
// @Summary      Delete a post
// @Tags         posts
// @Security     BearerAuth
// @Param        id   path  string  true  "Post id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	err := h.content.Delete(c.Request().Context(), c.Param("id"))
	metrics.PostOperationsTotal.WithLabelValues("delete", resultLabel(err)).Inc()
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
