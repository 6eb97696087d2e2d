package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpost/blog-system/internal/api/middleware"
	"github.com/inkpost/blog-system/internal/core/domain"
)

func newPostHandler(content *stubContent, idem *stubIdempotency) *PostHandler {
	cfg := PostHandlerConfig{PageSize: 6, FeaturedCount: 3}
	if idem != nil {
		cfg.Idempotency = idem
	}
	h := NewPostHandler(content, stubRenderer{}, cfg, zerolog.Nop())
	h.now = func() time.Time { return testNow }
	return h
}

func TestPostHandler_List_Pages(t *testing.T) {
	h := newPostHandler(&stubContent{posts: samplePosts(14)}, nil)

	c, rec := newContext(http.MethodGet, "/posts?page=3", "")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data  []postSummaryResponse `json:"data"`
		Pager struct {
			Page        int   `json:"page"`
			TotalPages  int   `json:"total_pages"`
			TotalItems  int   `json:"total_items"`
			Pages       []any `json:"pages"`
			HasPrevious bool  `json:"has_previous"`
			HasNext     bool  `json:"has_next"`
		} `json:"pager"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Len(t, resp.Data, 2)
	assert.Equal(t, "m", resp.Data[0].ID)
	assert.Equal(t, 3, resp.Pager.Page)
	assert.Equal(t, 3, resp.Pager.TotalPages)
	assert.Equal(t, 14, resp.Pager.TotalItems)
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, resp.Pager.Pages)
	assert.True(t, resp.Pager.HasPrevious)
	assert.False(t, resp.Pager.HasNext)
}

func TestPostHandler_List_SummaryShape(t *testing.T) {
	h := newPostHandler(&stubContent{posts: samplePosts(1)}, nil)

	c, rec := newContext(http.MethodGet, "/posts", "")
	require.NoError(t, h.List(c))

	var resp listPostsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)

	item := resp.Data[0]
	assert.Equal(t, "1 hour ago", item.CreatedAgo)
	assert.Equal(t, "/posts/a", item.Links.Self)
	assert.Equal(t, "/posts/a/html", item.Links.HTML)
	assert.Equal(t, "Demo User", item.Author.Name)
	assert.Empty(t, resp.Pager.Pages)
}

func TestPostHandler_List_BadPage(t *testing.T) {
	h := newPostHandler(&stubContent{}, nil)

	for _, q := range []string{"0", "-1", "two"} {
		c, rec := newContext(http.MethodGet, "/posts?page="+q, "")
		if err := h.List(c); err != nil {
			c.Echo().HTTPErrorHandler(err, c)
		}
		assert.Equal(t, http.StatusBadRequest, rec.Code, "page=%s", q)
	}
}

func TestPostHandler_Featured(t *testing.T) {
	h := newPostHandler(&stubContent{posts: samplePosts(5)}, nil)

	c, rec := newContext(http.MethodGet, "/posts/featured", "")
	require.NoError(t, h.Featured(c))

	var resp []postSummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 3)
}

func TestPostHandler_Mine(t *testing.T) {
	posts := samplePosts(3)
	posts[1].Author = domain.Identity{ID: "2", Name: "Jane Smith"}
	h := newPostHandler(&stubContent{posts: posts}, nil)

	c, rec := newContext(http.MethodGet, "/me/posts", "")
	c.Set(middleware.ContextIdentityID, "1")
	require.NoError(t, h.Mine(c))

	var resp listPostsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	for _, p := range resp.Data {
		assert.Equal(t, "1", p.Author.ID)
	}
}

func TestPostHandler_GetAndHTML(t *testing.T) {
	h := newPostHandler(&stubContent{posts: samplePosts(2)}, nil)

	c, rec := newContext(http.MethodGet, "/posts/b", "")
	c.SetParamNames("id")
	c.SetParamValues("b")
	require.NoError(t, h.Get(c))

	var post postResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	assert.Equal(t, "Body b", post.Content)

	c, rec = newContext(http.MethodGet, "/posts/b/html", "")
	c.SetParamNames("id")
	c.SetParamValues("b")
	require.NoError(t, h.HTML(c))
	assert.Equal(t, "<p>Body b</p>", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	c, _ = newContext(http.MethodGet, "/posts/zz", "")
	c.SetParamNames("id")
	c.SetParamValues("zz")
	assert.ErrorIs(t, h.Get(c), domain.ErrPostNotFound)
	assert.ErrorIs(t, h.HTML(c), domain.ErrPostNotFound)
}

func TestPostHandler_Create(t *testing.T) {
	content := &stubContent{
		createFn: func(ctx context.Context, title, body string) (*domain.Post, error) {
			return &domain.Post{ID: "1710408600000", Title: title, Content: body, Author: demo, CreatedAt: testNow}, nil
		},
	}
	h := newPostHandler(content, nil)

	c, rec := newContext(http.MethodPost, "/posts", `{"title":"Hello","content":"World"}`)
	c.Set(middleware.ContextIdentityID, "1")
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/posts/1710408600000", rec.Header().Get(echo.HeaderLocation))

	var post postResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "World", post.Content)
}

func TestPostHandler_Create_Validation(t *testing.T) {
	content := &stubContent{}
	h := newPostHandler(content, nil)

	for _, body := range []string{`{"title":"","content":"x"}`, `{"title":"x"}`, "nope"} {
		c, rec := newContext(http.MethodPost, "/posts", body)
		c.Set(middleware.ContextIdentityID, "1")
		if err := h.Create(c); err != nil {
			c.Echo().HTTPErrorHandler(err, c)
		}
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Zero(t, content.creates)
}

func TestPostHandler_Create_Idempotent(t *testing.T) {
	content := &stubContent{}
	content.createFn = func(ctx context.Context, title, body string) (*domain.Post, error) {
		p := domain.Post{ID: "42", Title: title, Content: body, Author: demo, CreatedAt: testNow}
		content.posts = append(content.posts, p)
		return &p, nil
	}
	h := newPostHandler(content, &stubIdempotency{})

	codes := make([]int, 0, 2)
	for range 2 {
		c, rec := newContext(http.MethodPost, "/posts", `{"title":"Hello","content":"World"}`)
		c.Request().Header.Set(HeaderIdempotencyKey, "retry-1")
		c.Set(middleware.ContextIdentityID, "1")
		require.NoError(t, h.Create(c))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusCreated, http.StatusOK}, codes)
	assert.Equal(t, 1, content.creates)
}

func TestPostHandler_Create_RequiresIdentity(t *testing.T) {
	h := newPostHandler(&stubContent{}, nil)

	c, rec := newContext(http.MethodPost, "/posts", `{"title":"Hello","content":"World"}`)
	if err := h.Create(c); err != nil {
		c.Echo().HTTPErrorHandler(err, c)
	}
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPostHandler_UpdateAndDelete_PassErrors(t *testing.T) {
	content := &stubContent{
		updateFn: func(ctx context.Context, id, title, body string) (*domain.Post, error) {
			return nil, domain.ErrPermissionDenied
		},
		deleteFn: func(ctx context.Context, id string) error {
			return domain.ErrPostNotFound
		},
	}
	h := newPostHandler(content, nil)

	c, _ := newContext(http.MethodPut, "/posts/3", `{"title":"T","content":"C"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	assert.True(t, errors.Is(h.Update(c), domain.ErrPermissionDenied))

	c, _ = newContext(http.MethodDelete, "/posts/404", "")
	c.SetParamNames("id")
	c.SetParamValues("404")
	assert.True(t, errors.Is(h.Delete(c), domain.ErrPostNotFound))
}

func TestPostHandler_UpdateAndDelete_Success(t *testing.T) {
	var deleted string
	content := &stubContent{
		updateFn: func(ctx context.Context, id, title, body string) (*domain.Post, error) {
			return &domain.Post{ID: id, Title: title, Content: body, Author: demo}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	h := newPostHandler(content, nil)

	c, rec := newContext(http.MethodPut, "/posts/2", `{"title":"New","content":"Body"}`)
	c.SetParamNames("id")
	c.SetParamValues("2")
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newContext(http.MethodDelete, "/posts/2", "")
	c.SetParamNames("id")
	c.SetParamValues("2")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "2", deleted)
}
