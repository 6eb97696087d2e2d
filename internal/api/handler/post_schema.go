package handler

import (
	"time"

	"github.com/inkpost/blog-system/internal/core/pagination"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createPostRequest struct {
	Title   string `json:"title"   validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

type updatePostRequest struct {
	Title   string `json:"title"   validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// --- Response types ---
// Kept apart from domain.Post so the JSON contract does not follow the
// storage format.

type identityResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type authorResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type postLinks struct {
	Self string `json:"self"`
	HTML string `json:"html"`
}

// postSummaryResponse is the list item. It omits the body.
type postSummaryResponse struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Excerpt    string         `json:"excerpt"`
	Author     authorResponse `json:"author"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	CreatedAgo string         `json:"created_ago"`
	Links      postLinks      `json:"_links"`
}

type postResponse struct {
	postSummaryResponse
	Content string `json:"content"`
}

type pagerResponse struct {
	Page        int                   `json:"page"`
	PageSize    int                   `json:"page_size"`
	TotalItems  int                   `json:"total_items"`
	TotalPages  int                   `json:"total_pages"`
	Pages       []pagination.PageItem `json:"pages"`
	HasPrevious bool                  `json:"has_previous"`
	HasNext     bool                  `json:"has_next"`
}

type listPostsResponse struct {
	Data  []postSummaryResponse `json:"data"`
	Pager pagerResponse         `json:"pager"`
}
