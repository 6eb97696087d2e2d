package handler

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/inkpost/blog-system/internal/core/domain"
	"github.com/inkpost/blog-system/internal/core/pagination"
)

// --- Domain → HTTP response ---

func toIdentityResponse(i domain.Identity) identityResponse {
	return identityResponse{
		ID:        i.ID,
		Email:     i.Email,
		Name:      i.Name,
		CreatedAt: i.CreatedAt.UTC(),
	}
}

func toSummaryResponse(p domain.Post, now time.Time) postSummaryResponse {
	return postSummaryResponse{
		ID:      p.ID,
		Title:   p.Title,
		Excerpt: p.Excerpt,
		Author: authorResponse{
			ID:   p.Author.ID,
			Name: p.Author.Name,
		},
		CreatedAt:  p.CreatedAt.UTC(),
		UpdatedAt:  p.UpdatedAt.UTC(),
		CreatedAgo: humanize.RelTime(p.CreatedAt, now, "ago", "from now"),
		Links: postLinks{
			Self: "/posts/" + p.ID,
			HTML: "/posts/" + p.ID + "/html",
		},
	}
}

func toPostResponse(p domain.Post, now time.Time) postResponse {
	return postResponse{
		postSummaryResponse: toSummaryResponse(p, now),
		Content:             p.Content,
	}
}

// toListResponse slices posts to the requested page.
func toListResponse(posts []domain.Post, pageSize, page int, now time.Time) listPostsResponse {
	pager := pagination.NewPager(len(posts), pageSize, page)
	visible := pagination.Slice(posts, pager.Window)

	items := make([]postSummaryResponse, len(visible))
	for i, p := range visible {
		items[i] = toSummaryResponse(p, now)
	}

	pages := pager.Pages
	if pages == nil {
		pages = []pagination.PageItem{}
	}
	return listPostsResponse{
		Data: items,
		Pager: pagerResponse{
			Page:        pager.CurrentPage,
			PageSize:    pager.PageSize,
			TotalItems:  pager.TotalItems,
			TotalPages:  pager.Window.TotalPages,
			Pages:       pages,
			HasPrevious: pager.HasPrevious,
			HasNext:     pager.HasNext,
		},
	}
}
