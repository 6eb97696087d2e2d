// Package pagination turns an item count into a page window and the compact
// list of page links shown under a listing.
package pagination

import (
	"encoding/json"
	"strconv"
)

// EllipsisMarker stands for a run of hidden page numbers.
const EllipsisMarker = "..."

// Window is the half-open item range [Start, End) of one page.
type Window struct {
	Start      int `json:"start"`
	End        int `json:"end"`
	TotalPages int `json:"totalPages"`
}

// Len is the number of items on the page.
func (w Window) Len() int { return w.End - w.Start }

// Paginate computes the window for currentPage (1-based). The range is
// clamped to [0, totalItems); pages outside the collection yield an empty
// window.
func Paginate(totalItems, pageSize, currentPage int) Window {
	if totalItems < 0 {
		totalItems = 0
	}
	if pageSize <= 0 {
		return Window{}
	}

	w := Window{TotalPages: totalItems / pageSize}
	if totalItems%pageSize != 0 {
		w.TotalPages++
	}

	switch {
	case currentPage < 1:
		return w
	case currentPage > w.TotalPages:
		w.Start, w.End = totalItems, totalItems
		return w
	}

	// currentPage <= TotalPages, so start stays within totalItems.
	w.Start = (currentPage - 1) * pageSize
	w.End = w.Start + min(pageSize, totalItems-w.Start)
	return w
}

// Slice returns the items inside w. The result shares the backing array.
func Slice[T any](items []T, w Window) []T {
	start := clamp(w.Start, 0, len(items))
	end := clamp(w.End, start, len(items))
	return items[start:end]
}

// PageItem is either a page number or an ellipsis.
type PageItem struct {
	Page     int
	Ellipsis bool
}

func (p PageItem) String() string {
	if p.Ellipsis {
		return EllipsisMarker
	}
	return strconv.Itoa(p.Page)
}

// MarshalJSON encodes a page as a number and an ellipsis as "...".
func (p PageItem) MarshalJSON() ([]byte, error) {
	if p.Ellipsis {
		return json.Marshal(EllipsisMarker)
	}
	return json.Marshal(p.Page)
}

// PageIndexDisplay lists the first page, the neighbours of currentPage, and
// the last page, with one ellipsis wherever numbers are skipped. It returns
// nil when there is at most one page, in which case no pager is shown.
func PageIndexDisplay(currentPage, totalPages int) []PageItem {
	if totalPages <= 1 {
		return nil
	}

	pages := []int{1}
	for i := max(2, currentPage-1); i <= min(currentPage+1, totalPages-1); i++ {
		pages = append(pages, i)
	}
	pages = append(pages, totalPages)

	items := make([]PageItem, 0, len(pages)+2)
	prev := 0
	for _, p := range pages {
		if p-prev > 1 {
			items = append(items, PageItem{Ellipsis: true})
		}
		items = append(items, PageItem{Page: p})
		prev = p
	}
	return items
}

// Pager is everything a listing needs to render one page and its controls.
type Pager struct {
	Window      Window     `json:"window"`
	CurrentPage int        `json:"currentPage"`
	PageSize    int        `json:"pageSize"`
	TotalItems  int        `json:"totalItems"`
	Pages       []PageItem `json:"pages,omitempty"`
	HasPrevious bool       `json:"hasPrevious"`
	HasNext     bool       `json:"hasNext"`
}

// NewPager combines Paginate and PageIndexDisplay.
func NewPager(totalItems, pageSize, currentPage int) Pager {
	w := Paginate(totalItems, pageSize, currentPage)
	return Pager{
		Window:      w,
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalItems:  max(totalItems, 0),
		Pages:       PageIndexDisplay(currentPage, w.TotalPages),
		HasPrevious: currentPage > 1,
		HasNext:     currentPage < w.TotalPages,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
