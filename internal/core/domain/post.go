package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	// ExcerptLength is the number of runes kept from the content.
	ExcerptLength = 150
	// ExcerptMarker is appended to a truncated excerpt.
	ExcerptMarker = "..."
)

// Post is a blog entry.
//
// Author is a copy of the identity taken when the post was created. It is not
// refreshed when the identity changes later, and it never changes owner.
type Post struct {
	ID        string    `json:"id" bson:"id"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	Excerpt   string    `json:"excerpt" bson:"excerpt"`
	Author    Identity  `json:"author" bson:"author"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// OwnedBy reports whether identityID authored the post.
func (p Post) OwnedBy(identityID string) bool {
	return p.Author.ID == identityID
}

// Excerpt derives the preview of a post body. Content of at most
// ExcerptLength runes is returned unchanged.
func Excerpt(content string) string {
	if utf8.RuneCountInString(content) <= ExcerptLength {
		return content
	}
	runes := []rune(content)
	head := strings.TrimRightFunc(string(runes[:ExcerptLength]), unicode.IsSpace)
	return head + ExcerptMarker
}

// SortNewestFirst orders posts by creation time, newest first. Posts created
// in the same instant keep their relative order.
func SortNewestFirst(posts []Post) {
	slices.SortStableFunc(posts, func(a, b Post) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
}
