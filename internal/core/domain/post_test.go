package domain

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestExcerpt(t *testing.T) {
	exact := strings.Repeat("a", ExcerptLength)
	long := strings.Repeat("b", ExcerptLength+40)

	if got := Excerpt(""); got != "" {
		t.Fatalf("empty content: got %q", got)
	}
	if got := Excerpt(exact); got != exact {
		t.Fatalf("content of exactly %d chars must be unchanged", ExcerptLength)
	}

	got := Excerpt(long)
	if len(got) != ExcerptLength+len(ExcerptMarker) {
		t.Fatalf("expected length %d, got %d", ExcerptLength+len(ExcerptMarker), len(got))
	}
	if !strings.HasPrefix(long, strings.TrimSuffix(got, ExcerptMarker)) {
		t.Fatalf("excerpt must be a prefix of the content")
	}
}

func TestExcerpt_TrimsTrailingWhitespace(t *testing.T) {
	content := strings.Repeat("c", ExcerptLength-3) + "   tail that gets cut off"

	got := Excerpt(content)
	want := strings.Repeat("c", ExcerptLength-3) + ExcerptMarker
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExcerpt_CountsRunes(t *testing.T) {
	content := strings.Repeat("é", ExcerptLength+1)

	got := Excerpt(content)
	if n := utf8.RuneCountInString(got); n != ExcerptLength+len(ExcerptMarker) {
		t.Fatalf("expected %d runes, got %d", ExcerptLength+len(ExcerptMarker), n)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("excerpt split a multi-byte character")
	}
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	posts := []Post{
		{ID: "old", CreatedAt: base},
		{ID: "new", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "mid-a", CreatedAt: base.Add(time.Hour)},
		{ID: "mid-b", CreatedAt: base.Add(time.Hour)},
	}

	SortNewestFirst(posts)

	order := []string{posts[0].ID, posts[1].ID, posts[2].ID, posts[3].ID}
	want := []string{"new", "mid-a", "mid-b", "old"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestNotificationKey(t *testing.T) {
	withEvent := Notification{Title: "Blog Created", Event: &PostEvent{Type: PostCreated, PostID: "42"}}
	if withEvent.Key() != "42" {
		t.Fatalf("expected post id as key, got %q", withEvent.Key())
	}
	if (Notification{Title: "Logged out"}).Key() != "Logged out" {
		t.Fatalf("expected title as key")
	}
}
