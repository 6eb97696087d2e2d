package ports

// MarkdownRenderer converts post content to HTML.
type MarkdownRenderer interface {
	Render(markdown string) (string, error)
}
