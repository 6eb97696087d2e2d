// Package markdown turns post content into HTML for the detail view.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// HeadingIDPrefix is prepended to every generated heading id.
const HeadingIDPrefix = "blog-heading-"

var headingID = regexp.MustCompile(`^` + HeadingIDPrefix + `[\p{L}\p{N}_-]*$`)

// Renderer converts GitHub-flavoured markdown to HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer builds a Renderer. With sanitize disabled raw HTML in the
// source reaches the output untouched.
func NewRenderer(sanitize bool) *Renderer {
	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithHardWraps(), html.WithUnsafe()),
		),
	}
	if sanitize {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("id").Matching(headingID).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
		r.policy = p
	}
	return r
}

func (r *Renderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	pc := parser.NewContext(parser.WithIDs(newHeadingIDs()))
	if err := r.md.Convert([]byte(src), &buf, parser.WithContext(pc)); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	if r.policy != nil {
		return r.policy.Sanitize(buf.String()), nil
	}
	return buf.String(), nil
}

// headingIDs slugs heading text and keeps ids unique within one document.
type headingIDs struct {
	seen map[string]struct{}
}

func newHeadingIDs() *headingIDs {
	return &headingIDs{seen: make(map[string]struct{})}
}

func (s *headingIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	slug := slugify(string(value))
	if slug == "" {
		slug = "heading"
		if kind != ast.KindHeading {
			slug = "id"
		}
	}
	id := HeadingIDPrefix + slug
	if _, ok := s.seen[id]; !ok {
		s.seen[id] = struct{}{}
		return []byte(id)
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", id, i)
		if _, ok := s.seen[candidate]; !ok {
			s.seen[candidate] = struct{}{}
			return []byte(candidate)
		}
	}
}

func (s *headingIDs) Put(value []byte) {
	s.seen[string(value)] = struct{}{}
}

func slugify(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('-')
		}
	}
	return b.String()
}
