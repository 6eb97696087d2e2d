package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-system/internal/core/domain"
)

var (
	testNow = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)
	demo    = domain.Identity{ID: "1", Email: "demo@example.com", Name: "Demo User", CreatedAt: testNow}
)

type stubIdentityService struct {
	current    *domain.Identity
	loginFn    func(ctx context.Context, email, secret string) (*domain.Identity, error)
	registerFn func(ctx context.Context, email, secret, name string) (*domain.Identity, error)
	logouts    int
}

func (s *stubIdentityService) CurrentIdentity() (*domain.Identity, bool) {
	if s.current == nil {
		return nil, false
	}
	id := *s.current
	return &id, true
}

func (s *stubIdentityService) Login(ctx context.Context, email, secret string) (*domain.Identity, error) {
	return s.loginFn(ctx, email, secret)
}

func (s *stubIdentityService) Register(ctx context.Context, email, secret, name string) (*domain.Identity, error) {
	return s.registerFn(ctx, email, secret, name)
}

func (s *stubIdentityService) Logout(context.Context) {
	s.logouts++
	s.current = nil
}

func (s *stubIdentityService) IsAuthenticated() bool { return s.current != nil }

type stubTokens struct{}

func (stubTokens) Issue(identity domain.Identity) (string, error) {
	return "token-for-" + identity.ID, nil
}

type stubContent struct {
	posts    []domain.Post
	createFn func(ctx context.Context, title, content string) (*domain.Post, error)
	updateFn func(ctx context.Context, id, title, content string) (*domain.Post, error)
	deleteFn func(ctx context.Context, id string) error
	creates  int
}

func (s *stubContent) List() []domain.Post { return s.posts }

func (s *stubContent) ListByOwner(identityID string) []domain.Post {
	var out []domain.Post
	for _, p := range s.posts {
		if p.OwnedBy(identityID) {
			out = append(out, p)
		}
	}
	return out
}

func (s *stubContent) Featured(n int) []domain.Post {
	return s.posts[:min(n, len(s.posts))]
}

func (s *stubContent) GetByID(id string) (*domain.Post, bool) {
	for _, p := range s.posts {
		if p.ID == id {
			return &p, true
		}
	}
	return nil, false
}

func (s *stubContent) Create(ctx context.Context, title, content string) (*domain.Post, error) {
	s.creates++
	return s.createFn(ctx, title, content)
}

func (s *stubContent) Update(ctx context.Context, id, title, content string) (*domain.Post, error) {
	return s.updateFn(ctx, id, title, content)
}

func (s *stubContent) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubRenderer struct{}

func (stubRenderer) Render(markdown string) (string, error) {
	return "<p>" + markdown + "</p>", nil
}

type stubIdempotency struct {
	keys map[string]string
}

func (s *stubIdempotency) Lookup(_ context.Context, identityID, key string) (string, bool, error) {
	id, ok := s.keys[identityID+":"+key]
	return id, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, identityID, key, postID string) error {
	if s.keys == nil {
		s.keys = map[string]string{}
	}
	s.keys[identityID+":"+key] = postID
	return nil
}

// newContext builds an echo context with the validator installed.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func samplePosts(n int) []domain.Post {
	posts := make([]domain.Post, n)
	for i := range posts {
		id := string(rune('a' + i))
		posts[i] = domain.Post{
			ID:        id,
			Title:     "Post " + id,
			Content:   "Body " + id,
			Excerpt:   "Body " + id,
			Author:    demo,
			CreatedAt: testNow.Add(-time.Duration(i+1) * time.Hour),
			UpdatedAt: testNow.Add(-time.Duration(i+1) * time.Hour),
		}
	}
	return posts
}
