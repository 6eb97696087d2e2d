package service

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkpost/blog-system/internal/core/domain"
	"github.com/inkpost/blog-system/internal/core/ports"
)

// ContentService holds the post collection, newest first, and enforces that
// only a post's author may change or remove it.
type ContentService struct {
	mu       sync.Mutex
	kv       ports.KeyValueStore
	identity ports.IdentityProvider
	notifier ports.Notifier
	log      zerolog.Logger
	now      func() time.Time
	seed     []domain.Post
	posts    []domain.Post
	lastID   int64
}

// ContentOption customises a ContentService.
type ContentOption func(*ContentService)

// WithContentClock replaces time.Now.
func WithContentClock(now func() time.Time) ContentOption {
	return func(s *ContentService) { s.now = now }
}

// WithSeed sets the collection used when nothing usable is stored.
func WithSeed(posts []domain.Post) ContentOption {
	return func(s *ContentService) { s.seed = slices.Clone(posts) }
}

func NewContentService(
	kv ports.KeyValueStore,
	identity ports.IdentityProvider,
	notifier ports.Notifier,
	log zerolog.Logger,
	opts ...ContentOption,
) *ContentService {
	s := &ContentService{
		kv:       kv,
		identity: identity,
		notifier: notifierOrDiscard(notifier),
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the stored collection. An absent or corrupt collection is
// replaced by the seed and written back.
func (s *ContentService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []domain.Post
	found, err := loadJSON(ctx, s.kv, ports.KeyPostCollection, &posts)
	switch {
	case err != nil && !errors.Is(err, domain.ErrStorageCorrupt):
		return err
	case err != nil:
		s.log.Warn().Err(err).Msg("stored posts unreadable, resetting to seed")
		s.reset(ctx)
	case !found:
		s.reset(ctx)
	default:
		s.posts = posts
		if dropped := s.dropDuplicateIDs(); dropped > 0 {
			s.log.Warn().Int("dropped", dropped).Msg("stored posts had duplicate ids, keeping the first of each")
			s.persist(ctx)
		}
	}

	s.lastID = 0
	for _, p := range s.posts {
		if n, err := strconv.ParseInt(p.ID, 10, 64); err == nil && n > s.lastID {
			s.lastID = n
		}
	}
	s.log.Debug().Int("posts", len(s.posts)).Msg("posts loaded")
	return nil
}

// List returns every post in stored order, which is newest first.
func (s *ContentService) List() []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.posts)
}

func (s *ContentService) ListByOwner(identityID string) []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := make([]domain.Post, 0)
	for _, p := range s.posts {
		if p.OwnedBy(identityID) {
			owned = append(owned, p)
		}
	}
	return owned
}

// Featured returns the n most recently created posts.
func (s *ContentService) Featured(n int) []domain.Post {
	posts := s.List()
	domain.SortNewestFirst(posts)
	if n < 0 {
		n = 0
	}
	return posts[:min(n, len(posts))]
}

func (s *ContentService) GetByID(id string) (*domain.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	p := s.posts[i]
	return &p, true
}

func (s *ContentService) Create(ctx context.Context, title, content string) (*domain.Post, error) {
	author, ok := s.identity.CurrentIdentity()
	if !ok {
		s.notifier.Notify(failure("Authentication Error", "You must be logged in to create a blog post."))
		return nil, domain.ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	post := domain.Post{
		ID:        s.nextID(now),
		Title:     title,
		Content:   content,
		Excerpt:   domain.Excerpt(content),
		Author:    *author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.posts = append([]domain.Post{post}, s.posts...)
	s.persist(ctx)

	s.log.Info().Str("post_id", post.ID).Str("author_id", author.ID).Msg("post created")
	s.notifier.Notify(succeeded(domain.PostCreated, post, "Blog Created", "Your blog post has been published successfully."))
	return &post, nil
}

func (s *ContentService) Update(ctx context.Context, id, title, content string) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.authorize(id, "update")
	if err != nil {
		return nil, err
	}

	post := s.posts[i]
	post.Title = title
	post.Content = content
	post.Excerpt = domain.Excerpt(content)
	post.UpdatedAt = s.now().UTC()
	s.posts[i] = post
	s.persist(ctx)

	s.log.Info().Str("post_id", id).Msg("post updated")
	n := succeeded(domain.PostUpdated, post, "Blog Updated", "Your blog post has been updated successfully.")
	n.Redirect = domain.RedirectPost(id)
	s.notifier.Notify(n)
	return &post, nil
}

func (s *ContentService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.authorize(id, "delete")
	if err != nil {
		return err
	}

	s.posts = slices.Delete(s.posts, i, i+1)
	s.persist(ctx)

	s.log.Info().Str("post_id", id).Msg("post deleted")
	s.notifier.Notify(domain.Notification{
		Kind:        domain.NotificationSuccess,
		Title:       "Blog Deleted",
		Description: "Your blog post has been deleted successfully.",
		Redirect:    domain.RedirectDashboard,
		Event:       &domain.PostEvent{Type: domain.PostDeleted, PostID: id},
	})
	return nil
}

// authorize checks, in order, that someone is logged in, that the post
// exists and that the caller wrote it. It returns the post's index.
func (s *ContentService) authorize(id, verb string) (int, error) {
	actor, ok := s.identity.CurrentIdentity()
	if !ok {
		s.notifier.Notify(failure("Authentication Error", "You must be logged in to "+verb+" a blog post."))
		return -1, domain.ErrNotAuthenticated
	}

	i := s.indexOf(id)
	if i < 0 {
		s.notifier.Notify(failure("Blog Not Found", "The blog post you're trying to "+verb+" doesn't exist."))
		return -1, domain.ErrPostNotFound
	}

	if !s.posts[i].OwnedBy(actor.ID) {
		s.log.Warn().Str("post_id", id).Str("identity_id", actor.ID).Str("action", verb).Msg("ownership check failed")
		s.notifier.Notify(failure("Permission Denied", "You can only "+verb+" your own blog posts."))
		return -1, domain.ErrPermissionDenied
	}
	return i, nil
}

func (s *ContentService) indexOf(id string) int {
	return slices.IndexFunc(s.posts, func(p domain.Post) bool { return p.ID == id })
}

// dropDuplicateIDs keeps the first post for every id and reports how many
// later copies were removed.
func (s *ContentService) dropDuplicateIDs() int {
	seen := make(map[string]struct{}, len(s.posts))
	kept := s.posts[:0]
	for _, p := range s.posts {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		kept = append(kept, p)
	}
	dropped := len(s.posts) - len(kept)
	s.posts = kept
	return dropped
}

// nextID returns a millisecond timestamp, bumped past the last issued id so
// ids stay unique and increasing within the process.
func (s *ContentService) nextID(now time.Time) string {
	n := now.UnixMilli()
	if n <= s.lastID {
		n = s.lastID + 1
	}
	s.lastID = n
	return strconv.FormatInt(n, 10)
}

// persist writes the whole collection. A failed write leaves memory ahead of
// storage until the next successful write.
func (s *ContentService) persist(ctx context.Context) {
	if err := saveJSON(ctx, s.kv, ports.KeyPostCollection, s.posts); err != nil {
		s.log.Error().Err(err).Int("posts", len(s.posts)).Msg("failed to persist posts")
		s.notifier.Notify(notSaved)
	}
}

func (s *ContentService) reset(ctx context.Context) {
	s.posts = slices.Clone(s.seed)
	if s.posts == nil {
		s.posts = []domain.Post{}
	}
	s.persist(ctx)
}

func succeeded(t domain.EventType, post domain.Post, title, description string) domain.Notification {
	snapshot := post
	return domain.Notification{
		Kind:        domain.NotificationSuccess,
		Title:       title,
		Description: description,
		Redirect:    domain.RedirectDashboard,
		Event:       &domain.PostEvent{Type: t, PostID: post.ID, Post: &snapshot},
	}
}
