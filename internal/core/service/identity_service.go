package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkpost/blog-system/internal/core/domain"
	"github.com/inkpost/blog-system/internal/core/ports"
)

// DirectorySeed is a fixed login record with its plain secret. Secrets are
// hashed when the service is built and never kept in clear.
type DirectorySeed struct {
	Identity domain.Identity
	Secret   string
}

// DemoDirectory returns the built-in accounts.
func DemoDirectory(createdAt time.Time) []DirectorySeed {
	return []DirectorySeed{
		{
			Identity: domain.Identity{ID: "1", Email: "demo@example.com", Name: "Demo User", CreatedAt: createdAt},
			Secret:   "password",
		},
		{
			Identity: domain.Identity{ID: "2", Email: "jane@example.com", Name: "Jane Smith", CreatedAt: createdAt},
			Secret:   "password",
		},
	}
}

// IdentityService implements login, registration and the session identity.
//
// Registered accounts are added to the login directory and persisted, so a
// later logout and login with the same credentials succeeds.
type IdentityService struct {
	mu         sync.Mutex
	kv         ports.KeyValueStore
	notifier   ports.Notifier
	log        zerolog.Logger
	now        func() time.Time
	newID      func() string
	hashCost   int
	fixed      []domain.DirectoryEntry
	registered []domain.DirectoryEntry
	current    *domain.Identity
}

// IdentityOption customises an IdentityService.
type IdentityOption func(*IdentityService)

// WithIdentityClock replaces time.Now.
func WithIdentityClock(now func() time.Time) IdentityOption {
	return func(s *IdentityService) { s.now = now }
}

// WithIDGenerator replaces the uuid generator used for registrations.
func WithIDGenerator(newID func() string) IdentityOption {
	return func(s *IdentityService) { s.newID = newID }
}

// WithHashCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) IdentityOption {
	return func(s *IdentityService) { s.hashCost = cost }
}

func NewIdentityService(
	kv ports.KeyValueStore,
	notifier ports.Notifier,
	directory []DirectorySeed,
	log zerolog.Logger,
	opts ...IdentityOption,
) (*IdentityService, error) {
	s := &IdentityService{
		kv:       kv,
		notifier: notifierOrDiscard(notifier),
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.fixed = make([]domain.DirectoryEntry, 0, len(directory))
	for _, seed := range directory {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Secret), s.hashCost)
		if err != nil {
			return nil, fmt.Errorf("hash directory secret for %s: %w", seed.Identity.Email, err)
		}
		s.fixed = append(s.fixed, domain.DirectoryEntry{Identity: seed.Identity, SecretHash: string(hash)})
	}
	return s, nil
}

// Restore loads the persisted session and registered accounts. Corrupt
// values are dropped and the service starts logged out.
func (s *IdentityService) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var registered []domain.DirectoryEntry
	if _, err := loadJSON(ctx, s.kv, ports.KeyIdentityDirectory, &registered); err != nil {
		if !errors.Is(err, domain.ErrStorageCorrupt) {
			return err
		}
		s.log.Warn().Err(err).Msg("registered accounts unreadable, starting with the fixed directory")
		s.discard(ctx, ports.KeyIdentityDirectory)
		registered = nil
	}
	s.registered = registered

	var identity domain.Identity
	found, err := loadJSON(ctx, s.kv, ports.KeySessionIdentity, &identity)
	switch {
	case err != nil && !errors.Is(err, domain.ErrStorageCorrupt):
		return err
	case err != nil:
		s.log.Warn().Err(err).Msg("stored session unreadable, starting logged out")
		s.discard(ctx, ports.KeySessionIdentity)
	case found && identity.ID == "":
		s.log.Warn().Err(domain.ErrStorageCorrupt).Msg("stored session has no identity id, starting logged out")
		s.discard(ctx, ports.KeySessionIdentity)
	case found:
		s.current = &identity
		s.log.Debug().Str("identity_id", identity.ID).Msg("session restored")
	}
	return nil
}

func (s *IdentityService) Login(ctx context.Context, email, secret string) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.lookup(email)
	if !ok || bcrypt.CompareHashAndPassword([]byte(entry.SecretHash), []byte(secret)) != nil {
		s.log.Info().Str("email", email).Msg("login rejected")
		s.notifier.Notify(failure("Login failed", domain.ErrInvalidCredentials.Error()))
		return nil, domain.ErrInvalidCredentials
	}

	identity := entry.Stripped()
	s.startSession(ctx, identity)
	s.notifier.Notify(domain.Notification{
		Kind:        domain.NotificationSuccess,
		Title:       "Logged in successfully",
		Description: fmt.Sprintf("Welcome back, %s!", identity.Name),
		Redirect:    domain.RedirectDashboard,
	})
	return &identity, nil
}

func (s *IdentityService) Register(ctx context.Context, email, secret, name string) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if email == "" || secret == "" {
		s.notifier.Notify(failure("Signup failed", "Email and password are required."))
		return nil, domain.ErrInvalidCredentials
	}
	if _, taken := s.lookup(email); taken {
		s.notifier.Notify(failure("Signup failed", "Email already in use"))
		return nil, domain.ErrEmailAlreadyInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash secret: %w", err)
	}

	identity := domain.Identity{
		ID:        s.newID(),
		Email:     email,
		Name:      name,
		CreatedAt: s.now().UTC(),
	}
	s.registered = append(s.registered, domain.DirectoryEntry{Identity: identity, SecretHash: string(hash)})
	if err := saveJSON(ctx, s.kv, ports.KeyIdentityDirectory, s.registered); err != nil {
		s.log.Error().Err(err).Str("identity_id", identity.ID).Msg("failed to persist registered account")
		s.notifier.Notify(notSaved)
	}

	s.startSession(ctx, identity)
	s.log.Info().Str("identity_id", identity.ID).Msg("account registered")
	s.notifier.Notify(domain.Notification{
		Kind:        domain.NotificationSuccess,
		Title:       "Account created",
		Description: fmt.Sprintf("Welcome, %s!", name),
		Redirect:    domain.RedirectDashboard,
	})
	return &identity, nil
}

func (s *IdentityService) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	s.current = nil
	if err := s.kv.Delete(ctx, ports.KeySessionIdentity); err != nil {
		s.log.Error().Err(err).Msg("failed to clear stored session")
		s.notifier.Notify(notSaved)
	}
	s.notifier.Notify(domain.Notification{
		Kind:        domain.NotificationSuccess,
		Title:       "Logged out",
		Description: "You have been logged out successfully.",
		Redirect:    domain.RedirectHome,
	})
}

func (s *IdentityService) CurrentIdentity() (*domain.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, false
	}
	identity := *s.current
	return &identity, true
}

func (s *IdentityService) IsAuthenticated() bool {
	_, ok := s.CurrentIdentity()
	return ok
}

// lookup matches email exactly against the fixed and registered entries.
func (s *IdentityService) lookup(email string) (domain.DirectoryEntry, bool) {
	for _, set := range [][]domain.DirectoryEntry{s.fixed, s.registered} {
		for _, e := range set {
			if e.Identity.Email == email {
				return e, true
			}
		}
	}
	return domain.DirectoryEntry{}, false
}

func (s *IdentityService) startSession(ctx context.Context, identity domain.Identity) {
	s.current = &identity
	if err := saveJSON(ctx, s.kv, ports.KeySessionIdentity, identity); err != nil {
		s.log.Error().Err(err).Str("identity_id", identity.ID).Msg("failed to persist session")
		s.notifier.Notify(notSaved)
	}
}

func (s *IdentityService) discard(ctx context.Context, key string) {
	if err := s.kv.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to delete corrupt value")
	}
}
