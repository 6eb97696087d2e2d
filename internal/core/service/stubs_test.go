package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkpost/blog-system/internal/core/domain"
)

var errStorageDown = errors.New("storage down")

// stubKV is an in-memory KeyValueStore that can be told to fail writes.
type stubKV struct {
	mu       sync.Mutex
	values   map[string]string
	setErr   error
	getErr   error
	delErr   error
	setCalls int
}

func newStubKV() *stubKV {
	return &stubKV{values: make(map[string]string)}
}

func (kv *stubKV) Get(_ context.Context, key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.getErr != nil {
		return "", false, kv.getErr
	}
	v, ok := kv.values[key]
	return v, ok, nil
}

func (kv *stubKV) Set(_ context.Context, key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.setCalls++
	if kv.setErr != nil {
		return kv.setErr
	}
	kv.values[key] = value
	return nil
}

func (kv *stubKV) Delete(_ context.Context, key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.delErr != nil {
		return kv.delErr
	}
	delete(kv.values, key)
	return nil
}

type recordingNotifier struct {
	got []domain.Notification
}

func (r *recordingNotifier) Notify(n domain.Notification) {
	r.got = append(r.got, n)
}

func (r *recordingNotifier) last() domain.Notification {
	if len(r.got) == 0 {
		return domain.Notification{}
	}
	return r.got[len(r.got)-1]
}

// stubIdentity is a settable IdentityProvider.
type stubIdentity struct {
	current *domain.Identity
}

func (s *stubIdentity) CurrentIdentity() (*domain.Identity, bool) {
	if s.current == nil {
		return nil, false
	}
	id := *s.current
	return &id, true
}

func (s *stubIdentity) as(id domain.Identity) { s.current = &id }

var (
	fixedNow = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)
	alice    = domain.Identity{ID: "1", Email: "demo@example.com", Name: "Demo User", CreatedAt: fixedNow}
	bob      = domain.Identity{ID: "2", Email: "jane@example.com", Name: "Jane Smith", CreatedAt: fixedNow}
)

func newTestIdentityService(kv *stubKV, n *recordingNotifier) *IdentityService {
	svc, err := NewIdentityService(kv, n, DemoDirectory(fixedNow), zerolog.Nop(),
		WithHashCost(bcrypt.MinCost),
		WithIdentityClock(func() time.Time { return fixedNow }),
	)
	if err != nil {
		panic(err)
	}
	return svc
}
