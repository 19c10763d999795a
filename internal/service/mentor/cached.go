package mentor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/careercanvas/career-canvas-api/internal/platform/cache"
	applog "github.com/careercanvas/career-canvas-api/internal/platform/logging"
)

const cacheNamespace = "mentors"

// DefaultCacheTTL bounds how long a listing may be served stale by another instance.
const DefaultCacheTTL = 30 * time.Second

// CachedStore caches listings and profile reads of an inner Store. Every
// successful mutation bumps the namespace version, so cached entries are
// never served after a write through this store. Cache failures fall back to
// the inner store.
type CachedStore struct {
	Store
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedStore wraps inner with c. A non-positive ttl uses DefaultCacheTTL.
func NewCachedStore(inner Store, c cache.Cache, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedStore{Store: inner, cache: c, ttl: ttl}
}

// List implements Store.
func (s *CachedStore) List(ctx context.Context, q Query) ([]*Mentor, error) {
	var cached []*Mentor
	key, ok := s.lookup(ctx, "list:"+queryKey(q), &cached)
	if ok {
		return cached, nil
	}
	mentors, err := s.Store.List(ctx, q)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, mentors)
	return mentors, nil
}

// Get implements Store.
func (s *CachedStore) Get(ctx context.Context, id string) (*Mentor, error) {
	var cached Mentor
	key, ok := s.lookup(ctx, "id:"+id, &cached)
	if ok {
		return &cached, nil
	}
	m, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, m)
	return m, nil
}

// Create implements Store.
func (s *CachedStore) Create(ctx context.Context, m *Mentor) error {
	if err := s.Store.Create(ctx, m); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Update implements Store.
func (s *CachedStore) Update(ctx context.Context, id string, fn func(*Mentor) error) (*Mentor, error) {
	m, err := s.Store.Update(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return m, nil
}

// Delete implements Store.
func (s *CachedStore) Delete(ctx context.Context, id string, check func(*Mentor) error) error {
	if err := s.Store.Delete(ctx, id, check); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// lookup builds the versioned key for suffix and reads it into dest. An empty
// key means the cache is unavailable and nothing should be written back.
func (s *CachedStore) lookup(ctx context.Context, suffix string, dest any) (string, bool) {
	version, err := s.cache.Version(ctx, cacheNamespace)
	if err != nil {
		applog.LogWarn(ctx, "mentor cache unavailable", zap.Error(err))
		return "", false
	}
	key := fmt.Sprintf("%s:v%d:%s", cacheNamespace, version, suffix)
	err = s.cache.Get(ctx, key, dest)
	switch {
	case err == nil:
		return key, true
	case !errors.Is(err, cache.ErrMiss):
		applog.LogWarn(ctx, "mentor cache read failed", zap.String("key", key), zap.Error(err))
	}
	return key, false
}

func (s *CachedStore) store(ctx context.Context, key string, value any) {
	if key == "" {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		applog.LogWarn(ctx, "mentor cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *CachedStore) invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx, cacheNamespace); err != nil {
		applog.LogError(ctx, "mentor cache invalidation failed", err)
	}
}

// queryKey is a stable digest of q, including expression types.
func queryKey(q Query) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%#v", q))
	return hex.EncodeToString(sum[:16])
}

var _ Store = (*CachedStore)(nil)
