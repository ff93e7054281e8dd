package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/msp-aci-api/pkg/errors"
)

type stubCacheRepo struct {
	store       map[string][]byte
	getErr      error
	invalidated []string
	afterSet    func()
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	if s.getErr != nil {
		return s.getErr
	}
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	if s.afterSet != nil {
		hook := s.afterSet
		s.afterSet = nil
		hook()
	}
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	s.invalidated = append(s.invalidated, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range s.store {
		if strings.HasPrefix(key, prefix) {
			delete(s.store, key)
		}
	}
	return nil
}

func newTestCache() (*CacheService, *stubCacheRepo) {
	repo := &stubCacheRepo{}
	return NewCacheService(repo, NewMetricsService(), time.Minute, zap.NewNop(), true), repo
}

func TestCacheServiceRoundTrip(t *testing.T) {
	cache, _ := newTestCache()
	ctx := context.Background()

	var out map[string]int
	hit, err := cache.Get(ctx, "dash:stats", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, "dash:stats", map[string]int{"a": 1}, 0))
	hit, err = cache.Get(ctx, "dash:stats", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, out["a"])
}

func TestCacheServiceInvalidateDashboard(t *testing.T) {
	cache, repo := newTestCache()
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "dash:stats", 1, 0))
	require.NoError(t, cache.Set(ctx, "other", 1, 0))

	require.NoError(t, cache.InvalidateDashboard(ctx))

	assert.Equal(t, []string{"dash:*"}, repo.invalidated)
	assert.NotContains(t, repo.store, "dash:stats")
	assert.Contains(t, repo.store, "other")
}

func TestCacheServiceDisabledIsPermanentMiss(t *testing.T) {
	repo := &stubCacheRepo{}
	cache := NewCacheService(repo, nil, 0, nil, false)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", 1, 0))
	var out int
	hit, err := cache.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, repo.store)

	var nilCache *CacheService
	assert.False(t, nilCache.Enabled())
	assert.NoError(t, nilCache.InvalidateDashboard(ctx))
}

func TestCacheServiceSurfacesBackendErrors(t *testing.T) {
	cache, repo := newTestCache()
	repo.getErr = errors.New("connection refused")

	var out int
	hit, err := cache.Get(context.Background(), "k", &out)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestCacheServiceSetFreshSkipsStaleGeneration(t *testing.T) {
	cache, repo := newTestCache()
	ctx := context.Background()

	gen := cache.Generation()
	require.NoError(t, cache.InvalidateDashboard(ctx))
	require.NoError(t, cache.SetFresh(ctx, "dash:stats", map[string]int{"a": 1}, 0, gen))
	assert.NotContains(t, repo.store, "dash:stats")

	gen = cache.Generation()
	require.NoError(t, cache.SetFresh(ctx, "dash:stats", map[string]int{"a": 2}, 0, gen))
	assert.Contains(t, repo.store, "dash:stats")
}

func TestCacheServiceSetFreshDropsWriteRacingInvalidation(t *testing.T) {
	cache, repo := newTestCache()
	ctx := context.Background()

	gen := cache.Generation()
	repo.afterSet = func() {
		cache.generation.Add(1)
	}
	require.NoError(t, cache.SetFresh(ctx, "dash:snapshot", map[string]int{"a": 1}, 0, gen))

	assert.NotContains(t, repo.store, "dash:snapshot")
	assert.Equal(t, []string{"dash:snapshot"}, repo.invalidated)
}
