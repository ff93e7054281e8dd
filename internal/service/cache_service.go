package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/msp-aci-api/pkg/errors"
)

// Dashboard cache keys. Every entity mutation drops the whole namespace.
const (
	dashboardCachePattern    = "dash:*"
	statsCacheKey            = "dash:stats"
	snapshotCacheKey         = "dash:snapshot"
	compensationCacheKey     = "dash:compensation"
	defaultDashboardCacheTTL = 5 * time.Minute
)

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService wraps the cache repository with metrics and logging. A nil or
// disabled service behaves as a permanent miss.
//
// generation is bumped by every dashboard invalidation. Readers capture it
// before loading data and write through SetFresh, so a payload computed
// before a write can never outlive that write's invalidation.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
	generation atomic.Uint64
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = defaultDashboardCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get loads key into dest and reports whether the cache was hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, appErrors.ErrCacheMiss):
		return false, nil
	default:
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false, err
	}
}

// Set stores value under key; a non-positive ttl uses the default.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Generation returns the current dashboard cache generation.
func (s *CacheService) Generation() uint64 {
	if s == nil {
		return 0
	}
	return s.generation.Load()
}

// SetFresh stores value only if no dashboard invalidation happened since gen
// was read. An invalidation landing while the write is in flight removes the
// entry again.
func (s *CacheService) SetFresh(ctx context.Context, key string, value interface{}, ttl time.Duration, gen uint64) error {
	if !s.Enabled() {
		return nil
	}
	if s.generation.Load() != gen {
		s.logger.Debug("stale cache write skipped", zap.String("key", key))
		return nil
	}
	if err := s.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	if s.generation.Load() != gen {
		s.logger.Debug("stale cache write dropped", zap.String("key", key))
		return s.Invalidate(ctx, key)
	}
	return nil
}

// Invalidate removes cached values matching pattern.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
		return err
	}
	return nil
}

// InvalidateDashboard drops every cached dashboard payload. The generation
// moves first so in-flight reads stop writing before the keys are deleted.
func (s *CacheService) InvalidateDashboard(ctx context.Context) error {
	if s != nil {
		s.generation.Add(1)
	}
	return s.Invalidate(ctx, dashboardCachePattern)
}
