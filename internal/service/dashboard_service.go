package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/msp-aci-api/internal/dto"
	"github.com/noah-isme/msp-aci-api/internal/models"
	appErrors "github.com/noah-isme/msp-aci-api/pkg/errors"
)

type indicatorLister interface {
	List(ctx context.Context) ([]models.Indicator, error)
}

type associateLister interface {
	List(ctx context.Context) ([]models.Associate, error)
}

type missionLister interface {
	List(ctx context.Context) ([]models.Mission, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Indicators indicatorLister
	Associates associateLister
	Missions   missionLister
	Cache      *CacheService
	Metrics    *MetricsService
	Logger     *zap.Logger
	Config     DashboardServiceConfig
}

// DashboardService composes stats, the combined snapshot and the
// compensation report, caching each payload until the next write.
type DashboardService struct {
	indicators indicatorLister
	associates associateLister
	missions   missionLister
	cache      *CacheService
	metrics    *MetricsService
	logger     *zap.Logger
	cfg        DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultDashboardCacheTTL
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		indicators: params.Indicators,
		associates: params.Associates,
		missions:   params.Missions,
		cache:      params.Cache,
		metrics:    params.Metrics,
		logger:     logger,
		cfg:        cfg,
	}
}

// Stats returns the compensation summary and whether it came from cache.
func (s *DashboardService) Stats(ctx context.Context) (*models.Stats, bool, error) {
	gen := s.cache.Generation()
	var cached models.Stats
	if s.tryCache(ctx, statsCacheKey, &cached) {
		return &cached, true, nil
	}

	indicators, err := s.loadIndicators(ctx)
	if err != nil {
		return nil, false, err
	}
	missions, err := s.loadMissions(ctx)
	if err != nil {
		return nil, false, err
	}

	stats := s.computeStats(indicators, missions)
	s.persistCache(ctx, statsCacheKey, stats, gen)
	return &stats, false, nil
}

// Snapshot returns stats together with every indicator, associate and mission.
func (s *DashboardService) Snapshot(ctx context.Context) (*dto.DashboardSnapshot, bool, error) {
	gen := s.cache.Generation()
	var cached dto.DashboardSnapshot
	if s.tryCache(ctx, snapshotCacheKey, &cached) {
		return &cached, true, nil
	}

	indicators, err := s.loadIndicators(ctx)
	if err != nil {
		return nil, false, err
	}
	associates, err := s.loadAssociates(ctx)
	if err != nil {
		return nil, false, err
	}
	missions, err := s.loadMissions(ctx)
	if err != nil {
		return nil, false, err
	}

	snapshot := &dto.DashboardSnapshot{
		Stats:      s.computeStats(indicators, missions),
		Indicators: indicators,
		Associates: associates,
		Missions:   missions,
	}
	s.persistCache(ctx, snapshotCacheKey, snapshot, gen)
	return snapshot, false, nil
}

// Compensation returns the per-indicator compensation report.
func (s *DashboardService) Compensation(ctx context.Context) (*dto.CompensationBreakdown, bool, error) {
	gen := s.cache.Generation()
	var cached dto.CompensationBreakdown
	if s.tryCache(ctx, compensationCacheKey, &cached) {
		return &cached, true, nil
	}

	indicators, err := s.loadIndicators(ctx)
	if err != nil {
		return nil, false, err
	}
	missions, err := s.loadMissions(ctx)
	if err != nil {
		return nil, false, err
	}

	report := BuildCompensation(indicators, missions)
	s.persistCache(ctx, compensationCacheKey, report, gen)
	return &report, false, nil
}

func (s *DashboardService) computeStats(indicators []models.Indicator, missions []models.Mission) models.Stats {
	stats := ComputeStats(indicators, missions)
	s.metrics.RecordStats(stats)
	return stats
}

// tryCache reports a hit only when dest was filled; read failures fall
// through to a fresh computation.
func (s *DashboardService) tryCache(ctx context.Context, key string, dest interface{}) bool {
	hit, err := s.cache.Get(ctx, key, dest)
	return err == nil && hit
}

// persistCache writes value unless a mutation invalidated the dashboard
// since gen was captured.
func (s *DashboardService) persistCache(ctx context.Context, key string, value interface{}, gen uint64) {
	if err := s.cache.SetFresh(ctx, key, value, s.cfg.CacheTTL, gen); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *DashboardService) loadIndicators(ctx context.Context) ([]models.Indicator, error) {
	start := time.Now()
	indicators, err := s.indicators.List(ctx)
	s.metrics.ObserveStoreOperation("indicators_list", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load indicators")
	}
	return indicators, nil
}

func (s *DashboardService) loadAssociates(ctx context.Context) ([]models.Associate, error) {
	start := time.Now()
	associates, err := s.associates.List(ctx)
	s.metrics.ObserveStoreOperation("associates_list", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load associates")
	}
	return associates, nil
}

func (s *DashboardService) loadMissions(ctx context.Context) ([]models.Mission, error) {
	start := time.Now()
	missions, err := s.missions.List(ctx)
	s.metrics.ObserveStoreOperation("missions_list", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load missions")
	}
	return missions, nil
}
