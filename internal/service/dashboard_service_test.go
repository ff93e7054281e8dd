package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/msp-aci-api/internal/models"
	"github.com/noah-isme/msp-aci-api/internal/repository"
)

type failingIndicatorLister struct{}

func (failingIndicatorLister) List(context.Context) ([]models.Indicator, error) {
	return nil, errors.New("db down")
}

// racingMissionLister runs onList once, after the missions were read but
// before the caller gets them back.
type racingMissionLister struct {
	missionLister
	onList func()
}

func (r *racingMissionLister) List(ctx context.Context) ([]models.Mission, error) {
	missions, err := r.missionLister.List(ctx)
	if r.onList != nil {
		hook := r.onList
		r.onList = nil
		hook()
	}
	return missions, err
}

func seededStore(t *testing.T) *repository.Store {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemoryStore()
	for _, ind := range []models.Indicator{
		{Code: "AS01", Type: models.IndicatorTypeCore, MaxCompensation: 4000},
		{Code: "AO01", Type: models.IndicatorTypeOptional, MaxCompensation: 2000},
	} {
		ind := ind
		require.NoError(t, store.Indicators.Create(ctx, &ind))
	}
	require.NoError(t, store.Associates.Create(ctx, &models.Associate{FirstName: "Martin", LastName: "Dubois", Profession: models.ProfessionDoctor}))
	for _, m := range []models.Mission{
		{AssociateID: 1, IndicatorID: 1, Status: models.MissionStatusValidated, Compensation: 4000},
		{AssociateID: 1, IndicatorID: 2, Status: models.MissionStatusInProgress},
	} {
		m := m
		require.NoError(t, store.Missions.Create(ctx, &m))
	}
	return store
}

func newDashboard(store *repository.Store, cache *CacheService) *DashboardService {
	return NewDashboardService(DashboardServiceParams{
		Indicators: store.Indicators,
		Associates: store.Associates,
		Missions:   store.Missions,
		Cache:      cache,
		Metrics:    NewMetricsService(),
		Logger:     zap.NewNop(),
	})
}

func TestDashboardServiceStatsCaching(t *testing.T) {
	store := seededStore(t)
	cache, _ := newTestCache()
	svc := newDashboard(store, cache)
	ctx := context.Background()

	stats, hit, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 4000, stats.FixedCompensation)
	assert.Equal(t, 2000, stats.MaxVariableCompensation)

	cached, hit, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, *stats, *cached)
}

func TestDashboardServiceWritesInvalidateCache(t *testing.T) {
	store := seededStore(t)
	cache, _ := newTestCache()
	svc := newDashboard(store, cache)
	missions := NewMissionService(store.Missions, cache, nil, nil)
	ctx := context.Background()

	_, _, err := svc.Stats(ctx)
	require.NoError(t, err)

	validated := models.MissionStatusValidated
	_, err = missions.Update(ctx, 2, UpdateMissionRequest{Status: &validated, Compensation: intPtr(2000)})
	require.NoError(t, err)

	stats, hit, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2000, stats.VariableCompensation)
	assert.Equal(t, 1, stats.ValidatedOptionalIndicators)
}

func TestDashboardServiceWorksWithoutCache(t *testing.T) {
	svc := newDashboard(seededStore(t), nil)

	_, hit, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestDashboardServiceFallsBackWhenCacheBroken(t *testing.T) {
	cache, repo := newTestCache()
	repo.getErr = errors.New("redis unavailable")
	svc := newDashboard(seededStore(t), cache)

	stats, hit, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, stats.TotalCoreIndicators)
}

func TestDashboardServiceSnapshot(t *testing.T) {
	svc := newDashboard(seededStore(t), nil)

	snapshot, _, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snapshot.Indicators, 2)
	assert.Len(t, snapshot.Associates, 1)
	assert.Len(t, snapshot.Missions, 2)
	assert.Equal(t, 1, snapshot.Stats.ValidatedCoreIndicators)
}

func TestDashboardServiceStoreFailure(t *testing.T) {
	store := seededStore(t)
	svc := NewDashboardService(DashboardServiceParams{
		Indicators: failingIndicatorLister{},
		Associates: store.Associates,
		Missions:   store.Missions,
	})

	_, _, err := svc.Compensation(context.Background())
	assert.Error(t, err)
}

func TestDashboardServiceDoesNotCacheResultOlderThanWrite(t *testing.T) {
	store := seededStore(t)
	cache, cacheRepo := newTestCache()
	missions := NewMissionService(store.Missions, cache, nil, nil)
	ctx := context.Background()

	validated := models.MissionStatusValidated
	lister := &racingMissionLister{missionLister: store.Missions}
	lister.onList = func() {
		_, err := missions.Update(ctx, 2, UpdateMissionRequest{Status: &validated, Compensation: intPtr(2000)})
		require.NoError(t, err)
	}
	svc := NewDashboardService(DashboardServiceParams{
		Indicators: store.Indicators,
		Associates: store.Associates,
		Missions:   lister,
		Cache:      cache,
		Metrics:    NewMetricsService(),
	})

	stale, hit, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 0, stale.VariableCompensation)
	assert.NotContains(t, cacheRepo.store, statsCacheKey)

	fresh, hit, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2000, fresh.VariableCompensation)

	_, hit, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.True(t, hit)
}
