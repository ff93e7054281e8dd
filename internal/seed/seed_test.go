package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/msp-aci-api/internal/models"
	"github.com/noah-isme/msp-aci-api/internal/repository"
	"github.com/noah-isme/msp-aci-api/internal/service"
)

func TestLoadPopulatesEmptyStore(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()

	res, err := Load(ctx, store, nil)
	require.NoError(t, err)
	assert.Equal(t, Result{Indicators: 19, Associates: 3, Missions: 9}, res)

	indicators, err := store.Indicators.List(ctx)
	require.NoError(t, err)
	missions, err := store.Missions.List(ctx)
	require.NoError(t, err)

	stats := service.ComputeStats(indicators, missions)
	assert.Equal(t, models.Stats{
		TotalCoreIndicators:         6,
		ValidatedCoreIndicators:     6,
		TotalOptionalIndicators:     13,
		ValidatedOptionalIndicators: 0,
		FixedCompensation:           27250,
		VariableCompensation:        0,
		MaxFixedCompensation:        27250,
		MaxVariableCompensation:     22750,
	}, stats)
}

func TestLoadResolvesIndicatorsByCode(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	_, err := Load(ctx, store, nil)
	require.NoError(t, err)

	cs01, err := store.Indicators.FindByCode(ctx, "CS01")
	require.NoError(t, err)
	require.NotNil(t, cs01)

	missions, err := store.Missions.ListByIndicator(ctx, cs01.ID)
	require.NoError(t, err)
	require.Len(t, missions, 1)
	assert.Equal(t, 7000, missions[0].Compensation)
	assert.Equal(t, "10h par semaine", *missions[0].CurrentValue)

	martin, err := store.Associates.FindByID(ctx, missions[0].AssociateID)
	require.NoError(t, err)
	require.NotNil(t, martin)
	assert.Equal(t, "Martin Dubois", martin.FullName())
}

func TestLoadSkipsPopulatedStore(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	require.NoError(t, store.Indicators.Create(ctx, &models.Indicator{Code: "ZZ01", Type: models.IndicatorTypeCore}))

	res, err := Load(ctx, store, nil)
	require.NoError(t, err)
	assert.Zero(t, res)

	associates, err := store.Associates.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, associates)
}

func TestCatalogueCodesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, ind := range Indicators {
		assert.False(t, seen[ind.Code], ind.Code)
		assert.True(t, ind.Type.Valid(), ind.Code)
		seen[ind.Code] = true
	}
	for _, m := range Missions {
		assert.True(t, seen[m.IndicatorCode], m.IndicatorCode)
	}
}
