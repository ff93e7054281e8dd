package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/msp-aci-api/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestMemoryIndicatorCreateThenFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryIndicatorRepository()

	input := models.Indicator{Code: "AS01", Name: "Horaires", Description: "d", Type: models.IndicatorTypeCore, Objective: "o", MaxCompensation: 800}
	created := input
	require.NoError(t, repo.Create(ctx, &created))
	assert.Equal(t, int64(1), created.ID)

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	input.ID = created.ID
	assert.Equal(t, input, *got)

	byCode, err := repo.FindByCode(ctx, "AS01")
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, created.ID, byCode.ID)

	missing, err := repo.FindByCode(ctx, "ZZ99")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryAssociateCreateThenFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAssociateRepository()

	a := models.Associate{FirstName: "Martin", LastName: "Dubois", Profession: models.ProfessionDoctor, Email: "m@msp.fr", Phone: strPtr("0102"), PatientCount: intPtr(1200), ActivePatients: intPtr(950)}
	require.NoError(t, repo.Create(ctx, &a))

	got, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a, *got)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAssociateRepository()

	phone := "0102"
	a := models.Associate{FirstName: "Sophie", Phone: &phone}
	require.NoError(t, repo.Create(ctx, &a))
	phone = "mutated"

	got, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	*got.Phone = "also mutated"
	got.FirstName = "changed"

	again, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "0102", *again.Phone)
	assert.Equal(t, "Sophie", again.FirstName)
}

func TestMemoryUpdateOnlyTouchesProvidedFields(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryMissionRepository()

	m := models.Mission{AssociateID: 1, IndicatorID: 2, Status: models.MissionStatusInProgress, CurrentValue: strPtr("50%"), Notes: strPtr("n")}
	require.NoError(t, repo.Create(ctx, &m))

	status := models.MissionStatusValidated
	comp := 800
	updated, err := repo.Update(ctx, m.ID, models.MissionPatch{Status: &status, Compensation: &comp})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, models.MissionStatusValidated, updated.Status)
	assert.Equal(t, 800, updated.Compensation)
	assert.Equal(t, int64(1), updated.AssociateID)
	assert.Equal(t, int64(2), updated.IndicatorID)
	assert.Equal(t, "50%", *updated.CurrentValue)
	assert.Equal(t, "n", *updated.Notes)
}

func TestMemoryUpdateClearsNullableFields(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAssociateRepository()

	a := models.Associate{FirstName: "Martin", Phone: strPtr("0102"), PatientCount: intPtr(1200), ActivePatients: intPtr(950)}
	require.NoError(t, repo.Create(ctx, &a))

	updated, err := repo.Update(ctx, a.ID, models.AssociatePatch{Phone: models.Null[string](), ActivePatients: models.NullableOf(900)})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Nil(t, updated.Phone)
	assert.Equal(t, 1200, *updated.PatientCount)
	assert.Equal(t, 900, *updated.ActivePatients)
}

func TestMemoryUpdateUnknownIDLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryIndicatorRepository()

	ind := models.Indicator{Code: "AS01", Type: models.IndicatorTypeCore, MaxCompensation: 800}
	require.NoError(t, repo.Create(ctx, &ind))
	before, err := repo.List(ctx)
	require.NoError(t, err)

	name := "ghost"
	updated, err := repo.Update(ctx, 42, models.IndicatorPatch{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, updated)

	after, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMemoryDeleteTwice(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAssociateRepository()

	a := models.Associate{FirstName: "Philippe"}
	require.NoError(t, repo.Create(ctx, &a))

	removed, err := repo.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	got, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	removed, err = repo.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMemoryIDsAreNeverReused(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryMissionRepository()

	var ids []int64
	for i := 0; i < 3; i++ {
		m := models.Mission{IndicatorID: int64(i + 1)}
		require.NoError(t, repo.Create(ctx, &m))
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int64{1, 2, 3}, ids)

	removed, err := repo.Delete(ctx, ids[1])
	require.NoError(t, err)
	require.True(t, removed)

	fourth := models.Mission{IndicatorID: 4}
	require.NoError(t, repo.Create(ctx, &fourth))
	assert.Greater(t, fourth.ID, ids[2])

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{1, 3, 4}, []int64{list[0].ID, list[1].ID, list[2].ID})
}

func TestMemoryMissionFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryMissionRepository()

	for _, m := range []models.Mission{
		{AssociateID: 1, IndicatorID: 10},
		{AssociateID: 2, IndicatorID: 10},
		{AssociateID: 1, IndicatorID: 99},
	} {
		m := m
		require.NoError(t, repo.Create(ctx, &m))
	}

	byAssociate, err := repo.ListByAssociate(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byAssociate, 2)

	byIndicator, err := repo.ListByIndicator(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, byIndicator, 2)

	none, err := repo.ListByIndicator(ctx, 7)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryConcurrentCreatesGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	const n = 50
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u := models.User{Username: "u"}
			_ = repo.Create(ctx, &u)
			ids <- u.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestNewMemoryStoreWiresEveryTable(t *testing.T) {
	store := NewMemoryStore()
	assert.NotNil(t, store.Users)
	assert.NotNil(t, store.Indicators)
	assert.NotNil(t, store.Associates)
	assert.NotNil(t, store.Missions)
}
