package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/msp-aci-api/internal/models"
	"github.com/noah-isme/msp-aci-api/internal/repository"
	appErrors "github.com/noah-isme/msp-aci-api/pkg/errors"
)

func intPtr(i int) *int       { return &i }
func int64Ptr(i int64) *int64 { return &i }
func strPtr(s string) *string { return &s }

func validIndicatorRequest(code string) CreateIndicatorRequest {
	return CreateIndicatorRequest{
		Code:            code,
		Name:            "Horaires d'ouverture",
		Description:     "Ouverture de 8h a 20h",
		Type:            models.IndicatorTypeCore,
		Objective:       "100% de conformite",
		MaxCompensation: intPtr(800),
	}
}

func TestIndicatorServiceCreateNormalisesCode(t *testing.T) {
	cache, repo := newTestCache()
	svc := NewIndicatorService(repository.NewMemoryIndicatorRepository(), cache, nil, nil)

	ind, err := svc.Create(context.Background(), validIndicatorRequest("  as01 "))
	require.NoError(t, err)
	assert.Equal(t, int64(1), ind.ID)
	assert.Equal(t, "AS01", ind.Code)
	assert.Equal(t, 800, ind.MaxCompensation)
	assert.Equal(t, []string{"dash:*"}, repo.invalidated)
}

func TestIndicatorServiceCreateRejectsDuplicateCode(t *testing.T) {
	svc := NewIndicatorService(repository.NewMemoryIndicatorRepository(), nil, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, validIndicatorRequest("AS01"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, validIndicatorRequest("as01"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrConflict))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestIndicatorServiceCreateValidation(t *testing.T) {
	svc := NewIndicatorService(repository.NewMemoryIndicatorRepository(), nil, nil, nil)

	req := validIndicatorRequest("AS01")
	req.Type = "mandatory"
	req.MaxCompensation = nil
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	fields := map[string]string{}
	for _, d := range appErr.Details {
		fields[d.Field] = d.Rule
	}
	assert.Equal(t, "oneof", fields["type"])
	assert.Equal(t, "required", fields["maxCompensation"])
}

func TestIndicatorServiceCreateRejectsNegativeCeiling(t *testing.T) {
	svc := NewIndicatorService(repository.NewMemoryIndicatorRepository(), nil, nil, nil)

	req := validIndicatorRequest("AS01")
	req.MaxCompensation = intPtr(-1)
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "min", appErrors.FromError(err).Details[0].Rule)
}

func TestIndicatorServiceUpdate(t *testing.T) {
	svc := NewIndicatorService(repository.NewMemoryIndicatorRepository(), nil, nil, nil)
	ctx := context.Background()
	first, err := svc.Create(ctx, validIndicatorRequest("AS01"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, validIndicatorRequest("AS02"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, first.ID, UpdateIndicatorRequest{MaxCompensation: intPtr(1000)})
	require.NoError(t, err)
	assert.Equal(t, 1000, updated.MaxCompensation)
	assert.Equal(t, "AS01", updated.Code)
	assert.Equal(t, first.Name, updated.Name)

	same, err := svc.Update(ctx, first.ID, UpdateIndicatorRequest{Code: strPtr("as01")})
	require.NoError(t, err)
	assert.Equal(t, "AS01", same.Code)

	_, err = svc.Update(ctx, first.ID, UpdateIndicatorRequest{Code: strPtr("AS02")})
	assert.True(t, errors.Is(err, appErrors.ErrConflict))

	_, err = svc.Update(ctx, 99, UpdateIndicatorRequest{Name: strPtr("x")})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, err = svc.Update(ctx, first.ID, UpdateIndicatorRequest{Name: strPtr("")})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestIndicatorServiceGetNotFound(t *testing.T) {
	svc := NewIndicatorService(repository.NewMemoryIndicatorRepository(), nil, nil, nil)

	_, err := svc.Get(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestIndicatorServiceConcurrentCreatesKeepCodesUnique(t *testing.T) {
	repo := repository.NewMemoryIndicatorRepository()
	svc := NewIndicatorService(repo, nil, nil, nil)
	ctx := context.Background()

	const workers = 32
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, validIndicatorRequest("cs01"))
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.True(t, errors.Is(err, appErrors.ErrConflict), err)
	}
	assert.Equal(t, 1, created)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

type duplicateIndicatorRepo struct {
	*repository.MemoryIndicatorRepository
}

func (duplicateIndicatorRepo) Create(context.Context, *models.Indicator) error {
	return fmt.Errorf("create indicator: %w", repository.ErrDuplicate)
}

func TestIndicatorServiceStoreDuplicateIsConflict(t *testing.T) {
	svc := NewIndicatorService(duplicateIndicatorRepo{repository.NewMemoryIndicatorRepository()}, nil, nil, nil)

	_, err := svc.Create(context.Background(), validIndicatorRequest("AS01"))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.Status)
}
