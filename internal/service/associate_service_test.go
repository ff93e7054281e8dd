package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/msp-aci-api/internal/models"
	"github.com/noah-isme/msp-aci-api/internal/repository"
	appErrors "github.com/noah-isme/msp-aci-api/pkg/errors"
)

func TestAssociateServiceLifecycle(t *testing.T) {
	cache, cacheRepo := newTestCache()
	svc := NewAssociateService(repository.NewMemoryAssociateRepository(), cache, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateAssociateRequest{
		FirstName:    "Martin",
		LastName:     "Dubois",
		Profession:   models.ProfessionDoctor,
		Email:        " martin.dubois@msp.fr ",
		PatientCount: intPtr(1200),
	})
	require.NoError(t, err)
	assert.Equal(t, "martin.dubois@msp.fr", created.Email)
	assert.Nil(t, created.Phone)

	updated, err := svc.Update(ctx, created.ID, UpdateAssociateRequest{Phone: models.NullableOf("01 23 45 67 89")})
	require.NoError(t, err)
	assert.Equal(t, "01 23 45 67 89", *updated.Phone)
	assert.Equal(t, 1200, *updated.PatientCount)

	cleared, err := svc.Update(ctx, created.ID, UpdateAssociateRequest{Phone: models.Null[string](), PatientCount: models.Null[int]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.Phone)
	assert.Nil(t, cleared.PatientCount)

	require.NoError(t, svc.Delete(ctx, created.ID))
	err = svc.Delete(ctx, created.ID)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	assert.Len(t, cacheRepo.invalidated, 4)
}

func TestAssociateServiceValidation(t *testing.T) {
	svc := NewAssociateService(repository.NewMemoryAssociateRepository(), nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateAssociateRequest{
		FirstName:      "Sophie",
		Profession:     "dentist",
		Email:          "s@msp.fr",
		ActivePatients: intPtr(-3),
	})
	require.Error(t, err)

	rules := map[string]string{}
	for _, d := range appErrors.FromError(err).Details {
		rules[d.Field] = d.Rule
	}
	assert.Equal(t, map[string]string{"lastName": "required", "profession": "oneof", "activePatients": "min"}, rules)
}

func TestAssociateServiceUpdateUnknown(t *testing.T) {
	svc := NewAssociateService(repository.NewMemoryAssociateRepository(), nil, nil, nil)

	_, err := svc.Update(context.Background(), 7, UpdateAssociateRequest{FirstName: strPtr("x")})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestAssociateServiceUpdateRejectsNegativeCounts(t *testing.T) {
	svc := NewAssociateService(repository.NewMemoryAssociateRepository(), nil, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateAssociateRequest{FirstName: "Sophie", LastName: "Lefevre", Profession: models.ProfessionPharmacist, Email: "s@msp.fr"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, UpdateAssociateRequest{PatientCount: models.NullableOf(-1)})
	require.Error(t, err)
	details := appErrors.FromError(err).Details
	require.Len(t, details, 1)
	assert.Equal(t, "patientCount", details[0].Field)
	assert.Equal(t, "min", details[0].Rule)
}
