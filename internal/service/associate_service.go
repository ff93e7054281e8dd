package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/msp-aci-api/internal/models"
	appErrors "github.com/noah-isme/msp-aci-api/pkg/errors"
)

type associateRepository interface {
	List(ctx context.Context) ([]models.Associate, error)
	FindByID(ctx context.Context, id int64) (*models.Associate, error)
	Create(ctx context.Context, associate *models.Associate) error
	Update(ctx context.Context, id int64, patch models.AssociatePatch) (*models.Associate, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// CreateAssociateRequest captures fields for registering an associate.
type CreateAssociateRequest struct {
	FirstName      string            `json:"firstName" validate:"required"`
	LastName       string            `json:"lastName" validate:"required"`
	Profession     models.Profession `json:"profession" validate:"required,oneof=doctor pharmacist nurse physiotherapist other"`
	Email          string            `json:"email" validate:"required"`
	Phone          *string           `json:"phone"`
	PatientCount   *int              `json:"patientCount" validate:"omitnil,min=0"`
	ActivePatients *int              `json:"activePatients" validate:"omitnil,min=0"`
}

// UpdateAssociateRequest carries a partial associate update. Omitted or null
// fields keep their stored value, except phone and the patient counts where
// null clears the value.
type UpdateAssociateRequest struct {
	FirstName      *string                 `json:"firstName" validate:"omitnil,min=1"`
	LastName       *string                 `json:"lastName" validate:"omitnil,min=1"`
	Profession     *models.Profession      `json:"profession" validate:"omitnil,oneof=doctor pharmacist nurse physiotherapist other"`
	Email          *string                 `json:"email" validate:"omitnil,min=1"`
	Phone          models.Nullable[string] `json:"phone"`
	PatientCount   models.Nullable[int]    `json:"patientCount" validate:"omitempty,min=0"`
	ActivePatients models.Nullable[int]    `json:"activePatients" validate:"omitempty,min=0"`
}

// AssociateService handles practice staff.
type AssociateService struct {
	repo      associateRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssociateService creates a new associate service.
func NewAssociateService(repo associateRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AssociateService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssociateService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns every associate.
func (s *AssociateService) List(ctx context.Context) ([]models.Associate, error) {
	associates, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list associates")
	}
	return associates, nil
}

// Get returns an associate by identifier.
func (s *AssociateService) Get(ctx context.Context, id int64) (*models.Associate, error) {
	associate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load associate")
	}
	if associate == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "associate not found")
	}
	return associate, nil
}

// Create registers an associate.
func (s *AssociateService) Create(ctx context.Context, req CreateAssociateRequest) (*models.Associate, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid associate payload")
	}
	associate := &models.Associate{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Profession:     req.Profession,
		Email:          req.Email,
		Phone:          req.Phone,
		PatientCount:   req.PatientCount,
		ActivePatients: req.ActivePatients,
	}
	if err := s.repo.Create(ctx, associate); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create associate")
	}
	s.logger.Info("associate created", zap.Int64("id", associate.ID), zap.String("profession", string(associate.Profession)))
	invalidateDashboard(ctx, s.cache)
	return associate, nil
}

// Update merges the provided fields over an existing associate.
func (s *AssociateService) Update(ctx context.Context, id int64, req UpdateAssociateRequest) (*models.Associate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid associate payload")
	}
	associate, err := s.repo.Update(ctx, id, models.AssociatePatch{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Profession:     req.Profession,
		Email:          req.Email,
		Phone:          req.Phone,
		PatientCount:   req.PatientCount,
		ActivePatients: req.ActivePatients,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update associate")
	}
	if associate == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "associate not found")
	}
	invalidateDashboard(ctx, s.cache)
	return associate, nil
}

// Delete removes an associate. Its missions are kept and keep pointing at
// the removed id.
func (s *AssociateService) Delete(ctx context.Context, id int64) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete associate")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "associate not found")
	}
	s.logger.Info("associate deleted", zap.Int64("id", id))
	invalidateDashboard(ctx, s.cache)
	return nil
}
