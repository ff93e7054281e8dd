package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/msp-aci-api/internal/models"
	appErrors "github.com/noah-isme/msp-aci-api/pkg/errors"
)

type missionRepository interface {
	List(ctx context.Context) ([]models.Mission, error)
	ListByAssociate(ctx context.Context, associateID int64) ([]models.Mission, error)
	ListByIndicator(ctx context.Context, indicatorID int64) ([]models.Mission, error)
	FindByID(ctx context.Context, id int64) (*models.Mission, error)
	Create(ctx context.Context, mission *models.Mission) error
	Update(ctx context.Context, id int64, patch models.MissionPatch) (*models.Mission, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// CreateMissionRequest captures fields for assigning an associate to an indicator.
// Status defaults to in_progress and compensation to 0.
type CreateMissionRequest struct {
	AssociateID  *int64                `json:"associateId" validate:"required,min=1"`
	IndicatorID  *int64                `json:"indicatorId" validate:"required,min=1"`
	Status       *models.MissionStatus `json:"status" validate:"omitnil,oneof=validated in_progress not_validated"`
	CurrentValue *string               `json:"currentValue"`
	Compensation *int                  `json:"compensation" validate:"omitnil,min=0"`
	Notes        *string               `json:"notes"`
}

// UpdateMissionRequest carries a partial mission update. Omitted or null
// fields keep their stored value, except currentValue and notes where null
// clears the value.
type UpdateMissionRequest struct {
	AssociateID  *int64                  `json:"associateId" validate:"omitnil,min=1"`
	IndicatorID  *int64                  `json:"indicatorId" validate:"omitnil,min=1"`
	Status       *models.MissionStatus   `json:"status" validate:"omitnil,oneof=validated in_progress not_validated"`
	CurrentValue models.Nullable[string] `json:"currentValue"`
	Compensation *int                    `json:"compensation" validate:"omitnil,min=0"`
	Notes        models.Nullable[string] `json:"notes"`
}

// MissionService handles associate/indicator assignments. Referenced
// associates and indicators are not checked for existence.
type MissionService struct {
	repo      missionRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMissionService creates a new mission service.
func NewMissionService(repo missionRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *MissionService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MissionService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns every mission.
func (s *MissionService) List(ctx context.Context) ([]models.Mission, error) {
	missions, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list missions")
	}
	return missions, nil
}

// ListByAssociate returns the missions of one associate; unknown ids yield an empty list.
func (s *MissionService) ListByAssociate(ctx context.Context, associateID int64) ([]models.Mission, error) {
	missions, err := s.repo.ListByAssociate(ctx, associateID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list associate missions")
	}
	return missions, nil
}

// ListByIndicator returns the missions of one indicator; unknown ids yield an empty list.
func (s *MissionService) ListByIndicator(ctx context.Context, indicatorID int64) ([]models.Mission, error) {
	missions, err := s.repo.ListByIndicator(ctx, indicatorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list indicator missions")
	}
	return missions, nil
}

// Get returns a mission by identifier.
func (s *MissionService) Get(ctx context.Context, id int64) (*models.Mission, error) {
	mission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load mission")
	}
	if mission == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "mission not found")
	}
	return mission, nil
}

// Create assigns an associate to an indicator.
func (s *MissionService) Create(ctx context.Context, req CreateMissionRequest) (*models.Mission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid mission payload")
	}
	mission := &models.Mission{
		AssociateID:  *req.AssociateID,
		IndicatorID:  *req.IndicatorID,
		Status:       models.MissionStatusInProgress,
		CurrentValue: req.CurrentValue,
		Notes:        req.Notes,
	}
	if req.Status != nil {
		mission.Status = *req.Status
	}
	if req.Compensation != nil {
		mission.Compensation = *req.Compensation
	}
	if err := s.repo.Create(ctx, mission); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create mission")
	}
	s.logger.Info("mission created",
		zap.Int64("id", mission.ID),
		zap.Int64("associate_id", mission.AssociateID),
		zap.Int64("indicator_id", mission.IndicatorID),
		zap.String("status", string(mission.Status)),
	)
	invalidateDashboard(ctx, s.cache)
	return mission, nil
}

// Update merges the provided fields over an existing mission.
func (s *MissionService) Update(ctx context.Context, id int64, req UpdateMissionRequest) (*models.Mission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid mission payload")
	}
	mission, err := s.repo.Update(ctx, id, models.MissionPatch{
		AssociateID:  req.AssociateID,
		IndicatorID:  req.IndicatorID,
		Status:       req.Status,
		CurrentValue: req.CurrentValue,
		Compensation: req.Compensation,
		Notes:        req.Notes,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update mission")
	}
	if mission == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "mission not found")
	}
	invalidateDashboard(ctx, s.cache)
	return mission, nil
}

// Delete removes a mission.
func (s *MissionService) Delete(ctx context.Context, id int64) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete mission")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "mission not found")
	}
	invalidateDashboard(ctx, s.cache)
	return nil
}
