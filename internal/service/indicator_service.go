package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/msp-aci-api/internal/models"
	"github.com/noah-isme/msp-aci-api/internal/repository"
	appErrors "github.com/noah-isme/msp-aci-api/pkg/errors"
)

type indicatorRepository interface {
	List(ctx context.Context) ([]models.Indicator, error)
	FindByID(ctx context.Context, id int64) (*models.Indicator, error)
	FindByCode(ctx context.Context, code string) (*models.Indicator, error)
	Create(ctx context.Context, indicator *models.Indicator) error
	Update(ctx context.Context, id int64, patch models.IndicatorPatch) (*models.Indicator, error)
}

// CreateIndicatorRequest captures fields for creating indicators.
type CreateIndicatorRequest struct {
	Code            string               `json:"code" validate:"required,max=16"`
	Name            string               `json:"name" validate:"required"`
	Description     string               `json:"description" validate:"required"`
	Type            models.IndicatorType `json:"type" validate:"required,oneof=core optional"`
	Objective       string               `json:"objective" validate:"required"`
	MaxCompensation *int                 `json:"maxCompensation" validate:"required,min=0"`
}

// UpdateIndicatorRequest carries a partial indicator update. Omitted or null
// fields keep their stored value.
type UpdateIndicatorRequest struct {
	Code            *string               `json:"code" validate:"omitnil,min=1,max=16"`
	Name            *string               `json:"name" validate:"omitnil,min=1"`
	Description     *string               `json:"description" validate:"omitnil,min=1"`
	Type            *models.IndicatorType `json:"type" validate:"omitnil,oneof=core optional"`
	Objective       *string               `json:"objective" validate:"omitnil,min=1"`
	MaxCompensation *int                  `json:"maxCompensation" validate:"omitnil,min=0"`
}

// IndicatorService handles the ACI catalogue. Writes are serialised so the
// code uniqueness check and the write it guards cannot interleave.
type IndicatorService struct {
	repo      indicatorRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	writeMu   sync.Mutex
}

// NewIndicatorService creates a new indicator service.
func NewIndicatorService(repo indicatorRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *IndicatorService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IndicatorService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns every indicator.
func (s *IndicatorService) List(ctx context.Context) ([]models.Indicator, error) {
	indicators, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list indicators")
	}
	return indicators, nil
}

// Get returns an indicator by identifier.
func (s *IndicatorService) Get(ctx context.Context, id int64) (*models.Indicator, error) {
	indicator, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load indicator")
	}
	if indicator == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "indicator not found")
	}
	return indicator, nil
}

// Create adds an indicator after checking its code is free.
func (s *IndicatorService) Create(ctx context.Context, req CreateIndicatorRequest) (*models.Indicator, error) {
	req.Code = normaliseCode(req.Code)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid indicator payload")
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.ensureCodeAvailable(ctx, req.Code, 0); err != nil {
		return nil, err
	}

	indicator := &models.Indicator{
		Code:            req.Code,
		Name:            req.Name,
		Description:     req.Description,
		Type:            req.Type,
		Objective:       req.Objective,
		MaxCompensation: *req.MaxCompensation,
	}
	if err := s.repo.Create(ctx, indicator); err != nil {
		return nil, writeFailure(err, "indicator code already exists", "failed to create indicator")
	}
	s.logger.Info("indicator created", zap.Int64("id", indicator.ID), zap.String("code", indicator.Code))
	invalidateDashboard(ctx, s.cache)
	return indicator, nil
}

// Update merges the provided fields over an existing indicator.
func (s *IndicatorService) Update(ctx context.Context, id int64, req UpdateIndicatorRequest) (*models.Indicator, error) {
	if req.Code != nil {
		code := normaliseCode(*req.Code)
		req.Code = &code
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid indicator payload")
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if req.Code != nil {
		if err := s.ensureCodeAvailable(ctx, *req.Code, id); err != nil {
			return nil, err
		}
	}

	indicator, err := s.repo.Update(ctx, id, models.IndicatorPatch{
		Code:            req.Code,
		Name:            req.Name,
		Description:     req.Description,
		Type:            req.Type,
		Objective:       req.Objective,
		MaxCompensation: req.MaxCompensation,
	})
	if err != nil {
		return nil, writeFailure(err, "indicator code already exists", "failed to update indicator")
	}
	if indicator == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "indicator not found")
	}
	invalidateDashboard(ctx, s.cache)
	return indicator, nil
}

func (s *IndicatorService) ensureCodeAvailable(ctx context.Context, code string, selfID int64) error {
	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check indicator code")
	}
	if existing != nil && existing.ID != selfID {
		return appErrors.Clone(appErrors.ErrConflict, "indicator code already exists")
	}
	return nil
}

// writeFailure maps a store write error: a unique violation the service
// check could not see (another process won the race) is a conflict.
func writeFailure(err error, conflict, internal string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, conflict)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, internal)
}

func normaliseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// invalidateDashboard drops cached dashboard payloads after a write. Failures
// are logged by the cache service and never fail the write itself.
func invalidateDashboard(ctx context.Context, cache *CacheService) {
	_ = cache.InvalidateDashboard(ctx)
}
