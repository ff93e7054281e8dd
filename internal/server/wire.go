package server

import (
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/msp-aci-api/internal/handler"
	"github.com/noah-isme/msp-aci-api/internal/repository"
	"github.com/noah-isme/msp-aci-api/internal/service"
	"github.com/noah-isme/msp-aci-api/pkg/storage"
)

// Dependencies are the long-lived collaborators shared by every handler.
type Dependencies struct {
	Store       *repository.Store
	Cache       *service.CacheService
	Metrics     *service.MetricsService
	Logger      *zap.Logger
	CacheTTL    time.Duration
	ExportTitle string
	Readiness   map[string]handler.ReadinessCheck
	Archive     *ArchiveDependencies
}

// ArchiveDependencies enable the export archive. Leave nil to disable it.
type ArchiveDependencies struct {
	Storage   *storage.LocalStorage
	Signer    *storage.SignedURLSigner
	Retention time.Duration
}

// Services are the domain services behind the HTTP handlers.
type Services struct {
	Indicators *service.IndicatorService
	Associates *service.AssociateService
	Missions   *service.MissionService
	Users      *service.UserService
	Dashboard  *service.DashboardService
	Exports    *service.ExportService
	Archive    *service.ArchiveService

	metrics   *service.MetricsService
	readiness map[string]handler.ReadinessCheck
}

// NewServices wires the domain services over the store.
func NewServices(deps Dependencies) *Services {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := service.NewValidator()

	svcs := &Services{
		Indicators: service.NewIndicatorService(deps.Store.Indicators, deps.Cache, validate, logger.Named("indicators")),
		Associates: service.NewAssociateService(deps.Store.Associates, deps.Cache, validate, logger.Named("associates")),
		Missions:   service.NewMissionService(deps.Store.Missions, deps.Cache, validate, logger.Named("missions")),
		Users:      service.NewUserService(deps.Store.Users, validate, logger.Named("users")),
		Dashboard: service.NewDashboardService(service.DashboardServiceParams{
			Indicators: deps.Store.Indicators,
			Associates: deps.Store.Associates,
			Missions:   deps.Store.Missions,
			Cache:      deps.Cache,
			Metrics:    deps.Metrics,
			Logger:     logger.Named("dashboard"),
			Config:     service.DashboardServiceConfig{CacheTTL: deps.CacheTTL},
		}),
		metrics:   deps.Metrics,
		readiness: deps.Readiness,
	}
	svcs.Exports = service.NewExportService(svcs.Dashboard, service.ExportConfig{Title: deps.ExportTitle}, logger.Named("export"))

	if a := deps.Archive; a != nil && a.Storage != nil && a.Signer != nil {
		svcs.Archive = service.NewArchiveService(service.ArchiveServiceParams{
			Exports:   svcs.Exports,
			Storage:   a.Storage,
			Signer:    a.Signer,
			Retention: a.Retention,
			Logger:    logger.Named("archive"),
		})
	}
	return svcs
}

// Handlers builds the HTTP handlers over the services.
func (s *Services) Handlers() Handlers {
	h := Handlers{
		Indicators: handler.NewIndicatorHandler(s.Indicators, s.Missions),
		Associates: handler.NewAssociateHandler(s.Associates, s.Missions),
		Missions:   handler.NewMissionHandler(s.Missions),
		Users:      handler.NewUserHandler(s.Users),
		Dashboard:  handler.NewDashboardHandler(s.Dashboard, s.Exports),
		Metrics:    handler.NewMetricsHandler(s.metrics, s.readiness),
	}
	if s.Archive != nil {
		h.Archive = handler.NewArchiveHandler(s.Archive)
	}
	return h
}

// NewHandlers wires services over the store and returns the HTTP handlers.
func NewHandlers(deps Dependencies) Handlers {
	return NewServices(deps).Handlers()
}
