package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/msp-aci-api/internal/handler"
	"github.com/noah-isme/msp-aci-api/internal/middleware"
	"github.com/noah-isme/msp-aci-api/internal/service"
	"github.com/noah-isme/msp-aci-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/msp-aci-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/msp-aci-api/pkg/middleware/requestid"
)

// Options configures the HTTP surface.
type Options struct {
	APIPrefix      string
	AllowedOrigins []string
	EnableDocs     bool
	Logger         *zap.Logger
	Metrics        *service.MetricsService
}

// Handlers groups every HTTP handler mounted by the router.
type Handlers struct {
	Indicators *handler.IndicatorHandler
	Associates *handler.AssociateHandler
	Missions   *handler.MissionHandler
	Users      *handler.UserHandler
	Dashboard  *handler.DashboardHandler
	Archive    *handler.ArchiveHandler
	Metrics    *handler.MetricsHandler
}

// NewRouter builds the gin engine with the middleware chain and route table.
func NewRouter(opts Options, h Handlers) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.APIPrefix == "" {
		opts.APIPrefix = "/api"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(opts.Metrics))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.APIPrefix)
	api.Use(middleware.WithResponseMeta())

	api.GET("/indicators", h.Indicators.List)
	api.POST("/indicators", h.Indicators.Create)
	api.GET("/indicators/:id", h.Indicators.Get)
	api.PATCH("/indicators/:id", h.Indicators.Update)
	api.GET("/indicators/:id/missions", h.Indicators.Missions)

	api.GET("/associates", h.Associates.List)
	api.POST("/associates", h.Associates.Create)
	api.GET("/associates/:id", h.Associates.Get)
	api.PATCH("/associates/:id", h.Associates.Update)
	api.DELETE("/associates/:id", h.Associates.Delete)
	api.GET("/associates/:id/missions", h.Associates.Missions)

	api.GET("/missions", h.Missions.List)
	api.POST("/missions", h.Missions.Create)
	api.GET("/missions/:id", h.Missions.Get)
	api.PATCH("/missions/:id", h.Missions.Update)
	api.DELETE("/missions/:id", h.Missions.Delete)

	api.POST("/users", h.Users.Create)
	api.GET("/users/:id", h.Users.Get)

	api.GET("/stats", h.Dashboard.Stats)
	api.GET("/dashboard", h.Dashboard.Snapshot)
	api.GET("/compensation", h.Dashboard.Compensation)
	api.GET("/compensation/export", h.Dashboard.Export)
	if h.Archive != nil {
		api.POST("/compensation/archive", h.Archive.Create)
		api.GET("/compensation/archive/:token", h.Archive.Download)
	}

	return r
}
