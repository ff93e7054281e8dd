package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/msp-aci-api/internal/dto"
	"github.com/noah-isme/msp-aci-api/internal/middleware"
	"github.com/noah-isme/msp-aci-api/internal/models"
	"github.com/noah-isme/msp-aci-api/internal/service"
	"github.com/noah-isme/msp-aci-api/pkg/response"
)

type dashboardProvider interface {
	Stats(ctx context.Context) (*models.Stats, bool, error)
	Snapshot(ctx context.Context) (*dto.DashboardSnapshot, bool, error)
	Compensation(ctx context.Context) (*dto.CompensationBreakdown, bool, error)
}

type compensationExporter interface {
	Export(ctx context.Context, format service.ExportFormat) (*service.ExportFile, error)
}

// DashboardHandler serves aggregated dashboard endpoints.
type DashboardHandler struct {
	dashboard dashboardProvider
	exporter  compensationExporter
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(dashboard dashboardProvider, exporter compensationExporter) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, exporter: exporter}
}

// Stats godoc
// @Summary Compensation and validation summary
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, hit, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.OK(c, stats, middleware.ExtractMeta(c))
}

// Snapshot godoc
// @Summary Stats with every indicator, associate and mission
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Snapshot(c *gin.Context) {
	snapshot, hit, err := h.dashboard.Snapshot(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.OK(c, snapshot, middleware.ExtractMeta(c))
}

// Compensation godoc
// @Summary Per-indicator compensation report
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /compensation [get]
func (h *DashboardHandler) Compensation(c *gin.Context) {
	report, hit, err := h.dashboard.Compensation(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.OK(c, report, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Download the compensation report
// @Tags Dashboard
// @Produce text/csv
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv, pdf or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /compensation/export [get]
func (h *DashboardHandler) Export(c *gin.Context) {
	format, err := service.ParseExportFormat(c.DefaultQuery("format", string(service.ExportFormatCSV)))
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exporter.Export(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}
