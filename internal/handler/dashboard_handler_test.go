package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/msp-aci-api/internal/dto"
	"github.com/noah-isme/msp-aci-api/internal/middleware"
	"github.com/noah-isme/msp-aci-api/internal/models"
	"github.com/noah-isme/msp-aci-api/internal/service"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

type fakeDashboard struct {
	stats    *models.Stats
	statsHit bool
	err      error
}

func (f *fakeDashboard) Stats(context.Context) (*models.Stats, bool, error) {
	return f.stats, f.statsHit, f.err
}

func (f *fakeDashboard) Snapshot(context.Context) (*dto.DashboardSnapshot, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return &dto.DashboardSnapshot{Stats: *f.stats}, false, nil
}

func (f *fakeDashboard) Compensation(context.Context) (*dto.CompensationBreakdown, bool, error) {
	return &dto.CompensationBreakdown{}, false, f.err
}

type fakeExporter struct {
	format service.ExportFormat
}

func (f *fakeExporter) Export(_ context.Context, format service.ExportFormat) (*service.ExportFile, error) {
	f.format = format
	return &service.ExportFile{Filename: "compensation_20240301." + string(format), ContentType: "text/csv; charset=utf-8", Payload: []byte("Code\n")}, nil
}

func newDashboardContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	middleware.WithResponseMeta()(c)
	return c, rec
}

func TestDashboardHandlerStatsReportsCacheHit(t *testing.T) {
	handler := NewDashboardHandler(&fakeDashboard{stats: &models.Stats{TotalCoreIndicators: 6}, statsHit: true}, &fakeExporter{})
	c, rec := newDashboardContext("/stats")

	handler.Stats(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.EqualValues(t, 6, envelope.Data["totalCoreIndicators"])
}

func TestDashboardHandlerStatsFailure(t *testing.T) {
	handler := NewDashboardHandler(&fakeDashboard{err: errors.New("boom")}, &fakeExporter{})
	c, rec := newDashboardContext("/stats")

	handler.Stats(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "INTERNAL_ERROR", envelope.Error["code"])
}

func TestDashboardHandlerExportDefaultsToCSV(t *testing.T) {
	exporter := &fakeExporter{}
	handler := NewDashboardHandler(&fakeDashboard{stats: &models.Stats{}}, exporter)
	c, rec := newDashboardContext("/compensation/export")

	handler.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ExportFormatCSV, exporter.format)
	assert.Equal(t, `attachment; filename="compensation_20240301.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "Code\n", rec.Body.String())
}

func TestDashboardHandlerExportRejectsUnknownFormat(t *testing.T) {
	handler := NewDashboardHandler(&fakeDashboard{stats: &models.Stats{}}, &fakeExporter{})
	c, rec := newDashboardContext("/compensation/export?format=docx")

	handler.Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error["code"])
	details, ok := envelope.Error["details"].([]interface{})
	require.True(t, ok)
	assert.Len(t, details, 1)
}
