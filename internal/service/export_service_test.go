package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/msp-aci-api/internal/dto"
	"github.com/noah-isme/msp-aci-api/internal/models"
	appErrors "github.com/noah-isme/msp-aci-api/pkg/errors"
)

type fakeCompensation struct {
	report *dto.CompensationBreakdown
	err    error
}

func (f *fakeCompensation) Compensation(context.Context) (*dto.CompensationBreakdown, bool, error) {
	return f.report, false, f.err
}

func sampleReport() *dto.CompensationBreakdown {
	report := BuildCompensation(
		[]models.Indicator{
			{ID: 1, Code: "AS01", Name: "Horaires d'ouverture", Type: models.IndicatorTypeCore, MaxCompensation: 800},
			{ID: 2, Code: "AO01", Name: "Missions de sante publique", Type: models.IndicatorTypeOptional, MaxCompensation: 1000},
		},
		[]models.Mission{{ID: 1, IndicatorID: 1, Status: models.MissionStatusValidated, Compensation: 800}},
	)
	return &report
}

func newTestExportService(provider compensationProvider) *ExportService {
	svc := NewExportService(provider, ExportConfig{Title: "Synthese"}, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestParseExportFormat(t *testing.T) {
	format, err := ParseExportFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatXLSX, format)

	_, err = ParseExportFormat("docx")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "format", appErr.Details[0].Field)
}

func TestExportServiceCSV(t *testing.T) {
	svc := newTestExportService(&fakeCompensation{report: sampleReport()})

	file, err := svc.Export(context.Background(), ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "compensation_20240301.csv", file.Filename)
	assert.True(t, strings.HasPrefix(file.ContentType, "text/csv"))

	lines := strings.Split(strings.TrimSpace(string(file.Payload)), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Code;Indicator;Type;Max Compensation;Current Compensation;Validated", lines[0])
	assert.Equal(t, "AS01;Horaires d'ouverture;Core;800;800;Yes", lines[1])
	assert.Equal(t, "Total;;;1800;800;", lines[5])
}

func TestExportServicePDFAndXLSX(t *testing.T) {
	svc := newTestExportService(&fakeCompensation{report: sampleReport()})

	pdf, err := svc.Export(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf.Payload, []byte("%PDF")))

	xlsx, err := svc.Export(context.Background(), ExportFormatXLSX)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(xlsx.Payload, []byte("PK")))
	assert.Equal(t, "compensation_20240301.xlsx", xlsx.Filename)
}

func TestExportServicePropagatesReportErrors(t *testing.T) {
	svc := newTestExportService(&fakeCompensation{err: errors.New("boom")})

	_, err := svc.Export(context.Background(), ExportFormatCSV)
	assert.Error(t, err)

	_, err = svc.Export(context.Background(), ExportFormat("odt"))
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
