package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/msp-aci-api/internal/dto"
	"github.com/noah-isme/msp-aci-api/internal/models"
	appErrors "github.com/noah-isme/msp-aci-api/pkg/errors"
	"github.com/noah-isme/msp-aci-api/pkg/export"
)

// ExportFormat names a supported compensation export encoding.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatPDF  ExportFormat = "pdf"
	ExportFormatXLSX ExportFormat = "xlsx"
)

var exportContentTypes = map[ExportFormat]string{
	ExportFormatCSV:  "text/csv; charset=utf-8",
	ExportFormatPDF:  "application/pdf",
	ExportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Export column headers.
const (
	colCode         = "Code"
	colIndicator    = "Indicator"
	colType         = "Type"
	colMax          = "Max Compensation"
	colCurrent      = "Current Compensation"
	colValidated    = "Validated"
	exportSheetName = "Compensation"
)

type compensationProvider interface {
	Compensation(ctx context.Context) (*dto.CompensationBreakdown, bool, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type xlsxRenderer interface {
	Render(data export.Dataset, sheet string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	Title string
}

// ExportFile is a rendered export ready to stream to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the compensation report into downloadable files.
type ExportService struct {
	reports compensationProvider
	csv     csvRenderer
	pdf     pdfRenderer
	xlsx    xlsxRenderer
	logger  *zap.Logger
	cfg     ExportConfig
	now     func() time.Time
}

// NewExportService constructs an ExportService with the default renderers.
func NewExportService(reports compensationProvider, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	pdf := export.NewPDFExporter()
	pdf.Widths = map[string]float64{colCode: 22, colType: 25, colMax: 38, colCurrent: 42, colValidated: 25}
	return &ExportService{
		reports: reports,
		csv:     export.NewCSVExporter(),
		pdf:     pdf,
		xlsx:    export.NewXLSXExporter(colMax, colCurrent),
		logger:  logger,
		cfg:     cfg,
		now:     time.Now,
	}
}

// ParseExportFormat validates a user supplied format name.
func ParseExportFormat(raw string) (ExportFormat, error) {
	format := ExportFormat(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := exportContentTypes[format]; ok {
		return format, nil
	}
	appErr := appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	appErr.Details = []appErrors.FieldError{{Field: "format", Rule: "oneof", Message: "must be one of [csv pdf xlsx]"}}
	return "", appErr
}

// Export renders the current compensation report in the requested format.
func (s *ExportService) Export(ctx context.Context, format ExportFormat) (*ExportFile, error) {
	contentType, ok := exportContentTypes[format]
	if !ok {
		_, err := ParseExportFormat(string(format))
		return nil, err
	}
	report, _, err := s.reports.Compensation(ctx)
	if err != nil {
		return nil, err
	}

	dataset := compensationDataset(report)
	var payload []byte
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, s.cfg.Title)
	case ExportFormatXLSX:
		payload, err = s.xlsx.Render(dataset, exportSheetName)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	filename := fmt.Sprintf("compensation_%s.%s", s.now().UTC().Format("20060102"), format)
	s.logger.Info("compensation exported", zap.String("format", string(format)), zap.Int("bytes", len(payload)))
	return &ExportFile{Filename: filename, ContentType: contentType, Payload: payload}, nil
}

func compensationDataset(report *dto.CompensationBreakdown) export.Dataset {
	data := export.Dataset{Headers: []string{colCode, colIndicator, colType, colMax, colCurrent, colValidated}}
	for _, line := range report.Indicators {
		data.Rows = append(data.Rows, map[string]string{
			colCode:      line.Code,
			colIndicator: line.Name,
			colType:      typeLabel(line.Type),
			colMax:       strconv.Itoa(line.MaxCompensation),
			colCurrent:   strconv.Itoa(line.CurrentCompensation),
			colValidated: yesNo(line.Validated),
		})
	}
	t := report.Totals
	data.Footer = []map[string]string{
		{colCode: "Fixed", colMax: strconv.Itoa(t.MaxFixedCompensation), colCurrent: strconv.Itoa(t.FixedCompensation)},
		{colCode: "Variable", colMax: strconv.Itoa(t.MaxVariableCompensation), colCurrent: strconv.Itoa(t.VariableCompensation)},
		{colCode: "Total", colMax: strconv.Itoa(t.MaxTotalCompensation), colCurrent: strconv.Itoa(t.TotalCompensation)},
	}
	return data
}

func typeLabel(t models.IndicatorType) string {
	if t == models.IndicatorTypeCore {
		return "Core"
	}
	return "Optional"
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
