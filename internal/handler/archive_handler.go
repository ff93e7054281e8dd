package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/msp-aci-api/internal/dto"
	"github.com/noah-isme/msp-aci-api/internal/service"
	"github.com/noah-isme/msp-aci-api/pkg/response"
)

type exportArchiver interface {
	Archive(ctx context.Context, format service.ExportFormat) (*dto.ArchivedExport, error)
	Open(ctx context.Context, token string) (*service.ExportFile, error)
}

// ArchiveHandler exposes the compensation export archive.
type ArchiveHandler struct {
	archive exportArchiver
}

// NewArchiveHandler builds an ArchiveHandler.
func NewArchiveHandler(archive exportArchiver) *ArchiveHandler {
	return &ArchiveHandler{archive: archive}
}

// Create godoc
// @Summary Archive the compensation report and return a download link
// @Tags Dashboard
// @Produce json
// @Param format query string false "csv, pdf or xlsx" default(pdf)
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /compensation/archive [post]
func (h *ArchiveHandler) Create(c *gin.Context) {
	format, err := service.ParseExportFormat(c.DefaultQuery("format", string(service.ExportFormatPDF)))
	if err != nil {
		response.Error(c, err)
		return
	}
	archived, err := h.archive.Archive(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	archived.DownloadURL = strings.TrimRight(c.Request.URL.Path, "/") + "/" + archived.Token
	response.Created(c, archived)
}

// Download godoc
// @Summary Download an archived compensation report
// @Tags Dashboard
// @Param token path string true "Signed download token"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Failure 410 {object} response.Envelope
// @Router /compensation/archive/{token} [get]
func (h *ArchiveHandler) Download(c *gin.Context) {
	file, err := h.archive.Open(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}
