package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/dto"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/service"
	appErrors "github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/errors"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/response"
)

// Import payloads are tiny id lists; anything bigger is not a schedule file.
const maxImportBytes = 1 << 20

type scheduleExporter interface {
	Export(ctx context.Context, req dto.ExportScheduleRequest) (*dto.ScheduleExport, error)
	Import(ctx context.Context, raw []byte) (*dto.ImportScheduleResponse, error)
	Download(ctx context.Context, scheduleID string, req dto.DownloadScheduleRequest, format service.DownloadFormat) (*service.DownloadResult, error)
}

// ExportHandler exposes the schedule envelope round-trip and file downloads.
type ExportHandler struct {
	service          scheduleExporter
	downloadsEnabled bool
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc *service.ExportService, downloadsEnabled bool) *ExportHandler {
	return &ExportHandler{service: svc, downloadsEnabled: downloadsEnabled}
}

// Export godoc
// @Summary Serialise a schedule into the portable envelope
// @Tags Export
// @Accept json
// @Produce json
// @Param payload body dto.ExportScheduleRequest true "Export payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/export [post]
func (h *ExportHandler) Export(c *gin.Context) {
	var req dto.ExportScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	envelope, err := h.service.Export(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, envelope, nil)
}

// Import godoc
// @Summary Rehydrate a schedule from an envelope
// @Description The raw request body is the envelope itself, exactly as produced by /schedules/export. Unresolvable references fail the whole import.
// @Tags Export
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedules/import [post]
func (h *ExportHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read schedule file"))
		return
	}
	result, err := h.service.Import(c.Request.Context(), raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Download godoc
// @Summary Download a schedule as CSV or PDF
// @Tags Export
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Schedule ID (used for the filename)"
// @Param format query string false "csv or pdf" default(csv)
// @Param payload body dto.DownloadScheduleRequest true "Schedule to render"
// @Success 200 {file} binary
// @Router /schedules/{id}/download [post]
func (h *ExportHandler) Download(c *gin.Context) {
	if !h.downloadsEnabled {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "schedule downloads are disabled"))
		return
	}
	var req dto.DownloadScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid download payload"))
		return
	}
	format := service.DownloadFormat(c.DefaultQuery("format", string(service.DownloadCSV)))
	result, err := h.service.Download(c.Request.Context(), c.Param("id"), req, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
