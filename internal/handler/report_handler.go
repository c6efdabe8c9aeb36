package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"creditscan/internal/domain"
	"creditscan/internal/service"
)

// ReportHandler handles credit report upload and retrieval endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Upload handles POST /api/v1/reports
// @Summary Upload a credit report
// @Description Upload a credit bureau report (PDF or TXT). Parsing starts in the background.
// @Tags reports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Report file (PDF or TXT)"
// @Param bureau formData string false "Bureau hint (transunion, experian, equifax)"
// @Success 201 {object} Response{data=domain.Report} "Report uploaded, parse pending"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Router /reports [post]
func (h *ReportHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	report, err := h.reportService.Upload(c.Request.Context(), service.UploadReportInput{
		File:   file,
		Header: header,
		Bureau: c.PostForm("bureau"),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, report)
}

// List handles GET /api/v1/reports
// @Summary List reports
// @Description List uploaded reports, newest first
// @Tags reports
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Report,meta=PagMeta} "List of reports"
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	reports, total, err := h.reportService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, reports, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/reports/:id
// @Summary Get a report
// @Description Get a report with its parse status
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} Response{data=domain.Report} "Report"
// @Failure 400 {object} ErrorResponseBody "Invalid report ID"
// @Failure 404 {object} ErrorResponseBody "Report not found"
// @Router /reports/{id} [get]
func (h *ReportHandler) GetByID(c *gin.Context) {
	id, ok := parseReportID(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// RetryParse handles POST /api/v1/reports/:id/parse
// @Summary Re-parse a report
// @Description Re-run parsing for a report whose last parse completed or failed
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 202 {object} Response{data=domain.Report} "Parse restarted"
// @Failure 404 {object} ErrorResponseBody "Report not found"
// @Failure 409 {object} ErrorResponseBody "Parse already in progress"
// @Router /reports/{id}/parse [post]
func (h *ReportHandler) RetryParse(c *gin.Context) {
	id, ok := parseReportID(c)
	if !ok {
		return
	}

	report, err := h.reportService.RetryParse(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, report)
}

// GetResult handles GET /api/v1/reports/:id/result
// @Summary Get the parsed result
// @Description Get the extracted personal info, accounts, negative items, inquiries, scores and a recomputed account summary
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} Response{data=domain.ParsingResult} "Parsing result"
// @Failure 404 {object} ErrorResponseBody "Report not found"
// @Failure 409 {object} ErrorResponseBody "Report not parsed yet"
// @Router /reports/{id}/result [get]
func (h *ReportHandler) GetResult(c *gin.Context) {
	id, ok := parseReportID(c)
	if !ok {
		return
	}

	result, err := h.reportService.GetResult(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Export handles GET /api/v1/reports/:id/export
// @Summary Export the parsed result
// @Description Download the parsed result as an xlsx workbook (one sheet per category) or a CSV of accounts
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv
// @Param id path string true "Report ID"
// @Param format query string false "Export format (xlsx or csv)" default(xlsx)
// @Success 200 {file} file "Exported file"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Failure 409 {object} ErrorResponseBody "Report not parsed yet"
// @Router /reports/{id}/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	id, ok := parseReportID(c)
	if !ok {
		return
	}
	format := domain.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(domain.ExportXLSX))))

	file, err := h.reportService.Export(c.Request.Context(), id, format)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Download handles GET /api/v1/reports/:id/download
// @Summary Get a download URL
// @Description Get a presigned URL for the original uploaded file
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} Response{data=DownloadURLResponse} "Presigned URL"
// @Failure 404 {object} ErrorResponseBody "Report not found"
// @Router /reports/{id}/download [get]
func (h *ReportHandler) Download(c *gin.Context) {
	id, ok := parseReportID(c)
	if !ok {
		return
	}

	url, err := h.reportService.GetDownloadURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, DownloadURLResponse{DownloadURL: url})
}

func parseReportID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid report ID")
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}
