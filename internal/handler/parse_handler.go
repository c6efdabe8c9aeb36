package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"creditscan/internal/service"
)

// ParseHandler handles synchronous text parsing.
type ParseHandler struct {
	reportService service.ReportService
	maxBodyBytes  int64
}

// NewParseHandler creates a new ParseHandler. Request bodies above maxBodyBytes are rejected.
func NewParseHandler(reportService service.ReportService, maxBodyBytes int64) *ParseHandler {
	return &ParseHandler{reportService: reportService, maxBodyBytes: maxBodyBytes}
}

// ParseText handles POST /api/v1/parse/text
// @Summary Parse report text
// @Description Parse raw credit report text and return the result without storing anything.
// @Description Accepts a JSON body {"text": "...", "bureau": "..."} or a text/plain body with an optional bureau query parameter.
// @Tags parse
// @Accept json,plain
// @Produce json
// @Param request body ParseTextRequest false "Report text"
// @Param bureau query string false "Bureau hint for text/plain bodies"
// @Success 200 {object} Response{data=domain.ParsingResult} "Parsing result"
// @Failure 400 {object} ErrorResponseBody "Invalid body"
// @Failure 413 {object} ErrorResponseBody "Body too large"
// @Failure 422 {object} ErrorResponseBody "No text or nothing extractable"
// @Router /parse/text [post]
func (h *ParseHandler) ParseText(c *gin.Context) {
	if h.maxBodyBytes > 0 {
		if c.Request.ContentLength > h.maxBodyBytes {
			RespondError(c, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "request body too large")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	var req ParseTextRequest
	if strings.HasPrefix(c.ContentType(), "application/json") {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_BODY", "body must be {\"text\": string, \"bureau\": string}")
			return
		}
	} else {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_BODY", "could not read request body")
			return
		}
		req.Text = string(body)
		req.Bureau = c.Query("bureau")
	}

	result, err := h.reportService.ParseText(c.Request.Context(), req.Text, req.Bureau)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
