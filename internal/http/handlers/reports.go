package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /api/admin/stats
func (h Handler) Stats(c *gin.Context) {
	st, err := h.Reports.Stats(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// GET /api/admin/reports/summary?period=week|month|year
func (h Handler) ReportSummary(c *gin.Context) {
	s, err := h.Reports.Summary(c.Request.Context(), c.Query("period"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// GET /api/admin/reports/export?period=month&format=json|xlsx|pdf
func (h Handler) ReportExport(c *gin.Context) {
	ctx := c.Request.Context()
	period := c.Query("period")

	switch strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "json"))) {
	case "json":
		exp, err := h.Reports.Export(ctx, period)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, exp)
	case "xlsx":
		body, filename, err := h.Docs.ReportXLSX(ctx, period)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		sendFile(c, xlsxContentType, "attachment", filename, body)
	case "pdf":
		body, filename, err := h.Docs.ReportPDF(ctx, period)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		sendFile(c, "application/pdf", "attachment", filename, body)
	default:
		respondError(c, http.StatusBadRequest, "validation_error", "Format harus json, xlsx, atau pdf",
			&InlineError{Field: "format", Message: "Format harus json, xlsx, atau pdf"})
	}
}
