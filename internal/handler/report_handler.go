package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hms-api/internal/service"
	"github.com/noah-isme/hms-api/pkg/response"
)

// ReportHandler exposes CSV and PDF report downloads.
type ReportHandler struct {
	exports *service.ExportService
}

// NewReportHandler builds a ReportHandler.
func NewReportHandler(exports *service.ExportService) *ReportHandler {
	return &ReportHandler{exports: exports}
}

// Students godoc
// @Summary Download the student roster
// @Tags reports
// @Produce text/csv
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/students [get]
func (h *ReportHandler) Students(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.exports.Students(c, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.send(c, result)
}

// Fees godoc
// @Summary Download the fee ledger
// @Tags reports
// @Produce text/csv
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/fees [get]
func (h *ReportHandler) Fees(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.exports.Fees(c, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.send(c, result)
}

// Attendance godoc
// @Summary Download today's attendance log
// @Tags reports
// @Produce text/csv
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/attendance [get]
func (h *ReportHandler) Attendance(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.exports.Attendance(c, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.send(c, result)
}

func (h *ReportHandler) send(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
