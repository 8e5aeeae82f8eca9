package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/fit-session-stats/internal/models"
	"github.com/jengzang/fit-session-stats/internal/repository"
	"github.com/jengzang/fit-session-stats/internal/service"
	"github.com/jengzang/fit-session-stats/pkg/response"
)

// ReportHandler handles HTTP requests for analysis reports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// CreateReport handles POST /api/v1/reports
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.reportService.Analyze(c.Request.Context(), req.Directory)
	switch {
	case err == nil:
		response.Created(c, report)
	case errors.Is(err, service.ErrOutsideRoot):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrInvalidDirectory):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrEmptyCohort):
		response.Unprocessable(c, err.Error(), report)
	case service.IsDecodeError(err):
		response.Unprocessable(c, err.Error(), nil)
	default:
		response.InternalError(c, err.Error())
	}
}

// GetReport handles GET /api/v1/reports/:id
func (h *ReportHandler) GetReport(c *gin.Context) {
	report, err := h.reportService.GetReport(c.Param("id"))
	if errors.Is(err, repository.ErrReportNotFound) {
		response.NotFound(c, "Report not found")
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, report)
}

// ListReports handles GET /api/v1/reports
func (h *ReportHandler) ListReports(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	infos, err := h.reportService.ListReports(limit)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, infos)
}
