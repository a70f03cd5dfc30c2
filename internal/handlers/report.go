package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/torann10/flowboard-sub000/internal/dto"
	apierrors "github.com/torann10/flowboard-sub000/internal/errors"
	"github.com/torann10/flowboard-sub000/internal/middleware"
	"github.com/torann10/flowboard-sub000/internal/models"
	"github.com/torann10/flowboard-sub000/internal/report"
	"github.com/torann10/flowboard-sub000/internal/services"
)

// ReportHandler coordinates report HTTP handlers.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// projectReportRequest is the shared body of the project-scoped report
// endpoints.
type projectReportRequest struct {
	ProjectID   uint64 `json:"project_id" binding:"required"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Description string `json:"description"`
}

// CreateCOC generates and stores a Certificate of Completion PDF.
func (h *ReportHandler) CreateCOC(c *gin.Context) {
	h.createProjectReport(c, h.reportService.CreateCOC)
}

// CreateActivity generates and stores a project activity PDF.
func (h *ReportHandler) CreateActivity(c *gin.Context) {
	h.createProjectReport(c, h.reportService.CreateActivity)
}

func (h *ReportHandler) createProjectReport(
	c *gin.Context,
	create func(ctx context.Context, userID uint64, req report.Request) (*models.Report, error),
) {
	var req projectReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	start, err := time.Parse(logDateLayout, req.StartDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse(logDateLayout, req.EndDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	rpt, err := create(c.Request.Context(), userID, report.Request{
		ProjectID:   req.ProjectID,
		StartDate:   start,
		EndDate:     end,
		Description: req.Description,
	})
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReportDTO(*rpt))
}

// CreateEmployeeMatrix generates and stores the employee matrix PDF across
// every project the caller maintains. Maintaining no projects is not an
// error; the endpoint answers 204 and no report is created.
func (h *ReportHandler) CreateEmployeeMatrix(c *gin.Context) {
	type matrixRequest struct {
		StartDate string `json:"start_date" binding:"required"`
		EndDate   string `json:"end_date" binding:"required"`
	}

	var req matrixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	start, err := time.Parse(logDateLayout, req.StartDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse(logDateLayout, req.EndDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	rpt, err := h.reportService.CreateMatrix(c.Request.Context(), userID, start, end)
	if err != nil {
		if errors.Is(err, report.ErrNothingToReport) {
			c.Status(http.StatusNoContent)
			return
		}
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReportDTO(*rpt))
}

// ListReports lists the caller's reports, newest first.
func (h *ReportHandler) ListReports(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	reports, err := h.reportService.ListReports(userID)
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": dto.ToReportDTOs(reports)})
}

// RenameReport renames one of the caller's reports.
func (h *ReportHandler) RenameReport(c *gin.Context) {
	type renameRequest struct {
		Name string `json:"name" binding:"required,max=255"`
	}

	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	reportID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.reportService.RenameReport(reportID, userID, req.Name); err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report renamed successfully"})
}

// DeleteReport deletes one of the caller's reports and its stored PDF.
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	reportID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.reportService.DeleteReport(c.Request.Context(), reportID, userID); err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}

// DownloadReport answers with a short-lived presigned URL for the PDF.
func (h *ReportHandler) DownloadReport(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	reportID, ok := paramID(c, "id")
	if !ok {
		return
	}

	downloadURL, err := h.reportService.DownloadURL(c.Request.Context(), reportID, userID)
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"download_url": downloadURL.String()})
}

func respondReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReportNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrReportNotPermitted):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidReportRange),
		errors.Is(err, services.ErrReportNameRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
