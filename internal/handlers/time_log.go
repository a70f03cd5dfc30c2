package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/torann10/flowboard-sub000/internal/dto"
	apierrors "github.com/torann10/flowboard-sub000/internal/errors"
	"github.com/torann10/flowboard-sub000/internal/middleware"
	"github.com/torann10/flowboard-sub000/internal/services"
)

const logDateLayout = "2006-01-02"

// TimeLogHandler coordinates time-log HTTP handlers.
type TimeLogHandler struct {
	timeLogService *services.TimeLogService
}

// NewTimeLogHandler creates a new TimeLogHandler.
func NewTimeLogHandler(timeLogService *services.TimeLogService) *TimeLogHandler {
	return &TimeLogHandler{
		timeLogService: timeLogService,
	}
}

// LogTime records time against a task.
func (h *TimeLogHandler) LogTime(c *gin.Context) {
	type LogTimeRequest struct {
		LoggedMinutes int64  `json:"logged_minutes" binding:"required"`
		Billable      *bool  `json:"billable"`
		LogDate       string `json:"log_date" binding:"required"`
	}

	var req LogTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	taskID, ok := paramID(c, "id")
	if !ok {
		return
	}

	logDate, err := time.Parse(logDateLayout, req.LogDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid log_date, expected YYYY-MM-DD")
		return
	}

	billable := true
	if req.Billable != nil {
		billable = *req.Billable
	}

	timeLog, err := h.timeLogService.LogTime(userID, services.LogTimeInput{
		TaskID:        taskID,
		LoggedMinutes: req.LoggedMinutes,
		Billable:      billable,
		LogDate:       logDate,
	})
	if err != nil {
		respondTimeLogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTimeLogDTO(*timeLog))
}

// ListTimeLogs lists a task's time logs.
func (h *TimeLogHandler) ListTimeLogs(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	taskID, ok := paramID(c, "id")
	if !ok {
		return
	}

	logs, err := h.timeLogService.ListTimeLogs(taskID, userID)
	if err != nil {
		respondTimeLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"time_logs": dto.ToTimeLogDTOs(logs)})
}

// UpdateTimeLog updates a time log owned by the caller.
func (h *TimeLogHandler) UpdateTimeLog(c *gin.Context) {
	type UpdateTimeLogRequest struct {
		LoggedMinutes *int64  `json:"logged_minutes"`
		Billable      *bool   `json:"billable"`
		LogDate       *string `json:"log_date"`
	}

	var req UpdateTimeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	timeLogID, ok := paramID(c, "id")
	if !ok {
		return
	}

	input := services.UpdateTimeLogInput{
		LoggedMinutes: req.LoggedMinutes,
		Billable:      req.Billable,
	}
	if req.LogDate != nil {
		logDate, err := time.Parse(logDateLayout, *req.LogDate)
		if err != nil {
			apierrors.BadRequest(c, "Invalid log_date, expected YYYY-MM-DD")
			return
		}
		input.LogDate = &logDate
	}

	timeLog, err := h.timeLogService.UpdateTimeLog(timeLogID, userID, input)
	if err != nil {
		respondTimeLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeLogDTO(*timeLog))
}

// DeleteTimeLog deletes a time log owned by the caller.
func (h *TimeLogHandler) DeleteTimeLog(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	timeLogID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.timeLogService.DeleteTimeLog(timeLogID, userID); err != nil {
		respondTimeLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Time log deleted successfully"})
}

func respondTimeLogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTimeLogNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotTimeLogOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidLoggedMinutes):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
