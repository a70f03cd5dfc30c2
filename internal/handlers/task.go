package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/torann10/flowboard-sub000/internal/dto"
	apierrors "github.com/torann10/flowboard-sub000/internal/errors"
	"github.com/torann10/flowboard-sub000/internal/middleware"
	"github.com/torann10/flowboard-sub000/internal/models"
	"github.com/torann10/flowboard-sub000/internal/services"
	"github.com/torann10/flowboard-sub000/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task on one of the caller's projects.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		ProjectID           uint64  `json:"project_id" binding:"required"`
		Name                string  `json:"name" binding:"required,max=255"`
		Description         string  `json:"description"`
		AssigneeID          *uint64 `json:"assignee_id"`
		StoryPointMappingID *uint64 `json:"story_point_mapping_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	task, err := h.taskService.CreateTask(userID, services.CreateTaskInput{
		ProjectID:           req.ProjectID,
		Name:                req.Name,
		Description:         req.Description,
		AssigneeID:          req.AssigneeID,
		StoryPointMappingID: req.StoryPointMappingID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks lists tasks across the caller's projects with optional filters.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	pagination := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		Page:     pagination.Page,
		PageSize: pagination.Limit,
	}
	if raw := c.Query("project_id"); raw != "" {
		projectID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project_id parameter")
			return
		}
		input.ProjectID = &projectID
	}
	if raw := c.Query("status"); raw != "" {
		status := models.TaskStatus(raw)
		input.Status = &status
	}
	if raw := c.Query("assignee_id"); raw != "" {
		assigneeID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid assignee_id parameter")
			return
		}
		input.AssigneeID = &assigneeID
	}

	tasks, total, err := h.taskService.ListTasks(userID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, pagination.Page, pagination.Limit, total))
}

// GetTask returns a single task with relations.
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	taskID, ok := paramID(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	type UpdateTaskRequest struct {
		Name                *string            `json:"name" binding:"omitempty,max=255"`
		Description         *string            `json:"description"`
		Status              *models.TaskStatus `json:"status"`
		AssigneeID          *uint64            `json:"assignee_id"`
		ClearAssignee       bool               `json:"clear_assignee"`
		StoryPointMappingID *uint64            `json:"story_point_mapping_id"`
		ClearMapping        bool               `json:"clear_story_point_mapping"`
	}

	var req UpdateTaskRequest
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

	task, err := h.taskService.UpdateTask(taskID, userID, services.UpdateTaskInput{
		Name:                req.Name,
		Description:         req.Description,
		Status:              req.Status,
		AssigneeID:          req.AssigneeID,
		ClearAssignee:       req.ClearAssignee,
		StoryPointMappingID: req.StoryPointMappingID,
		ClearMapping:        req.ClearMapping,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task and its time logs.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	taskID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTaskNameRequired),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrAssigneeNotMember),
		errors.Is(err, services.ErrMappingWrongProject):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
