package dto

import (
	"time"

	"github.com/torann10/flowboard-sub000/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID                  uint64                `json:"id"`
	Name                string                `json:"name"`
	Description         string                `json:"description"`
	Status              models.TaskStatus     `json:"status"`
	ProjectID           uint64                `json:"project_id"`
	AssigneeID          *uint64               `json:"assignee_id"`
	StoryPointMappingID *uint64               `json:"story_point_mapping_id"`
	FinishedAt          *time.Time            `json:"finished_at"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
	Assignee            *UserDTO              `json:"assignee,omitempty"`
	StoryPointMapping   *StoryPointMappingDTO `json:"story_point_mapping,omitempty"`
}

// TaskListItemDTO represents a task in list responses (minimal data)
type TaskListItemDTO struct {
	ID         uint64            `json:"id"`
	Name       string            `json:"name"`
	Status     models.TaskStatus `json:"status"`
	ProjectID  uint64            `json:"project_id"`
	AssigneeID *uint64           `json:"assignee_id"`
	FinishedAt *time.Time        `json:"finished_at"`
	CreatedAt  time.Time         `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskListItemDTO `json:"tasks"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}

// TimeLogDTO represents a time log in API responses
type TimeLogDTO struct {
	ID            uint64    `json:"id"`
	TaskID        uint64    `json:"task_id"`
	UserID        uint64    `json:"user_id"`
	LoggedMinutes int64     `json:"logged_minutes"`
	Billable      bool      `json:"billable"`
	LogDate       string    `json:"log_date"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReportDTO represents a report metadata row in API responses
type ReportDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	ProjectID *uint64   `json:"project_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversion functions

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                  task.ID,
		Name:                task.Name,
		Description:         task.Description,
		Status:              task.Status,
		ProjectID:           task.ProjectID,
		AssigneeID:          task.AssigneeID,
		StoryPointMappingID: task.StoryPointMappingID,
		FinishedAt:          task.FinishedAt,
		CreatedAt:           task.CreatedAt,
		UpdatedAt:           task.UpdatedAt,
	}

	// Include assignee if preloaded
	if task.Assignee != nil {
		assignee := ToUserDTO(*task.Assignee)
		dto.Assignee = &assignee
	}

	// Include mapping if preloaded
	if task.StoryPointMapping != nil {
		mapping := ToStoryPointMappingDTO(*task.StoryPointMapping)
		dto.StoryPointMapping = &mapping
	}

	return dto
}

// ToTaskListItemDTO converts a Task model to TaskListItemDTO
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	return TaskListItemDTO{
		ID:         task.ID,
		Name:       task.Name,
		Status:     task.Status,
		ProjectID:  task.ProjectID,
		AssigneeID: task.AssigneeID,
		FinishedAt: task.FinishedAt,
		CreatedAt:  task.CreatedAt,
	}
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItemDTO(task)
	}

	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// ToTimeLogDTO converts a TimeLog model to TimeLogDTO
func ToTimeLogDTO(timeLog models.TimeLog) TimeLogDTO {
	return TimeLogDTO{
		ID:            timeLog.ID,
		TaskID:        timeLog.TaskID,
		UserID:        timeLog.UserID,
		LoggedMinutes: timeLog.LoggedMinutes,
		Billable:      timeLog.Billable,
		LogDate:       timeLog.LogDate.Format("2006-01-02"),
		CreatedAt:     timeLog.CreatedAt,
	}
}

// ToTimeLogDTOs converts a slice of time logs to DTOs
func ToTimeLogDTOs(timeLogs []models.TimeLog) []TimeLogDTO {
	dtos := make([]TimeLogDTO, len(timeLogs))
	for i, timeLog := range timeLogs {
		dtos[i] = ToTimeLogDTO(timeLog)
	}
	return dtos
}

// ToReportDTO converts a Report model to ReportDTO
func ToReportDTO(report models.Report) ReportDTO {
	return ReportDTO{
		ID:        report.ID,
		Name:      report.Name,
		ProjectID: report.ProjectID,
		StartDate: report.StartDate.Format("2006-01-02"),
		EndDate:   report.EndDate.Format("2006-01-02"),
		CreatedAt: report.CreatedAt,
	}
}

// ToReportDTOs converts a slice of reports to DTOs
func ToReportDTOs(reports []models.Report) []ReportDTO {
	dtos := make([]ReportDTO, len(reports))
	for i, report := range reports {
		dtos[i] = ToReportDTO(report)
	}
	return dtos
}
