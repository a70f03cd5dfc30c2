package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/torann10/flowboard-sub000/internal/models"
	"github.com/torann10/flowboard-sub000/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTimeLogNotFound      = errors.New("time log not found")
	ErrInvalidLoggedMinutes = errors.New("logged minutes must be positive")
	ErrNotTimeLogOwner      = errors.New("only the owner can modify a time log")
)

// TimeLogService handles time log related business logic.
type TimeLogService struct {
	timeLogRepo repository.TimeLogRepository
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTimeLogService creates a new TimeLogService.
func NewTimeLogService(
	timeLogRepo repository.TimeLogRepository,
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
) *TimeLogService {
	return &TimeLogService{
		timeLogRepo: timeLogRepo,
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// LogTimeInput holds the data for logging time against a task.
type LogTimeInput struct {
	TaskID        uint64
	LoggedMinutes int64
	Billable      bool
	LogDate       time.Time
}

// LogTime records time spent on a task by a project member.
func (s *TimeLogService) LogTime(userID uint64, input LogTimeInput) (*models.TimeLog, error) {
	if input.LoggedMinutes <= 0 {
		return nil, ErrInvalidLoggedMinutes
	}

	if _, err := s.findMemberTask(input.TaskID, userID); err != nil {
		return nil, err
	}

	timeLog := &models.TimeLog{
		TaskID:        input.TaskID,
		UserID:        userID,
		LoggedMinutes: input.LoggedMinutes,
		Billable:      input.Billable,
		LogDate:       input.LogDate,
	}

	if err := s.timeLogRepo.Create(timeLog); err != nil {
		return nil, fmt.Errorf("failed to create time log: %w", err)
	}

	return timeLog, nil
}

// ListTimeLogs lists a task's time logs for a project member.
func (s *TimeLogService) ListTimeLogs(taskID, userID uint64) ([]models.TimeLog, error) {
	if _, err := s.findMemberTask(taskID, userID); err != nil {
		return nil, err
	}

	logs, err := s.timeLogRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time logs: %w", err)
	}
	return logs, nil
}

// UpdateTimeLogInput holds the updatable time log fields.
type UpdateTimeLogInput struct {
	LoggedMinutes *int64
	Billable      *bool
	LogDate       *time.Time
}

// UpdateTimeLog updates a time log. Only the user who logged it may change
// it.
func (s *TimeLogService) UpdateTimeLog(timeLogID, userID uint64, input UpdateTimeLogInput) (*models.TimeLog, error) {
	timeLog, err := s.findOwnedTimeLog(timeLogID, userID)
	if err != nil {
		return nil, err
	}

	if input.LoggedMinutes != nil {
		if *input.LoggedMinutes <= 0 {
			return nil, ErrInvalidLoggedMinutes
		}
		timeLog.LoggedMinutes = *input.LoggedMinutes
	}
	if input.Billable != nil {
		timeLog.Billable = *input.Billable
	}
	if input.LogDate != nil {
		timeLog.LogDate = *input.LogDate
	}

	if err := s.timeLogRepo.Update(timeLog); err != nil {
		return nil, fmt.Errorf("failed to update time log: %w", err)
	}

	return timeLog, nil
}

// DeleteTimeLog deletes a time log. Only the user who logged it may delete
// it.
func (s *TimeLogService) DeleteTimeLog(timeLogID, userID uint64) error {
	if _, err := s.findOwnedTimeLog(timeLogID, userID); err != nil {
		return err
	}

	if err := s.timeLogRepo.Delete(timeLogID); err != nil {
		return fmt.Errorf("failed to delete time log: %w", err)
	}

	return nil
}

// findMemberTask loads the task and checks the user is assigned to its
// project. Both a missing task and a foreign project come back as
// ErrTaskNotFound.
func (s *TimeLogService) findMemberTask(taskID, userID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if _, err := s.projectRepo.FindUser(task.ProjectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	return task, nil
}

func (s *TimeLogService) findOwnedTimeLog(timeLogID, userID uint64) (*models.TimeLog, error) {
	timeLog, err := s.timeLogRepo.FindByID(timeLogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeLogNotFound
		}
		return nil, fmt.Errorf("failed to find time log: %w", err)
	}

	if timeLog.UserID != userID {
		return nil, ErrNotTimeLogOwner
	}

	return timeLog, nil
}
