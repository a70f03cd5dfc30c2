package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/torann10/flowboard-sub000/internal/models"
	"github.com/torann10/flowboard-sub000/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskNameRequired    = errors.New("task name is required")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrAssigneeNotMember   = errors.New("assignee is not a member of the project")
	ErrMappingWrongProject = errors.New("story point mapping belongs to another project")
)

// TaskService handles task related business logic.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// CreateTaskInput holds the data for creating a task.
type CreateTaskInput struct {
	ProjectID           uint64
	Name                string
	Description         string
	AssigneeID          *uint64
	StoryPointMappingID *uint64
}

// CreateTask creates a task on a project the user is assigned to.
func (s *TaskService) CreateTask(userID uint64, input CreateTaskInput) (*models.Task, error) {
	if err := s.requireMembership(input.ProjectID, userID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTaskNameRequired
	}

	if input.AssigneeID != nil {
		if err := s.requireMembership(input.ProjectID, *input.AssigneeID); err != nil {
			if errors.Is(err, ErrProjectNotFound) {
				return nil, ErrAssigneeNotMember
			}
			return nil, err
		}
	}
	if input.StoryPointMappingID != nil {
		if err := s.checkMapping(input.ProjectID, *input.StoryPointMappingID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Name:                name,
		Description:         input.Description,
		Status:              models.TaskStatusOpen,
		ProjectID:           input.ProjectID,
		AssigneeID:          input.AssigneeID,
		StoryPointMappingID: input.StoryPointMappingID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasksInput holds filtering options for listing tasks.
type ListTasksInput struct {
	ProjectID  *uint64
	Status     *models.TaskStatus
	AssigneeID *uint64
	Page       int
	PageSize   int
}

// ListTasks lists tasks across the user's projects, optionally narrowed to a
// single project, status or assignee.
func (s *TaskService) ListTasks(userID uint64, input ListTasksInput) ([]models.Task, int64, error) {
	projectIDs, err := s.resolveAccessibleProjectIDs(userID, input.ProjectID)
	if err != nil {
		return nil, 0, err
	}
	if len(projectIDs) == 0 {
		return []models.Task{}, 0, nil
	}

	if input.Status != nil {
		switch *input.Status {
		case models.TaskStatusOpen, models.TaskStatusInProgress, models.TaskStatusDone:
		default:
			return nil, 0, ErrInvalidTaskStatus
		}
	}

	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		ProjectIDs: projectIDs,
		Status:     input.Status,
		AssigneeID: input.AssigneeID,
		Page:       input.Page,
		PageSize:   input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask retrieves a task on a project the user is assigned to, with
// assignee and story-point mapping loaded.
func (s *TaskService) GetTask(taskID, userID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Assignee", "StoryPointMapping")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.requireMembership(task.ProjectID, userID); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

// UpdateTaskInput holds the updatable task fields. Nil fields are left
// unchanged; ClearAssignee and ClearMapping reset the respective reference.
type UpdateTaskInput struct {
	Name                *string
	Description         *string
	Status              *models.TaskStatus
	AssigneeID          *uint64
	ClearAssignee       bool
	StoryPointMappingID *uint64
	ClearMapping        bool
}

// UpdateTask updates a task on a project the user is assigned to. Moving a
// task into DONE stamps FinishedAt; moving it back out clears the stamp.
func (s *TaskService) UpdateTask(taskID, userID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(taskID, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTaskNameRequired
		}
		task.Name = name
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		switch *input.Status {
		case models.TaskStatusOpen, models.TaskStatusInProgress, models.TaskStatusDone:
		default:
			return nil, ErrInvalidTaskStatus
		}
		if *input.Status == models.TaskStatusDone && task.Status != models.TaskStatusDone {
			now := time.Now()
			task.FinishedAt = &now
		}
		if *input.Status != models.TaskStatusDone && task.Status == models.TaskStatusDone {
			task.FinishedAt = nil
		}
		task.Status = *input.Status
	}
	if input.ClearAssignee {
		task.AssigneeID = nil
		task.Assignee = nil
	} else if input.AssigneeID != nil {
		if err := s.requireMembership(task.ProjectID, *input.AssigneeID); err != nil {
			if errors.Is(err, ErrProjectNotFound) {
				return nil, ErrAssigneeNotMember
			}
			return nil, err
		}
		task.AssigneeID = input.AssigneeID
	}
	if input.ClearMapping {
		task.StoryPointMappingID = nil
		task.StoryPointMapping = nil
	} else if input.StoryPointMappingID != nil {
		if err := s.checkMapping(task.ProjectID, *input.StoryPointMappingID); err != nil {
			return nil, err
		}
		task.StoryPointMappingID = input.StoryPointMappingID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task and its time logs. Requires the maintainer role
// on the task's project.
func (s *TaskService) DeleteTask(taskID, userID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	assignment, err := s.projectRepo.FindUser(task.ProjectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find assignment: %w", err)
	}
	if assignment.Role != models.RoleMaintainer {
		return ErrPermissionDenied
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// requireMembership returns ErrProjectNotFound unless the user is assigned
// to the project.
func (s *TaskService) requireMembership(projectID, userID uint64) error {
	if _, err := s.projectRepo.FindUser(projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find assignment: %w", err)
	}
	return nil
}

func (s *TaskService) checkMapping(projectID, mappingID uint64) error {
	mappings, err := s.projectRepo.ListMappings(projectID)
	if err != nil {
		return fmt.Errorf("failed to list mappings: %w", err)
	}
	for _, m := range mappings {
		if m.ID == mappingID {
			return nil
		}
	}
	return ErrMappingWrongProject
}

// resolveAccessibleProjectIDs narrows the listing scope to projects the user
// is assigned to. A requested project outside that set yields
// ErrProjectNotFound.
func (s *TaskService) resolveAccessibleProjectIDs(userID uint64, requested *uint64) ([]uint64, error) {
	projects, err := s.projectRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	if requested != nil {
		for _, p := range projects {
			if p.ID == *requested {
				return []uint64{p.ID}, nil
			}
		}
		return nil, ErrProjectNotFound
	}

	ids := make([]uint64, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return ids, nil
}
