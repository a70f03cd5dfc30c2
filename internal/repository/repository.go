package repository

import (
	"time"

	"github.com/torann10/flowboard-sub000/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email address
	FindByEmail(email string) (*models.User, error)
}

// ProjectRepository defines the interface for project data access,
// including membership and story-point mapping rows
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project and its dependent rows
	Delete(id uint64) error

	// ListForUser lists projects the user is assigned to
	ListForUser(userID uint64) ([]models.Project, error)

	// ListByUserRole lists projects where the user holds the given role
	ListByUserRole(userID uint64, role models.ProjectRole) ([]models.Project, error)

	// AddUser assigns a user to a project
	AddUser(assignment *models.ProjectUser) error

	// UpdateUser updates an existing project assignment
	UpdateUser(assignment *models.ProjectUser) error

	// RemoveUser removes a project assignment
	RemoveUser(projectID, userID uint64) error

	// FindUser finds a specific project assignment
	FindUser(projectID, userID uint64) (*models.ProjectUser, error)

	// ListUsers lists all assignments of a project
	ListUsers(projectID uint64) ([]models.ProjectUser, error)

	// CreateMapping adds a story-point mapping to a project
	CreateMapping(mapping *models.StoryPointMapping) error

	// ListMappings lists a project's story-point mappings
	ListMappings(projectID uint64) ([]models.StoryPointMapping, error)

	// DeleteMapping removes a story-point mapping
	DeleteMapping(projectID, mappingID uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectIDs []uint64
	Status     *models.TaskStatus
	AssigneeID *uint64
	Page       int
	PageSize   int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task and its time logs
	Delete(id uint64) error

	// FindFinishedBetween lists the project's tasks finished inside the
	// window, with time logs and story-point mappings loaded
	FindFinishedBetween(projectID uint64, from, to time.Time) ([]models.Task, error)
}

// TimeLogRepository defines the interface for time log data access
type TimeLogRepository interface {
	// Create creates a new time log
	Create(timeLog *models.TimeLog) error

	// FindByID finds a time log by ID
	FindByID(id uint64) (*models.TimeLog, error)

	// Update updates a time log
	Update(timeLog *models.TimeLog) error

	// Delete deletes a time log
	Delete(id uint64) error

	// ListByTask lists a task's time logs
	ListByTask(taskID uint64) ([]models.TimeLog, error)

	// FindByProjectBetween lists time logs of the project's tasks with a
	// log date inside the closed range, with users loaded
	FindByProjectBetween(projectID uint64, start, end time.Time) ([]models.TimeLog, error)

	// FindByProjectsBetween is FindByProjectBetween over a project set,
	// additionally loading each log's task and its project
	FindByProjectsBetween(projectIDs []uint64, start, end time.Time) ([]models.TimeLog, error)
}

// ReportRepository defines the interface for report metadata access
type ReportRepository interface {
	// Create creates a new report metadata row
	Create(report *models.Report) error

	// FindByIDAndUser finds a report owned by the user
	FindByIDAndUser(id, userID uint64) (*models.Report, error)

	// ListByUser lists the user's reports, newest first
	ListByUser(userID uint64) ([]models.Report, error)

	// Rename renames a report owned by the user; returns rows affected
	Rename(id, userID uint64, name string) (int64, error)

	// Delete removes a report owned by the user; returns rows affected
	Delete(id, userID uint64) (int64, error)
}
