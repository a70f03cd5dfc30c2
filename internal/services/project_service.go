package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/torann10/flowboard-sub000/internal/models"
	"github.com/torann10/flowboard-sub000/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPermissionDenied        = errors.New("permission denied")
	ErrProjectNotFound         = errors.New("project not found")
	ErrProjectNameRequired     = errors.New("project name is required")
	ErrInvalidBillingType      = errors.New("invalid billing type")
	ErrInvalidProjectStatus    = errors.New("invalid project status")
	ErrStoryPointFeeRequired   = errors.New("story point fee is required for story point based projects")
	ErrInvalidProjectRole      = errors.New("invalid project role")
	ErrAlreadyAssigned         = errors.New("user is already assigned to the project")
	ErrAssignmentNotFound      = errors.New("project assignment not found")
	ErrLastMaintainer          = errors.New("cannot remove the last maintainer of a project")
	ErrMappingNotFound         = errors.New("story point mapping not found")
	ErrInvalidStoryPoints      = errors.New("story points must be positive")
	ErrInvalidExpectedMinutes  = errors.New("expected minutes must be positive")
)

// ProjectService handles project, assignment and story-point mapping logic.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateProjectInput holds the data for creating a project.
type CreateProjectInput struct {
	Name          string
	BillingType   models.BillingType
	StoryPointFee *float64
	Customer      models.Company
	Contractor    models.Company
}

// CreateProject creates a project and assigns the creator as maintainer.
func (s *ProjectService) CreateProject(userID uint64, input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}

	switch input.BillingType {
	case models.BillingTimeBased:
	case models.BillingStoryPointBased:
		if input.StoryPointFee == nil {
			return nil, ErrStoryPointFeeRequired
		}
	default:
		return nil, ErrInvalidBillingType
	}

	project := &models.Project{
		Name:          name,
		Status:        models.ProjectStatusActive,
		BillingType:   input.BillingType,
		StoryPointFee: input.StoryPointFee,
		Customer:      input.Customer,
		Contractor:    input.Contractor,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	assignment := &models.ProjectUser{
		ProjectID: project.ID,
		UserID:    userID,
		Role:      models.RoleMaintainer,
	}
	if err := s.projectRepo.AddUser(assignment); err != nil {
		return nil, fmt.Errorf("failed to assign creator: %w", err)
	}

	return project, nil
}

// ListProjects lists the projects the user is assigned to.
func (s *ProjectService) ListProjects(userID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject retrieves a project the user is assigned to. It returns
// ErrProjectNotFound for foreign projects so their existence is not leaked.
func (s *ProjectService) GetProject(projectID, userID uint64) (*models.Project, error) {
	if _, err := s.GetAssignment(projectID, userID); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	return project, nil
}

// UpdateProjectInput holds the updatable project fields. Nil fields are left
// unchanged.
type UpdateProjectInput struct {
	Name          *string
	Status        *models.ProjectStatus
	StoryPointFee *float64
	Customer      *models.Company
	Contractor    *models.Company
}

// UpdateProject updates a project. Requires the maintainer role.
func (s *ProjectService) UpdateProject(projectID, userID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.requireMaintainer(projectID, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrProjectNameRequired
		}
		project.Name = name
	}
	if input.Status != nil {
		switch *input.Status {
		case models.ProjectStatusActive, models.ProjectStatusArchived:
			project.Status = *input.Status
		default:
			return nil, ErrInvalidProjectStatus
		}
	}
	if input.StoryPointFee != nil {
		project.StoryPointFee = input.StoryPointFee
	}
	if input.Customer != nil {
		project.Customer = *input.Customer
	}
	if input.Contractor != nil {
		project.Contractor = *input.Contractor
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject deletes a project and everything under it. Requires the
// maintainer role.
func (s *ProjectService) DeleteProject(projectID, userID uint64) error {
	if _, err := s.requireMaintainer(projectID, userID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// GetAssignment returns the user's assignment on the project, or
// ErrProjectNotFound when there is none.
func (s *ProjectService) GetAssignment(projectID, userID uint64) (*models.ProjectUser, error) {
	assignment, err := s.projectRepo.FindUser(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}
	return assignment, nil
}

// ListAssignments lists the project's assignments with users loaded.
func (s *ProjectService) ListAssignments(projectID, userID uint64) ([]models.ProjectUser, error) {
	if _, err := s.GetAssignment(projectID, userID); err != nil {
		return nil, err
	}

	assignments, err := s.projectRepo.ListUsers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

// AssignUserInput holds the data for assigning a user to a project.
type AssignUserInput struct {
	UserID uint64
	Role   models.ProjectRole
	Fee    *float64
}

// AssignUser adds a user to a project. Requires the maintainer role.
func (s *ProjectService) AssignUser(projectID, actorID uint64, input AssignUserInput) (*models.ProjectUser, error) {
	if _, err := s.requireMaintainer(projectID, actorID); err != nil {
		return nil, err
	}
	if !validRole(input.Role) {
		return nil, ErrInvalidProjectRole
	}

	if _, err := s.userRepo.FindByID(input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.projectRepo.FindUser(projectID, input.UserID); err == nil {
		return nil, ErrAlreadyAssigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check assignment: %w", err)
	}

	assignment := &models.ProjectUser{
		ProjectID: projectID,
		UserID:    input.UserID,
		Role:      input.Role,
		Fee:       input.Fee,
	}
	if err := s.projectRepo.AddUser(assignment); err != nil {
		return nil, fmt.Errorf("failed to assign user: %w", err)
	}

	return assignment, nil
}

// UpdateAssignmentInput holds the updatable assignment fields.
type UpdateAssignmentInput struct {
	Role *models.ProjectRole
	Fee  *float64
}

// UpdateAssignment changes a project member's role or fee. Requires the
// maintainer role.
func (s *ProjectService) UpdateAssignment(projectID, actorID, userID uint64, input UpdateAssignmentInput) (*models.ProjectUser, error) {
	if _, err := s.requireMaintainer(projectID, actorID); err != nil {
		return nil, err
	}

	assignment, err := s.projectRepo.FindUser(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	if input.Role != nil {
		if !validRole(*input.Role) {
			return nil, ErrInvalidProjectRole
		}
		if assignment.Role == models.RoleMaintainer && *input.Role != models.RoleMaintainer {
			if err := s.ensureOtherMaintainer(projectID, userID); err != nil {
				return nil, err
			}
		}
		assignment.Role = *input.Role
	}
	if input.Fee != nil {
		assignment.Fee = input.Fee
	}

	if err := s.projectRepo.UpdateUser(assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	return assignment, nil
}

// RemoveAssignment removes a user from a project. Requires the maintainer
// role; the last maintainer cannot be removed.
func (s *ProjectService) RemoveAssignment(projectID, actorID, userID uint64) error {
	if _, err := s.requireMaintainer(projectID, actorID); err != nil {
		return err
	}

	assignment, err := s.projectRepo.FindUser(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to find assignment: %w", err)
	}

	if assignment.Role == models.RoleMaintainer {
		if err := s.ensureOtherMaintainer(projectID, userID); err != nil {
			return err
		}
	}

	if err := s.projectRepo.RemoveUser(projectID, userID); err != nil {
		return fmt.Errorf("failed to remove assignment: %w", err)
	}

	return nil
}

// CreateMappingInput holds the data for a new story-point mapping.
type CreateMappingInput struct {
	StoryPoints     int
	ExpectedMinutes int64
}

// CreateMapping adds a story-point mapping to the project. Requires the
// maintainer role.
func (s *ProjectService) CreateMapping(projectID, userID uint64, input CreateMappingInput) (*models.StoryPointMapping, error) {
	if _, err := s.requireMaintainer(projectID, userID); err != nil {
		return nil, err
	}
	if input.StoryPoints <= 0 {
		return nil, ErrInvalidStoryPoints
	}
	if input.ExpectedMinutes <= 0 {
		return nil, ErrInvalidExpectedMinutes
	}

	mapping := &models.StoryPointMapping{
		ProjectID:       projectID,
		StoryPoints:     input.StoryPoints,
		ExpectedMinutes: input.ExpectedMinutes,
	}
	if err := s.projectRepo.CreateMapping(mapping); err != nil {
		return nil, fmt.Errorf("failed to create mapping: %w", err)
	}

	return mapping, nil
}

// ListMappings lists the project's story-point mappings.
func (s *ProjectService) ListMappings(projectID, userID uint64) ([]models.StoryPointMapping, error) {
	if _, err := s.GetAssignment(projectID, userID); err != nil {
		return nil, err
	}

	mappings, err := s.projectRepo.ListMappings(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mappings: %w", err)
	}
	return mappings, nil
}

// DeleteMapping removes a story-point mapping. Requires the maintainer role.
func (s *ProjectService) DeleteMapping(projectID, userID, mappingID uint64) error {
	if _, err := s.requireMaintainer(projectID, userID); err != nil {
		return err
	}

	if err := s.projectRepo.DeleteMapping(projectID, mappingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMappingNotFound
		}
		return fmt.Errorf("failed to delete mapping: %w", err)
	}

	return nil
}

// requireMaintainer loads the project after checking the user maintains it.
// Non-members get ErrProjectNotFound rather than a permission error.
func (s *ProjectService) requireMaintainer(projectID, userID uint64) (*models.Project, error) {
	assignment, err := s.GetAssignment(projectID, userID)
	if err != nil {
		return nil, err
	}
	if assignment.Role != models.RoleMaintainer {
		return nil, ErrPermissionDenied
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// ensureOtherMaintainer fails with ErrLastMaintainer unless a maintainer
// other than userID exists on the project.
func (s *ProjectService) ensureOtherMaintainer(projectID, userID uint64) error {
	assignments, err := s.projectRepo.ListUsers(projectID)
	if err != nil {
		return fmt.Errorf("failed to list assignments: %w", err)
	}
	for _, a := range assignments {
		if a.Role == models.RoleMaintainer && a.UserID != userID {
			return nil
		}
	}
	return ErrLastMaintainer
}

func validRole(role models.ProjectRole) bool {
	switch role {
	case models.RoleMaintainer, models.RoleReporter, models.RoleMember:
		return true
	}
	return false
}
