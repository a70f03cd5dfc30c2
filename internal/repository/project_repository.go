package repository

import (
	"github.com/torann10/flowboard-sub000/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete deletes a project and all dependent rows in a transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint64
		if err := tx.Model(&models.Task{}).
			Where("project_id = ?", id).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TimeLog{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.StoryPointMapping{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectUser{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// ListForUser lists projects the user is assigned to
func (r *GormProjectRepository) ListForUser(userID uint64) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.
		Joins("JOIN project_users ON project_users.project_id = projects.id").
		Where("project_users.user_id = ?", userID).
		Order("projects.name, projects.id").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListByUserRole lists projects where the user holds the given role
func (r *GormProjectRepository) ListByUserRole(userID uint64, role models.ProjectRole) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.
		Joins("JOIN project_users ON project_users.project_id = projects.id").
		Where("project_users.user_id = ? AND project_users.role = ?", userID, role).
		Order("projects.name, projects.id").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// AddUser assigns a user to a project
func (r *GormProjectRepository) AddUser(assignment *models.ProjectUser) error {
	return r.db.Create(assignment).Error
}

// UpdateUser updates an existing project assignment
func (r *GormProjectRepository) UpdateUser(assignment *models.ProjectUser) error {
	return r.db.Model(&models.ProjectUser{}).
		Where("project_id = ? AND user_id = ?", assignment.ProjectID, assignment.UserID).
		Updates(map[string]interface{}{
			"role": assignment.Role,
			"fee":  assignment.Fee,
		}).Error
}

// RemoveUser removes a project assignment
func (r *GormProjectRepository) RemoveUser(projectID, userID uint64) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectUser{}).Error
}

// FindUser finds a specific project assignment
func (r *GormProjectRepository) FindUser(projectID, userID uint64) (*models.ProjectUser, error) {
	var assignment models.ProjectUser
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ListUsers lists all assignments of a project
func (r *GormProjectRepository) ListUsers(projectID uint64) ([]models.ProjectUser, error) {
	var assignments []models.ProjectUser
	if err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// CreateMapping adds a story-point mapping to a project
func (r *GormProjectRepository) CreateMapping(mapping *models.StoryPointMapping) error {
	return r.db.Create(mapping).Error
}

// ListMappings lists a project's story-point mappings
func (r *GormProjectRepository) ListMappings(projectID uint64) ([]models.StoryPointMapping, error) {
	var mappings []models.StoryPointMapping
	if err := r.db.Where("project_id = ?", projectID).
		Order("story_points").
		Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

// DeleteMapping removes a story-point mapping
func (r *GormProjectRepository) DeleteMapping(projectID, mappingID uint64) error {
	return r.db.Where("project_id = ? AND id = ?", projectID, mappingID).
		Delete(&models.StoryPointMapping{}).Error
}
