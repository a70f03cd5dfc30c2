package repository

import (
	"time"

	"github.com/torann10/flowboard-sub000/internal/models"
	"gorm.io/gorm"
)

// GormTimeLogRepository is a GORM implementation of TimeLogRepository
type GormTimeLogRepository struct {
	db *gorm.DB
}

// NewTimeLogRepository creates a new TimeLogRepository
func NewTimeLogRepository(db *gorm.DB) TimeLogRepository {
	return &GormTimeLogRepository{db: db}
}

// Create creates a new time log
func (r *GormTimeLogRepository) Create(timeLog *models.TimeLog) error {
	return r.db.Create(timeLog).Error
}

// FindByID finds a time log by ID
func (r *GormTimeLogRepository) FindByID(id uint64) (*models.TimeLog, error) {
	var timeLog models.TimeLog
	if err := r.db.First(&timeLog, id).Error; err != nil {
		return nil, err
	}
	return &timeLog, nil
}

// Update updates a time log
func (r *GormTimeLogRepository) Update(timeLog *models.TimeLog) error {
	return r.db.Save(timeLog).Error
}

// Delete deletes a time log
func (r *GormTimeLogRepository) Delete(id uint64) error {
	return r.db.Delete(&models.TimeLog{}, id).Error
}

// ListByTask lists a task's time logs
func (r *GormTimeLogRepository) ListByTask(taskID uint64) ([]models.TimeLog, error) {
	var timeLogs []models.TimeLog
	if err := r.db.Preload("User").
		Where("task_id = ?", taskID).
		Order("log_date, id").
		Find(&timeLogs).Error; err != nil {
		return nil, err
	}
	return timeLogs, nil
}

// FindByProjectBetween lists time logs of the project's tasks with a log
// date inside the closed range
func (r *GormTimeLogRepository) FindByProjectBetween(projectID uint64, start, end time.Time) ([]models.TimeLog, error) {
	var timeLogs []models.TimeLog
	if err := r.db.
		Preload("User").
		Joins("JOIN tasks ON tasks.id = time_logs.task_id").
		Where("tasks.project_id = ? AND time_logs.log_date BETWEEN ? AND ?", projectID, start, end).
		Order("time_logs.log_date, time_logs.id").
		Find(&timeLogs).Error; err != nil {
		return nil, err
	}
	return timeLogs, nil
}

// FindByProjectsBetween lists time logs of any task of the given projects
// with a log date inside the closed range
func (r *GormTimeLogRepository) FindByProjectsBetween(projectIDs []uint64, start, end time.Time) ([]models.TimeLog, error) {
	if len(projectIDs) == 0 {
		return []models.TimeLog{}, nil
	}

	var timeLogs []models.TimeLog
	if err := r.db.
		Preload("User").
		Preload("Task").
		Joins("JOIN tasks ON tasks.id = time_logs.task_id").
		Where("tasks.project_id IN ? AND time_logs.log_date BETWEEN ? AND ?", projectIDs, start, end).
		Order("time_logs.log_date, time_logs.id").
		Find(&timeLogs).Error; err != nil {
		return nil, err
	}
	return timeLogs, nil
}
