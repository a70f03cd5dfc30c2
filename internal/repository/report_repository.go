package repository

import (
	"github.com/torann10/flowboard-sub000/internal/models"
	"gorm.io/gorm"
)

// GormReportRepository is a GORM implementation of ReportRepository
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &GormReportRepository{db: db}
}

// Create creates a new report metadata row
func (r *GormReportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

// FindByIDAndUser finds a report owned by the user
func (r *GormReportRepository) FindByIDAndUser(id, userID uint64) (*models.Report, error) {
	var report models.Report
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).
		First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// ListByUser lists the user's reports, newest first
func (r *GormReportRepository) ListByUser(userID uint64) ([]models.Report, error) {
	var reports []models.Report
	if err := r.db.Preload("Project").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// Rename renames a report owned by the user; returns rows affected
func (r *GormReportRepository) Rename(id, userID uint64, name string) (int64, error) {
	result := r.db.Model(&models.Report{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("name", name)
	return result.RowsAffected, result.Error
}

// Delete removes a report owned by the user; returns rows affected
func (r *GormReportRepository) Delete(id, userID uint64) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Report{})
	return result.RowsAffected, result.Error
}
