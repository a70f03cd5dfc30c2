package models

import (
	"fmt"
	"net/url"
	"time"

	"gorm.io/gorm"
)

// Report is the metadata row for a generated PDF. The document itself lives
// in object storage under ArtifactID; the row is only written after a
// successful upload.
type Report struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	ProjectID *uint64   `gorm:"index" json:"project_id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	ArtifactID string   `gorm:"type:varchar(36);uniqueIndex;not null" json:"artifact_id"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// ContentDisposition builds the download header so the stored PDF is saved
// under a descriptive filename.
func (r Report) ContentDisposition() string {
	filename := fmt.Sprintf("%s_%s-%s.pdf",
		r.Name,
		r.StartDate.Format("20060102"),
		r.EndDate.Format("20060102"),
	)
	return "attachment; filename*=UTF-8''" + url.QueryEscape(filename)
}
