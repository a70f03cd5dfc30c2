package models

import "time"

type ProjectRole string

const (
	RoleMaintainer ProjectRole = "MAINTAINER"
	RoleReporter   ProjectRole = "REPORTER"
	RoleMember     ProjectRole = "MEMBER"
)

// ProjectUser links a user to a project with a role. Fee is the hourly rate
// used by time-based billing; it stays nil on story-point-based projects.
type ProjectUser struct {
	ProjectID uint64      `gorm:"primarykey" json:"project_id"`
	UserID    uint64      `gorm:"primarykey" json:"user_id"`
	Role      ProjectRole `gorm:"type:varchar(20);not null" json:"role"`
	Fee       *float64    `json:"fee"`
	CreatedAt time.Time   `json:"created_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
