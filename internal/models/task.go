package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "OPEN"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`
	ProjectID   uint64     `gorm:"not null" json:"project_id"`
	AssigneeID  *uint64    `json:"assignee_id"`

	// StoryPointMappingID ties the task to the project's estimation table.
	// FinishedAt is stamped when the task transitions to DONE.
	StoryPointMappingID *uint64    `json:"story_point_mapping_id"`
	FinishedAt          *time.Time `json:"finished_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project           Project            `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Assignee          *User              `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	StoryPointMapping *StoryPointMapping `gorm:"foreignKey:StoryPointMappingID" json:"story_point_mapping,omitempty"`
	TimeLogs          []TimeLog          `gorm:"foreignKey:TaskID" json:"time_logs,omitempty"`
}
