package models

import (
	"time"

	"gorm.io/gorm"
)

type TimeLog struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	TaskID        uint64    `gorm:"not null;index" json:"task_id"`
	UserID        uint64    `gorm:"not null;index" json:"user_id"`
	LoggedMinutes int64     `gorm:"not null" json:"logged_minutes"`
	Billable      bool      `gorm:"not null;default:true" json:"billable"`
	LogDate       time.Time `gorm:"type:date;not null;index" json:"log_date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
