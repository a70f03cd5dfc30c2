package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	FirstName    string         `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string         `gorm:"type:varchar(100);not null" json:"last_name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	ProjectUsers []ProjectUser `gorm:"foreignKey:UserID" json:"-"`
	TimeLogs     []TimeLog     `gorm:"foreignKey:UserID" json:"-"`
	Reports      []Report      `gorm:"foreignKey:UserID" json:"-"`
}

// FullName returns the display name used on generated documents.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
