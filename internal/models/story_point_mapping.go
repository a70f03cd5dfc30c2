package models

import "time"

// StoryPointMapping maps a story-point value to the duration the team
// expects such a task to take. One table per project.
type StoryPointMapping struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	ProjectID       uint64    `gorm:"not null;index" json:"project_id"`
	StoryPoints     int       `gorm:"not null" json:"story_points"`
	ExpectedMinutes int64     `gorm:"not null" json:"expected_minutes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
