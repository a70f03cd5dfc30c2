package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "ACTIVE"
	ProjectStatusArchived ProjectStatus = "ARCHIVED"
)

type BillingType string

const (
	BillingTimeBased       BillingType = "TIME_BASED"
	BillingStoryPointBased BillingType = "STORY_POINT_BASED"
)

// Company holds the invoice party details printed on COC reports.
type Company struct {
	Name    string `gorm:"type:varchar(255)" json:"name"`
	Address string `gorm:"type:varchar(255)" json:"address"`
}

type Project struct {
	ID     uint64        `gorm:"primarykey" json:"id"`
	Name   string        `gorm:"type:varchar(255);not null" json:"name"`
	Status ProjectStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`

	// BillingType decides how COC reports price the work; StoryPointFee is
	// only set for STORY_POINT_BASED projects.
	BillingType   BillingType `gorm:"type:varchar(30);not null" json:"billing_type"`
	StoryPointFee *float64    `json:"story_point_fee"`

	Customer   Company `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	Contractor Company `gorm:"embedded;embeddedPrefix:contractor_" json:"contractor"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	ProjectUsers       []ProjectUser       `gorm:"foreignKey:ProjectID" json:"project_users,omitempty"`
	Tasks              []Task              `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	StoryPointMappings []StoryPointMapping `gorm:"foreignKey:ProjectID" json:"story_point_mappings,omitempty"`
}
