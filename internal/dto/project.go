package dto

import (
	"time"

	"github.com/torann10/flowboard-sub000/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// CompanyDTO represents an invoice party in API responses
type CompanyDTO struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID            uint64               `json:"id"`
	Name          string               `json:"name"`
	Status        models.ProjectStatus `json:"status"`
	BillingType   models.BillingType   `json:"billing_type"`
	StoryPointFee *float64             `json:"story_point_fee"`
	Customer      CompanyDTO           `json:"customer"`
	Contractor    CompanyDTO           `json:"contractor"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// ProjectAssignmentDTO represents a project assignment in API responses
type ProjectAssignmentDTO struct {
	User UserDTO            `json:"user"`
	Role models.ProjectRole `json:"role"`
	Fee  *float64           `json:"fee"`
}

// StoryPointMappingDTO represents a story-point mapping in API responses
type StoryPointMappingDTO struct {
	ID              uint64 `json:"id"`
	StoryPoints     int    `json:"story_points"`
	ExpectedMinutes int64  `json:"expected_minutes"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:            project.ID,
		Name:          project.Name,
		Status:        project.Status,
		BillingType:   project.BillingType,
		StoryPointFee: project.StoryPointFee,
		Customer:      CompanyDTO{Name: project.Customer.Name, Address: project.Customer.Address},
		Contractor:    CompanyDTO{Name: project.Contractor.Name, Address: project.Contractor.Address},
		CreatedAt:     project.CreatedAt,
		UpdatedAt:     project.UpdatedAt,
	}
}

// ToProjectDTOs converts a slice of projects to DTOs
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project)
	}
	return dtos
}

// ToProjectAssignmentDTO converts a project assignment to DTO
func ToProjectAssignmentDTO(assignment models.ProjectUser) ProjectAssignmentDTO {
	return ProjectAssignmentDTO{
		User: ToUserDTO(assignment.User),
		Role: assignment.Role,
		Fee:  assignment.Fee,
	}
}

// ToProjectAssignmentDTOs converts a slice of assignments to DTOs
func ToProjectAssignmentDTOs(assignments []models.ProjectUser) []ProjectAssignmentDTO {
	dtos := make([]ProjectAssignmentDTO, len(assignments))
	for i, assignment := range assignments {
		dtos[i] = ToProjectAssignmentDTO(assignment)
	}
	return dtos
}

// ToStoryPointMappingDTO converts a story-point mapping to DTO
func ToStoryPointMappingDTO(mapping models.StoryPointMapping) StoryPointMappingDTO {
	return StoryPointMappingDTO{
		ID:              mapping.ID,
		StoryPoints:     mapping.StoryPoints,
		ExpectedMinutes: mapping.ExpectedMinutes,
	}
}

// ToStoryPointMappingDTOs converts a slice of mappings to DTOs
func ToStoryPointMappingDTOs(mappings []models.StoryPointMapping) []StoryPointMappingDTO {
	dtos := make([]StoryPointMappingDTO, len(mappings))
	for i, mapping := range mappings {
		dtos[i] = ToStoryPointMappingDTO(mapping)
	}
	return dtos
}
