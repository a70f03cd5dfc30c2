package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/torann10/flowboard-sub000/internal/dto"
	apierrors "github.com/torann10/flowboard-sub000/internal/errors"
	"github.com/torann10/flowboard-sub000/internal/middleware"
	"github.com/torann10/flowboard-sub000/internal/models"
	"github.com/torann10/flowboard-sub000/internal/services"
)

// ProjectHandler coordinates project-related HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CompanyRequest carries invoice party details in request bodies.
type CompanyRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Address string `json:"address" binding:"required,max=255"`
}

// CreateProject creates a new project owned by the caller.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Name          string             `json:"name" binding:"required,max=255"`
		BillingType   models.BillingType `json:"billing_type" binding:"required"`
		StoryPointFee *float64           `json:"story_point_fee"`
		Customer      CompanyRequest     `json:"customer" binding:"required"`
		Contractor    CompanyRequest     `json:"contractor" binding:"required"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	project, err := h.projectService.CreateProject(userID, services.CreateProjectInput{
		Name:          req.Name,
		BillingType:   req.BillingType,
		StoryPointFee: req.StoryPointFee,
		Customer:      models.Company{Name: req.Customer.Name, Address: req.Customer.Address},
		Contractor:    models.Company{Name: req.Contractor.Name, Address: req.Contractor.Address},
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects lists the caller's projects.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projects, err := h.projectService.ListProjects(userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": dto.ToProjectDTOs(projects)})
}

// GetProject returns a single project.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(projectID, userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// UpdateProject updates a project's fields.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	type UpdateProjectRequest struct {
		Name          *string               `json:"name" binding:"omitempty,max=255"`
		Status        *models.ProjectStatus `json:"status"`
		StoryPointFee *float64              `json:"story_point_fee"`
		Customer      *CompanyRequest       `json:"customer"`
		Contractor    *CompanyRequest       `json:"contractor"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}

	input := services.UpdateProjectInput{
		Name:          req.Name,
		Status:        req.Status,
		StoryPointFee: req.StoryPointFee,
	}
	if req.Customer != nil {
		input.Customer = &models.Company{Name: req.Customer.Name, Address: req.Customer.Address}
	}
	if req.Contractor != nil {
		input.Contractor = &models.Company{Name: req.Contractor.Name, Address: req.Contractor.Address}
	}

	project, err := h.projectService.UpdateProject(projectID, userID, input)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject deletes a project and everything under it.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(projectID, userID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// ListProjectUsers lists the project's assignments.
func (h *ProjectHandler) ListProjectUsers(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}

	assignments, err := h.projectService.ListAssignments(projectID, userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": dto.ToProjectAssignmentDTOs(assignments)})
}

// AddProjectUser assigns a user to the project.
func (h *ProjectHandler) AddProjectUser(c *gin.Context) {
	type AddUserRequest struct {
		UserID uint64             `json:"user_id" binding:"required"`
		Role   models.ProjectRole `json:"role" binding:"required"`
		Fee    *float64           `json:"fee"`
	}

	var req AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}

	assignment, err := h.projectService.AssignUser(projectID, userID, services.AssignUserInput{
		UserID: req.UserID,
		Role:   req.Role,
		Fee:    req.Fee,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectAssignmentDTO(*assignment))
}

// UpdateProjectUser changes a member's role or fee.
func (h *ProjectHandler) UpdateProjectUser(c *gin.Context) {
	type UpdateUserRequest struct {
		Role *models.ProjectRole `json:"role"`
		Fee  *float64            `json:"fee"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	targetID, ok := paramID(c, "user_id")
	if !ok {
		return
	}

	assignment, err := h.projectService.UpdateAssignment(projectID, actorID, targetID, services.UpdateAssignmentInput{
		Role: req.Role,
		Fee:  req.Fee,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectAssignmentDTO(*assignment))
}

// RemoveProjectUser removes a member from the project.
func (h *ProjectHandler) RemoveProjectUser(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	targetID, ok := paramID(c, "user_id")
	if !ok {
		return
	}

	if err := h.projectService.RemoveAssignment(projectID, actorID, targetID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User removed from project"})
}

// ListStoryPointMappings lists the project's estimation table.
func (h *ProjectHandler) ListStoryPointMappings(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}

	mappings, err := h.projectService.ListMappings(projectID, userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"story_point_mappings": dto.ToStoryPointMappingDTOs(mappings)})
}

// CreateStoryPointMapping adds a row to the project's estimation table.
func (h *ProjectHandler) CreateStoryPointMapping(c *gin.Context) {
	type CreateMappingRequest struct {
		StoryPoints     int   `json:"story_points" binding:"required"`
		ExpectedMinutes int64 `json:"expected_minutes" binding:"required"`
	}

	var req CreateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}

	mapping, err := h.projectService.CreateMapping(projectID, userID, services.CreateMappingInput{
		StoryPoints:     req.StoryPoints,
		ExpectedMinutes: req.ExpectedMinutes,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToStoryPointMappingDTO(*mapping))
}

// DeleteStoryPointMapping removes a row from the estimation table.
func (h *ProjectHandler) DeleteStoryPointMapping(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	mappingID, ok := paramID(c, "mapping_id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteMapping(projectID, userID, mappingID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Story point mapping deleted"})
}

// paramID parses a uint64 URL parameter, answering 400 on failure.
func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrAssignmentNotFound),
		errors.Is(err, services.ErrMappingNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrProjectNameRequired),
		errors.Is(err, services.ErrInvalidBillingType),
		errors.Is(err, services.ErrInvalidProjectStatus),
		errors.Is(err, services.ErrStoryPointFeeRequired),
		errors.Is(err, services.ErrInvalidProjectRole),
		errors.Is(err, services.ErrInvalidStoryPoints),
		errors.Is(err, services.ErrInvalidExpectedMinutes),
		errors.Is(err, services.ErrLastMaintainer):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAlreadyAssigned):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
