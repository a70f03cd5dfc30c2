package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/torann10/flowboard-sub000/internal/database"
	"github.com/torann10/flowboard-sub000/internal/models"
)

// RequireProjectAccess checks if the user is assigned to the project
func RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get project ID from URL parameter
		projectIDStr := c.Param("id")
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid project ID",
			})
			c.Abort()
			return
		}

		// Get current user ID
		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		// Check if project exists
		var project models.Project
		if err := database.GetDB().First(&project, projectID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Project not found",
			})
			c.Abort()
			return
		}

		// Check if user is assigned
		var assignment models.ProjectUser
		err = database.GetDB().Where("project_id = ? AND user_id = ?", projectID, userID).First(&assignment).Error
		if err != nil {
			// Return 404 instead of 403 to avoid leaking project existence
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Project not found",
			})
			c.Abort()
			return
		}

		c.Set("project", project)
		c.Set("project_assignment", assignment)
		c.Next()
	}
}

// RequireProjectMaintainer checks if the user maintains the project
func RequireProjectMaintainer() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get assignment from context (set by RequireProjectAccess)
		assignmentInterface, exists := c.Get("project_assignment")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Project access required",
			})
			c.Abort()
			return
		}

		assignment, ok := assignmentInterface.(models.ProjectUser)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Invalid project assignment data",
			})
			c.Abort()
			return
		}

		if assignment.Role != models.RoleMaintainer {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only project maintainers can perform this action",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
