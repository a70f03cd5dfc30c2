package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/torann10/flowboard-sub000/internal/constants"
	"github.com/torann10/flowboard-sub000/internal/database"
	"github.com/torann10/flowboard-sub000/internal/dto"
	"github.com/torann10/flowboard-sub000/internal/models"
	"github.com/torann10/flowboard-sub000/internal/repository"
	"github.com/torann10/flowboard-sub000/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type projectTestEnv struct {
	db      *gorm.DB
	handler *ProjectHandler
}

func setupProjectTestEnv(t *testing.T) projectTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectUser{},
		&models.Task{},
		&models.StoryPointMapping{},
		&models.TimeLog{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	projectRepo := repository.NewProjectRepository(db)
	userRepo := repository.NewUserRepository(db)
	handler := NewProjectHandler(services.NewProjectService(projectRepo, userRepo))

	gin.SetMode(gin.TestMode)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return projectTestEnv{db: db, handler: handler}
}

func projectAuthContext(t *testing.T, method, url string, payload interface{}, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		c.Request = httptest.NewRequest(method, url, bytes.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request = httptest.NewRequest(method, url, nil)
	}
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func TestProjectHandler_CreateProject_CreatorBecomesMaintainer(t *testing.T) {
	env := setupProjectTestEnv(t)

	user := models.User{FirstName: "Alice", LastName: "Adams", Email: "alice@flowboard.test", PasswordHash: "x"}
	require.NoError(t, env.db.Create(&user).Error)

	c, w := projectAuthContext(t, http.MethodPost, "/api/projects", gin.H{
		"name":         "Website",
		"billing_type": "TIME_BASED",
		"customer":     gin.H{"name": "Acme Kft.", "address": "Budapest"},
		"contractor":   gin.H{"name": "Dev Bt.", "address": "Szeged"},
	}, user.ID)

	env.handler.CreateProject(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Website", response.Name)
	require.Equal(t, models.ProjectStatusActive, response.Status)

	var assignment models.ProjectUser
	require.NoError(t, env.db.Where("project_id = ? AND user_id = ?", response.ID, user.ID).First(&assignment).Error)
	require.Equal(t, models.RoleMaintainer, assignment.Role)
}

func TestProjectHandler_CreateProject_StoryPointFeeRequired(t *testing.T) {
	env := setupProjectTestEnv(t)

	user := models.User{FirstName: "Alice", LastName: "Adams", Email: "alice@flowboard.test", PasswordHash: "x"}
	require.NoError(t, env.db.Create(&user).Error)

	c, w := projectAuthContext(t, http.MethodPost, "/api/projects", gin.H{
		"name":         "Mobile App",
		"billing_type": "STORY_POINT_BASED",
		"customer":     gin.H{"name": "Acme Kft.", "address": "Budapest"},
		"contractor":   gin.H{"name": "Dev Bt.", "address": "Szeged"},
	}, user.ID)

	env.handler.CreateProject(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectHandler_RemoveProjectUser_LastMaintainerBlocked(t *testing.T) {
	env := setupProjectTestEnv(t)

	maintainer := models.User{FirstName: "Alice", LastName: "Adams", Email: "alice@flowboard.test", PasswordHash: "x"}
	require.NoError(t, env.db.Create(&maintainer).Error)

	project := models.Project{Name: "Website", Status: models.ProjectStatusActive, BillingType: models.BillingTimeBased}
	require.NoError(t, env.db.Create(&project).Error)
	require.NoError(t, env.db.Create(&models.ProjectUser{
		ProjectID: project.ID, UserID: maintainer.ID, Role: models.RoleMaintainer,
	}).Error)

	c, w := projectAuthContext(t, http.MethodDelete, "/api/projects/1/users/1", nil, maintainer.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}, {Key: "user_id", Value: "1"}}

	env.handler.RemoveProjectUser(c)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	env.db.Model(&models.ProjectUser{}).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestProjectHandler_StoryPointMappings(t *testing.T) {
	env := setupProjectTestEnv(t)

	maintainer := models.User{FirstName: "Alice", LastName: "Adams", Email: "alice@flowboard.test", PasswordHash: "x"}
	require.NoError(t, env.db.Create(&maintainer).Error)

	fee := 20000.0
	project := models.Project{Name: "Mobile App", Status: models.ProjectStatusActive, BillingType: models.BillingStoryPointBased, StoryPointFee: &fee}
	require.NoError(t, env.db.Create(&project).Error)
	require.NoError(t, env.db.Create(&models.ProjectUser{
		ProjectID: project.ID, UserID: maintainer.ID, Role: models.RoleMaintainer,
	}).Error)

	c, w := projectAuthContext(t, http.MethodPost, "/api/projects/1/story-points", gin.H{
		"story_points":     3,
		"expected_minutes": 180,
	}, maintainer.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	env.handler.CreateStoryPointMapping(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.StoryPointMappingDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, 3, response.StoryPoints)
	require.Equal(t, int64(180), response.ExpectedMinutes)
}
