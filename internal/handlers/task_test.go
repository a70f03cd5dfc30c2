package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/torann10/flowboard-sub000/internal/constants"
	"github.com/torann10/flowboard-sub000/internal/database"
	"github.com/torann10/flowboard-sub000/internal/dto"
	"github.com/torann10/flowboard-sub000/internal/models"
	"github.com/torann10/flowboard-sub000/internal/repository"
	"github.com/torann10/flowboard-sub000/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectUser{},
		&models.Task{},
		&models.StoryPointMapping{},
		&models.TimeLog{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	suite.handler = NewTaskHandler(services.NewTaskService(taskRepo, projectRepo))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helpers to create test data

func (suite *TaskHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestProject(name string) *models.Project {
	project := &models.Project{
		Name:        name,
		Status:      models.ProjectStatusActive,
		BillingType: models.BillingTimeBased,
	}
	suite.db.Create(project)
	return project
}

func (suite *TaskHandlerTestSuite) assign(projectID, userID uint64, role models.ProjectRole) {
	suite.db.Create(&models.ProjectUser{ProjectID: projectID, UserID: userID, Role: role})
}

func (suite *TaskHandlerTestSuite) createTestTask(name string, projectID uint64) *models.Task {
	task := &models.Task{
		Name:        name,
		Description: "Test Description",
		Status:      models.TaskStatusOpen,
		ProjectID:   projectID,
	}
	suite.db.Create(task)
	return task
}

// createAuthContext builds an authenticated gin context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *TaskHandlerTestSuite) TestCreateTask() {
	user := suite.createTestUser("alice@flowboard.test")
	project := suite.createTestProject("Website")
	suite.assign(project.ID, user.ID, models.RoleMember)

	body, _ := json.Marshal(gin.H{
		"project_id": project.ID,
		"name":       "Build landing page",
	})
	c, w := suite.createAuthContext(http.MethodPost, "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	suite.Require().Equal(http.StatusCreated, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("Build landing page", response.Name)
	suite.Equal(models.TaskStatusOpen, response.Status)
	suite.Nil(response.FinishedAt)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_NotAMember() {
	user := suite.createTestUser("alice@flowboard.test")
	project := suite.createTestProject("Website")
	// no assignment

	body, _ := json.Marshal(gin.H{
		"project_id": project.ID,
		"name":       "Build landing page",
	})
	c, w := suite.createAuthContext(http.MethodPost, "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	// membership failures read as not found
	suite.Require().Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_DoneStampsFinishedAt() {
	user := suite.createTestUser("alice@flowboard.test")
	project := suite.createTestProject("Website")
	suite.assign(project.ID, user.ID, models.RoleMember)
	task := suite.createTestTask("Build landing page", project.ID)

	body, _ := json.Marshal(gin.H{"status": "DONE"})
	c, w := suite.createAuthContext(http.MethodPatch, "/api/tasks/1", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.UpdateTask(c)

	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(models.TaskStatusDone, response.Status)
	suite.Require().NotNil(response.FinishedAt)

	// reopening clears the stamp
	body, _ = json.Marshal(gin.H{"status": "IN_PROGRESS"})
	c, w = suite.createAuthContext(http.MethodPatch, "/api/tasks/1", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.UpdateTask(c)

	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Nil(response.FinishedAt)

	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored, task.ID).Error)
	suite.Nil(stored.FinishedAt)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_RequiresMaintainer() {
	member := suite.createTestUser("member@flowboard.test")
	maintainer := suite.createTestUser("maintainer@flowboard.test")
	project := suite.createTestProject("Website")
	suite.assign(project.ID, member.ID, models.RoleMember)
	suite.assign(project.ID, maintainer.ID, models.RoleMaintainer)
	suite.createTestTask("Build landing page", project.ID)

	c, w := suite.createAuthContext(http.MethodDelete, "/api/tasks/1", nil, member.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.DeleteTask(c)
	suite.Require().Equal(http.StatusForbidden, w.Code)

	c, w = suite.createAuthContext(http.MethodDelete, "/api/tasks/1", nil, maintainer.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.DeleteTask(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *TaskHandlerTestSuite) TestListTasks_ScopedToMemberProjects() {
	user := suite.createTestUser("alice@flowboard.test")
	mine := suite.createTestProject("Mine")
	other := suite.createTestProject("Other")
	suite.assign(mine.ID, user.ID, models.RoleMember)

	suite.createTestTask("Visible", mine.ID)
	suite.createTestTask("Hidden", other.ID)

	c, w := suite.createAuthContext(http.MethodGet, "/api/tasks", nil, user.ID)

	suite.handler.ListTasks(c)

	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.TaskListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(int64(1), response.TotalCount)
	suite.Require().Len(response.Tasks, 1)
	suite.Equal("Visible", response.Tasks[0].Name)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
