package report

import (
	"time"

	"github.com/torann10/flowboard-sub000/internal/models"
	"github.com/torann10/flowboard-sub000/internal/repository"
	"gorm.io/gorm"
)

// Test doubles for the repository interfaces. Only the methods the
// generators call are implemented; the embedded interface panics on
// anything else, which is exactly what a test should do.

type fakeTimeLogRepo struct {
	repository.TimeLogRepository

	logs []models.TimeLog

	// captured arguments of the last range query
	gotProjectID  uint64
	gotProjectIDs []uint64
	gotStart      time.Time
	gotEnd        time.Time
}

func (f *fakeTimeLogRepo) FindByProjectBetween(projectID uint64, start, end time.Time) ([]models.TimeLog, error) {
	f.gotProjectID = projectID
	f.gotStart = start
	f.gotEnd = end
	return f.logs, nil
}

func (f *fakeTimeLogRepo) FindByProjectsBetween(projectIDs []uint64, start, end time.Time) ([]models.TimeLog, error) {
	f.gotProjectIDs = projectIDs
	f.gotStart = start
	f.gotEnd = end
	return f.logs, nil
}

type fakeTaskRepo struct {
	repository.TaskRepository

	tasks []models.Task

	gotFrom time.Time
	gotTo   time.Time
}

func (f *fakeTaskRepo) FindFinishedBetween(projectID uint64, from, to time.Time) ([]models.Task, error) {
	f.gotFrom = from
	f.gotTo = to

	var inWindow []models.Task
	for _, task := range f.tasks {
		if task.FinishedAt == nil {
			continue
		}
		if task.FinishedAt.Before(from) || task.FinishedAt.After(to) {
			continue
		}
		inWindow = append(inWindow, task)
	}
	return inWindow, nil
}

type fakeProjectRepo struct {
	repository.ProjectRepository

	maintained  []models.Project
	assignments map[uint64]*models.ProjectUser // by user ID
}

func (f *fakeProjectRepo) ListByUserRole(userID uint64, role models.ProjectRole) ([]models.Project, error) {
	return f.maintained, nil
}

func (f *fakeProjectRepo) FindUser(projectID, userID uint64) (*models.ProjectUser, error) {
	assignment, ok := f.assignments[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return assignment, nil
}

func floatPtr(v float64) *float64 { return &v }

func testUser(id uint64, firstName, lastName string) models.User {
	return models.User{ID: id, FirstName: firstName, LastName: lastName}
}
