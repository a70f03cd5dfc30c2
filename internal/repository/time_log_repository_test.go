package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

// The billing aggregation depends on the range query joining through tasks
// and treating the date range as closed on both ends.
func TestFindByProjectBetween_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTimeLogRepository(db)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"JOIN tasks ON tasks.id = time_logs.task_id WHERE tasks.project_id = ? AND time_logs.log_date BETWEEN ? AND ?",
	)).
		WithArgs(uint64(7), start, end).
		WillReturnRows(sqlmock.NewRows([]string{"id", "task_id", "user_id", "logged_minutes"}).
			AddRow(1, 10, 3, 90))

	// Preload("User") for the returned row
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users`")).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name"}).
			AddRow(3, "Alice", "Adams"))

	logs, err := repo.FindByProjectBetween(7, start, end)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, int64(90), logs[0].LoggedMinutes)
	require.Equal(t, "Alice Adams", logs[0].User.FullName())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByProjectsBetween_EmptyProjectSet(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := NewTimeLogRepository(db)

	// no maintained projects: no query is issued at all
	logs, err := repo.FindByProjectsBetween(nil, time.Now(), time.Now())
	require.NoError(t, err)
	require.Empty(t, logs)
}
