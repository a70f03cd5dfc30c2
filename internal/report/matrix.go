package report

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/torann10/flowboard-sub000/internal/models"
	"github.com/torann10/flowboard-sub000/internal/repository"
)

// ErrNothingToReport signals that the requesting user maintains no projects,
// so no employee matrix document is produced. This is not a failure.
var ErrNothingToReport = errors.New("no maintained projects to report on")

// MatrixGenerator cross-tabulates hours logged by every user across every
// project the requesting user maintains.
type MatrixGenerator struct {
	timeLogs repository.TimeLogRepository
	projects repository.ProjectRepository
}

// NewMatrixGenerator creates a new MatrixGenerator
func NewMatrixGenerator(
	timeLogs repository.TimeLogRepository,
	projects repository.ProjectRepository,
) *MatrixGenerator {
	return &MatrixGenerator{
		timeLogs: timeLogs,
		projects: projects,
	}
}

// Generate builds the matrix. Rows are the maintained projects ordered by
// name then ID, columns the users appearing in the range's time logs ordered
// by full name then ID. Zero cells render as a dash. Returns
// ErrNothingToReport when the user maintains no projects.
func (g *MatrixGenerator) Generate(userID uint64, start, end time.Time) (*Matrix, error) {
	maintained, err := g.projects.ListByUserRole(userID, models.RoleMaintainer)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintained projects: %w", err)
	}
	if len(maintained) == 0 {
		return nil, ErrNothingToReport
	}

	projectIDs := make([]uint64, len(maintained))
	for i, p := range maintained {
		projectIDs[i] = p.ID
	}

	logs, err := g.timeLogs.FindByProjectsBetween(projectIDs, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time logs: %w", err)
	}

	// minutes logged per (project, user)
	cells := make(map[uint64]map[uint64]int64)
	seen := make(map[uint64]models.User)
	for _, l := range logs {
		projectCells, ok := cells[l.Task.ProjectID]
		if !ok {
			projectCells = make(map[uint64]int64)
			cells[l.Task.ProjectID] = projectCells
		}
		projectCells[l.UserID] += l.LoggedMinutes
		seen[l.UserID] = l.User
	}

	users := make([]models.User, 0, len(seen))
	for _, u := range seen {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].FullName() != users[j].FullName() {
			return users[i].FullName() < users[j].FullName()
		}
		return users[i].ID < users[j].ID
	})

	sort.Slice(maintained, func(i, j int) bool {
		if maintained[i].Name != maintained[j].Name {
			return maintained[i].Name < maintained[j].Name
		}
		return maintained[i].ID < maintained[j].ID
	})

	// Column 0 holds the row labels: corner cell, project names, "Total".
	labelColumn := make([]string, 0, len(maintained)+2)
	labelColumn = append(labelColumn, "")
	for _, p := range maintained {
		labelColumn = append(labelColumn, p.Name)
	}
	labelColumn = append(labelColumn, summaryLabel)

	columns := [][]string{labelColumn}

	projectTotals := make(map[uint64]float64)
	grandTotal := 0.0

	for _, u := range users {
		userColumn := make([]string, 0, len(maintained)+2)
		userColumn = append(userColumn, u.FullName())

		userTotal := 0.0
		for _, p := range maintained {
			hours := float64(cells[p.ID][u.ID]) / 60.0
			userTotal += hours
			projectTotals[p.ID] += hours
			grandTotal += hours
			userColumn = append(userColumn, hourCell(hours))
		}

		userColumn = append(userColumn, hourCell(userTotal))
		columns = append(columns, userColumn)
	}

	totalColumn := make([]string, 0, len(maintained)+2)
	totalColumn = append(totalColumn, summaryLabel)
	for _, p := range maintained {
		totalColumn = append(totalColumn, hourCell(projectTotals[p.ID]))
	}
	totalColumn = append(totalColumn, hourCell(grandTotal))
	columns = append(columns, totalColumn)

	return &Matrix{Columns: columns}, nil
}
