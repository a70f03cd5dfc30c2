package report

import (
	"fmt"
	"time"

	"github.com/torann10/flowboard-sub000/internal/models"
	"github.com/torann10/flowboard-sub000/internal/repository"
)

// ActivityGenerator aggregates estimated versus actual effort per finished
// task in a project and date range.
type ActivityGenerator struct {
	tasks repository.TaskRepository
}

// NewActivityGenerator creates a new ActivityGenerator
func NewActivityGenerator(tasks repository.TaskRepository) *ActivityGenerator {
	return &ActivityGenerator{tasks: tasks}
}

// Generate builds the report model. A task without time logs contributes
// zero spent minutes; a task without a story-point mapping contributes zero
// estimated minutes. The list ends with one "Total" summary row.
func (g *ActivityGenerator) Generate(req Request, project *models.Project) (*ActivityReport, error) {
	from, to := dayAlignedRange(req.StartDate, req.EndDate)

	tasks, err := g.tasks.FindFinishedBetween(req.ProjectID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch finished tasks: %w", err)
	}

	lines := make([]ActivityLineItem, 0, len(tasks))
	for _, task := range tasks {
		var spent int64
		for _, l := range task.TimeLogs {
			spent += l.LoggedMinutes
		}

		var estimated int64
		if task.StoryPointMapping != nil {
			estimated = task.StoryPointMapping.ExpectedMinutes
		}

		lines = append(lines, ActivityLineItem{
			Name:             task.Name,
			SpentMinutes:     spent,
			EstimatedMinutes: estimated,
			Deviation:        spent - estimated,
		})
	}

	lines = append(lines, sumActivityLines(lines))

	return &ActivityReport{
		ProjectName: project.Name,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedAt:   time.Now(),
		Lines:       lines,
	}, nil
}
