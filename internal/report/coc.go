package report

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/torann10/flowboard-sub000/internal/models"
	"github.com/torann10/flowboard-sub000/internal/repository"
	"gorm.io/gorm"
)

// COCGenerator aggregates a Certificate of Completion for one project and
// date range. Time-based projects are billed per user hour, story-point
// based projects per finished task.
type COCGenerator struct {
	timeLogs repository.TimeLogRepository
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
}

// NewCOCGenerator creates a new COCGenerator
func NewCOCGenerator(
	timeLogs repository.TimeLogRepository,
	tasks repository.TaskRepository,
	projects repository.ProjectRepository,
) *COCGenerator {
	return &COCGenerator{
		timeLogs: timeLogs,
		tasks:    tasks,
		projects: projects,
	}
}

// Generate builds the report model. The line item list always ends with one
// "Total" summary row, even when nothing was billable in the range.
func (g *COCGenerator) Generate(req Request, project *models.Project) (*COCReport, error) {
	var lines []COCLineItem
	var err error

	if project.BillingType == models.BillingTimeBased {
		lines, err = g.timeBasedLines(req)
	} else {
		lines, err = g.storyPointLines(req, project)
	}
	if err != nil {
		return nil, err
	}

	lines = append(lines, sumCOCLines(lines))

	return &COCReport{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedAt:   time.Now(),
		Customer:    project.Customer,
		Contractor:  project.Contractor,
		Description: req.Description,
		Lines:       lines,
	}, nil
}

// timeBasedLines groups the range's time logs by user and prices each
// user's hours with their assigned fee. Users without a fee assignment on
// the project are skipped without error.
func (g *COCGenerator) timeBasedLines(req Request) ([]COCLineItem, error) {
	logs, err := g.timeLogs.FindByProjectBetween(req.ProjectID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time logs: %w", err)
	}

	type userGroup struct {
		user    models.User
		minutes int64
	}

	groups := make(map[uint64]*userGroup)
	for _, l := range logs {
		group, ok := groups[l.UserID]
		if !ok {
			group = &userGroup{user: l.User}
			groups[l.UserID] = group
		}
		group.minutes += l.LoggedMinutes
	}

	ordered := make([]*userGroup, 0, len(groups))
	for _, group := range groups {
		ordered = append(ordered, group)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].user.FullName() != ordered[j].user.FullName() {
			return ordered[i].user.FullName() < ordered[j].user.FullName()
		}
		return ordered[i].user.ID < ordered[j].user.ID
	})

	lines := make([]COCLineItem, 0, len(ordered))
	for _, group := range ordered {
		assignment, err := g.projects.FindUser(req.ProjectID, group.user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to look up project assignment: %w", err)
		}
		if assignment.Fee == nil {
			continue
		}

		hours := float64(group.minutes) / 60.0
		unitPrice := *assignment.Fee
		netPrice := unitPrice * hours
		grossPrice := netPrice * vatMultiplier
		vatPrice := grossPrice - netPrice

		quantity := hours
		lines = append(lines, COCLineItem{
			Name:       group.user.FullName(),
			Quantity:   &quantity,
			Unit:       "hour",
			NetPrice:   netPrice,
			VATPrice:   vatPrice,
			GrossPrice: grossPrice,
			UnitPrice:  &unitPrice,
		})
	}

	return lines, nil
}

// storyPointLines prices every task finished inside the day-aligned range
// with the project's story-point fee.
func (g *COCGenerator) storyPointLines(req Request, project *models.Project) ([]COCLineItem, error) {
	from, to := dayAlignedRange(req.StartDate, req.EndDate)

	tasks, err := g.tasks.FindFinishedBetween(req.ProjectID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch finished tasks: %w", err)
	}

	var fee float64
	if project.StoryPointFee != nil {
		fee = *project.StoryPointFee
	}

	lines := make([]COCLineItem, 0, len(tasks))
	for _, task := range tasks {
		if task.StoryPointMapping == nil {
			continue
		}

		storyPoints := float64(task.StoryPointMapping.StoryPoints)
		unitPrice := fee
		netPrice := unitPrice * storyPoints
		grossPrice := netPrice * vatMultiplier
		vatPrice := grossPrice - netPrice

		lines = append(lines, COCLineItem{
			Name:       task.Name,
			Quantity:   &storyPoints,
			Unit:       "story point",
			NetPrice:   netPrice,
			VATPrice:   vatPrice,
			GrossPrice: grossPrice,
			UnitPrice:  &unitPrice,
		})
	}

	return lines, nil
}
