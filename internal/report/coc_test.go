package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/torann10/flowboard-sub000/internal/models"
)

func timeBasedProject() *models.Project {
	return &models.Project{
		ID:          1,
		Name:        "Website",
		BillingType: models.BillingTimeBased,
		Customer:    models.Company{Name: "Acme Kft.", Address: "Budapest"},
		Contractor:  models.Company{Name: "Dev Bt.", Address: "Szeged"},
	}
}

func TestCOCGenerate_TimeBased(t *testing.T) {
	alice := testUser(1, "Alice", "Adams")
	bob := testUser(2, "Bob", "Brown")

	timeLogs := &fakeTimeLogRepo{logs: []models.TimeLog{
		{UserID: 2, User: bob, LoggedMinutes: 90},
		{UserID: 1, User: alice, LoggedMinutes: 60},
		{UserID: 1, User: alice, LoggedMinutes: 30},
	}}
	projects := &fakeProjectRepo{assignments: map[uint64]*models.ProjectUser{
		1: {UserID: 1, Role: models.RoleMember, Fee: floatPtr(10000)},
		2: {UserID: 2, Role: models.RoleMember, Fee: floatPtr(8000)},
	}}

	gen := NewCOCGenerator(timeLogs, &fakeTaskRepo{}, projects)
	req := Request{
		ProjectID: 1,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	coc, err := gen.Generate(req, timeBasedProject())
	require.NoError(t, err)

	// two user lines plus the summary, ordered by full name
	require.Len(t, coc.Lines, 3)
	assert.Equal(t, "Alice Adams", coc.Lines[0].Name)
	assert.Equal(t, "Bob Brown", coc.Lines[1].Name)
	assert.Equal(t, "Total", coc.Lines[2].Name)

	// Alice: 1.5 hours at 10000/hour
	alice0 := coc.Lines[0]
	require.NotNil(t, alice0.Quantity)
	assert.InDelta(t, 1.5, *alice0.Quantity, 1e-9)
	assert.Equal(t, "hour", alice0.Unit)
	assert.InDelta(t, 15000, alice0.NetPrice, 1e-6)
	assert.InDelta(t, 15000*1.27, alice0.GrossPrice, 1e-6)
	assert.InDelta(t, alice0.GrossPrice-alice0.NetPrice, alice0.VATPrice, 1e-9)
}

func TestCOCGenerate_SummaryIsAdditive(t *testing.T) {
	alice := testUser(1, "Alice", "Adams")
	bob := testUser(2, "Bob", "Brown")

	timeLogs := &fakeTimeLogRepo{logs: []models.TimeLog{
		{UserID: 1, User: alice, LoggedMinutes: 75},
		{UserID: 2, User: bob, LoggedMinutes: 45},
	}}
	projects := &fakeProjectRepo{assignments: map[uint64]*models.ProjectUser{
		1: {UserID: 1, Fee: floatPtr(12500)},
		2: {UserID: 2, Fee: floatPtr(9900)},
	}}

	gen := NewCOCGenerator(timeLogs, &fakeTaskRepo{}, projects)
	coc, err := gen.Generate(Request{ProjectID: 1}, timeBasedProject())
	require.NoError(t, err)

	total := coc.Lines[len(coc.Lines)-1]
	var net, vat, gross float64
	for _, line := range coc.Lines[:len(coc.Lines)-1] {
		net += line.NetPrice
		vat += line.VATPrice
		gross += line.GrossPrice
	}
	assert.InDelta(t, net, total.NetPrice, 1e-9)
	assert.InDelta(t, vat, total.VATPrice, 1e-9)
	assert.InDelta(t, gross, total.GrossPrice, 1e-9)
	assert.Nil(t, total.Quantity)
	assert.Nil(t, total.UnitPrice)
}

func TestCOCGenerate_SkipsUsersWithoutFee(t *testing.T) {
	alice := testUser(1, "Alice", "Adams")
	carol := testUser(3, "Carol", "Clark")
	dave := testUser(4, "Dave", "Dean")

	timeLogs := &fakeTimeLogRepo{logs: []models.TimeLog{
		{UserID: 1, User: alice, LoggedMinutes: 60},
		{UserID: 3, User: carol, LoggedMinutes: 60}, // assigned, no fee
		{UserID: 4, User: dave, LoggedMinutes: 60},  // no assignment at all
	}}
	projects := &fakeProjectRepo{assignments: map[uint64]*models.ProjectUser{
		1: {UserID: 1, Fee: floatPtr(10000)},
		3: {UserID: 3, Fee: nil},
	}}

	gen := NewCOCGenerator(timeLogs, &fakeTaskRepo{}, projects)
	coc, err := gen.Generate(Request{ProjectID: 1}, timeBasedProject())
	require.NoError(t, err)

	// only Alice and the summary survive
	require.Len(t, coc.Lines, 2)
	assert.Equal(t, "Alice Adams", coc.Lines[0].Name)
	assert.Equal(t, "Total", coc.Lines[1].Name)
}

func TestCOCGenerate_EmptyRangeYieldsZeroSummary(t *testing.T) {
	gen := NewCOCGenerator(&fakeTimeLogRepo{}, &fakeTaskRepo{}, &fakeProjectRepo{})

	coc, err := gen.Generate(Request{ProjectID: 1}, timeBasedProject())
	require.NoError(t, err)

	require.Len(t, coc.Lines, 1)
	total := coc.Lines[0]
	assert.Equal(t, "Total", total.Name)
	assert.Zero(t, total.NetPrice)
	assert.Zero(t, total.VATPrice)
	assert.Zero(t, total.GrossPrice)
}

func TestCOCGenerate_StoryPointBased(t *testing.T) {
	project := &models.Project{
		ID:            2,
		Name:          "Mobile App",
		BillingType:   models.BillingStoryPointBased,
		StoryPointFee: floatPtr(20000),
	}

	finished := time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)
	unmapped := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	tasks := &fakeTaskRepo{tasks: []models.Task{
		{
			Name:              "Login screen",
			FinishedAt:        &finished,
			StoryPointMapping: &models.StoryPointMapping{StoryPoints: 3, ExpectedMinutes: 180},
		},
		{
			Name:       "Unestimated chore",
			FinishedAt: &unmapped,
			// no story-point mapping: not billable
		},
	}}

	gen := NewCOCGenerator(&fakeTimeLogRepo{}, tasks, &fakeProjectRepo{})
	req := Request{
		ProjectID: 2,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	coc, err := gen.Generate(req, project)
	require.NoError(t, err)

	require.Len(t, coc.Lines, 2)
	line := coc.Lines[0]
	assert.Equal(t, "Login screen", line.Name)
	assert.Equal(t, "story point", line.Unit)
	require.NotNil(t, line.Quantity)
	assert.InDelta(t, 3, *line.Quantity, 1e-9)
	assert.InDelta(t, 60000, line.NetPrice, 1e-6)
	assert.InDelta(t, 60000*1.27, line.GrossPrice, 1e-6)
}

func TestCOCGenerate_StoryPointWindowIsDayAligned(t *testing.T) {
	project := &models.Project{
		ID:            2,
		BillingType:   models.BillingStoryPointBased,
		StoryPointFee: floatPtr(10000),
	}

	lastSecond := time.Date(2024, 3, 7, 23, 59, 59, 0, time.UTC)
	justAfter := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	tasks := &fakeTaskRepo{tasks: []models.Task{
		{
			Name:              "In window",
			FinishedAt:        &lastSecond,
			StoryPointMapping: &models.StoryPointMapping{StoryPoints: 1},
		},
		{
			Name:              "Out of window",
			FinishedAt:        &justAfter,
			StoryPointMapping: &models.StoryPointMapping{StoryPoints: 1},
		},
	}}

	gen := NewCOCGenerator(&fakeTimeLogRepo{}, tasks, &fakeProjectRepo{})
	req := Request{
		ProjectID: 2,
		StartDate: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC),
	}

	coc, err := gen.Generate(req, project)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), tasks.gotFrom)
	assert.Equal(t, time.Date(2024, 3, 7, 23, 59, 59, 0, time.UTC), tasks.gotTo)

	require.Len(t, coc.Lines, 2)
	assert.Equal(t, "In window", coc.Lines[0].Name)
}
