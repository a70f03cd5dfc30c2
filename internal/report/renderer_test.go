package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/torann10/flowboard-sub000/internal/models"
)

func TestRendererLoad_UnknownTemplate(t *testing.T) {
	r := NewRenderer()

	_, err := r.load("no-such-report")
	require.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestRenderCOC(t *testing.T) {
	r := NewRenderer()

	quantity := 1.5
	unitPrice := 10000.0
	html, err := r.RenderCOC(&COCReport{
		StartDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC),
		Customer:    models.Company{Name: "Acme Kft.", Address: "Budapest"},
		Contractor:  models.Company{Name: "Dev Bt.", Address: "Szeged"},
		Description: "March work",
		Lines: []COCLineItem{
			{
				Name:       "Alice Adams",
				Quantity:   &quantity,
				Unit:       "hour",
				UnitPrice:  &unitPrice,
				NetPrice:   15000,
				VATPrice:   4050,
				GrossPrice: 19050,
			},
			{Name: "Total", NetPrice: 15000, VATPrice: 4050, GrossPrice: 19050},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Certificate of Completion")
	assert.Contains(t, html, "Acme Kft.")
	assert.Contains(t, html, "Dev Bt.")
	assert.Contains(t, html, "2024.03.01.")
	assert.Contains(t, html, "2024.03.31.")
	assert.Contains(t, html, "March work")
	assert.Contains(t, html, "Alice Adams")
	assert.Contains(t, html, "1.50")
	assert.Contains(t, html, "10,000 Ft")
	assert.Contains(t, html, "19,050 Ft")
	assert.Contains(t, html, "'PT Mono', monospace")
}

func TestRenderActivity(t *testing.T) {
	r := NewRenderer()

	html, err := r.RenderActivity(&ActivityReport{
		ProjectName: "Website",
		StartDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC),
		Lines: []ActivityLineItem{
			{Name: "Login screen", SpentMinutes: 150, EstimatedMinutes: 120, Deviation: 30},
			{Name: "Total", SpentMinutes: 150, EstimatedMinutes: 120, Deviation: 30},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Website")
	assert.Contains(t, html, "Login screen")
	assert.Contains(t, html, "2.50 hour")
	assert.Contains(t, html, "2.00 hour")
	assert.Contains(t, html, "0.50 hour")
	// summary row is not counted as a task
	assert.Contains(t, html, "Finished tasks: 1")
}

func TestRenderMatrix_Transposes(t *testing.T) {
	r := NewRenderer()

	html, err := r.RenderMatrix(&Matrix{Columns: [][]string{
		{"", "Alpha", "Total"},
		{"Alice Adams", "2.0 hour", "2.0 hour"},
		{"Total", "2.0 hour", "2.0 hour"},
	}})
	require.NoError(t, err)

	assert.Contains(t, html, "Employee Matrix")
	assert.Contains(t, html, "Alice Adams")
	assert.Contains(t, html, "Alpha")

	// transposed: the user name sits in the header row, so it appears
	// before the project row
	assert.Less(t, strings.Index(html, "Alice Adams"), strings.Index(html, "Alpha"))
}
