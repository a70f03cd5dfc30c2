package report

import (
	"time"

	"github.com/torann10/flowboard-sub000/internal/models"
)

// Request holds the parameters of a project-scoped report.
type Request struct {
	ProjectID   uint64
	StartDate   time.Time
	EndDate     time.Time
	Description string
}

// COCLineItem is one row of a Certificate of Completion. Quantity, Unit and
// UnitPrice stay empty on the trailing summary row.
type COCLineItem struct {
	Name       string
	Quantity   *float64
	Unit       string
	NetPrice   float64
	VATPrice   float64
	GrossPrice float64
	UnitPrice  *float64
}

// COCReport is the aggregated Certificate of Completion before rendering.
type COCReport struct {
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
	Customer    models.Company
	Contractor  models.Company
	Description string
	Lines       []COCLineItem
}

// ActivityLineItem compares spent and estimated effort for one task.
type ActivityLineItem struct {
	Name             string
	SpentMinutes     int64
	EstimatedMinutes int64
	Deviation        int64
}

// ActivityReport is the aggregated project activity report before rendering.
type ActivityReport struct {
	ProjectName string
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
	Lines       []ActivityLineItem
}

// Matrix is the column-oriented employee matrix. Column 0 carries the row
// labels (corner cell, project names, "Total"); one column follows per user
// and a trailing totals column. The renderer transposes it for the template.
type Matrix struct {
	Columns [][]string
}

// sumCOCLines folds line items into a new "Total" row, accumulating net,
// VAT and gross in insertion order.
func sumCOCLines(items []COCLineItem) COCLineItem {
	total := COCLineItem{Name: summaryLabel}
	for _, item := range items {
		total.NetPrice += item.NetPrice
		total.VATPrice += item.VATPrice
		total.GrossPrice += item.GrossPrice
	}
	return total
}

// sumActivityLines folds line items into a new "Total" row.
func sumActivityLines(items []ActivityLineItem) ActivityLineItem {
	total := ActivityLineItem{Name: summaryLabel}
	for _, item := range items {
		total.SpentMinutes += item.SpentMinutes
		total.EstimatedMinutes += item.EstimatedMinutes
		total.Deviation += item.Deviation
	}
	return total
}
