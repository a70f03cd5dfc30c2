package report

import (
	"embed"
	"fmt"

	"github.com/cbroglie/mustache"
)

//go:embed templates/*.mustache
var templateFS embed.FS

// ErrTemplateNotFound is a configuration error: a report kind references a
// template resource that is not bundled.
var ErrTemplateNotFound = fmt.Errorf("report template not found")

// Renderer turns aggregated report models into self-contained HTML using
// one mustache template per report kind.
type Renderer struct{}

// NewRenderer creates a new Renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) load(name string) (string, error) {
	data, err := templateFS.ReadFile("templates/" + name + ".mustache")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return string(data), nil
}

// RenderCOC renders a Certificate of Completion report.
func (r *Renderer) RenderCOC(report *COCReport) (string, error) {
	tmpl, err := r.load("coc-report")
	if err != nil {
		return "", err
	}

	lines := make([]map[string]string, 0, len(report.Lines))
	for _, line := range report.Lines {
		lines = append(lines, map[string]string{
			"name":       line.Name,
			"quantity":   formatOrDefault(line.Quantity, func(q float64) string { return fmt.Sprintf("%.2f", q) }),
			"unit":       line.Unit,
			"unitPrice":  formatOrDefault(line.UnitPrice, formatCurrency),
			"netPrice":   formatCurrency(line.NetPrice),
			"vatPrice":   formatCurrency(line.VATPrice),
			"grossPrice": formatCurrency(line.GrossPrice),
		})
	}

	context := map[string]interface{}{
		"customer": map[string]string{
			"name":    report.Customer.Name,
			"address": report.Customer.Address,
		},
		"contractor": map[string]string{
			"name":    report.Contractor.Name,
			"address": report.Contractor.Address,
		},
		"start":       formatDate(report.StartDate),
		"end":         formatDate(report.EndDate),
		"createdAt":   formatDateTime(report.CreatedAt),
		"description": report.Description,
		"lines":       lines,
	}

	html, err := mustache.Render(tmpl, context)
	if err != nil {
		return "", fmt.Errorf("failed to render COC report: %w", err)
	}
	return html, nil
}

// RenderActivity renders a project activity report.
func (r *Renderer) RenderActivity(report *ActivityReport) (string, error) {
	tmpl, err := r.load("project-activity")
	if err != nil {
		return "", err
	}

	tasks := make([]map[string]string, 0, len(report.Lines))
	for _, line := range report.Lines {
		tasks = append(tasks, map[string]string{
			"name":      line.Name,
			"spent":     formatHours(line.SpentMinutes),
			"estimated": formatHours(line.EstimatedMinutes),
			"deviation": formatHours(line.Deviation),
		})
	}

	context := map[string]interface{}{
		"projectName": report.ProjectName,
		"start":       formatDate(report.StartDate),
		"end":         formatDate(report.EndDate),
		"createdAt":   formatDateTime(report.CreatedAt),
		"taskCount":   len(report.Lines) - 1,
		"tasks":       tasks,
	}

	html, err := mustache.Render(tmpl, context)
	if err != nil {
		return "", fmt.Errorf("failed to render activity report: %w", err)
	}
	return html, nil
}

// RenderMatrix renders an employee matrix report. The aggregation is
// column-oriented; the template iterates rows, so the matrix is transposed
// here.
func (r *Renderer) RenderMatrix(m *Matrix) (string, error) {
	tmpl, err := r.load("employee-matrix")
	if err != nil {
		return "", err
	}

	rows := make([]map[string]interface{}, 0)
	if len(m.Columns) > 0 {
		for rowIdx := range m.Columns[0] {
			cells := make([]string, 0, len(m.Columns))
			for colIdx := range m.Columns {
				cells = append(cells, m.Columns[colIdx][rowIdx])
			}
			rows = append(rows, map[string]interface{}{"cells": cells})
		}
	}

	html, err := mustache.Render(tmpl, map[string]interface{}{"matrix": rows})
	if err != nil {
		return "", fmt.Errorf("failed to render employee matrix: %w", err)
	}
	return html, nil
}
