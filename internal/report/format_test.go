package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "0 Ft", formatCurrency(0))
	assert.Equal(t, "950 Ft", formatCurrency(950))
	assert.Equal(t, "12,345 Ft", formatCurrency(12345))
	assert.Equal(t, "1,234,568 Ft", formatCurrency(1234567.6))
	assert.Equal(t, "-12,345 Ft", formatCurrency(-12345.2))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "0.00 hour", formatHours(0))
	assert.Equal(t, "2.50 hour", formatHours(150))
	assert.Equal(t, "0.25 hour", formatHours(15))
}

func TestFormatDecimalHours(t *testing.T) {
	// whole hours always keep one fractional digit
	assert.Equal(t, "3.0 hour", formatDecimalHours(3))
	assert.Equal(t, "2.5 hour", formatDecimalHours(2.5))
	assert.Equal(t, "0.0 hour", formatDecimalHours(0))
}

func TestHourCell(t *testing.T) {
	assert.Equal(t, "-", hourCell(0))
	assert.Equal(t, "1.5 hour", hourCell(1.5))
}

func TestFormatOrDefault(t *testing.T) {
	v := 2.0
	format := func(f float64) string { return "2.00" }
	assert.Equal(t, "2.00", formatOrDefault(&v, format))

	var missing *float64
	assert.Equal(t, "", formatOrDefault(missing, format))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024.03.07.", formatDate(d))
	assert.Equal(t, "", formatDate(time.Time{}))
}

func TestFormatDateTime(t *testing.T) {
	d := time.Date(2024, 3, 7, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "2024.03.07. 09:05", formatDateTime(d))
}

func TestDayAlignedRange(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	end := time.Date(2024, 3, 7, 8, 0, 0, 0, time.UTC)

	from, to := dayAlignedRange(start, end)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 7, 23, 59, 59, 0, time.UTC), to)
}
