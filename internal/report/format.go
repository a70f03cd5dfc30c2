package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	summaryLabel = "Total"
	dashCell     = "-"

	dateLayout     = "2006.01.02."
	dateTimeLayout = "2006.01.02. 15:04"
)

// VAT is applied as a fixed multiplier on net prices.
const vatMultiplier = 1.27

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTimeLayout)
}

// formatCurrency rounds to whole units and groups thousands: "12,345 Ft".
func formatCurrency(v float64) string {
	n := int64(math.Round(v))

	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	return sign + strings.Join(groups, ",") + " Ft"
}

// formatHours renders minutes as fixed two-decimal hours: "2.50 hour".
func formatHours(minutes int64) string {
	return fmt.Sprintf("%.2f hour", float64(minutes)/60.0)
}

// formatDecimalHours renders an hour value with its literal decimal
// expansion, keeping at least one fractional digit: 3 -> "3.0 hour".
func formatDecimalHours(hours float64) string {
	s := strconv.FormatFloat(hours, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + " hour"
}

// hourCell is the matrix cell rule: dash for zero, decimal hours otherwise.
func hourCell(hours float64) string {
	if hours == 0 {
		return dashCell
	}
	return formatDecimalHours(hours)
}

// formatOrDefault renders an optional value, falling back to the empty
// string the way the templates expect for missing fields.
func formatOrDefault[T any](v *T, format func(T) string) string {
	if v == nil {
		return ""
	}
	return format(*v)
}

// dayAlignedRange widens a date range to full days: [start 00:00:00,
// end 23:59:59] in the dates' location.
func dayAlignedRange(start, end time.Time) (time.Time, time.Time) {
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	to := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).
		Add(24*time.Hour - time.Second)
	return from, to
}
