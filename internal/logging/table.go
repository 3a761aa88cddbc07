// Package logging collects the recoverable conditions met during a run and
// renders them as an end-of-run report. This file contains the aligned
// text-table formatting shared by the report sections.

package logging

import (
	"fmt"
	"strings"
	"time"
)

// Row represents a single row in a report table.
// Values are pre-formatted strings.
type Row struct {
	Label          string   // Row label, e.g. "missing feature file"
	Values         []string // One value per column
	Interpretation string   // Optional trailing text (only shown if non-empty)
}

// Table formats aligned columns.
// Handles variable column widths, missing values, and an optional interpretation column.
type Table struct {
	Headers []string // Value column headers, e.g. ["Count"]
	Rows    []Row
}

// MissingValue is the placeholder for unavailable values
const MissingValue = "-"

// String renders the table with aligned columns.
// - Labels are left-aligned
// - Values are right-aligned within their column
// - Interpretation column only shown if any row has one
func (t *Table) String() string {
	if len(t.Rows) == 0 {
		return ""
	}

	hasInterpretation := false
	for _, row := range t.Rows {
		if row.Interpretation != "" {
			hasInterpretation = true
			break
		}
	}

	labelWidth := 0
	for _, row := range t.Rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
	}

	valueWidths := make([]int, len(t.Headers))
	for i, header := range t.Headers {
		valueWidths[i] = len(header)
	}
	for _, row := range t.Rows {
		for i, val := range row.Values {
			if i < len(valueWidths) && len(val) > valueWidths[i] {
				valueWidths[i] = len(val)
			}
		}
	}

	var sb strings.Builder

	// Header row
	sb.WriteString(strings.Repeat(" ", labelWidth+2))
	for i, header := range t.Headers {
		sb.WriteString(fmt.Sprintf("%*s  ", valueWidths[i], header))
	}
	if hasInterpretation {
		sb.WriteString("Detail")
	}
	sb.WriteString("\n")

	for _, row := range t.Rows {
		sb.WriteString(fmt.Sprintf("%-*s  ", labelWidth, row.Label))

		for i := 0; i < len(t.Headers); i++ {
			val := MissingValue
			if i < len(row.Values) && row.Values[i] != "" {
				val = row.Values[i]
			}
			sb.WriteString(fmt.Sprintf("%*s  ", valueWidths[i], val))
		}

		if hasInterpretation {
			sb.WriteString(row.Interpretation)
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// AddRow adds a row to the table with pre-formatted values.
func (t *Table) AddRow(label string, values []string, interpretation string) {
	t.Rows = append(t.Rows, Row{
		Label:          label,
		Values:         values,
		Interpretation: interpretation,
	})
}

// AddCountRow adds a row holding a single integer count
func (t *Table) AddCountRow(label string, count int, interpretation string) {
	t.AddRow(label, []string{fmt.Sprintf("%d", count)}, interpretation)
}

// formatDuration renders a duration with precision suited to its size
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return MissingValue
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		m := int(d.Minutes())
		s := d.Seconds() - float64(m*60)
		return fmt.Sprintf("%dm %.0fs", m, s)
	}
}
