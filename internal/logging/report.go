// Package logging handles the end-of-run report of recoverable conditions

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ReportFile is the report's filename inside the output directory
const ReportFile = "emoset-report.txt"

// kindOrder fixes the order issue kinds appear in the report
var kindOrder = []IssueKind{
	MalformedFilename,
	MissingFeatureFile,
	MultiLineFeatureFile,
	FeatureWidthMismatch,
	StripFailed,
	ExtractionFailed,
}

// kindNotes explains what each issue kind did to the output
var kindNotes = map[IssueKind]string{
	MalformedFilename:    "recording left out of the tables",
	MissingFeatureFile:   "feature columns left blank",
	MultiLineFeatureFile: "last line kept",
	FeatureWidthMismatch: "values kept as read",
	StripFailed:          "file left unchanged",
	ExtractionFailed:     "no sidecar written",
}

// ReportData contains everything needed to write a run report
type ReportData struct {
	Command    string // strip, extract or assemble
	StartTime  time.Time
	EndTime    time.Time
	Recordings int      // Recordings processed
	Outputs    []string // Files written
	Issues     *Issues
}

// writeSection writes a section header with title and dashed underline.
// The underline length matches the title length.
func writeSection(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", len(title)))
}

// WriteReport writes the run report to w
func WriteReport(w io.Writer, data ReportData) {
	fmt.Fprintln(w, "Emoset Run Report")
	fmt.Fprintln(w, "=================")
	fmt.Fprintf(w, "Command: %s\n", data.Command)
	fmt.Fprintf(w, "Finished: %s\n", data.EndTime.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "Elapsed: %s\n", formatDuration(data.EndTime.Sub(data.StartTime)))
	fmt.Fprintf(w, "Recordings: %d\n", data.Recordings)
	fmt.Fprintln(w, "")

	if len(data.Outputs) > 0 {
		writeSection(w, "Outputs")
		for _, o := range data.Outputs {
			fmt.Fprintln(w, o)
		}
		fmt.Fprintln(w, "")
	}

	writeIssueSummary(w, data.Issues)
	writeIssueDetails(w, data.Issues)
}

// writeIssueSummary outputs a count per issue kind
func writeIssueSummary(w io.Writer, issues *Issues) {
	writeSection(w, "Issues")
	if issues.Len() == 0 {
		fmt.Fprintln(w, "None")
		fmt.Fprintln(w, "")
		return
	}

	counts := issues.Counts()
	table := &Table{Headers: []string{"Count"}}
	for _, kind := range kindOrder {
		if counts[kind] > 0 {
			table.AddCountRow(string(kind), counts[kind], kindNotes[kind])
		}
	}
	fmt.Fprint(w, table.String())
	fmt.Fprintln(w, "")
}

// writeIssueDetails lists every affected path, grouped by kind
func writeIssueDetails(w io.Writer, issues *Issues) {
	for _, kind := range kindOrder {
		list := issues.OfKind(kind)
		if len(list) == 0 {
			continue
		}
		writeSection(w, capitalise(string(kind)))
		for _, it := range list {
			if it.Detail != "" {
				fmt.Fprintf(w, "%s (%s)\n", it.Path, it.Detail)
			} else {
				fmt.Fprintln(w, it.Path)
			}
		}
		fmt.Fprintln(w, "")
	}
}

// GenerateReport writes the run report to ReportFile inside dir and returns its path
func GenerateReport(dir string, data ReportData) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	path := filepath.Join(dir, ReportFile)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	WriteReport(f, data)
	return path, nil
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
