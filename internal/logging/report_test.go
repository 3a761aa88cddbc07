package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestIssues(t *testing.T) {
	var is Issues
	if is.Len() != 0 {
		t.Fatal("zero value should be empty")
	}

	is.Add(MissingFeatureFile, "b/x.txt", "prosody")
	is.Add(MissingFeatureFile, "a/y.txt", "prosody")
	is.Add(MalformedFilename, "b/x.txt", "bad")

	if is.Len() != 3 {
		t.Errorf("Len() = %d, want 3", is.Len())
	}
	if got := is.OfKind(MissingFeatureFile); len(got) != 2 || got[0].Path != "b/x.txt" {
		t.Errorf("OfKind should keep recorded order, got %v", got)
	}
	if got := is.Paths(); len(got) != 2 || got[0] != "a/y.txt" || got[1] != "b/x.txt" {
		t.Errorf("Paths() = %v", got)
	}
	if c := is.Counts(); c[MissingFeatureFile] != 2 || c[MalformedFilename] != 1 {
		t.Errorf("Counts() = %v", c)
	}

	var nilIssues *Issues
	if nilIssues.Len() != 0 || nilIssues.All() != nil {
		t.Error("nil Issues should read as empty")
	}
}

func TestWriteReport(t *testing.T) {
	issues := &Issues{}
	issues.Add(MissingFeatureFile, "audio/Actor_01/03-01-01-01-01-01-01.articulation.txt", "articulation")
	issues.Add(MalformedFilename, "audio/Actor_01/take-two.wav", "")

	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	WriteReport(&buf, ReportData{
		Command:    "assemble",
		StartTime:  start,
		EndTime:    start.Add(3 * time.Second),
		Recordings: 2,
		Outputs:    []string{"tables/prosody.csv"},
		Issues:     issues,
	})
	out := buf.String()

	for _, want := range []string{
		"Command: assemble",
		"Elapsed: 3.0s",
		"Recordings: 2",
		"tables/prosody.csv",
		"feature columns left blank",
		"Missing feature file\n--------------------",
		"audio/Actor_01/03-01-01-01-01-01-01.articulation.txt (articulation)",
		"audio/Actor_01/take-two.wav\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	// Malformed filenames are listed before missing feature files
	if strings.Index(out, "Malformed filename\n") > strings.Index(out, "Missing feature file\n") {
		t.Error("issue sections out of order")
	}
}

func TestWriteReportNoIssues(t *testing.T) {
	var buf bytes.Buffer
	WriteReport(&buf, ReportData{Command: "strip", Issues: &Issues{}})
	if !strings.Contains(buf.String(), "Issues\n------\nNone") {
		t.Errorf("clean run should report no issues:\n%s", buf.String())
	}
}

func TestGenerateReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tables")
	path, err := GenerateReport(dir, ReportData{Command: "assemble", Issues: &Issues{}})
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}
	if path != filepath.Join(dir, ReportFile) {
		t.Errorf("path = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("report not written: %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), DebugLogFile)
	log, closeLog, err := NewLogger(path, false)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	log.Debug("loaded feature file", zap.String("path", "x.txt"))
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read debug log: %v", err)
	}
	if !strings.Contains(string(data), "loaded feature file") || !strings.Contains(string(data), "x.txt") {
		t.Errorf("debug log missing entry: %q", data)
	}
}
