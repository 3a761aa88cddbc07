package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/linuxmatters/emoset/internal/logging"
)

func TestPrintIssues(t *testing.T) {
	issues := &logging.Issues{}
	issues.Add(logging.MissingFeatureFile, "audio/Actor_01/a.txt", "prosody")
	issues.Add(logging.MalformedFilename, "audio/Actor_01/bad.wav", "")
	issues.Add(logging.MissingFeatureFile, "audio/Actor_02/b.txt", "prosody")

	var buf bytes.Buffer
	PrintIssues(&buf, issues)
	out := buf.String()

	if !strings.Contains(out, "3 issue(s)") {
		t.Errorf("summary should count issues:\n%s", out)
	}
	// Paths of one kind are printed together
	a := strings.Index(out, "audio/Actor_01/a.txt")
	b := strings.Index(out, "audio/Actor_02/b.txt")
	bad := strings.Index(out, "audio/Actor_01/bad.wav")
	if a < 0 || b < 0 || bad < 0 {
		t.Fatalf("summary missing paths:\n%s", out)
	}
	if !(a < b && b < bad) {
		t.Errorf("issues should be grouped by kind:\n%s", out)
	}
}

func TestPrintIssuesClean(t *testing.T) {
	var buf bytes.Buffer
	PrintIssues(&buf, &logging.Issues{})
	if !strings.Contains(buf.String(), "No issues") {
		t.Errorf("clean run output = %q", buf.String())
	}
}
