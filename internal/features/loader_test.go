package features

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/linuxmatters/emoset/internal/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testStem = "03-01-05-02-02-01-12"

// writeSidecar writes content to the sidecar of pass for testStem in dir
func writeSidecar(t *testing.T, dir string, pass Pass, content string) string {
	t.Helper()
	path := filepath.Join(dir, pass.SidecarName(testStem))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write sidecar: %v", err)
	}
	return path
}

func testPass(width int) Pass {
	names := make([]string, width)
	for i := range names {
		names[i] = "f" + string(rune('a'+i))
	}
	return Pass{Name: "test", Suffix: ".test", Names: names}
}

func TestLoadVerbatim(t *testing.T) {
	dir := t.TempDir()
	pass := testPass(3)
	writeSidecar(t, dir, pass, "1.50000 -2.0e-03   0.0\n")

	issues := &logging.Issues{}
	set, err := NewLoader(nil, issues).Load(dir, testStem, pass)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"1.50000", "-2.0e-03", "0.0"}
	if len(set) != len(want) {
		t.Fatalf("Load returned %v, want %v", set, want)
	}
	for i := range want {
		if set[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, set[i], want[i])
		}
	}
	if issues.Len() != 0 {
		t.Errorf("expected no issues, got %v", issues.All())
	}
}

func TestLoadMissing(t *testing.T) {
	dir := t.TempDir()
	pass := testPass(3)

	core, logs := observer.New(zap.WarnLevel)
	issues := &logging.Issues{}
	set, err := NewLoader(zap.New(core), issues).Load(dir, testStem, pass)
	if err != nil {
		t.Fatalf("missing sidecar should not be an error: %v", err)
	}
	if set == nil || len(set) != 0 {
		t.Errorf("missing sidecar should give an empty set, got %#v", set)
	}

	wantPath := filepath.Join(dir, testStem+".test.txt")
	entries := logs.FilterMessage("feature file not found").All()
	if len(entries) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["path"]; got != wantPath {
		t.Errorf("diagnostic path = %v, want %s", got, wantPath)
	}

	missing := issues.OfKind(logging.MissingFeatureFile)
	if len(missing) != 1 || missing[0].Path != wantPath {
		t.Errorf("issues = %v, want one missing-file issue for %s", issues.All(), wantPath)
	}
}

func TestLoadLastLineWins(t *testing.T) {
	dir := t.TempDir()
	pass := testPass(2)
	writeSidecar(t, dir, pass, "1 2\n\n3 4\n   \n")

	issues := &logging.Issues{}
	set, err := NewLoader(nil, issues).Load(dir, testStem, pass)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if strings.Join(set, " ") != "3 4" {
		t.Errorf("Load = %v, want [3 4]", set)
	}
	if n := len(issues.OfKind(logging.MultiLineFeatureFile)); n != 1 {
		t.Errorf("expected one multi-line issue, got %d", n)
	}
}

func TestLoadWidthMismatch(t *testing.T) {
	dir := t.TempDir()
	pass := testPass(4)
	writeSidecar(t, dir, pass, "1 2 3\n")

	issues := &logging.Issues{}
	set, err := NewLoader(nil, issues).Load(dir, testStem, pass)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(set) != 3 {
		t.Errorf("short sidecar should be kept verbatim, got %v", set)
	}
	if n := len(issues.OfKind(logging.FeatureWidthMismatch)); n != 1 {
		t.Errorf("expected one width issue, got %d", n)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	pass := testPass(2)
	writeSidecar(t, dir, pass, "")

	issues := &logging.Issues{}
	set, err := NewLoader(nil, issues).Load(dir, testStem, pass)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(set) != 0 {
		t.Errorf("empty sidecar should give an empty set, got %v", set)
	}
	if issues.Len() != 0 {
		t.Errorf("empty sidecar is not an issue, got %v", issues.All())
	}
}
