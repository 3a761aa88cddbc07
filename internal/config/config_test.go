package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/linuxmatters/emoset/internal/features"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "emoset.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	if len(c.Roots) != 2 || c.Roots[0].Channel != "speech" || c.Roots[1].Channel != "song" {
		t.Errorf("unexpected default roots %v", c.Roots)
	}
	if err := c.Validate(features.DefaultCatalog()); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if _, err := c.Tool(features.Articulation); err != nil {
		t.Errorf("default articulation tool missing: %v", err)
	}
	if _, err := c.Tool(features.Cepstral); err == nil {
		t.Error("cepstral tool should not be configured by default")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
roots:
  - path: data/song
    channel: song
output: out
tables: [combined]
workbook: true
extract:
  passes: [cepstral]
  tools:
    cepstral:
      command: [python3, mfcc.py, "{input}", "{output}"]
      workdir: tools
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(c.Roots) != 1 || c.Roots[0].Path != "data/song" {
		t.Errorf("Roots = %v", c.Roots)
	}
	if c.Output != "out" || !c.Workbook {
		t.Errorf("Output = %q, Workbook = %v", c.Output, c.Workbook)
	}
	if len(c.Tables) != 1 || c.Tables[0] != features.CombinedTable {
		t.Errorf("Tables = %v", c.Tables)
	}
	if c.FFmpeg != "ffmpeg" {
		t.Errorf("unset FFmpeg should keep the default, got %q", c.FFmpeg)
	}

	tool, err := c.Tool(features.Cepstral)
	if err != nil {
		t.Fatalf("Tool failed: %v", err)
	}
	if tool.WorkDir != "tools" {
		t.Errorf("WorkDir = %q", tool.WorkDir)
	}
	got := strings.Join(tool.Expand("/a/x.wav", "/a/x.librosa_mfcc.txt"), " ")
	if got != "python3 mfcc.py /a/x.wav /a/x.librosa_mfcc.txt" {
		t.Errorf("Expand = %q", got)
	}

	if err := c.Validate(features.DefaultCatalog()); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestLoadExampleConfig(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "emoset.example.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := c.Validate(features.DefaultCatalog()); err != nil {
		t.Errorf("example config should validate: %v", err)
	}
	tool, err := c.Tool(features.Cepstral)
	if err != nil {
		t.Fatalf("example config should configure cepstral: %v", err)
	}
	args := tool.Expand("/in/a.wav", "/in/a.librosa_mfcc.txt")
	if args[len(args)-2] != "/in/a.wav" || args[len(args)-1] != "/in/a.librosa_mfcc.txt" {
		t.Errorf("Expand() = %v", args)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("an explicit missing config should fail")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "roots: [")
	if _, err := Load(path); err == nil {
		t.Error("invalid YAML should fail")
	}
}

func TestValidate(t *testing.T) {
	catalog := features.DefaultCatalog()

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no_roots", func(c *Config) { c.Roots = nil }},
		{"empty_channel", func(c *Config) { c.Roots[0].Channel = "" }},
		{"comma_channel", func(c *Config) { c.Roots[0].Channel = "a,b" }},
		{"unknown_table", func(c *Config) { c.Tables = append(c.Tables, "waveform") }},
		{"unknown_pass", func(c *Config) { c.Extract.Passes = []features.PassName{"phonation"} }},
		{"empty_tool", func(c *Config) { c.Extract.Tools[features.Prosody] = Command{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			if err := c.Validate(catalog); err == nil {
				t.Errorf("Validate should fail for %s", tt.name)
			}
		})
	}
}
