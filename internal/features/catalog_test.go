package features

import (
	"strings"
	"testing"
)

func TestDefaultCatalogWidths(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		pass   PassName
		suffix string
		width  int
	}{
		{Prosody, "", 37},
		{Articulation, ".articulation", 488},
		{Cepstral, ".librosa_mfcc", 20},
	}

	for _, tt := range tests {
		t.Run(string(tt.pass), func(t *testing.T) {
			p, ok := c.Pass(tt.pass)
			if !ok {
				t.Fatalf("pass %q missing from catalog", tt.pass)
			}
			if p.Suffix != tt.suffix {
				t.Errorf("Suffix = %q, want %q", p.Suffix, tt.suffix)
			}
			if p.Width() != tt.width {
				t.Errorf("Width() = %d, want %d", p.Width(), tt.width)
			}
			seen := make(map[string]bool)
			for _, n := range p.Names {
				if seen[n] {
					t.Errorf("duplicate column name %q", n)
				}
				if strings.Contains(n, ",") {
					t.Errorf("column name %q contains a comma", n)
				}
				seen[n] = true
			}
		})
	}
}

func TestCatalogTables(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		kind  TableKind
		width int
		first string
		last  string
	}{
		{ProsodyTable, 37, "F0avg", "stddurpause"},
		{ArticulationTable, 488, "avg_BBEon_1", "kurtosis_DDF2"},
		{CombinedTable, 57, "F0avg", "mfcc_20"},
		{CepstralTable, 20, "mfcc_1", "mfcc_20"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			cols, err := c.Columns(tt.kind)
			if err != nil {
				t.Fatalf("Columns failed: %v", err)
			}
			if len(cols) != tt.width {
				t.Fatalf("len(Columns) = %d, want %d", len(cols), tt.width)
			}
			if cols[0] != tt.first || cols[len(cols)-1] != tt.last {
				t.Errorf("columns run %q..%q, want %q..%q", cols[0], cols[len(cols)-1], tt.first, tt.last)
			}
		})
	}

	if _, err := c.Columns("spectrogram"); err == nil {
		t.Error("unknown table kind should fail")
	}

	kinds := c.TableKinds()
	want := []TableKind{ArticulationTable, CepstralTable, CombinedTable, ProsodyTable}
	if len(kinds) != len(want) {
		t.Fatalf("TableKinds() = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("TableKinds()[%d] = %q, want %q", i, kinds[i], want[i])
		}
	}
}

func TestArticulationStatisticOrder(t *testing.T) {
	p, _ := DefaultCatalog().Pass(Articulation)

	// Statistic-major: all 122 averages first, then the standard deviations
	if p.Names[121] != "avg_DDF2" {
		t.Errorf("Names[121] = %q, want avg_DDF2", p.Names[121])
	}
	if p.Names[122] != "std_BBEon_1" {
		t.Errorf("Names[122] = %q, want std_BBEon_1", p.Names[122])
	}
}

func TestPassesFor(t *testing.T) {
	c := DefaultCatalog()

	passes, err := c.PassesFor([]TableKind{CombinedTable, ProsodyTable, CepstralTable})
	if err != nil {
		t.Fatalf("PassesFor failed: %v", err)
	}
	if len(passes) != 2 || passes[0].Name != Prosody || passes[1].Name != Cepstral {
		t.Errorf("PassesFor = %v, want [prosody cepstral]", passes)
	}

	if _, err := c.PassesFor([]TableKind{"bogus"}); err == nil {
		t.Error("PassesFor with unknown kind should fail")
	}
}

func TestParseCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid_yaml", "passes: [unterminated"},
		{"empty_pass", "passes:\n  p:\n    suffix: .x\n"},
		{"unknown_pass", "passes:\n  p:\n    names: [a]\ntables:\n  t: [q]\n"},
		{"empty_table", "passes:\n  p:\n    names: [a]\ntables:\n  t: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tt.data)); err == nil {
				t.Errorf("ParseCatalog should fail for %s", tt.name)
			}
		})
	}
}

func TestSidecarName(t *testing.T) {
	c := DefaultCatalog()
	p, _ := c.Pass(Prosody)
	if got := p.SidecarName("03-01-05-02-02-01-12"); got != "03-01-05-02-02-01-12.txt" {
		t.Errorf("prosody sidecar = %q", got)
	}
	p, _ = c.Pass(Cepstral)
	if got := p.SidecarName("03-01-05-02-02-01-12"); got != "03-01-05-02-02-01-12.librosa_mfcc.txt" {
		t.Errorf("cepstral sidecar = %q", got)
	}
}
