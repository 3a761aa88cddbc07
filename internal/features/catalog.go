// Package features holds the feature-column catalog and reads the sidecar
// files written by the external voice-analysis toolkit.
package features

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// PassName identifies one extraction pass
type PassName string

const (
	Prosody      PassName = "prosody"
	Articulation PassName = "articulation"
	Cepstral     PassName = "cepstral"
)

// TableKind identifies one output table
type TableKind string

const (
	ProsodyTable      TableKind = "prosody"
	ArticulationTable TableKind = "articulation"
	CombinedTable     TableKind = "combined"
	CepstralTable     TableKind = "cepstral"
)

// Pass describes one extraction pass: where its sidecar lives and what its columns are called
type Pass struct {
	Name   PassName
	Suffix string   // Appended to the recording stem before ".txt"
	Names  []string // Column names, one per token in the sidecar
}

// Width is the number of tokens a sidecar of this pass holds
func (p Pass) Width() int { return len(p.Names) }

// SidecarName returns the sidecar filename for a recording stem
func (p Pass) SidecarName(stem string) string {
	return stem + p.Suffix + ".txt"
}

// Catalog maps pass names to passes and table kinds to the passes they carry
type Catalog struct {
	passes map[PassName]Pass
	tables map[TableKind][]PassName
}

type catalogFile struct {
	Passes map[PassName]struct {
		Suffix     string   `yaml:"suffix"`
		Names      []string `yaml:"names"`
		Statistics []string `yaml:"statistics"`
		Groups     []struct {
			Prefix string `yaml:"prefix"`
			Count  int    `yaml:"count"`
		} `yaml:"groups"`
	} `yaml:"passes"`
	Tables map[TableKind][]PassName `yaml:"tables"`
}

// DefaultCatalog returns the catalog embedded in the binary.
// It panics if the embedded data is invalid, which the package tests guard against.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded feature catalog: %v", err))
	}
	return c
}

// ParseCatalog builds a Catalog from YAML data
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw catalogFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse feature catalog: %w", err)
	}

	c := &Catalog{
		passes: make(map[PassName]Pass, len(raw.Passes)),
		tables: make(map[TableKind][]PassName, len(raw.Tables)),
	}

	for name, p := range raw.Passes {
		var base []string
		base = append(base, p.Names...)
		for _, g := range p.Groups {
			if g.Count == 0 {
				base = append(base, g.Prefix)
				continue
			}
			for i := 1; i <= g.Count; i++ {
				base = append(base, fmt.Sprintf("%s%d", g.Prefix, i))
			}
		}

		names := base
		if len(p.Statistics) > 0 {
			names = make([]string, 0, len(base)*len(p.Statistics))
			for _, stat := range p.Statistics {
				for _, n := range base {
					names = append(names, stat+"_"+n)
				}
			}
		}

		if len(names) == 0 {
			return nil, fmt.Errorf("feature pass %q declares no columns", name)
		}
		c.passes[name] = Pass{Name: name, Suffix: p.Suffix, Names: names}
	}

	for kind, passes := range raw.Tables {
		if len(passes) == 0 {
			return nil, fmt.Errorf("table %q carries no passes", kind)
		}
		for _, p := range passes {
			if _, ok := c.passes[p]; !ok {
				return nil, fmt.Errorf("table %q refers to unknown pass %q", kind, p)
			}
		}
		c.tables[kind] = passes
	}

	return c, nil
}

// Pass looks up a pass by name
func (c *Catalog) Pass(name PassName) (Pass, bool) {
	p, ok := c.passes[name]
	return p, ok
}

// TablePasses returns the passes a table carries, in column order
func (c *Catalog) TablePasses(kind TableKind) ([]Pass, error) {
	names, ok := c.tables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown table kind %q", kind)
	}
	passes := make([]Pass, len(names))
	for i, n := range names {
		passes[i] = c.passes[n]
	}
	return passes, nil
}

// Columns returns the feature-column names for a table kind
func (c *Catalog) Columns(kind TableKind) ([]string, error) {
	passes, err := c.TablePasses(kind)
	if err != nil {
		return nil, err
	}
	var cols []string
	for _, p := range passes {
		cols = append(cols, p.Names...)
	}
	return cols, nil
}

// TableKinds lists every table kind in the catalog, sorted
func (c *Catalog) TableKinds() []TableKind {
	kinds := make([]TableKind, 0, len(c.tables))
	for k := range c.tables {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// PassesFor returns the distinct passes needed to render the given tables,
// in first-use order.
func (c *Catalog) PassesFor(kinds []TableKind) ([]Pass, error) {
	seen := make(map[PassName]bool)
	var out []Pass
	for _, k := range kinds {
		passes, err := c.TablePasses(k)
		if err != nil {
			return nil, err
		}
		for _, p := range passes {
			if !seen[p.Name] {
				seen[p.Name] = true
				out = append(out, p)
			}
		}
	}
	return out, nil
}
