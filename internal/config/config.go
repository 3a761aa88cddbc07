// Package config loads the optional YAML run configuration
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/linuxmatters/emoset/internal/audio"
	"github.com/linuxmatters/emoset/internal/features"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no config path is given
const DefaultFile = "emoset.yaml"

// Placeholders substituted into extraction commands
const (
	InputPlaceholder  = "{input}"
	OutputPlaceholder = "{output}"
)

// Command is one external extraction command. Args may contain the
// {input} and {output} placeholders.
type Command struct {
	Args    []string `yaml:"command"`
	WorkDir string   `yaml:"workdir"`
}

// Config is the run configuration
type Config struct {
	Roots    []audio.Root         `yaml:"roots"`
	Output   string               `yaml:"output"`
	Tables   []features.TableKind `yaml:"tables"`
	Workbook bool                 `yaml:"workbook"`
	FFmpeg   string               `yaml:"ffmpeg"`
	Extract  struct {
		Passes []features.PassName            `yaml:"passes"`
		Tools  map[features.PassName]Command `yaml:"tools"`
	} `yaml:"extract"`
}

// Default returns the configuration matching the corpus layout the tool was written for:
// speech under audio/, song under song/ and DisVoice checked out under disvoice/.
func Default() *Config {
	c := &Config{
		Roots: []audio.Root{
			{Path: "audio", Channel: "speech"},
			{Path: "song", Channel: "song"},
		},
		Output: "tables",
		Tables: []features.TableKind{
			features.ProsodyTable,
			features.ArticulationTable,
			features.CombinedTable,
			features.CepstralTable,
		},
		FFmpeg: "ffmpeg",
	}
	c.Extract.Passes = []features.PassName{features.Prosody, features.Articulation}
	c.Extract.Tools = map[features.PassName]Command{
		features.Prosody: {
			Args: []string{"python3", "disvoice/prosody/prosody.py", InputPlaceholder, OutputPlaceholder},
		},
		features.Articulation: {
			Args:    []string{"python3", "articulation.py", InputPlaceholder, OutputPlaceholder},
			WorkDir: "disvoice/articulation",
		},
	}
	return c
}

// Load reads a config file over the defaults. An empty path tries DefaultFile
// and falls back to the defaults when it does not exist.
func Load(path string) (*Config, error) {
	c := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the config against the feature catalog
func (c *Config) Validate(catalog *features.Catalog) error {
	if len(c.Roots) == 0 {
		return errors.New("no roots configured")
	}
	for _, r := range c.Roots {
		if r.Path == "" || r.Channel == "" {
			return fmt.Errorf("root %q needs both path and channel", r.String())
		}
		if strings.Contains(r.Channel, ",") {
			return fmt.Errorf("root %q: channel must not contain a comma", r.String())
		}
	}
	for _, k := range c.Tables {
		if _, err := catalog.TablePasses(k); err != nil {
			return err
		}
	}
	for _, p := range c.Extract.Passes {
		if _, ok := catalog.Pass(p); !ok {
			return fmt.Errorf("unknown feature pass %q", p)
		}
	}
	for name, tool := range c.Extract.Tools {
		if len(tool.Args) == 0 {
			return fmt.Errorf("extract tool for %q has no command", name)
		}
	}
	return nil
}

// Tool returns the extraction command for a pass
func (c *Config) Tool(pass features.PassName) (Command, error) {
	tool, ok := c.Extract.Tools[pass]
	if !ok || len(tool.Args) == 0 {
		return Command{}, fmt.Errorf("no extraction command configured for pass %q", pass)
	}
	return tool, nil
}

// Expand substitutes the placeholders in the command arguments
func (cmd Command) Expand(input, output string) []string {
	r := strings.NewReplacer(InputPlaceholder, input, OutputPlaceholder, output)
	args := make([]string, len(cmd.Args))
	for i, a := range cmd.Args {
		args[i] = r.Replace(a)
	}
	return args
}
