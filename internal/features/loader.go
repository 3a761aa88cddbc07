package features

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/linuxmatters/emoset/internal/logging"
	"go.uber.org/zap"
)

// FeatureSet is one pass's output for a recording, kept as the exact text tokens read
type FeatureSet []string

// maxLineBytes bounds a single sidecar line. The widest pass is a few
// hundred decimals, well under this.
const maxLineBytes = 1 << 20

// Loader reads sidecar files. Recoverable conditions are logged and recorded in Issues.
type Loader struct {
	Log    *zap.Logger
	Issues *logging.Issues
}

// NewLoader creates a Loader. A nil logger is replaced with a no-op logger.
func NewLoader(log *zap.Logger, issues *logging.Issues) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	if issues == nil {
		issues = &logging.Issues{}
	}
	return &Loader{Log: log, Issues: issues}
}

// Load reads the sidecar of pass for the recording stem in dir.
// A missing sidecar yields an empty FeatureSet and no error. Only I/O
// failures on a sidecar that exists are returned as errors.
func (l *Loader) Load(dir, stem string, pass Pass) (FeatureSet, error) {
	path := filepath.Join(dir, pass.SidecarName(stem))

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		l.Log.Warn("feature file not found",
			zap.String("path", path),
			zap.String("pass", string(pass.Name)))
		l.Issues.Add(logging.MissingFeatureFile, path, string(pass.Name))
		return FeatureSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open feature file: %w", err)
	}
	defer f.Close()

	var last string
	lines := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		last = line
		lines++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feature file %s: %w", path, err)
	}

	// The extractor writes one result line; keep the last if it wrote more
	if lines > 1 {
		l.Log.Warn("feature file has more than one line, keeping the last",
			zap.String("path", path),
			zap.Int("lines", lines))
		l.Issues.Add(logging.MultiLineFeatureFile, path, fmt.Sprintf("%d lines", lines))
	}

	set := FeatureSet(strings.Fields(last))
	if len(set) > 0 && len(set) != pass.Width() {
		l.Log.Warn("feature file width differs from catalog",
			zap.String("path", path),
			zap.Int("tokens", len(set)),
			zap.Int("want", pass.Width()))
		l.Issues.Add(logging.FeatureWidthMismatch, path,
			fmt.Sprintf("%d values, want %d", len(set), pass.Width()))
	}

	l.Log.Debug("loaded feature file",
		zap.String("path", path),
		zap.Int("tokens", len(set)))
	return set, nil
}
