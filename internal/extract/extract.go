// Package extract runs the external voice-analysis toolkit once per
// recording and feature pass, leaving a sidecar text file beside each recording.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/linuxmatters/emoset/internal/audio"
	"github.com/linuxmatters/emoset/internal/config"
	"github.com/linuxmatters/emoset/internal/features"
	"github.com/linuxmatters/emoset/internal/logging"
	"go.uber.org/zap"
)

// Runner executes one extraction command in dir
type Runner interface {
	Run(ctx context.Context, dir string, args []string) error
}

// ExecRunner runs commands as child processes
type ExecRunner struct{}

// Run starts args[0] with the remaining arguments and waits for it.
// A nonzero exit status is an error carrying the last line of output.
func (ExecRunner) Run(ctx context.Context, dir string, args []string) error {
	if len(args) == 0 {
		return errors.New("empty command")
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		tail := strings.TrimSpace(out.String())
		if i := strings.LastIndex(tail, "\n"); i >= 0 {
			tail = tail[i+1:]
		}
		if tail != "" {
			return fmt.Errorf("%s: %w: %s", filepath.Base(args[0]), err, tail)
		}
		return fmt.Errorf("%s: %w", filepath.Base(args[0]), err)
	}
	return nil
}

// Job is one pass to run, with its command
type Job struct {
	Pass features.Pass
	Tool config.Command
}

// Extractor runs every job over every file
type Extractor struct {
	Jobs         []Job
	Runner       Runner
	SkipExisting bool // Leave non-empty sidecars alone
	Log          *zap.Logger
	Issues       *logging.Issues
	Hooks        audio.Hooks
}

// Result summarises an extraction run
type Result struct {
	Written int      // Sidecars produced
	Skipped int      // Sidecars left in place
	Failed  []string // Recordings with at least one failed pass
}

// Run processes files in order. A failed pass is recorded and the run moves
// on; only context cancellation stops it early.
func (e *Extractor) Run(ctx context.Context, files []audio.File) (Result, error) {
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}
	runner := e.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	var res Result
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		e.Hooks.FileStart(i, f)

		input, err := filepath.Abs(f.Path())
		if err != nil {
			return res, err
		}

		var fileErr error
		for _, job := range e.Jobs {
			output := filepath.Join(filepath.Dir(input), job.Pass.SidecarName(f.Stem()))
			if e.SkipExisting && nonEmpty(output) {
				res.Skipped++
				continue
			}

			args := job.Tool.Expand(input, output)
			log.Debug("running extractor",
				zap.String("pass", string(job.Pass.Name)),
				zap.Strings("args", args),
				zap.String("workdir", job.Tool.WorkDir))

			if err := runner.Run(ctx, job.Tool.WorkDir, args); err != nil {
				if ctx.Err() != nil {
					return res, ctx.Err()
				}
				log.Warn("feature extraction failed",
					zap.String("path", input),
					zap.String("pass", string(job.Pass.Name)),
					zap.Error(err))
				if e.Issues != nil {
					e.Issues.Add(logging.ExtractionFailed, f.Path(), fmt.Sprintf("%s: %v", job.Pass.Name, err))
				}
				fileErr = errors.Join(fileErr, fmt.Errorf("%s: %w", job.Pass.Name, err))
				continue
			}
			res.Written++
		}

		if fileErr != nil {
			res.Failed = append(res.Failed, f.Path())
		}
		e.Hooks.FileDone(i, f, fileErr)
	}
	return res, nil
}

func nonEmpty(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}
