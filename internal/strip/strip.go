// Package strip removes container metadata from WAV files with FFmpeg.
// Some recordings carry metadata chunks the feature extractor chokes on.
package strip

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/linuxmatters/emoset/internal/audio"
	"github.com/linuxmatters/emoset/internal/logging"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

// Remuxer copies the audio stream of in to out without metadata
type Remuxer interface {
	Remux(in, out string) error
}

// FFmpeg remuxes with the ffmpeg binary at Path
type FFmpeg struct {
	Path string
}

// Remux runs: ffmpeg -i in -map_metadata -1 -c copy -fflags +bitexact -y out
func (f FFmpeg) Remux(in, out string) error {
	var stderr bytes.Buffer
	stream := ffmpeg.Input(in).
		Output(out, ffmpeg.KwArgs{
			"map_metadata": "-1",
			"c":            "copy",
			"fflags":       "+bitexact", // Stops the muxer writing its own encoder tag
		}).
		OverWriteOutput().
		WithErrorOutput(&stderr).
		Silent(true)
	if f.Path != "" {
		stream = stream.SetFfmpegPath(f.Path)
	}
	if err := stream.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, lastLine(stderr.String()))
	}
	return nil
}

// Stripper strips every file it is given in place
type Stripper struct {
	Remuxer Remuxer
	Log     *zap.Logger
	Issues  *logging.Issues
	Hooks   audio.Hooks
}

// Result summarises a strip run
type Result struct {
	Stripped int
	Failed   []string // Paths that could not be stripped
}

// Run strips each file in turn. A failure on one file is recorded and the
// run moves on; only context cancellation stops it early.
func (s *Stripper) Run(ctx context.Context, files []audio.File) (Result, error) {
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}

	var res Result
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		s.Hooks.FileStart(i, f)

		err := s.stripFile(f.Path())
		if err != nil {
			log.Warn("metadata strip failed", zap.String("path", f.Path()), zap.Error(err))
			if s.Issues != nil {
				s.Issues.Add(logging.StripFailed, f.Path(), err.Error())
			}
			res.Failed = append(res.Failed, f.Path())
		} else {
			log.Debug("stripped metadata", zap.String("path", f.Path()))
			res.Stripped++
		}
		s.Hooks.FileDone(i, f, err)
	}
	return res, nil
}

// stripFile remuxes into a temporary file beside the original, then renames it over the original.
// FFmpeg cannot write to the file it is reading.
func (s *Stripper) stripFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".emoset-strip-*"+audio.WavExt)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := s.Remuxer.Remux(path, tmpPath); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
