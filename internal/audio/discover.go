// Package audio locates the recordings of a corpus laid out as
// root/{speaker}/{stem}.wav, one root per vocal channel.
package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrDirectoryNotFound is returned when a configured root or a speaker directory is missing
var ErrDirectoryNotFound = errors.New("directory not found")

// WavExt is the only extension treated as a recording
const WavExt = ".wav"

// Root is a corpus directory holding one vocal channel
type Root struct {
	Path    string `yaml:"path"`
	Channel string `yaml:"channel"` // e.g. "speech" or "song"
}

func (r Root) String() string {
	return r.Path + "=" + r.Channel
}

// ParseRoot parses "path=channel". A bare path takes its base name as channel.
func ParseRoot(s string) (Root, error) {
	path, channel, found := strings.Cut(s, "=")
	path = strings.TrimSpace(path)
	if path == "" {
		return Root{}, fmt.Errorf("invalid root %q: empty path", s)
	}
	if !found {
		channel = filepath.Base(filepath.Clean(path))
	}
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return Root{}, fmt.Errorf("invalid root %q: empty channel", s)
	}
	if strings.Contains(channel, ",") {
		return Root{}, fmt.Errorf("invalid root %q: channel must not contain a comma", s)
	}
	return Root{Path: path, Channel: channel}, nil
}

// File is one recording found on disk
type File struct {
	Root    Root
	Speaker string // Speaker directory name
	Name    string // Filename including extension
}

// Dir returns the speaker directory holding the file
func (f File) Dir() string {
	return filepath.Join(f.Root.Path, f.Speaker)
}

// Path returns the full path of the file
func (f File) Path() string {
	return filepath.Join(f.Root.Path, f.Speaker, f.Name)
}

// Stem returns the filename without extension
func (f File) Stem() string {
	return strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
}

// Discover lists the .wav files in every speaker directory directly under root.
// Files in the root itself and non-.wav files are skipped. Results are in
// lexical order of speaker then filename.
func Discover(root Root) ([]File, error) {
	speakers, err := readDir(root.Path)
	if err != nil {
		return nil, err
	}

	var files []File
	for _, sp := range speakers {
		if !sp.IsDir() {
			continue
		}
		entries, err := readDir(filepath.Join(root.Path, sp.Name()))
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != WavExt {
				continue
			}
			files = append(files, File{Root: root, Speaker: sp.Name(), Name: e.Name()})
		}
	}
	return files, nil
}

// DiscoverAll runs Discover over each root in turn
func DiscoverAll(roots []Root) ([]File, error) {
	var all []File
	for _, r := range roots {
		files, err := Discover(r)
		if err != nil {
			return nil, err
		}
		all = append(all, files...)
	}
	return all, nil
}

func readDir(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	return entries, nil
}
