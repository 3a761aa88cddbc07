// Package dataset assembles decoded recordings and their feature sidecars
// into flat comma-separated tables, one per table kind.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/linuxmatters/emoset/internal/audio"
	"github.com/linuxmatters/emoset/internal/features"
	"github.com/linuxmatters/emoset/internal/logging"
	"github.com/linuxmatters/emoset/internal/recording"
	"go.uber.org/zap"
)

// MetadataColumns are the leading columns of every table
var MetadataColumns = []string{
	"filename",
	"emotion",
	"vocal_channel",
	"intensity",
	"statement",
	"repetition",
	"actor",
	"gender",
}

// Record is a decoded recording with the feature sets loaded for it
type Record struct {
	recording.Recording
	Path     string
	Features map[features.PassName]features.FeatureSet
}

// Dataset is every recording found under the configured roots
type Dataset struct {
	Catalog *features.Catalog
	Records []Record
}

// Options controls Build
type Options struct {
	Catalog *features.Catalog    // Defaults to features.DefaultCatalog()
	Tables  []features.TableKind // Tables the dataset will be rendered as; selects which sidecars are read
	Log     *zap.Logger
	Issues  *logging.Issues // Receives recoverable conditions; may be nil
}

// Build walks every root, decodes each recording and loads the sidecars its
// tables need. Malformed filenames are logged, recorded as issues and left
// out. A missing root or speaker directory aborts the build, as does
// cancelling ctx.
func Build(ctx context.Context, roots []audio.Root, opts Options) (*Dataset, error) {
	if opts.Catalog == nil {
		opts.Catalog = features.DefaultCatalog()
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Issues == nil {
		opts.Issues = &logging.Issues{}
	}
	if len(opts.Tables) == 0 {
		opts.Tables = opts.Catalog.TableKinds()
	}

	passes, err := opts.Catalog.PassesFor(opts.Tables)
	if err != nil {
		return nil, err
	}

	files, err := audio.DiscoverAll(roots)
	if err != nil {
		return nil, err
	}
	opts.Log.Info("discovered recordings", zap.Int("files", len(files)), zap.Int("roots", len(roots)))

	loader := features.NewLoader(opts.Log, opts.Issues)
	ds := &Dataset{Catalog: opts.Catalog, Records: make([]Record, 0, len(files))}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := recording.Decode(f.Name)
		if errors.Is(err, recording.ErrMalformedFilename) {
			opts.Log.Warn("skipping recording", zap.String("path", f.Path()), zap.Error(err))
			opts.Issues.Add(logging.MalformedFilename, f.Path(), err.Error())
			continue
		}
		if err != nil {
			return nil, err
		}
		rec.Channel = f.Root.Channel

		record := Record{
			Recording: rec,
			Path:      f.Path(),
			Features:  make(map[features.PassName]features.FeatureSet, len(passes)),
		}
		for _, p := range passes {
			set, err := loader.Load(f.Dir(), rec.Stem, p)
			if err != nil {
				return nil, err
			}
			record.Features[p.Name] = set
		}
		ds.Records = append(ds.Records, record)
	}

	return ds, nil
}

// Header returns the column names of a table kind
func (ds *Dataset) Header(kind features.TableKind) ([]string, error) {
	cols, err := ds.Catalog.Columns(kind)
	if err != nil {
		return nil, err
	}
	header := make([]string, 0, len(MetadataColumns)+len(cols))
	header = append(header, MetadataColumns...)
	return append(header, cols...), nil
}

// Table returns the header followed by one row per record, as cells.
// Feature values are the tokens read from disk; a feature set shorter than
// its pass is padded with empty cells so every row matches the header.
func (ds *Dataset) Table(kind features.TableKind) ([][]string, error) {
	header, err := ds.Header(kind)
	if err != nil {
		return nil, err
	}
	passes, err := ds.Catalog.TablePasses(kind)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(ds.Records)+1)
	rows = append(rows, header)
	for _, r := range ds.Records {
		row := make([]string, 0, len(header))
		row = append(row, metadataCells(r)...)
		for _, p := range passes {
			set := r.Features[p.Name]
			row = append(row, set...)
			for i := len(set); i < p.Width(); i++ {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Render returns the table as text lines, fields joined by a single comma.
// Nothing is quoted or escaped; filenames and feature tokens never carry commas.
func (ds *Dataset) Render(kind features.TableKind) ([]string, error) {
	rows, err := ds.Table(kind)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, ",")
	}
	return lines, nil
}

func metadataCells(r Record) []string {
	return []string{
		r.Stem,
		strconv.Itoa(int(r.Emotion)),
		r.Channel,
		strconv.Itoa(int(r.Intensity)),
		strconv.Itoa(r.Statement),
		strconv.Itoa(r.Repetition),
		strconv.Itoa(r.Actor),
		strconv.Itoa(int(r.Gender)),
	}
}

// String summarises the dataset for logs
func (ds *Dataset) String() string {
	channels := make(map[string]int)
	for _, r := range ds.Records {
		channels[r.Channel]++
	}
	return fmt.Sprintf("%d recordings %v", len(ds.Records), channels)
}
