package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/emoset/internal/audio"
	"github.com/linuxmatters/emoset/internal/cli"
	"github.com/linuxmatters/emoset/internal/config"
	"github.com/linuxmatters/emoset/internal/dataset"
	"github.com/linuxmatters/emoset/internal/extract"
	"github.com/linuxmatters/emoset/internal/features"
	"github.com/linuxmatters/emoset/internal/logging"
	"github.com/linuxmatters/emoset/internal/strip"
	"github.com/linuxmatters/emoset/internal/ui"
	"go.uber.org/zap"
)

var (
	version = "0.0.1"
)

// WorkbookFile is the xlsx written next to the tables by assemble --workbook
const WorkbookFile = "dataset.xlsx"

type versionFlag bool

// BeforeReset prints the version before kong insists on a subcommand
func (versionFlag) BeforeReset(app *kong.Kong) error {
	cli.PrintVersion(version)
	app.Exit(0)
	return nil
}

// CLI defines the command-line interface
type CLI struct {
	Version versionFlag `short:"v" help:"Show version information"`
	Config  string      `short:"c" type:"path" help:"Path to YAML config file (optional, defaults to ./emoset.yaml when present)"`
	Verbose bool        `help:"Also print warnings to stderr"`
	Logs    bool        `help:"Save a run report to the output directory"`
	Plain   bool        `help:"Print progress lines instead of the interactive display"`
	Root    []string    `name:"root" sep:"none" placeholder:"path=channel" help:"Corpus root to process, repeatable; replaces the configured roots"`
	Output  string      `short:"o" type:"path" help:"Output directory for tables and reports"`

	Strip    StripCmd    `cmd:"" help:"Remove container metadata from every WAV file in place"`
	Extract  ExtractCmd  `cmd:"" help:"Run the external feature extractors over every recording"`
	Assemble AssembleCmd `cmd:"" help:"Build the comma-separated tables from filenames and feature files"`
}

// StripCmd is the strip subcommand
type StripCmd struct {
	FFmpeg string `name:"ffmpeg" placeholder:"path" help:"FFmpeg binary to use"`
}

// ExtractCmd is the extract subcommand
type ExtractCmd struct {
	Passes       []string `placeholder:"pass" help:"Feature passes to run (prosody, articulation, cepstral)"`
	SkipExisting bool     `help:"Leave non-empty feature files in place"`
}

// AssembleCmd is the assemble subcommand
type AssembleCmd struct {
	Tables   []string `placeholder:"kind" help:"Tables to write (prosody, articulation, combined, cepstral)"`
	Workbook bool     `help:"Also write every table as a sheet of dataset.xlsx"`
}

// app carries what every subcommand needs
type app struct {
	cli     *CLI
	cfg     *config.Config
	catalog *features.Catalog
	log     *zap.Logger
	issues  *logging.Issues
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("emoset"),
		kong.Description("Speech-emotion dataset preparation"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	cfg, err := loadConfig(cliArgs)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	catalog := features.DefaultCatalog()
	if err := cfg.Validate(catalog); err != nil {
		cli.PrintError(fmt.Sprintf("invalid configuration: %v", err))
		os.Exit(1)
	}

	log, closeLog, err := logging.NewLogger(logging.DebugLogFile, cliArgs.Verbose)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
	defer closeLog()

	a := &app{
		cli:     cliArgs,
		cfg:     cfg,
		catalog: catalog,
		log:     log,
		issues:  &logging.Issues{},
	}

	report := logging.ReportData{
		Command:   ctx.Command(),
		StartTime: time.Now(),
		Issues:    a.issues,
	}

	switch ctx.Command() {
	case "strip":
		err = a.strip(&report)
	case "extract":
		err = a.extract(&report)
	case "assemble":
		err = a.assemble(&report)
	default:
		err = fmt.Errorf("unknown command %q", ctx.Command())
	}
	report.EndTime = time.Now()

	if err != nil {
		log.Error("run failed", zap.String("command", ctx.Command()), zap.Error(err))
		closeLog()
		if errors.Is(err, context.Canceled) {
			cli.PrintError("cancelled")
		} else {
			cli.PrintError(err.Error())
		}
		os.Exit(1)
	}

	cli.PrintIssues(os.Stdout, a.issues)

	if cliArgs.Logs {
		path, err := logging.GenerateReport(cfg.Output, report)
		if err != nil {
			log.Warn("failed to write run report", zap.Error(err))
			cli.PrintError(err.Error())
		} else {
			cli.PrintKeyValue("Report", path)
		}
	}
}

// loadConfig reads the config file and applies the global flag overrides
func loadConfig(c *CLI) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}

	if len(c.Root) > 0 {
		cfg.Roots = cfg.Roots[:0]
		for _, s := range c.Root {
			r, err := audio.ParseRoot(s)
			if err != nil {
				return nil, err
			}
			cfg.Roots = append(cfg.Roots, r)
		}
	}
	if c.Output != "" {
		cfg.Output = c.Output
	}
	if c.Strip.FFmpeg != "" {
		cfg.FFmpeg = c.Strip.FFmpeg
	}
	if len(c.Extract.Passes) > 0 {
		cfg.Extract.Passes = cfg.Extract.Passes[:0]
		for _, p := range c.Extract.Passes {
			cfg.Extract.Passes = append(cfg.Extract.Passes, features.PassName(p))
		}
	}
	if len(c.Assemble.Tables) > 0 {
		cfg.Tables = cfg.Tables[:0]
		for _, k := range c.Assemble.Tables {
			cfg.Tables = append(cfg.Tables, features.TableKind(k))
		}
	}
	if c.Assemble.Workbook {
		cfg.Workbook = true
	}
	return cfg, nil
}

func (a *app) strip(report *logging.ReportData) error {
	files, err := audio.DiscoverAll(a.cfg.Roots)
	if err != nil {
		return err
	}
	report.Recordings = len(files)
	a.log.Info("stripping metadata", zap.Int("files", len(files)), zap.String("ffmpeg", a.cfg.FFmpeg))

	return a.runBatch("Stripping metadata", files, func(ctx context.Context, hooks audio.Hooks) error {
		s := &strip.Stripper{
			Remuxer: strip.FFmpeg{Path: a.cfg.FFmpeg},
			Log:     a.log,
			Issues:  a.issues,
			Hooks:   hooks,
		}
		res, err := s.Run(ctx, files)
		a.log.Info("strip finished", zap.Int("stripped", res.Stripped), zap.Int("failed", len(res.Failed)))
		return err
	})
}

func (a *app) extract(report *logging.ReportData) error {
	var jobs []extract.Job
	for _, name := range a.cfg.Extract.Passes {
		pass, ok := a.catalog.Pass(name)
		if !ok {
			return fmt.Errorf("unknown feature pass %q", name)
		}
		tool, err := a.cfg.Tool(name)
		if err != nil {
			return err
		}
		jobs = append(jobs, extract.Job{Pass: pass, Tool: tool})
	}

	files, err := audio.DiscoverAll(a.cfg.Roots)
	if err != nil {
		return err
	}
	report.Recordings = len(files)
	a.log.Info("extracting features", zap.Int("files", len(files)), zap.Int("passes", len(jobs)))

	return a.runBatch("Extracting features", files, func(ctx context.Context, hooks audio.Hooks) error {
		e := &extract.Extractor{
			Jobs:         jobs,
			Runner:       extract.ExecRunner{},
			SkipExisting: a.cli.Extract.SkipExisting,
			Log:          a.log,
			Issues:       a.issues,
			Hooks:        hooks,
		}
		res, err := e.Run(ctx, files)
		a.log.Info("extraction finished",
			zap.Int("written", res.Written),
			zap.Int("skipped", res.Skipped),
			zap.Int("failed", len(res.Failed)))
		return err
	})
}

func (a *app) assemble(report *logging.ReportData) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	ds, err := dataset.Build(ctx, a.cfg.Roots, dataset.Options{
		Catalog: a.catalog,
		Tables:  a.cfg.Tables,
		Log:     a.log,
		Issues:  a.issues,
	})
	if err != nil {
		return err
	}
	report.Recordings = len(ds.Records)

	written, err := dataset.WriteTables(ds, a.cfg.Output, a.cfg.Tables)
	report.Outputs = append(report.Outputs, written...)
	if err != nil {
		return err
	}

	if a.cfg.Workbook {
		path := filepath.Join(a.cfg.Output, WorkbookFile)
		if err := dataset.WriteWorkbook(ds, path, a.cfg.Tables); err != nil {
			return err
		}
		report.Outputs = append(report.Outputs, path)
	}

	cli.PrintKeyValue("Recordings", len(ds.Records))
	for _, path := range report.Outputs {
		cli.PrintKeyValue("Wrote", path)
	}
	return nil
}

// runBatch drives a batch step either behind the Bubbletea display or with
// plain progress lines. Interrupting either cancels the batch.
func (a *app) runBatch(action string, files []audio.File, run func(context.Context, audio.Hooks) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if a.cli.Plain {
		hooks := audio.Hooks{
			Done: func(i int, f audio.File, err error) {
				if err != nil {
					fmt.Printf("[%d/%d] %s %s: %v\n", i+1, len(files), cli.ErrorStyle.Render("✗"), f.Path(), err)
					return
				}
				fmt.Printf("[%d/%d] %s %s\n", i+1, len(files), cli.SuccessStyle.Render("✓"), f.Path())
			},
		}
		return run(ctx, hooks)
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path()
	}

	p := tea.NewProgram(ui.NewModel(action, paths, cancel), tea.WithAltScreen())
	hooks := audio.Hooks{
		Start: func(i int, f audio.File) {
			p.Send(ui.FileStartMsg{FileIndex: i, FileName: f.Path()})
		},
		Done: func(i int, f audio.File, err error) {
			p.Send(ui.FileCompleteMsg{FileIndex: i, Error: err})
		},
	}

	done := make(chan error, 1)
	go func() {
		err := run(ctx, hooks)
		p.Send(ui.AllCompleteMsg{Err: err})
		done <- err
	}()

	final, uiErr := p.Run()
	if uiErr != nil {
		cancel()
	}
	runErr := <-done

	// The alternate screen is gone once the program exits, so repeat the summary
	if m, ok := final.(ui.Model); ok {
		fmt.Println(m.View())
	}
	if uiErr != nil {
		return fmt.Errorf("UI error: %w", uiErr)
	}
	return runErr
}
