package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/multimediallc/rect-intersections/internal/config"
	"github.com/multimediallc/rect-intersections/internal/loader"
	"github.com/multimediallc/rect-intersections/internal/report"
	"github.com/multimediallc/rect-intersections/pkg/intersection"
	"github.com/multimediallc/rect-intersections/pkg/rect"
)

// OutputData holds everything needed to render the result of a run
type OutputData struct {
	Format  report.OutputFormat
	Files   []string
	Reports []report.Report
}

// RecordCount returns the number of intersections over all reports
func (od *OutputData) RecordCount() int {
	count := 0
	for _, r := range od.Reports {
		count += len(r.Intersections)
	}
	return count
}

// Config holds the application configuration. Nil overrides fall back to
// the values from rectangles.toml.
type Config struct {
	Input         string
	ConfigDir     string
	MaxRectangles *int
	Format        *string
	Parallel      *bool
	Verbose       bool
	Stdin         io.Reader
	InfoBuffer    io.Writer
	WarningBuffer io.Writer
}

// App represents the application with its dependencies
type App struct {
	Conf   *config.Config
	config *Config
}

// New creates a new App instance with the given configuration
func New(cfg Config) *App {
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = "."
	}
	if cfg.InfoBuffer == nil {
		cfg.InfoBuffer = io.Discard
	}
	if cfg.WarningBuffer == nil {
		cfg.WarningBuffer = io.Discard
	}
	return &App{config: &cfg}
}

func (a *App) printDebug(format string, args ...interface{}) {
	if a.config.Verbose {
		_, _ = fmt.Fprintf(a.config.InfoBuffer, format, args...)
	}
}

func (a *App) printWarn(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(a.config.WarningBuffer, format, args...)
}

// Run loads every input, finds its intersections and orders them. Nothing
// is returned for any input if one of them fails.
func (a *App) Run(ctx context.Context) (*OutputData, error) {
	conf, err := config.ReadConfig(a.config.ConfigDir)
	if err != nil {
		a.printWarn("Error reading %s - using default config: %v\n", config.FileName, err)
	}
	a.Conf = conf
	a.applyOverrides()
	if err := a.Conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	format := a.Conf.OutputFormat()
	a.printDebug("Config: max_rectangles=%d format=%s parallel=%t workers=%d\n",
		a.Conf.MaxRectangles, a.Conf.Format, a.Conf.Parallel, a.Conf.Workers)

	files, err := loader.Discover(a.config.Input, loader.WalkOptions{
		Extensions:    a.Conf.Batch.Extensions,
		IncludeHidden: a.Conf.Batch.IncludeHidden,
		ExcludeFiles:  []string{config.FileName},
	})
	if err != nil {
		return nil, err
	}
	a.printDebug("Inputs: %v\n", files)

	outputData := &OutputData{Format: format, Files: files, Reports: make([]report.Report, 0, len(files))}
	for _, file := range files {
		r, err := a.process(ctx, file)
		if err != nil {
			if len(files) > 1 {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			return nil, err
		}
		outputData.Reports = append(outputData.Reports, r)
	}
	return outputData, nil
}

// Render writes the reports in the configured format
func (a *App) Render(w io.Writer, od *OutputData) error {
	return report.Write(w, od.Format, od.Reports)
}

func (a *App) applyOverrides() {
	if a.config.MaxRectangles != nil {
		a.Conf.MaxRectangles = *a.config.MaxRectangles
	}
	if a.config.Format != nil {
		a.Conf.Format = *a.config.Format
	}
	if a.config.Parallel != nil {
		a.Conf.Parallel = *a.config.Parallel
	}
}

func (a *App) process(ctx context.Context, file string) (report.Report, error) {
	start := time.Now()
	rects, err := a.load(file)
	if err != nil {
		return report.Report{}, err
	}
	a.printDebug("Loaded %d rectangles from %s\n", len(rects), file)

	records, err := a.enumerate(ctx, rects)
	if err != nil {
		return report.Report{}, err
	}
	ordered := intersection.Order(records)
	a.printDebug("Found %d intersections in %s (%s)\n", len(ordered), file, time.Since(start))

	return report.Report{Source: file, Input: rects, Intersections: ordered}, nil
}

func (a *App) load(file string) ([]rect.Rectangle, error) {
	if file != loader.StdinPath {
		return loader.Load(file, a.Conf.MaxRectangles, a.config.WarningBuffer)
	}
	if a.config.Stdin == nil {
		return nil, fmt.Errorf("%w: no document piped to standard input", loader.ErrInputShape)
	}
	return loader.LoadReader(a.config.Stdin, "standard input", loader.FormatJSON, a.Conf.MaxRectangles, a.config.WarningBuffer)
}

func (a *App) enumerate(ctx context.Context, rects []rect.Rectangle) ([]intersection.Record, error) {
	if a.Conf.Parallel {
		return intersection.EnumerateParallel(ctx, rects, a.Conf.Workers)
	}
	return intersection.Enumerate(rects)
}
