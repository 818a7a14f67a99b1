package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/multimediallc/rect-intersections/internal/app"
	"github.com/multimediallc/rect-intersections/internal/config"
	"github.com/multimediallc/rect-intersections/internal/report"
	"github.com/urfave/cli/v2"
)

const version = "v0.1.0"

func main() {
	os.Exit(run(os.Args, pipedStdin(), os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code. stdin is nil when nothing is piped in.
func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	warningBuffer := bytes.NewBuffer([]byte{})
	infoBuffer := bytes.NewBuffer([]byte{})
	verbose := false

	cliApp := newCLI(stdin, stdout, stderr, warningBuffer, infoBuffer, &verbose)
	err := cliApp.Run(args)

	if _, werr := warningBuffer.WriteTo(stderr); werr != nil {
		_, _ = fmt.Fprintf(stderr, "Error writing warning buffer: %v\n", werr)
	}
	if verbose {
		if _, werr := infoBuffer.WriteTo(stderr); werr != nil {
			_, _ = fmt.Fprintf(stderr, "Error writing info buffer: %v\n", werr)
		}
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

func newCLI(stdin io.Reader, stdout io.Writer, stderr io.Writer, warningBuffer io.Writer, infoBuffer io.Writer, verbose *bool) *cli.App {
	var configDir string
	return &cli.App{
		Name:        "rect-intersections",
		Usage:       "Find every overlap between axis-aligned rectangles",
		UsageText:   "rect-intersections [options] <input>\n   cat rects.json | rect-intersections [options] -",
		Version:     version,
		Description: "Reads rectangles from the 'rects' array of a JSON or TOML document and reports every 2-way and N-way intersection. The input may also be a directory or a glob pattern such as 'inputs/**/*.json'; every matching document is reported separately. Use '-' to read a JSON document from standard input.",
		Writer:      stdout,
		ErrWriter:   stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Value:       ".",
				Usage:       fmt.Sprintf("Directory containing %s", config.FileName),
				EnvVars:     []string{"RECTS_CONFIG"},
				Destination: &configDir,
			},
			&cli.IntFlag{
				Name:    "max",
				Aliases: []string{"m"},
				Usage:   "Maximum number of rectangles read from each input",
				EnvVars: []string{"RECTS_MAX"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   fmt.Sprintf("Output format.  Allowed values are: %s", report.FormatNames()),
				EnvVars: []string{"RECTS_FORMAT"},
			},
			&cli.BoolFlag{
				Name:    "parallel",
				Aliases: []string{"p"},
				Usage:   "Enumerate intersections on several goroutines",
				EnvVars: []string{"RECTS_PARALLEL"},
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"V"},
				Usage:       "Verbose output",
				EnvVars:     []string{"RECTS_VERBOSE"},
				Destination: verbose,
			},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 1 {
				return fmt.Errorf("exactly one input file, directory or glob pattern is required, got %d", cCtx.NArg())
			}
			cfg := app.Config{
				Input:         cCtx.Args().First(),
				ConfigDir:     configDir,
				Verbose:       *verbose,
				Stdin:         stdin,
				InfoBuffer:    infoBuffer,
				WarningBuffer: warningBuffer,
			}
			if cCtx.IsSet("max") {
				maxRectangles := cCtx.Int("max")
				cfg.MaxRectangles = &maxRectangles
			}
			if cCtx.IsSet("format") {
				format := cCtx.String("format")
				cfg.Format = &format
			}
			if cCtx.IsSet("parallel") {
				parallel := cCtx.Bool("parallel")
				cfg.Parallel = &parallel
			}

			a := app.New(cfg)
			outputData, err := a.Run(cCtx.Context)
			if err != nil {
				return err
			}
			return a.Render(stdout, outputData)
		},
	}
}
