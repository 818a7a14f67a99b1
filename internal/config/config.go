package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/multimediallc/rect-intersections/internal/report"
	"github.com/pelletier/go-toml/v2"
)

const FileName = "rectangles.toml"

const (
	DefaultMaxRectangles = 10
	DefaultFormat        = string(report.FormatDefault)
	DefaultWorkers       = 4
)

type Config struct {
	MaxRectangles int    `toml:"max_rectangles"`
	Format        string `toml:"format"`
	Parallel      bool   `toml:"parallel"`
	Workers       int    `toml:"workers"`
	Batch         *Batch `toml:"batch"`
}

// Batch controls which files are picked up when the input is a directory
type Batch struct {
	Extensions    []string `toml:"extensions"`
	IncludeHidden bool     `toml:"include_hidden"`
}

func Default() *Config {
	return &Config{
		MaxRectangles: DefaultMaxRectangles,
		Format:        DefaultFormat,
		Parallel:      false,
		Workers:       DefaultWorkers,
		Batch:         &Batch{Extensions: []string{"json", "toml"}, IncludeHidden: false},
	}
}

// ReadConfig reads rectangles.toml from the given directory. A missing file
// is not an error; the defaults are returned. On any other failure the
// defaults are returned together with the error.
func ReadConfig(path string) (*Config, error) {
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}

	defaultConfig := Default()

	fileName := path + FileName
	if _, err := os.Stat(fileName); errors.Is(err, os.ErrNotExist) {
		return defaultConfig, nil
	}
	file, err := os.ReadFile(fileName)
	if err != nil {
		return Default(), err
	}
	config := defaultConfig
	err = toml.Unmarshal(file, &config)
	if err != nil {
		return Default(), err
	}
	if config.Batch == nil {
		config.Batch = Default().Batch
	}
	if err := config.Validate(); err != nil {
		return Default(), err
	}
	return config, nil
}

// Validate checks the values that have no usable fallback. ReadConfig calls it
// on file values; the app calls it again after applying flag overrides.
func (c *Config) Validate() error {
	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.MaxRectangles <= 0 {
		return fmt.Errorf("max_rectangles must be positive, got %d", c.MaxRectangles)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// OutputFormat returns the configured format; Validate must have passed
func (c *Config) OutputFormat() report.OutputFormat {
	return report.OutputFormat(c.Format)
}
