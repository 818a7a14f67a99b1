package report

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	f "github.com/multimediallc/rect-intersections/pkg/functional"
)

// ErrUnknownFormat is returned for a format name Write cannot render
var ErrUnknownFormat = errors.New("unknown output format")

// OutputFormat selects how Write renders reports
type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatOneLine OutputFormat = "one-line"
	FormatJSON    OutputFormat = "json"
)

// Formats lists the supported formats in the order they appear in help text
var Formats = []OutputFormat{FormatDefault, FormatOneLine, FormatJSON}

// FormatNames returns the supported format names joined for messages
func FormatNames() string {
	return strings.Join(f.Map(Formats, func(o OutputFormat) string { return string(o) }), ", ")
}

// ParseFormat maps a name from the command line or rectangles.toml to its OutputFormat
func ParseFormat(name string) (OutputFormat, error) {
	format := OutputFormat(name)
	if !slices.Contains(Formats, format) {
		return "", fmt.Errorf("%w %q, must be one of %s", ErrUnknownFormat, name, FormatNames())
	}
	return format, nil
}
