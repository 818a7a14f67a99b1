package loader

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/multimediallc/rect-intersections/pkg/rect"
)

var (
	ErrInputShape        = errors.New("invalid input document")
	ErrInvalidGeometry   = errors.New("invalid rectangle geometry")
	ErrInsufficientInput = errors.New("not enough valid rectangles")
)

var allowedKeys = []string{"x", "y", "w", "h"}

// StdinPath is the input name that reads the document from standard input
const StdinPath = "-"

// Load reads an input document and returns its valid rectangles with IDs 1..N.
// It fails when fewer than 2 rectangles survive validation.
func Load(path string, maxRectangles int, warningWriter io.Writer) ([]rect.Rectangle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open file %s: %v", ErrInputShape, path, err)
	}
	defer file.Close()
	return LoadReader(file, path, FormatForPath(path), maxRectangles, warningWriter)
}

// LoadReader is Load for a document that does not come from a file; source only names it in errors
func LoadReader(r io.Reader, source string, format DocumentFormat, maxRectangles int, warningWriter io.Writer) ([]rect.Rectangle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read %s: %v", ErrInputShape, source, err)
	}
	rects, err := Parse(data, format, maxRectangles, warningWriter)
	if err != nil {
		return nil, err
	}
	if len(rects) < 2 {
		return nil, fmt.Errorf("%w: found %d in %s, at least 2 are needed to find intersections", ErrInsufficientInput, len(rects), source)
	}
	return rects, nil
}

// Parse validates the entries of a document in order. Entries with zero
// width or height are skipped and entries past maxRectangles are dropped;
// both produce a notice on warningWriter instead of an error.
func Parse(data []byte, format DocumentFormat, maxRectangles int, warningWriter io.Writer) ([]rect.Rectangle, error) {
	if maxRectangles <= 0 {
		return nil, fmt.Errorf("maximum number of rectangles must be positive, got %d", maxRectangles)
	}
	entries, err := decodeEntries(data, format)
	if err != nil {
		return nil, err
	}

	rects := make([]rect.Rectangle, 0, min(len(entries), maxRectangles))
	for i, entry := range entries {
		if len(rects) >= maxRectangles {
			_, _ = fmt.Fprintf(warningWriter, "Info: Input contains more than %d rectangles. Processing the first %d.\n", maxRectangles, maxRectangles)
			break
		}

		for _, key := range allowedKeys {
			if _, found := entry[key]; !found {
				return nil, fmt.Errorf("%w: rectangle %d must contain exactly 'x', 'y', 'w', and 'h' fields", ErrInputShape, i+1)
			}
		}
		if len(entry) != len(allowedKeys) {
			for _, key := range slices.Sorted(maps.Keys(entry)) {
				if !slices.Contains(allowedKeys, key) {
					return nil, fmt.Errorf("%w: invalid key '%s' found in rectangle %d", ErrInputShape, key, i+1)
				}
			}
		}

		values := make([]int, len(allowedKeys))
		for k, key := range allowedKeys {
			value, ok := toInt(entry[key])
			if !ok {
				return nil, fmt.Errorf("%w: field '%s' of rectangle %d must be an integer, got %v", ErrInputShape, key, i+1, entry[key])
			}
			values[k] = value
		}
		x, y, w, h := values[0], values[1], values[2], values[3]

		if w < 0 || h < 0 {
			return nil, fmt.Errorf("%w: rectangle %d has negative width or height: w=%d, h=%d", ErrInvalidGeometry, i+1, w, h)
		}
		if w == 0 || h == 0 {
			_, _ = fmt.Fprintf(warningWriter, "Info: Ignoring rectangle with zero width or height: x=%d, y=%d, w=%d, h=%d.\n", x, y, w, h)
			continue
		}

		rects = append(rects, rect.New(len(rects)+1, x, y, w, h))
	}
	return rects, nil
}
