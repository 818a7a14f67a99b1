package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type DocumentFormat string

const (
	FormatJSON DocumentFormat = "json"
	FormatTOML DocumentFormat = "toml"
)

// FormatForPath picks the document format from the file extension; anything but .toml is JSON
func FormatForPath(path string) DocumentFormat {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// decodeEntries returns the raw entries of the "rects" array, in document order
func decodeEntries(data []byte, format DocumentFormat) ([]map[string]any, error) {
	var doc map[string]any
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: failed to parse TOML: %v", ErrInputShape, err)
		}
	default:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: failed to parse JSON: %v", ErrInputShape, err)
		}
		if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: failed to parse JSON: unexpected data after document", ErrInputShape)
		}
	}

	items, ok := doc["rects"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: document must contain a 'rects' array", ErrInputShape)
	}
	entries := make([]map[string]any, len(items))
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: rectangle %d is not an object", ErrInputShape, i+1)
		}
		entries[i] = entry
	}
	return entries, nil
}

// toInt accepts whole numbers only; JSON numbers arrive as json.Number and TOML integers as int64
func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}
