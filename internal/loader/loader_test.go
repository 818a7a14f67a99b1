package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/multimediallc/rect-intersections/pkg/rect"
)

func writeTempFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

func TestParse(t *testing.T) {
	tt := []struct {
		name        string
		content     string
		format      DocumentFormat
		expected    []rect.Rectangle
		expectedErr error
		warning     string
	}{
		{
			name:    "valid rectangles",
			content: `{"rects": [{"x": 1, "y": 2, "w": 3, "h": 4}, {"x": 5, "y": 6, "w": 7, "h": 8}]}`,
			format:  FormatJSON,
			expected: []rect.Rectangle{
				rect.New(1, 1, 2, 3, 4),
				rect.New(2, 5, 6, 7, 8),
			},
		},
		{
			name:    "negative coordinates are allowed",
			content: `{"rects": [{"x": -1, "y": -2, "w": 3, "h": 4}]}`,
			format:  FormatJSON,
			expected: []rect.Rectangle{
				rect.New(1, -1, -2, 3, 4),
			},
		},
		{
			name: "zero width or height is skipped",
			content: `{"rects": [
				{"x": 1, "y": 2, "w": 0, "h": 4},
				{"x": 2, "y": 3, "w": 3, "h": 0},
				{"x": 3, "y": 4, "w": 5, "h": 6}
			]}`,
			format: FormatJSON,
			expected: []rect.Rectangle{
				rect.New(1, 3, 4, 5, 6),
			},
			warning: "Info: Ignoring rectangle with zero width or height: x=1, y=2, w=0, h=4.",
		},
		{
			name:     "empty array",
			content:  `{"rects": []}`,
			format:   FormatJSON,
			expected: []rect.Rectangle{},
		},
		{
			name:        "invalid json",
			content:     `{ invalid json `,
			format:      FormatJSON,
			expectedErr: ErrInputShape,
		},
		{
			name:        "trailing data",
			content:     `{"rects": []} {}`,
			format:      FormatJSON,
			expectedErr: ErrInputShape,
		},
		{
			name:        "no rects array",
			content:     `{"foo": []}`,
			format:      FormatJSON,
			expectedErr: ErrInputShape,
		},
		{
			name:        "rects is not an array",
			content:     `{"rects": {"x": 1}}`,
			format:      FormatJSON,
			expectedErr: ErrInputShape,
		},
		{
			name:        "entry is not an object",
			content:     `{"rects": [3]}`,
			format:      FormatJSON,
			expectedErr: ErrInputShape,
		},
		{
			name:        "missing keys",
			content:     `{"rects": [{"x": 1, "y": 2, "w": 3}]}`,
			format:      FormatJSON,
			expectedErr: ErrInputShape,
		},
		{
			name:        "extra keys",
			content:     `{"rects": [{"x": 1, "y": 2, "w": 3, "h": 4, "foo": 5}]}`,
			format:      FormatJSON,
			expectedErr: ErrInputShape,
		},
		{
			name:        "non-integer value",
			content:     `{"rects": [{"x": 1.5, "y": 2, "w": 3, "h": 4}]}`,
			format:      FormatJSON,
			expectedErr: ErrInputShape,
		},
		{
			name:        "string value",
			content:     `{"rects": [{"x": "1", "y": 2, "w": 3, "h": 4}]}`,
			format:      FormatJSON,
			expectedErr: ErrInputShape,
		},
		{
			name:        "negative width",
			content:     `{"rects": [{"x": 1, "y": 2, "w": -3, "h": 4}]}`,
			format:      FormatJSON,
			expectedErr: ErrInvalidGeometry,
		},
		{
			name:        "negative height",
			content:     `{"rects": [{"x": 1, "y": 2, "w": 3, "h": -4}]}`,
			format:      FormatJSON,
			expectedErr: ErrInvalidGeometry,
		},
		{
			name: "toml document",
			content: `
[[rects]]
x = 0
y = 0
w = 10
h = 10

[[rects]]
x = 5
y = -5
w = 10
h = 10
`,
			format: FormatTOML,
			expected: []rect.Rectangle{
				rect.New(1, 0, 0, 10, 10),
				rect.New(2, 5, -5, 10, 10),
			},
		},
		{
			name:        "invalid toml",
			content:     `rects = [`,
			format:      FormatTOML,
			expectedErr: ErrInputShape,
		},
		{
			name: "toml float value",
			content: `
[[rects]]
x = 0.5
y = 0
w = 10
h = 10
`,
			format:      FormatTOML,
			expectedErr: ErrInputShape,
		},
		{
			name: "toml extra key",
			content: `
[[rects]]
x = 0
y = 0
w = 10
h = 10
color = "red"
`,
			format:      FormatTOML,
			expectedErr: ErrInputShape,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			warnings := bytes.NewBuffer([]byte{})
			got, err := Parse([]byte(tc.content), tc.format, 10, warnings)
			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("Expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Expected %+v, got %+v", tc.expected, got)
			}
			if tc.warning != "" && !strings.Contains(warnings.String(), tc.warning) {
				t.Errorf("Expected warning %q, got %q", tc.warning, warnings.String())
			}
			if tc.warning == "" && warnings.Len() > 0 {
				t.Errorf("Expected no warnings, got %q", warnings.String())
			}
		})
	}
}

func TestParseMaximum(t *testing.T) {
	tt := []struct {
		name     string
		count    int
		max      int
		expected int
		notice   bool
	}{
		{"below maximum", 3, 10, 3, false},
		{"exactly maximum", 10, 10, 10, false},
		{"over maximum", 15, 10, 10, true},
		{"configured maximum", 6, 4, 4, true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			entries := make([]string, tc.count)
			for i := range entries {
				entries[i] = fmt.Sprintf(`{"x": %d, "y": 0, "w": 1, "h": 1}`, i)
			}
			content := `{"rects": [` + strings.Join(entries, ",") + `]}`

			warnings := bytes.NewBuffer([]byte{})
			got, err := Parse([]byte(content), FormatJSON, tc.max, warnings)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tc.expected {
				t.Errorf("Expected %d rectangles, got %d", tc.expected, len(got))
			}
			for i, r := range got {
				if r.ID != i+1 || r.X != i {
					t.Errorf("Expected rectangle %d to keep document order, got %+v", i+1, r)
				}
			}
			hasNotice := strings.Contains(warnings.String(), fmt.Sprintf("more than %d rectangles", tc.max))
			if hasNotice != tc.notice {
				t.Errorf("Expected notice=%t, got warnings %q", tc.notice, warnings.String())
			}
		})
	}
}

func TestParseStopsAtMaximum(t *testing.T) {
	// entries past the maximum are not validated
	content := `{"rects": [
		{"x": 0, "y": 0, "w": 1, "h": 1},
		{"x": 0, "y": 0, "w": 1, "h": 1},
		{"x": 0, "y": 0, "w": -1, "h": 1}
	]}`
	got, err := Parse([]byte(content), FormatJSON, 2, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 rectangles, got %d", len(got))
	}
}

func TestParseSkippedEntriesDoNotCount(t *testing.T) {
	content := `{"rects": [
		{"x": 0, "y": 0, "w": 0, "h": 1},
		{"x": 1, "y": 0, "w": 1, "h": 1},
		{"x": 2, "y": 0, "w": 1, "h": 1}
	]}`
	got, err := Parse([]byte(content), FormatJSON, 2, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []rect.Rectangle{rect.New(1, 1, 0, 1, 1), rect.New(2, 2, 0, 1, 1)}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %+v, got %+v", expected, got)
	}
}

func TestParseInvalidMaximum(t *testing.T) {
	_, err := Parse([]byte(`{"rects": []}`), FormatJSON, 0, io.Discard)
	if err == nil {
		t.Error("Expected error for a non-positive maximum")
	}
}

func TestLoad(t *testing.T) {
	tt := []struct {
		name        string
		fileName    string
		content     string
		expected    int
		expectedErr error
	}{
		{
			name:     "multiple rectangles",
			fileName: "rects.json",
			content:  `{"rects": [{"x": 0, "y": 0, "w": 10, "h": 10}, {"x": 5, "y": 5, "w": 10, "h": 10}]}`,
			expected: 2,
		},
		{
			name:     "toml by extension",
			fileName: "rects.toml",
			content:  "[[rects]]\nx = 0\ny = 0\nw = 1\nh = 1\n[[rects]]\nx = 0\ny = 0\nw = 2\nh = 2\n",
			expected: 2,
		},
		{
			name:        "single rectangle",
			fileName:    "rects.json",
			content:     `{"rects": [{"x": 0, "y": 0, "w": 10, "h": 10}]}`,
			expectedErr: ErrInsufficientInput,
		},
		{
			name:        "only one valid rectangle",
			fileName:    "rects.json",
			content:     `{"rects": [{"x": 0, "y": 0, "w": 0, "h": 10}, {"x": 0, "y": 0, "w": 10, "h": 10}]}`,
			expectedErr: ErrInsufficientInput,
		},
		{
			name:        "malformed file",
			fileName:    "rects.json",
			content:     `{"rects": [`,
			expectedErr: ErrInputShape,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempFile(t, tc.fileName, tc.content)
			got, err := Load(path, 10, io.Discard)
			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("Expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tc.expected {
				t.Errorf("Expected %d rectangles, got %d", tc.expected, len(got))
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent_file.json"), 10, io.Discard)
	if !errors.Is(err, ErrInputShape) {
		t.Errorf("Expected ErrInputShape, got %v", err)
	}
}

func TestFormatForPath(t *testing.T) {
	tt := []struct {
		path     string
		expected DocumentFormat
	}{
		{"rects.json", FormatJSON},
		{"rects.toml", FormatTOML},
		{"RECTS.TOML", FormatTOML},
		{"rects", FormatJSON},
		{"dir.toml/rects.txt", FormatJSON},
	}
	for _, tc := range tt {
		if got := FormatForPath(tc.path); got != tc.expected {
			t.Errorf("FormatForPath(%s): expected %s, got %s", tc.path, tc.expected, got)
		}
	}
}

func TestLoadReader(t *testing.T) {
	content := "[[rects]]\nx = 0\ny = 0\nw = 4\nh = 4\n[[rects]]\nx = 2\ny = 2\nw = 4\nh = 4\n"
	got, err := LoadReader(strings.NewReader(content), StdinPath, FormatTOML, 10, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []rect.Rectangle{rect.New(1, 0, 0, 4, 4), rect.New(2, 2, 2, 4, 4)}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %+v, got %+v", expected, got)
	}

	_, err = LoadReader(strings.NewReader(`{"rects": []}`), StdinPath, FormatJSON, 10, io.Discard)
	if !errors.Is(err, ErrInsufficientInput) {
		t.Errorf("Expected ErrInsufficientInput, got %v", err)
	}
}
