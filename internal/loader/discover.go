package loader

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/boyter/gocodewalker"
	f "github.com/multimediallc/rect-intersections/pkg/functional"
)

// WalkOptions controls which files a directory walk returns
type WalkOptions struct {
	Extensions    []string
	IncludeHidden bool
	// ExcludeFiles lists base names that are never inputs, such as the config file
	ExcludeFiles []string
}

// Discover turns the command line input into the list of documents to process.
// A glob pattern (doublestar syntax, e.g. "inputs/**/*.json") expands to its
// matching files, a directory is walked for files with the allowed
// extensions, "-" stands for standard input, and anything else is treated
// as a single file path.
// The returned paths are sorted.
func Discover(input string, opts WalkOptions) ([]string, error) {
	if input == "" {
		return nil, fmt.Errorf("%w: input path is required", ErrInputShape)
	}
	if input == StdinPath {
		return []string{StdinPath}, nil
	}
	if isPattern(input) {
		return globFiles(input)
	}
	if stat, err := os.Stat(input); err == nil && stat.IsDir() {
		return walkDir(input, opts)
	}
	return []string{input}, nil
}

func isPattern(input string) bool {
	return strings.ContainsAny(input, "*?[{")
}

func globFiles(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: invalid glob pattern %s", ErrInputShape, pattern)
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("%w: error expanding %s: %v", ErrInputShape, pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no input files match %s", ErrInputShape, pattern)
	}
	slices.Sort(matches)
	return matches, nil
}

func walkDir(dir string, opts WalkOptions) ([]string, error) {
	fileListQueue := make(chan *gocodewalker.File, 100)

	walker := gocodewalker.NewFileWalker(dir, fileListQueue)
	walker.IncludeHidden = opts.IncludeHidden
	walker.ExcludeDirectory = []string{".git"}
	walker.AllowListExtensions = f.Map(opts.Extensions, func(ext string) string {
		return strings.TrimPrefix(ext, ".")
	})

	errChan := make(chan error)

	go func() {
		err := walker.Start()
		errChan <- err
		close(errChan)
	}()

	walked := make([]*gocodewalker.File, 0)
	for file := range fileListQueue {
		walked = append(walked, file)
	}

	if err := <-errChan; err != nil {
		return nil, fmt.Errorf("error walking %s: %s", dir, err)
	}

	excluded := f.NewSet[string]()
	for _, name := range opts.ExcludeFiles {
		excluded.Add(name)
	}
	walked = f.Filtered(walked, func(file *gocodewalker.File) bool {
		return !excluded.Contains(file.Filename)
	})
	files := f.Map(walked, func(file *gocodewalker.File) string {
		return file.Location
	})
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no input files found in %s", ErrInputShape, dir)
	}
	slices.Sort(files)
	return f.RemoveDuplicates(files), nil
}
