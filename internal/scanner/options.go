package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// RootSummary selects how the entry point itself is represented in the result.
type RootSummary string

const (
	// RootSummaryOmit emits no record for the entry point (default).
	RootSummaryOmit RootSummary = "omit"
	// RootSummaryFilesOnly emits a record covering only the files
	// directly inside the entry point, not its subtrees.
	RootSummaryFilesOnly RootSummary = "files-only"
	// RootSummaryFull emits a record with the entry point's full
	// recursive size.
	RootSummaryFull RootSummary = "full"
)

// Validation errors returned before any traversal work begins.
var (
	ErrInvalidDepth       = errors.New("max depth must be at least 1")
	ErrInvalidRootSummary = errors.New("invalid root summary mode")
	ErrNotDirectory       = errors.New("path is not a directory")
)

// Options configures a scan.
type Options struct {
	// Path is the entry point directory. Defaults to the current directory.
	Path string
	// MaxDepth bounds emission depth and must be at least 1. Folders
	// deeper than MaxDepth are not emitted, but their bytes still count
	// towards their emitted ancestors.
	MaxDepth int
	// RootSummary controls the entry point's own record. Empty means
	// RootSummaryOmit.
	RootSummary RootSummary
	// Concurrency bounds parallel subtree sizing (0 = NumCPU,
	// 1 = serial).
	Concurrency int
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Logger receives per-path warnings for skipped subtrees.
	// Defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// normalize validates the options and fills in defaults. The returned
// options carry an absolute, cleaned Path.
func (o Options) normalize() (Options, error) {
	if o.MaxDepth < 1 {
		return o, fmt.Errorf("%w: got %d", ErrInvalidDepth, o.MaxDepth)
	}

	switch o.RootSummary {
	case "":
		o.RootSummary = RootSummaryOmit
	case RootSummaryOmit, RootSummaryFilesOnly, RootSummaryFull:
	default:
		return o, fmt.Errorf("%w: %q", ErrInvalidRootSummary, o.RootSummary)
	}

	if o.Path == "" {
		o.Path = "."
	}

	abs, err := filepath.Abs(filepath.Clean(o.Path))
	if err != nil {
		return o, fmt.Errorf("resolving absolute path: %w", err)
	}

	o.Path = abs

	info, err := os.Stat(o.Path)
	if err != nil {
		return o, fmt.Errorf("accessing path %q: %w", o.Path, err)
	}

	if !info.IsDir() {
		return o, fmt.Errorf("%w: %q", ErrNotDirectory, o.Path)
	}

	if o.Concurrency <= 0 {
		o.Concurrency = runtime.NumCPU()
	}

	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}

	return o, nil
}
