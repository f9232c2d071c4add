package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/foldersize/foldersize/internal/report"
	"github.com/foldersize/foldersize/internal/scanner"
)

//nolint:gochecknoglobals // Config constant
var allowedFormats = []string{"table", "json"}

func run(ctx context.Context, cfg *config) error {
	if !slices.Contains(allowedFormats, strings.ToLower(cfg.format)) {
		return fmt.Errorf("invalid output format %q: must be one of %v", cfg.format, allowedFormats)
	}

	log, err := newLogger(cfg.logLevel)
	if err != nil {
		return err
	}

	cfg.scan.Logger = log

	enableProgress := !cfg.quiet && isatty.IsTerminal(os.Stderr.Fd())

	// Simple progress callback that prints directly to stderr
	var progressHook func(folders, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		progressHook = func(folders, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d folders, %s",
				folders, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	result, err := scanner.Scan(ctx, cfg.scan, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	var paths report.Paths

	if !cfg.noReport {
		paths, err = report.Write(result, cfg.outputDir)
		if err != nil {
			return fmt.Errorf("generating report: %w", err)
		}
	}

	if cfg.quiet {
		return nil
	}

	switch strings.ToLower(cfg.format) {
	case "json":
		return PrintJSON(result, os.Stdout)
	default:
		return PrintTable(result, paths, os.Stdout)
	}
}

// newLogger builds the logger handed to the scanner. Warnings for
// skipped folders go to stderr so they never mix with the summary.
func newLogger(level string) (logrus.FieldLogger, error) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(parsed)

	return log, nil
}
