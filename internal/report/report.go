// Package report renders scan results as timestamped HTML and CSV files.
//
// The HTML report is a single self-contained page with a sortable table;
// the CSV uses ';' as its field delimiter. Both are written into an
// output directory together with the embedded logo asset the HTML page
// references.
package report

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/foldersize/foldersize/internal/scanner"
)

const (
	// baseNamePrefix starts every generated report filename.
	baseNamePrefix = "FolderSizeReport_"
	// timestampLayout is the filename timestamp format (YYYYMMDDHHmmss).
	timestampLayout = "20060102150405"
)

// Paths lists the files produced by one report run.
type Paths struct {
	HTML string
	CSV  string
	Logo string
}

// Write renders result into dir, creating it if necessary, and returns
// the generated file paths. Failures here are fatal to report generation
// only; the scan result itself is never touched.
func Write(result *scanner.ScanResult, dir string) (Paths, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("creating output directory %q: %w", dir, err)
	}

	logo, err := EnsureLogo(dir)
	if err != nil {
		return Paths{}, err
	}

	base := baseNamePrefix + time.Now().Format(timestampLayout)

	paths := Paths{Logo: logo}

	paths.HTML, err = writeHTML(result, dir, base)
	if err != nil {
		return Paths{}, err
	}

	paths.CSV, err = writeCSV(result, dir, base)
	if err != nil {
		return Paths{}, err
	}

	return paths, nil
}

// megabytes renders a byte count as MB (power-of-1024) with 2 decimals.
func megabytes(bytes uint64) string {
	return strconv.FormatFloat(float64(bytes)/(1<<20), 'f', 2, 64)
}
