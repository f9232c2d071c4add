package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/foldersize/foldersize/internal/report"
	"github.com/foldersize/foldersize/internal/scanner"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON outputs the scan result in JSON format.
func PrintJSON(result *scanner.ScanResult, writer io.Writer) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs the scan result in human-readable table format,
// indented by folder depth.
func PrintTable(result *scanner.ScanResult, paths report.Paths, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "\nFolders under %s:\t\t\n", result.Root)

	for _, rec := range result.Records {
		indent := strings.Repeat("  ", rec.Depth)
		fmt.Fprintf(w, "  %s%s\t%s\t(%d bytes)\n",
			indent, rec.Name, humanize.IBytes(rec.SizeBytes), rec.SizeBytes)
	}

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Folders reported:\t%d\n", len(result.Records))
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n",
		humanize.IBytes(result.TotalBytes), result.TotalBytes)

	if len(result.SkippedPaths) > 0 {
		fmt.Fprintf(w, "Skipped (unreadable):\t%d\n", len(result.SkippedPaths))
	}

	if result.Incomplete {
		fmt.Fprintln(w, "Scan cancelled:\tresult is partial")
	}

	if paths.HTML != "" {
		fmt.Fprintf(w, "HTML report:\t%s\n", paths.HTML)
		fmt.Fprintf(w, "CSV report:\t%s\n", paths.CSV)
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", result.Elapsed)

	return w.Flush()
}
