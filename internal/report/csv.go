package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/foldersize/foldersize/internal/scanner"
)

// writeCSV renders the CSV report (';' delimited, UTF-8) into dir and
// returns its path.
func writeCSV(result *scanner.ScanResult, dir, base string) (string, error) {
	path := filepath.Join(dir, base+".csv")

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating CSV report: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = ';'

	rows := make([][]string, 0, len(result.Records)+1)
	rows = append(rows, []string{"Folder", "Path", "Size (MB)", "Size (bytes)", "Depth"})

	for _, rec := range result.Records {
		rows = append(rows, []string{
			rec.Name,
			rec.Path,
			megabytes(rec.SizeBytes),
			strconv.FormatUint(rec.SizeBytes, 10),
			strconv.Itoa(rec.Depth),
		})
	}

	if err := writer.WriteAll(rows); err != nil {
		return "", fmt.Errorf("writing CSV report: %w", err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("writing CSV report: %w", err)
	}

	return path, nil
}
