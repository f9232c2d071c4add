package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/foldersize/foldersize/internal/scanner"
)

// Template for the self-contained HTML report page.
//
//go:embed assets/report.html.tmpl
var htmlTemplate string

//nolint:gochecknoglobals // Parsed once at startup
var reportTemplate = template.Must(
	template.New("report").Funcs(template.FuncMap{"megabytes": megabytes}).Parse(htmlTemplate),
)

// htmlData is the template context for one report page.
type htmlData struct {
	Root         string
	GeneratedAt  string
	Records      []scanner.FolderRecord
	TotalBytes   uint64
	SkippedPaths []string
	Incomplete   bool
	LogoFile     string
}

// writeHTML renders the HTML report into dir and returns its path.
func writeHTML(result *scanner.ScanResult, dir, base string) (string, error) {
	path := filepath.Join(dir, base+".html")

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating HTML report: %w", err)
	}
	defer file.Close()

	data := htmlData{
		Root:         result.Root,
		GeneratedAt:  time.Now().Format("2006-01-02 15:04:05"),
		Records:      result.Records,
		TotalBytes:   result.TotalBytes,
		SkippedPaths: result.SkippedPaths,
		Incomplete:   result.Incomplete,
		LogoFile:     LogoFileName,
	}

	if err := reportTemplate.Execute(file, data); err != nil {
		return "", fmt.Errorf("rendering HTML report: %w", err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("writing HTML report: %w", err)
	}

	return path, nil
}
