package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "embed"
)

// LogoFileName is the logo asset's filename next to the HTML report.
const LogoFileName = "logo.svg"

//go:embed assets/logo.svg
var logoSVG []byte

// EnsureLogo materializes the embedded logo into dir unless a logo file
// is already present, and returns its path.
func EnsureLogo(dir string) (string, error) {
	path := filepath.Join(dir, LogoFileName)

	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking logo asset: %w", err)
	}

	if err := os.WriteFile(path, logoSVG, 0o644); err != nil {
		return "", fmt.Errorf("writing logo asset: %w", err)
	}

	return path, nil
}
