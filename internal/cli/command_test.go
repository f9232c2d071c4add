package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foldersize/foldersize/internal/scanner"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()

	cmd := New("test").newCommand()
	cmd.SetArgs(args)
	cmd.SetOut(os.Stderr)

	return cmd.Execute()
}

func TestCommand_RejectsInvalidDepth(t *testing.T) {
	err := execute(t, "--quiet", "--no-report", "--depth", "0", t.TempDir())
	require.ErrorIs(t, err, scanner.ErrInvalidDepth)
}

func TestCommand_RejectsInvalidFormat(t *testing.T) {
	err := execute(t, "--quiet", "--format", "yaml", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestCommand_RejectsInvalidLogLevel(t *testing.T) {
	err := execute(t, "--quiet", "--log-level", "loud", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestCommand_RejectsInvalidRootSummary(t *testing.T) {
	err := execute(t, "--quiet", "--no-report", "--root-summary", "everything", t.TempDir())
	require.ErrorIs(t, err, scanner.ErrInvalidRootSummary)
}

func TestCommand_WritesReports(t *testing.T) {
	tree := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "reports")

	require.NoError(t, os.MkdirAll(filepath.Join(tree, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tree, "docs", "a.txt"), []byte("hello"), 0o644))

	require.NoError(t, execute(t, "--quiet", "--depth", "1", "--out", outDir, tree))

	html, err := filepath.Glob(filepath.Join(outDir, "FolderSizeReport_*.html"))
	require.NoError(t, err)
	assert.Len(t, html, 1)

	csvFiles, err := filepath.Glob(filepath.Join(outDir, "FolderSizeReport_*.csv"))
	require.NoError(t, err)
	assert.Len(t, csvFiles, 1)

	_, err = os.Stat(filepath.Join(outDir, "logo.svg"))
	assert.NoError(t, err)
}

func TestCommand_NoReportSkipsFiles(t *testing.T) {
	tree := t.TempDir()
	outDir := t.TempDir()

	require.NoError(t, execute(t, "--quiet", "--no-report", "--out", outDir, tree))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
