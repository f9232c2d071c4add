package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foldersize/foldersize/internal/scanner"
)

func sampleResult() *scanner.ScanResult {
	return &scanner.ScanResult{
		Root: "/data/projects",
		Records: []scanner.FolderRecord{
			{Name: "alpha", Path: "/data/projects/alpha", SizeBytes: 6291456, Depth: 1},
			{Name: "beta", Path: "/data/projects/alpha/beta", SizeBytes: 3145728, Depth: 2},
			{Name: "gamma", Path: "/data/projects/gamma", SizeBytes: 524288, Depth: 1},
		},
		TotalBytes: 6815744,
		Elapsed:    time.Second,
	}
}

func TestWrite_ProducesTimestampedFiles(t *testing.T) {
	tmpDir := t.TempDir()

	paths, err := Write(sampleResult(), tmpDir)
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^FolderSizeReport_\d{14}\.(html|csv)$`)

	assert.True(t, pattern.MatchString(filepath.Base(paths.HTML)), "unexpected name %q", filepath.Base(paths.HTML))
	assert.True(t, pattern.MatchString(filepath.Base(paths.CSV)), "unexpected name %q", filepath.Base(paths.CSV))

	for _, path := range []string{paths.HTML, paths.CSV, paths.Logo} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestWrite_HTMLContainsRecords(t *testing.T) {
	tmpDir := t.TempDir()

	paths, err := Write(sampleResult(), tmpDir)
	require.NoError(t, err)

	content, err := os.ReadFile(paths.HTML)
	require.NoError(t, err)

	page := string(content)

	assert.Contains(t, page, "/data/projects/alpha/beta")
	assert.Contains(t, page, "6.00", "alpha's size in MB with 2 decimals")
	assert.Contains(t, page, "3145728")
	assert.Contains(t, page, `src="logo.svg"`)
	assert.Contains(t, page, "<script>", "sortable table needs its script inline")
	assert.NotContains(t, page, "this report is partial")
}

func TestWrite_HTMLFlagsIncompleteScans(t *testing.T) {
	tmpDir := t.TempDir()

	result := sampleResult()
	result.Incomplete = true
	result.SkippedPaths = []string{"/data/projects/locked"}

	paths, err := Write(result, tmpDir)
	require.NoError(t, err)

	content, err := os.ReadFile(paths.HTML)
	require.NoError(t, err)

	assert.Contains(t, string(content), "this report is partial")
	assert.Contains(t, string(content), "/data/projects/locked")
}

func TestWrite_CSVRoundTrips(t *testing.T) {
	tmpDir := t.TempDir()

	paths, err := Write(sampleResult(), tmpDir)
	require.NoError(t, err)

	file, err := os.Open(paths.CSV)
	require.NoError(t, err)
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'

	rows, err := reader.ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 4, "header plus one row per record")
	assert.Equal(t, []string{"Folder", "Path", "Size (MB)", "Size (bytes)", "Depth"}, rows[0])
	assert.Equal(t, []string{"alpha", "/data/projects/alpha", "6.00", "6291456", "1"}, rows[1])
	assert.Equal(t, []string{"gamma", "/data/projects/gamma", "0.50", "524288", "1"}, rows[3])
}

func TestWrite_CreatesOutputDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "reports", "nightly")

	_, err := Write(sampleResult(), nested)
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWrite_FailsOnUnwritableDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	// A file where the output directory should be.
	blocked := filepath.Join(tmpDir, "occupied")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	_, err := Write(sampleResult(), blocked)
	require.Error(t, err)
}

func TestEnsureLogo_KeepsExistingFile(t *testing.T) {
	tmpDir := t.TempDir()

	custom := []byte("<svg>custom</svg>")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, LogoFileName), custom, 0o644))

	path, err := EnsureLogo(tmpDir)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, content, "an existing logo must not be overwritten")
}

func TestMegabytes(t *testing.T) {
	assert.Equal(t, "0.00", megabytes(0))
	assert.Equal(t, "1.00", megabytes(1048576))
	assert.Equal(t, "1.50", megabytes(1572864))
	assert.Equal(t, "1024.00", megabytes(1073741824))
}

func TestHTMLEscapesRecordFields(t *testing.T) {
	tmpDir := t.TempDir()

	result := &scanner.ScanResult{
		Root: "/tmp",
		Records: []scanner.FolderRecord{
			{Name: "<b>bold</b>", Path: "/tmp/<b>bold</b>", SizeBytes: 1, Depth: 1},
		},
		TotalBytes: 1,
	}

	paths, err := Write(result, tmpDir)
	require.NoError(t, err)

	content, err := os.ReadFile(paths.HTML)
	require.NoError(t, err)

	assert.False(t, strings.Contains(string(content), "<b>bold</b>"), "record fields must be HTML-escaped")
}
