package scanner

import "time"

// FolderRecord describes the cumulative size of one directory.
type FolderRecord struct {
	// Name is the directory's base name.
	Name string `json:"name"`
	// Path is the directory's absolute path.
	Path string `json:"path"`
	// SizeBytes is the sum of all file sizes under the directory,
	// recursively and without any depth limit.
	SizeBytes uint64 `json:"size_bytes"`
	// Depth is the directory's distance from the entry point
	// (entry point = 0, its immediate subdirectories = 1).
	Depth int `json:"depth"`
}

// ScanResult is the ordered output of one scan invocation.
// Records appear in pre-order: a folder before its subfolders,
// siblings sorted by name.
type ScanResult struct {
	// Root is the absolute path of the scanned entry point.
	Root string `json:"root"`
	// Records lists every emitted folder in traversal order.
	Records []FolderRecord `json:"records"`
	// TotalBytes is the full recursive size of the entry point,
	// including its direct files.
	TotalBytes uint64 `json:"total_bytes"`
	// SkippedPaths lists directories that could not be read and
	// were excluded from the result. A path can appear both here and
	// in Records when its size was computed but its child listing
	// then failed mid-scan; the record stays, its subtree does not.
	SkippedPaths []string `json:"skipped_paths,omitempty"`
	// Incomplete is set when the scan was cancelled before visiting
	// every folder within the depth bound.
	Incomplete bool `json:"incomplete"`
	// Elapsed is the total scan duration.
	Elapsed time.Duration `json:"elapsed"`
}
