package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// tally tracks running counters shared with the progress reporter.
type tally struct {
	mu      sync.Mutex
	folders int64
	bytes   int64
}

func (t *tally) addFolders(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.folders += n
}

func (t *tally) addBytes(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bytes += n
}

func (t *tally) snapshot() (folders, bytes int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.folders, t.bytes
}

// startProgressReporter invokes hook(folders, bytes) on each tick until ctx is done.
func startProgressReporter(ctx context.Context, counters *tally, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(counters.snapshot())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// frame is one folder whose record is pending emission, together with
// its already computed subtree size.
type frame struct {
	sizedDir
	depth int
}

// Scan walks the tree at opt.Path and returns one record per folder
// reachable within opt.MaxDepth, in pre-order with siblings sorted by
// name. Each record carries the folder's full recursive byte size,
// computed without any depth limit.
//
// Unreadable directories are logged, listed in SkippedPaths, and
// skipped without a record; the rest of the scan continues. Only option
// validation failures return an error.
//
// Cancelling ctx stops the traversal between folders; the records
// gathered so far are returned with Incomplete set, not an error.
// Progress updates are sent to progressHook if provided.
func Scan(ctx context.Context, opt Options, progressHook func(folders, bytes int64)) (*ScanResult, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}

	log := opt.Logger
	start := time.Now()

	result := &ScanResult{Root: opt.Path}

	// Child context to ensure progress reporter cleanup.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	counters := &tally{}
	startProgressReporter(ctx, counters, progressHook, opt.ProgressInterval)

	emit := func(rec FolderRecord) {
		result.Records = append(result.Records, rec)
		counters.addFolders(1)
	}

	skip := func(path string, cause error) {
		log.WithField("path", path).WithError(cause).Warn("skipping unreadable directory")
		result.SkippedPaths = append(result.SkippedPaths, path)
	}

	// The entry point's direct files are summed from its own listing, so
	// the root summary and the grand total need no extra walk.
	rootDirs, rootFileBytes, err := listChildren(opt.Path, log)
	if err != nil {
		skip(opt.Path, err)
		result.Elapsed = time.Since(start)

		return result, nil
	}

	counters.addBytes(int64(rootFileBytes)) //nolint:gosec // File sums fit in int64

	// The depth-1 walks record every deeper directory's sum in the memo,
	// so expanding lower levels re-reads no file.
	memo := newSizeMemo()

	children := toSized(opt.Path, rootDirs)
	sizeAll(children, opt.Concurrency, log, counters, memo)

	total := rootFileBytes

	for i := range children {
		if children[i].err == nil {
			total += children[i].size
		}
	}

	result.TotalBytes = total

	switch opt.RootSummary {
	case RootSummaryFilesOnly:
		emit(FolderRecord{
			Name:      filepath.Base(opt.Path),
			Path:      opt.Path,
			SizeBytes: rootFileBytes,
			Depth:     0,
		})
	case RootSummaryFull:
		emit(FolderRecord{
			Name:      filepath.Base(opt.Path),
			Path:      opt.Path,
			SizeBytes: total,
			Depth:     0,
		})
	case RootSummaryOmit:
	}

	// Explicit stack instead of recursion: pathological tree depth must
	// not grow the call stack, and cancellation checks slot in between
	// iterations. Children are pushed in reverse so pops come out in
	// sorted pre-order.
	stack := pushFrames(nil, children, 1, skip)

	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			result.Incomplete = true
			result.Elapsed = time.Since(start)

			return result, nil
		default:
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		emit(FolderRecord{
			Name:      top.name,
			Path:      top.path,
			SizeBytes: top.size,
			Depth:     top.depth,
		})

		if top.depth >= opt.MaxDepth {
			continue
		}

		dirs, _, err := listChildren(top.path, log)
		if err != nil {
			// The folder was sized and emitted, but its children cannot
			// be visited (listing raced with a permission or deletion
			// change).
			skip(top.path, err)

			continue
		}

		kids := toSized(top.path, dirs)
		// Bytes were already counted when the depth-1 ancestor was
		// sized, so deeper sizing passes nil progress.
		sizeAll(kids, opt.Concurrency, log, nil, memo)

		stack = pushFrames(stack, kids, top.depth+1, skip)
	}

	result.Elapsed = time.Since(start)

	return result, nil
}

// listChildren enumerates one directory, returning its subdirectories
// (sorted by name, as os.ReadDir guarantees) and the summed size of its
// direct regular files. A file whose size cannot be read counts as zero.
func listChildren(dir string, log logrus.FieldLogger) ([]fs.DirEntry, uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("listing %q: %w", dir, err)
	}

	var (
		dirs      []fs.DirEntry
		fileBytes uint64
	)

	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry)

			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			log.WithField("path", filepath.Join(dir, entry.Name())).Debug("file size unavailable, counted as zero bytes")

			continue
		}

		fileBytes += uint64(info.Size()) //nolint:gosec // Regular file sizes are non-negative
	}

	return dirs, fileBytes, nil
}

// toSized prepares a sizing batch for the subdirectories of parent.
func toSized(parent string, dirs []fs.DirEntry) []sizedDir {
	out := make([]sizedDir, len(dirs))

	for i, d := range dirs {
		out[i] = sizedDir{
			name: d.Name(),
			path: filepath.Join(parent, d.Name()),
		}
	}

	return out
}

// pushFrames reports failed siblings in sorted order, then pushes the
// readable ones onto the stack in reverse so they pop in sorted order.
func pushFrames(stack []frame, dirs []sizedDir, depth int, skip func(string, error)) []frame {
	for i := range dirs {
		if dirs[i].err != nil {
			skip(dirs[i].path, dirs[i].err)
		}
	}

	for i := len(dirs) - 1; i >= 0; i-- {
		if dirs[i].err != nil {
			continue
		}

		stack = append(stack, frame{sizedDir: dirs[i], depth: depth})
	}

	return stack
}
