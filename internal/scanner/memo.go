package scanner

import (
	"path/filepath"
	"sync"
)

// sizeMemo caches per-directory subtree sums discovered while walking an
// ancestor, so deeper traversal levels reuse them instead of re-walking
// the same files. Directories whose enumeration failed mid-walk are
// remembered as unreadable and never served from the cache; a later
// lookup misses and the caller's own walk surfaces the failure.
type sizeMemo struct {
	mu   sync.Mutex
	sums map[string]uint64
	bad  map[string]struct{}
}

func newSizeMemo() *sizeMemo {
	return &sizeMemo{
		sums: make(map[string]uint64),
		bad:  make(map[string]struct{}),
	}
}

// noteDir registers a directory seen during a walk so empty directories
// still get a cache entry.
func (m *sizeMemo) noteDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sums[dir]; !ok {
		m.sums[dir] = 0
	}
}

// addFile credits one file's bytes to every directory between the file
// and the walk root, inclusive.
func (m *sizeMemo) addFile(root, path string, size uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		m.sums[dir] += size

		if dir == root || dir == filepath.Dir(dir) {
			break
		}
	}
}

// markUnreadable drops a path from the cache permanently.
func (m *sizeMemo) markUnreadable(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sums, path)
	m.bad[path] = struct{}{}
}

// lookup returns a cached subtree sum, missing for directories that were
// never walked or could not be read.
func (m *sizeMemo) lookup(dir string) (uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, unreadable := m.bad[dir]; unreadable {
		return 0, false
	}

	size, ok := m.sums[dir]

	return size, ok
}
