package scanner

import (
	"io/fs"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// sizeSubtree returns the sum of all regular file sizes under dir,
// recursively with no depth limit. A file whose size cannot be read
// contributes zero bytes. The returned error is non-nil only when dir
// itself cannot be enumerated; deeper enumeration failures lose that
// branch's bytes but do not fail the sum.
//
// When progress is non-nil, every file's bytes are added to it as the
// walk discovers them. When memo is non-nil, the walk records the sums
// of every directory it passes through so deeper traversal levels need
// no walk of their own.
func sizeSubtree(dir string, log logrus.FieldLogger, progress *tally, memo *sizeMemo) (uint64, error) {
	var total atomic.Uint64

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	err := fastwalk.Walk(conf, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				// The subtree root itself is unreadable.
				return err
			}

			if memo != nil {
				memo.markUnreadable(path)
			}

			log.WithField("path", path).WithError(err).Debug("unreadable entry counted as zero bytes")

			return nil
		}

		if d.IsDir() {
			if memo != nil && path != dir {
				memo.noteDir(path)
			}

			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			log.WithField("path", path).WithError(err).Debug("file size unavailable, counted as zero bytes")

			return nil //nolint:nilerr // Per-file failures degrade the sum, not the scan
		}

		size := uint64(info.Size()) //nolint:gosec // Regular file sizes are non-negative
		total.Add(size)

		if progress != nil {
			progress.addBytes(info.Size())
		}

		if memo != nil {
			memo.addFile(dir, path, size)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return total.Load(), nil
}

// sizedDir is one subdirectory with its computed subtree size.
type sizedDir struct {
	name string
	path string
	size uint64
	err  error
}

// sizeAll computes subtree sizes for a batch of sibling directories,
// at most limit at a time. Directories already covered by an ancestor's
// walk are served from memo without touching the filesystem. Results
// keep the input order regardless of completion order, and one
// directory's failure never cancels its siblings.
func sizeAll(dirs []sizedDir, limit int, log logrus.FieldLogger, progress *tally, memo *sizeMemo) {
	group := new(errgroup.Group)
	group.SetLimit(limit)

	for i := range dirs {
		i := i
		group.Go(func() error {
			if memo != nil {
				if size, ok := memo.lookup(dirs[i].path); ok {
					dirs[i].size = size

					return nil
				}
			}

			dirs[i].size, dirs[i].err = sizeSubtree(dirs[i].path, log, progress, memo)

			return nil
		})
	}

	// Workers never return errors, so Wait only synchronizes.
	_ = group.Wait()
}
