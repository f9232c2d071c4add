// Package scanner measures disk usage of a directory tree.
//
// It walks the tree from an entry point with a depth-bounded pre-order
// traversal, computing the full recursive byte size of every visited
// folder with fastwalk. Emission stops at the configured depth; size
// aggregation never does. Unreadable subtrees are skipped with a warning
// rather than aborting the scan.
package scanner
