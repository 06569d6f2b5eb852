// Package dirsize measures the on-disk footprint of directory trees.
package dirsize

import (
	"fmt"
	"os"
	"path/filepath"
)

// FSScanner implements Scanner against the real filesystem.
type FSScanner struct{}

// NewScanner creates a new filesystem scanner.
func NewScanner() *FSScanner {
	return &FSScanner{}
}

// Scan returns the total size in bytes of all regular files under dir.
// Files and directories that disappear or turn unreadable mid-walk are
// skipped rather than failing the whole scan; their bytes count as zero.
func (s *FSScanner) Scan(dir string) int64 {
	var total int64

	_ = filepath.Walk(dir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			// Unreadable or vanished entries contribute nothing
			return nil
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})

	return total
}

// ScanTree walks root once and returns the aggregate size of every
// directory in the tree, keyed by path. Each file's size is attributed to
// all of its ancestor directories up to and including root.
func (s *FSScanner) ScanTree(root string) map[string]int64 {
	sizes := make(map[string]int64)

	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if _, ok := sizes[path]; !ok {
				sizes[path] = 0
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
			sizes[dir] += info.Size()
			if dir == root || dir == filepath.Dir(dir) {
				break
			}
		}
		return nil
	})

	return sizes
}

// FormatBytes converts bytes to a human-readable string.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"K", "M", "G", "T", "P", "E"}
	if exp < len(units) {
		return fmt.Sprintf("%.1f %sB", float64(bytes)/float64(div), units[exp])
	}
	return fmt.Sprintf("%d B", bytes)
}
