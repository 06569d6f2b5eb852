//go:generate mockgen -destination=./mocks/dirsize.go . Scanner
package dirsize

// Scanner reports how many bytes a directory tree occupies on disk.
type Scanner interface {
	// Scan returns the total size in bytes of all regular files under dir.
	// A missing directory counts as zero. Unreadable entries are skipped,
	// so the result may undercount but a scan never fails.
	Scan(dir string) int64

	// ScanTree returns the aggregate size of every directory under root,
	// keyed by directory path, in a single pass. The root itself is included.
	ScanTree(root string) map[string]int64
}
