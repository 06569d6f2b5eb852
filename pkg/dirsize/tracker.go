package dirsize

import (
	"sync"

	"github.com/glorpus-work/panakit/internal/logger"
)

// Tracker remembers the last observed size of each directory and logs a
// delta line whenever a later observation differs. Observations are kept
// for the lifetime of the process; paths whose directories were deleted
// simply stop being observed.
type Tracker struct {
	mu   sync.Mutex
	last map[string]int64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{last: make(map[string]int64)}
}

// Observe records a batch of directory sizes, logging every path whose
// size changed since its previous observation.
func (t *Tracker) Observe(sizes map[string]int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for path, size := range sizes {
		prev, seen := t.last[path]
		if seen && prev != size {
			logger.Debug("Directory size changed", logger.Fields{
				"path": path,
				"old":  FormatBytes(prev),
				"new":  FormatBytes(size),
			})
		}
		t.last[path] = size
	}
}

// Last returns the most recently observed size for path and whether the
// path has been observed at all.
func (t *Tracker) Last(path string) (int64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	size, ok := t.last[path]
	return size, ok
}
