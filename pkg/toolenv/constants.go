package toolenv

const (
	// MaxStartedCount is the number of granted accesses after which an
	// environment generation stops being handed out.
	MaxStartedCount = 50

	// MaxCacheBytes is the cache directory size above which an environment
	// generation stops being handed out.
	MaxCacheBytes int64 = 500 * 1024 * 1024
)
