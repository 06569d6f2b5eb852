//go:generate mockgen -destination=./mocks/download.go . Manager
package download

import (
	"context"
	"net/url"
)

// Manager downloads package archives into the local archive cache with
// integrity verification, replacing ad-hoc HTTP fetching with a testable
// API.
type Manager interface {
	// Fetch downloads a single item to a deterministic location inside
	// opts.Dir and returns the absolute local file path. An already
	// present file with a matching checksum is reused without a request.
	Fetch(ctx context.Context, item Item, opts Options) (string, error)
}

// Item represents one remote archive to download.
type Item struct {
	ID       string   // stable identifier (e.g., "http-1.2.0")
	URL      *url.URL // source URL to download
	Checksum string   // optional hex-encoded SHA-256 checksum; verified when set
	Filename string   // optional preferred filename; derived when empty
}

// Options control the behavior of the download manager.
type Options struct {
	Dir string // destination directory (cache). Must be absolute.
}
