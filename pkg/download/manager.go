// Package download fetches package archives over HTTP into the local
// archive cache.
package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glorpus-work/panakit/pkg/auth"
	pkgerrors "github.com/glorpus-work/panakit/pkg/errors"
	"github.com/glorpus-work/panakit/pkg/fsutil"
)

// ManagerImpl is a simple HTTP-based download manager with checksum
// verification and reuse of already verified files. It is intentionally
// minimal; retries and mirror selection can be layered on later.
type ManagerImpl struct {
	client    *http.Client
	auth      auth.Authenticator
	userAgent string
}

// NewManager creates a download manager with the given timeout and user
// agent. The authenticator may be nil for public registries.
func NewManager(timeout time.Duration, userAgent string, authenticator auth.Authenticator) *ManagerImpl {
	if userAgent == "" {
		userAgent = "panakit/1.0"
	}
	return &ManagerImpl{
		client:    &http.Client{Timeout: timeout},
		auth:      authenticator,
		userAgent: userAgent,
	}
}

// Fetch downloads a single item and returns the path to the downloaded file.
func (m *ManagerImpl) Fetch(ctx context.Context, item Item, opts Options) (string, error) {
	if opts.Dir == "" || !filepath.IsAbs(opts.Dir) {
		return "", fmt.Errorf("download dir must be absolute: %s: %w", opts.Dir, pkgerrors.ErrInvalidPath)
	}
	if item.URL == nil {
		return "", fmt.Errorf("nil URL: %w", pkgerrors.ErrDownloadFailed)
	}
	if err := os.MkdirAll(opts.Dir, fsutil.DirModeSecure); err != nil {
		return "", pkgerrors.Wrap(err, "could not create download dir")
	}

	absPath := filepath.Join(opts.Dir, selectFilename(item))
	if reuse, ok := tryReuseExisting(absPath, item.Checksum); ok {
		return reuse, nil
	}

	resp, err := m.doRequest(ctx, item)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	tmpPath, err := writeBodyToTemp(resp, absPath)
	if err != nil {
		return "", err
	}
	if item.Checksum != "" {
		ok, err := verifySHA256(tmpPath, item.Checksum)
		if err != nil {
			return "", err
		}
		if !ok {
			_ = os.Remove(tmpPath)
			return "", fmt.Errorf("%s: %w", item.URL, pkgerrors.ErrChecksumMismatch)
		}
	}
	if err := finalizeFile(tmpPath, absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

func selectFilename(item Item) string {
	if item.Filename != "" {
		return item.Filename
	}
	if item.Checksum != "" {
		return item.Checksum
	}
	h := sha256.Sum256([]byte(item.URL.String()))
	return hex.EncodeToString(h[:])
}

func tryReuseExisting(absPath, checksum string) (string, bool) {
	if st, err := os.Stat(absPath); err == nil && st.Size() > 0 {
		if checksum == "" {
			return absPath, true
		}
		ok, err := verifySHA256(absPath, checksum)
		if err == nil && ok {
			return absPath, true
		}
	}
	return "", false
}

func (m *ManagerImpl) doRequest(ctx context.Context, item Item) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.URL.String(), http.NoBody)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", m.userAgent)
	if m.auth != nil {
		if err := m.auth.Apply(req); err != nil {
			return nil, pkgerrors.Wrap(err, "failed to authenticate request")
		}
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "download failed")
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d: %w", resp.StatusCode, pkgerrors.ErrDownloadFailed)
	}
	return resp, nil
}

func writeBodyToTemp(resp *http.Response, absPath string) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(absPath), "dl-*.tmp")
	if err != nil {
		return "", pkgerrors.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return "", pkgerrors.Wrap(err, "could not write file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", pkgerrors.Wrap(err, "could not sync file")
	}
	if err := tmp.Close(); err != nil {
		return "", pkgerrors.Wrap(err, "could not close file")
	}
	return tmpPath, nil
}

func finalizeFile(tmpPath, absPath string) error {
	if err := fsutil.Move(tmpPath, absPath); err != nil {
		return pkgerrors.Wrap(err, "could not finalize file")
	}
	if err := os.Chmod(absPath, fsutil.FileModeSecure); err != nil {
		return pkgerrors.Wrap(err, "could not set permissions")
	}
	return nil
}

func verifySHA256(path string, wantHex string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, pkgerrors.Wrap(err, "open for checksum")
	}
	defer func() { _ = f.Close() }()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return false, pkgerrors.Wrap(err, "hashing")
	}
	got := hex.EncodeToString(h.Sum(nil))
	return got == strings.ToLower(strings.TrimSpace(wantHex)), nil
}
