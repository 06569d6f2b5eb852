// Package testutil carries helpers shared by unit and integration tests:
// fake SDK installations and a fake pub registry server.
package testutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/glorpus-work/panakit/pkg/archive"
)

// RegistryServer is an in-process pub registry for tests. It serves the
// version-listing API and the package archives registered on it.
type RegistryServer struct {
	URL string

	server   *httptest.Server
	mu       sync.Mutex
	packages map[string][]registryVersion
	archives map[string][]byte
}

type registryVersion struct {
	Version       string `json:"version"`
	ArchiveURL    string `json:"archive_url"`
	ArchiveSHA256 string `json:"archive_sha256"`
	Retracted     bool   `json:"retracted,omitempty"`
}

// NewRegistryServer starts a fake registry that shuts down with the test.
func NewRegistryServer(t *testing.T) *RegistryServer {
	t.Helper()

	rs := &RegistryServer{
		packages: make(map[string][]registryVersion),
		archives: make(map[string][]byte),
	}
	rs.server = httptest.NewServer(http.HandlerFunc(rs.handle))
	rs.URL = rs.server.URL
	t.Cleanup(rs.server.Close)
	return rs
}

// AddPackage publishes a package version whose archive contains the
// given files (paths relative to the package root).
func (rs *RegistryServer) AddPackage(t *testing.T, name, version string, files map[string]string) {
	t.Helper()

	src := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(src, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create package directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write package file %s: %v", rel, err)
		}
	}

	archivePath := filepath.Join(t.TempDir(), fmt.Sprintf("%s-%s.tar.gz", name, version))
	if err := archive.NewManager().Create(context.Background(), src, archivePath); err != nil {
		t.Fatalf("Failed to create package archive: %v", err)
	}
	data, err := os.ReadFile(archivePath)
	if err != nil {
		t.Fatalf("Failed to read package archive: %v", err)
	}

	sum := sha256.Sum256(data)
	archiveName := fmt.Sprintf("%s-%s.tar.gz", name, version)

	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.archives[archiveName] = data
	rs.packages[name] = append(rs.packages[name], registryVersion{
		Version:       version,
		ArchiveURL:    "/archives/" + archiveName,
		ArchiveSHA256: hex.EncodeToString(sum[:]),
	})
}

func (rs *RegistryServer) handle(w http.ResponseWriter, r *http.Request) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if name, ok := pathSuffix(r.URL.Path, "/api/packages/"); ok {
		versions, exists := rs.packages[name]
		if !exists {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.pub.v2+json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"name":     name,
			"versions": versions,
		})
		return
	}

	if archiveName, ok := pathSuffix(r.URL.Path, "/archives/"); ok {
		data, exists := rs.archives[archiveName]
		if !exists {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(data)
		return
	}

	http.NotFound(w, r)
}

func pathSuffix(path, prefix string) (string, bool) {
	if len(path) > len(prefix) && path[:len(prefix)] == prefix {
		return path[len(prefix):], true
	}
	return "", false
}
