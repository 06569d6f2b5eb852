package registry_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/panakit/pkg/auth"
	"github.com/glorpus-work/panakit/pkg/errors"
	"github.com/glorpus-work/panakit/pkg/model"
	"github.com/glorpus-work/panakit/pkg/registry"
)

const httpDoc = `{
	"name": "http",
	"versions": [
		{"version": "0.13.6", "archive_url": "/archives/http-0.13.6.tar.gz", "archive_sha256": "aaaa"},
		{"version": "1.1.0", "archive_url": "/archives/http-1.1.0.tar.gz", "archive_sha256": "bbbb"},
		{"version": "1.2.0", "archive_url": "/archives/http-1.2.0.tar.gz", "archive_sha256": "cccc"},
		{"version": "1.2.1", "archive_url": "/archives/http-1.2.1.tar.gz", "archive_sha256": "dddd", "retracted": true},
		{"version": "1.3.0-beta.1", "archive_url": "/archives/http-1.3.0-beta.1.tar.gz", "archive_sha256": "eeee"}
	]
}`

func newTestRegistry(t *testing.T) (*httptest.Server, *registry.HTTPClient) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/packages/http":
			w.Header().Set("Content-Type", "application/vnd.pub.v2+json")
			fmt.Fprint(w, httpDoc)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	client, err := registry.New(server.URL, registry.Options{})
	require.NoError(t, err)
	return server, client
}

func TestListVersions(t *testing.T) {
	server, client := newTestRegistry(t)

	versions, err := client.ListVersions(context.Background(), "http")
	require.NoError(t, err)
	require.Len(t, versions, 5)

	assert.Equal(t, "http", versions[0].Name)
	assert.Equal(t, "0.13.6", versions[0].Version)
	assert.Equal(t, "aaaa", versions[0].ArchiveSHA256)
	// Relative archive URLs resolve against the registry base
	assert.Equal(t, server.URL+"/archives/http-0.13.6.tar.gz", versions[0].ArchiveURL.String())
	assert.True(t, versions[3].Retracted)
}

func TestListVersionsNotFound(t *testing.T) {
	_, client := newTestRegistry(t)

	_, err := client.ListVersions(context.Background(), "no-such-package")
	assert.ErrorIs(t, err, errors.ErrPackageNotFound)
}

func TestListVersionsAppliesAuth(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, httpDoc)
	}))
	defer server.Close()

	client, err := registry.New(server.URL, registry.Options{Auth: auth.TokenAuth{Token: "sekrit"}})
	require.NoError(t, err)

	_, err = client.ListVersions(context.Background(), "http")
	require.NoError(t, err)
	assert.Equal(t, "Bearer sekrit", gotAuth)
}

func TestResolve(t *testing.T) {
	_, client := newTestRegistry(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		ref         model.PackageRef
		prereleases bool
		want        string
		wantErr     error
	}{
		{
			name: "latest stable by default",
			ref:  model.PackageRef{Name: "http"},
			want: "1.2.0",
		},
		{
			name:        "latest prerelease when opted in",
			ref:         model.PackageRef{Name: "http"},
			prereleases: true,
			want:        "1.3.0-beta.1",
		},
		{
			name: "constraint picks highest match",
			ref:  model.PackageRef{Name: "http", VersionConstraint: "< 1.2.0"},
			want: "1.1.0",
		},
		{
			name: "prerelease constraint opts in",
			ref:  model.PackageRef{Name: "http", VersionConstraint: ">= 1.3.0-beta.1"},
			want: "1.3.0-beta.1",
		},
		{
			name:    "retracted versions never win",
			ref:     model.PackageRef{Name: "http", VersionConstraint: "= 1.2.1"},
			wantErr: errors.ErrNoMatchingVersion,
		},
		{
			name:    "no match",
			ref:     model.PackageRef{Name: "http", VersionConstraint: ">= 9.0.0"},
			wantErr: errors.ErrNoMatchingVersion,
		},
		{
			name:    "invalid constraint",
			ref:     model.PackageRef{Name: "http", VersionConstraint: "not-a-constraint"},
			wantErr: errors.ErrNoMatchingVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pv, err := client.Resolve(ctx, tt.ref, tt.prereleases)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, pv.Version)
		})
	}
}
