// Package registry implements the pub registry API client used to list
// and resolve package versions before analysis.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-version"

	"github.com/glorpus-work/panakit/pkg/auth"
	"github.com/glorpus-work/panakit/pkg/errors"
	"github.com/glorpus-work/panakit/pkg/model"
)

// DefaultURL is the public pub registry.
const DefaultURL = "https://pub.dev"

const acceptHeader = "application/vnd.pub.v2+json"

// Options configure an HTTPClient.
type Options struct {
	// Timeout bounds each registry request. Zero means no timeout.
	Timeout time.Duration
	// Auth is applied to every request when set.
	Auth auth.Authenticator
	// UserAgent overrides the default request User-Agent.
	UserAgent string
}

// HTTPClient is the registry client backed by the pub hosted API.
type HTTPClient struct {
	baseURL   *url.URL
	client    *http.Client
	auth      auth.Authenticator
	userAgent string
}

// New creates a client for the registry at baseURL. An empty baseURL
// means the public registry.
func New(baseURL string, opts Options) (*HTTPClient, error) {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrRegistryRequest, "invalid registry url %q: %v", baseURL, err)
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "panakit/1.0"
	}
	return &HTTPClient{
		baseURL:   parsed,
		client:    &http.Client{Timeout: opts.Timeout},
		auth:      opts.Auth,
		userAgent: userAgent,
	}, nil
}

// packageDoc mirrors the registry's package listing response.
type packageDoc struct {
	Name     string       `json:"name"`
	Versions []versionDoc `json:"versions"`
}

type versionDoc struct {
	Version       string `json:"version"`
	ArchiveURL    string `json:"archive_url"`
	ArchiveSHA256 string `json:"archive_sha256"`
	Retracted     bool   `json:"retracted"`
}

// ListVersions fetches the version listing for a package.
func (c *HTTPClient) ListVersions(ctx context.Context, name string) ([]*model.PackageVersion, error) {
	if name == "" {
		return nil, errors.Wrap(errors.ErrPackageNotFound, "package name is empty")
	}

	reqURL := c.baseURL.JoinPath("api", "packages", name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), http.NoBody)
	if err != nil {
		return nil, errors.Wrap(errors.ErrRegistryRequest, err.Error())
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.userAgent)
	if c.auth != nil {
		if err := c.auth.Apply(req); err != nil {
			return nil, errors.Wrap(errors.ErrRegistryRequest, err.Error())
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrRegistryRequest, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, errors.Wrap(errors.ErrPackageNotFound, name)
	default:
		return nil, fmt.Errorf("unexpected status %d for %s: %w", resp.StatusCode, name, errors.ErrRegistryRequest)
	}

	var doc packageDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrRegistryRequest, err.Error())
	}

	versions := make([]*model.PackageVersion, 0, len(doc.Versions))
	for _, vd := range doc.Versions {
		pv := &model.PackageVersion{
			Name:          doc.Name,
			Version:       vd.Version,
			ArchiveSHA256: vd.ArchiveSHA256,
			Retracted:     vd.Retracted,
		}
		if vd.ArchiveURL != "" {
			if archiveURL, err := url.Parse(vd.ArchiveURL); err == nil {
				// Private registries may return relative archive paths
				pv.ArchiveURL = c.baseURL.ResolveReference(archiveURL)
			}
		}
		versions = append(versions, pv)
	}
	return versions, nil
}

// Resolve picks the highest non-retracted version matching the ref's
// constraint. With no constraint, prereleases only win when
// includePrereleases is set or no stable version exists.
func (c *HTTPClient) Resolve(ctx context.Context, ref model.PackageRef, includePrereleases bool) (*model.PackageVersion, error) {
	versions, err := c.ListVersions(ctx, ref.Name)
	if err != nil {
		return nil, err
	}

	var constraint version.Constraints
	if ref.VersionConstraint != "" {
		constraint, err = version.NewConstraint(ref.VersionConstraint)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrNoMatchingVersion, "invalid constraint %q", ref.VersionConstraint)
		}
		// A constraint that names a prerelease opts in to prereleases
		if strings.Contains(ref.VersionConstraint, "-") {
			includePrereleases = true
		}
	}

	candidates := make([]*model.PackageVersion, 0, len(versions))
	for _, pv := range versions {
		v := pv.GetVersion()
		if v == nil || pv.Retracted {
			continue
		}
		if constraint != nil && !constraint.Check(v) {
			continue
		}
		candidates = append(candidates, pv)
	}

	best := pickHighest(candidates, includePrereleases)
	if best == nil {
		// Nothing stable matched; a prerelease-only package still resolves
		best = pickHighest(candidates, true)
	}
	if best == nil {
		return nil, errors.Wrapf(errors.ErrNoMatchingVersion, "%s", ref)
	}
	return best, nil
}

func pickHighest(candidates []*model.PackageVersion, includePrereleases bool) *model.PackageVersion {
	filtered := make([]*model.PackageVersion, 0, len(candidates))
	for _, pv := range candidates {
		if !includePrereleases && pv.IsPrerelease() {
			continue
		}
		filtered = append(filtered, pv)
	}
	if len(filtered) == 0 {
		return nil
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].GetVersion().LessThan(filtered[j].GetVersion())
	})
	return filtered[len(filtered)-1]
}
