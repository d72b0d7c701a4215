package resource

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

// Fetcher retrieves resources by URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (body []byte, contentType string, err error)
}

type cached struct {
	body        []byte
	contentType string
}

// DefaultFetcher reads local files and fetches http(s) URLs. Successful
// HTTP responses are cached in memory for the configured TTL.
type DefaultFetcher struct {
	client    *http.Client
	userAgent string
	cache     *cache.Cache
}

// NewFetcher creates a DefaultFetcher. A ttl of zero disables caching.
func NewFetcher(timeout, ttl time.Duration, userAgent string) *DefaultFetcher {
	f := &DefaultFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
	if ttl > 0 {
		f.cache = cache.New(ttl, 2*ttl)
	}
	return f
}

// Fetch retrieves the resource at uri, which is an http(s) URL, a file://
// URL or a plain path.
func (f *DefaultFetcher) Fetch(ctx context.Context, uri string) ([]byte, string, error) {
	if IsNetworkURL(uri) {
		return f.fetchHTTP(ctx, uri)
	}
	return f.readFile(uri)
}

func (f *DefaultFetcher) fetchHTTP(ctx context.Context, uri string) ([]byte, string, error) {
	if f.cache != nil {
		if hit, ok := f.cache.Get(uri); ok {
			c := hit.(cached)
			return c.body, c.contentType, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, "", errors.Wrap(err, "creating request")
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", errors.Wrapf(err, "fetching %s", uri)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", errors.Errorf("HTTP %d fetching %s", resp.StatusCode, uri)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", errors.Wrap(err, "reading response body")
	}
	contentType := resp.Header.Get("Content-Type")
	if f.cache != nil {
		f.cache.SetDefault(uri, cached{body: body, contentType: contentType})
	}
	return body, contentType, nil
}

func (f *DefaultFetcher) readFile(uri string) ([]byte, string, error) {
	path := uri
	if strings.HasPrefix(uri, "file://") {
		u, err := url.Parse(uri)
		if err != nil {
			return nil, "", errors.Wrapf(err, "parsing %s", uri)
		}
		path = u.Path
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errors.Wrapf(err, "reading %s", path)
	}
	return body, mime.TypeByExtension(filepath.Ext(path)), nil
}

// ResolveURL resolves a possibly-relative reference against a base.
// Local base paths resolve against their directory.
func ResolveURL(base, ref string) string {
	if base == "" || IsNetworkURL(ref) || strings.HasPrefix(ref, "file://") {
		return ref
	}
	if !IsNetworkURL(base) && !strings.HasPrefix(base, "file://") {
		if filepath.IsAbs(ref) {
			return ref
		}
		return filepath.Join(filepath.Dir(base), ref)
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// IsNetworkURL returns true if the string looks like an HTTP or HTTPS URL.
func IsNetworkURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
