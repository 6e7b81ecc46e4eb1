/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"bennypowers.dev/tincture/internal/version"
)

const (
	// DefaultTimeout is the maximum time to wait for a network fetch.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxSize is the maximum allowed response size (10 MB).
	DefaultMaxSize int64 = 10 * 1024 * 1024
)

var (
	// ErrUnauthorized indicates the server refused the request, usually a
	// private sync repository fetched without a token.
	ErrUnauthorized = errors.New("not authorized to fetch export")

	// ErrNotExport indicates the server answered with a web page rather
	// than the export file, e.g. a sign-in page or a repository's blob view.
	ErrNotExport = errors.New("response is not a token export")
)

// IsRemote reports whether input is an http(s) URL rather than a path.
func IsRemote(input string) bool {
	return strings.HasPrefix(input, "https://") || strings.HasPrefix(input, "http://")
}

// Fetcher fetches an export from a URL, e.g. a raw file in the design
// repository that Tokens Studio syncs to.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches exports over HTTP with size limiting.
type HTTPFetcher struct {
	maxSize   int64
	client    *http.Client
	authToken string
}

// FetchOption configures an HTTPFetcher.
type FetchOption func(*HTTPFetcher)

// WithAuthToken sends token as a bearer credential. An empty token
// sends none.
func WithAuthToken(token string) FetchOption {
	return func(f *HTTPFetcher) { f.authToken = token }
}

// WithClient replaces the default HTTP client.
func WithClient(client *http.Client) FetchOption {
	return func(f *HTTPFetcher) { f.client = client }
}

// NewHTTPFetcher creates an HTTPFetcher with the given maximum response size.
func NewHTTPFetcher(maxSize int64, opts ...FetchOption) *HTTPFetcher {
	f := &HTTPFetcher{
		maxSize: maxSize,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the export at url. JSON and YAML bodies are accepted
// under any content type except HTML.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, text/plain;q=0.5")
	if f.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+f.authToken)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("timeout fetching %s: %w", url, err)
		}
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		hint := "set TINCTURE_AUTH_TOKEN"
		if f.authToken != "" {
			hint = "check TINCTURE_AUTH_TOKEN"
		}
		return nil, fmt.Errorf("%w: %s: %s (%s)", ErrUnauthorized, url, resp.Status, hint)
	default:
		return nil, fmt.Errorf("fetching %s: %s", url, resp.Status)
	}

	if isHTML(resp.Header.Get("Content-Type")) {
		return nil, fmt.Errorf("%w: %s served a web page; use the raw file URL", ErrNotExport, url)
	}
	if resp.ContentLength > f.maxSize {
		return nil, f.tooLarge(url)
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}
	if int64(len(content)) > f.maxSize {
		return nil, f.tooLarge(url)
	}

	return content, nil
}

func (f *HTTPFetcher) tooLarge(url string) error {
	return fmt.Errorf("response from %s exceeds maximum size of %d bytes", url, f.maxSize)
}

func isHTML(contentType string) bool {
	media, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return media == "text/html" || media == "application/xhtml+xml"
}
