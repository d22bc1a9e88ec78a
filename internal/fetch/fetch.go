// Package fetch retrieves manifest and test documents over HTTP or from the
// local file system, optionally through a persistent cache.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Document is a retrieved document. URL is the location the body was
// finally read from, after redirects.
type Document struct {
	URL         string
	ContentType string
	Body        []byte
}

// Fetcher retrieves the document at an absolute URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Document, error)
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL    string
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

const acceptHeader = "text/turtle, application/n-triples;q=0.9, */*;q=0.1"

// HTTPFetcher fetches http, https and file URLs. Redirects are followed and
// reflected in Document.URL.
type HTTPFetcher struct {
	// Client defaults to http.DefaultClient.
	Client *http.Client
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	switch u.Scheme {
	case "http", "https":
		return f.fetchHTTP(ctx, rawURL)
	case "file":
		return fetchFile(ctx, rawURL, u.Path)
	default:
		return nil, fmt.Errorf("unsupported URL scheme %q in %s", u.Scheme, rawURL)
	}
}

func (f *HTTPFetcher) fetchHTTP(ctx context.Context, rawURL string) (*Document, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: rawURL, Status: resp.Status, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}

	return &Document{
		URL:         resp.Request.URL.String(),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func fetchFile(ctx context.Context, rawURL, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := os.ReadFile(filepath.FromSlash(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	return &Document{
		URL:         rawURL,
		ContentType: contentTypeFor(path),
		Body:        body,
	}, nil
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttl":
		return "text/turtle"
	case ".nt":
		return "application/n-triples"
	default:
		return mime.TypeByExtension(filepath.Ext(path))
	}
}

var schemeRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]+:`)

// Normalize turns a command-line manifest location into an absolute URL.
// URLs are returned as given; anything else is treated as a local path and
// converted to a file URL. Single-letter schemes are taken to be Windows
// drive letters.
func Normalize(location string) (string, error) {
	if schemeRE.MatchString(location) {
		return location, nil
	}
	abs, err := filepath.Abs(location)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", location, err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String(), nil
}
