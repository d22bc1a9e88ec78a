package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/roach88/rdftest/internal/fetch"
)

// MapFetcher serves documents from memory and counts requests per URL.
//
// Thread-safety: Fetch is safe for concurrent use. Add and Redirect must not
// be called concurrently with Fetch.
type MapFetcher struct {
	mu        sync.Mutex
	docs      map[string]string
	redirects map[string]string
	calls     map[string]int
}

// NewMapFetcher creates an empty fetcher.
func NewMapFetcher() *MapFetcher {
	return &MapFetcher{
		docs:      make(map[string]string),
		redirects: make(map[string]string),
		calls:     make(map[string]int),
	}
}

// Add serves body at url. The content type is derived from the URL.
func (f *MapFetcher) Add(url, body string) *MapFetcher {
	f.docs[url] = body
	return f
}

// Redirect makes requests for from answer with the document at to.
func (f *MapFetcher) Redirect(from, to string) *MapFetcher {
	f.redirects[from] = to
	return f
}

// Fetch implements fetch.Fetcher. Unknown URLs fail.
func (f *MapFetcher) Fetch(ctx context.Context, url string) (*fetch.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++

	final := url
	if to, ok := f.redirects[url]; ok {
		final = to
	}
	body, ok := f.docs[final]
	if !ok {
		return nil, fmt.Errorf("GET %s: 404 Not Found", url)
	}
	return &fetch.Document{URL: final, Body: []byte(body)}, nil
}

// Calls returns how often url was requested.
func (f *MapFetcher) Calls(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}
