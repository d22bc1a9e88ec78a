package manifest

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/roach88/rdftest/internal/fetch"
)

// memoFetcher remembers the documents fetched during one resolution.
// Concurrent requests for one URL share a single fetch. Failures are not
// remembered.
type memoFetcher struct {
	next fetch.Fetcher

	mu   sync.RWMutex
	docs map[string]*fetch.Document
	sf   singleflight.Group
}

func newMemoFetcher(next fetch.Fetcher) *memoFetcher {
	return &memoFetcher{next: next, docs: make(map[string]*fetch.Document)}
}

func (f *memoFetcher) Fetch(ctx context.Context, url string) (*fetch.Document, error) {
	f.mu.RLock()
	doc, ok := f.docs[url]
	f.mu.RUnlock()
	if ok {
		return doc, nil
	}

	v, err, _ := f.sf.Do(url, func() (any, error) {
		f.mu.RLock()
		cached, ok := f.docs[url]
		f.mu.RUnlock()
		if ok {
			return cached, nil
		}

		doc, err := f.next.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}

		f.mu.Lock()
		f.docs[url] = doc
		f.mu.Unlock()
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*fetch.Document), nil
}
