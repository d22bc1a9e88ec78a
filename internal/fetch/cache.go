package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roach88/rdftest/internal/store"
)

// DefaultCacheDir is used when caching is enabled without a directory.
const DefaultCacheDir = ".rdf-test-suite-cache"

// CacheFile is the database file inside a cache directory.
const CacheFile = "documents.db"

// CachingFetcher serves documents from a store, falling back to Next and
// recording what it fetched. A failed cache read is logged and treated as
// a miss; a failed cache write is logged and the fetched document is still
// returned.
type CachingFetcher struct {
	Next   Fetcher
	Store  *store.Store
	Logger *slog.Logger
}

// OpenCache opens (creating if needed) the cache database in dir and wraps
// next with it. The returned closer releases the database.
func OpenCache(dir string, next Fetcher, logger *slog.Logger) (*CachingFetcher, io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create cache directory %s: %w", dir, err)
	}
	st, err := store.Open(filepath.Join(dir, CacheFile))
	if err != nil {
		return nil, nil, fmt.Errorf("open cache in %s: %w", dir, err)
	}
	return &CachingFetcher{Next: next, Store: st, Logger: logger}, st, nil
}

// Fetch implements Fetcher.
func (c *CachingFetcher) Fetch(ctx context.Context, url string) (*Document, error) {
	logger := c.logger()

	cached, ok, err := c.Store.GetDocument(ctx, url)
	if err != nil {
		logger.Warn("cache read failed", "url", url, "error", err)
	}
	if ok {
		logger.Debug("cache hit", "url", url)
		return &Document{URL: cached.FinalURL, ContentType: cached.ContentType, Body: cached.Body}, nil
	}

	doc, err := c.Next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := c.Store.PutDocument(ctx, store.Document{
		URL:         url,
		FinalURL:    doc.URL,
		ContentType: doc.ContentType,
		Body:        doc.Body,
	}); err != nil {
		logger.Warn("cache write failed", "url", url, "error", err)
	}
	return doc, nil
}

func (c *CachingFetcher) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}
