package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/rdftest/internal/canon"
)

// Document is a cached fetch result.
type Document struct {
	URL         string
	FinalURL    string
	ContentType string
	Body        []byte
	Digest      string
	FetchedAt   time.Time
}

// GetDocument returns the cached document for url.
// The second return value is false when nothing is cached.
func (s *Store) GetDocument(ctx context.Context, url string) (Document, bool, error) {
	var (
		doc       Document
		fetchedAt int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT url, final_url, content_type, body, digest, fetched_at
		FROM documents
		WHERE url = ?
	`, url).Scan(&doc.URL, &doc.FinalURL, &doc.ContentType, &doc.Body, &doc.Digest, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, false, nil
	}
	if err != nil {
		return Document{}, false, fmt.Errorf("read document %s: %w", url, err)
	}
	doc.FetchedAt = time.Unix(0, fetchedAt).UTC()
	return doc, true, nil
}

// PutDocument stores doc, replacing any earlier copy of the same URL.
// Concurrent first fetches of one URL race to write; the last write wins.
func (s *Store) PutDocument(ctx context.Context, doc Document) error {
	if doc.FinalURL == "" {
		doc.FinalURL = doc.URL
	}
	if doc.Digest == "" {
		doc.Digest = canon.Sum(canon.DomainDocument, doc.Body)
	}
	if doc.FetchedAt.IsZero() {
		doc.FetchedAt = time.Now()
	}
	if doc.Body == nil {
		doc.Body = []byte{}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO documents
		(url, final_url, content_type, body, digest, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		doc.URL,
		doc.FinalURL,
		doc.ContentType,
		doc.Body,
		doc.Digest,
		doc.FetchedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("write document %s: %w", doc.URL, err)
	}
	return nil
}
