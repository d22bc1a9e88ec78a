package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/rdftest/internal/canon"
)

// ErrRunNotFound is returned by ReadRun for an unknown id.
var ErrRunNotFound = errors.New("run not found")

// Run is the header of a recorded suite run.
type Run struct {
	ID            string
	ManifestURL   string
	Specification string
	StartedAt     time.Time
	// Digest covers the ordered (uri, ok) pairs. Two runs with the same
	// digest produced the same verdicts.
	Digest string
	Total  int
	Passed int
}

// Result is one recorded verdict. Seq is its position in the run.
type Result struct {
	Seq            int
	TestURI        string
	Anonymous      bool
	Name           string
	Comment        string
	Specifications []string
	OK             bool
	Detail         string
	Duration       time.Duration
}

// RunDigest computes the verdict digest of an ordered result list.
func RunDigest(results []Result) (string, error) {
	pairs := make([]any, len(results))
	for i, r := range results {
		pairs[i] = map[string]any{"uri": r.TestURI, "ok": r.OK}
	}
	return canon.Digest(canon.DomainRun, pairs)
}

// RecordRun writes a run and its results in one transaction. Digest, Total
// and Passed are derived from results and need not be set by the caller.
// Result sequence numbers are assigned from slice order.
func (s *Store) RecordRun(ctx context.Context, run Run, results []Result) (Run, error) {
	digest, err := RunDigest(results)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	run.Digest = digest
	run.Total = len(results)
	run.Passed = 0
	for _, r := range results {
		if r.OK {
			run.Passed++
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, manifest_url, specification, started_at, digest, total, passed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.ManifestURL,
		run.Specification,
		run.StartedAt.UnixNano(),
		run.Digest,
		run.Total,
		run.Passed,
	)
	if err != nil {
		return Run{}, fmt.Errorf("record run %s: %w", run.ID, err)
	}

	for i, r := range results {
		specs, err := canon.Marshal(nonNil(r.Specifications))
		if err != nil {
			return Run{}, fmt.Errorf("record run %s: result %d: %w", run.ID, i, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO results
			(run_id, seq, test_uri, name, comment, specifications, ok, detail, duration_ns, anonymous)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			run.ID,
			i,
			r.TestURI,
			r.Name,
			r.Comment,
			string(specs),
			r.OK,
			r.Detail,
			int64(r.Duration),
			r.Anonymous,
		)
		if err != nil {
			return Run{}, fmt.Errorf("record run %s: result %d: %w", run.ID, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run %s: commit: %w", run.ID, err)
	}
	return run, nil
}

// ReadRun returns a recorded run and its results in recorded order.
// Returns ErrRunNotFound if the id is unknown.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, []Result, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, manifest_url, specification, started_at, digest, total, passed
		FROM runs
		WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, nil, fmt.Errorf("read run %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, test_uri, name, comment, specifications, ok, detail, duration_ns, anonymous
		FROM results
		WHERE run_id = ?
		ORDER BY seq ASC
	`, id)
	if err != nil {
		return Run{}, nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	results := []Result{}
	for rows.Next() {
		var (
			r        Result
			specs    string
			duration int64
		)
		if err := rows.Scan(&r.Seq, &r.TestURI, &r.Name, &r.Comment, &specs, &r.OK, &r.Detail, &duration, &r.Anonymous); err != nil {
			return Run{}, nil, fmt.Errorf("scan result: %w", err)
		}
		if err := json.Unmarshal([]byte(specs), &r.Specifications); err != nil {
			return Run{}, nil, fmt.Errorf("unmarshal specifications of %s: %w", r.TestURI, err)
		}
		r.Duration = time.Duration(duration)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return Run{}, nil, fmt.Errorf("iterate results: %w", err)
	}

	return run, results, nil
}

// ListRuns returns all recorded runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, manifest_url, specification, started_at, digest, total, passed
		FROM runs
		ORDER BY started_at DESC, id COLLATE BINARY DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run       Run
		startedAt int64
	)
	if err := row.Scan(&run.ID, &run.ManifestURL, &run.Specification, &startedAt, &run.Digest, &run.Total, &run.Passed); err != nil {
		return Run{}, err
	}
	run.StartedAt = time.Unix(0, startedAt).UTC()
	return run, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
