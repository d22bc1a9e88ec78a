package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []Result {
	return []Result{
		{TestURI: "http://ex.org/t1", Name: "t1", OK: true, Duration: 3 * time.Millisecond,
			Specifications: []string{"http://ex.org/spec"}},
		{TestURI: "http://ex.org/t2", Name: "t2", Comment: "second", OK: false, Detail: "mismatch"},
	}
}

func TestRecordRun_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	recorded, err := s.RecordRun(ctx, Run{
		ID:          "run-1",
		ManifestURL: "http://ex.org/manifest.ttl",
		StartedAt:   started,
	}, sampleResults())
	require.NoError(t, err)
	assert.Equal(t, 2, recorded.Total)
	assert.Equal(t, 1, recorded.Passed)
	assert.Len(t, recorded.Digest, 64)

	run, results, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, recorded.ID, run.ID)
	assert.Equal(t, recorded.Digest, run.Digest)
	assert.Equal(t, "http://ex.org/manifest.ttl", run.ManifestURL)
	assert.Equal(t, 2, run.Total)
	assert.Equal(t, 1, run.Passed)
	assert.True(t, started.Equal(run.StartedAt))

	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Seq)
	assert.Equal(t, "http://ex.org/t1", results[0].TestURI)
	assert.Equal(t, []string{"http://ex.org/spec"}, results[0].Specifications)
	assert.Equal(t, 3*time.Millisecond, results[0].Duration)
	assert.True(t, results[0].OK)

	assert.Equal(t, 1, results[1].Seq)
	assert.Equal(t, "second", results[1].Comment)
	assert.Equal(t, "mismatch", results[1].Detail)
	assert.Empty(t, results[1].Specifications)
	assert.False(t, results[1].OK)
}

func TestRecordRun_Anonymous(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.RecordRun(ctx, Run{ID: "run-1", ManifestURL: "http://ex.org/m.ttl"}, []Result{
		{TestURI: "http://ex.org/m.ttl#b0", Anonymous: true, OK: true},
		{TestURI: "http://ex.org/m.ttl#b0", OK: true},
	})
	require.NoError(t, err)

	_, results, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Anonymous)
	assert.False(t, results[1].Anonymous)
}

func TestRecordRun_DuplicateID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.RecordRun(ctx, Run{ID: "run-1", ManifestURL: "m"}, sampleResults())
	require.NoError(t, err)
	_, err = s.RecordRun(ctx, Run{ID: "run-1", ManifestURL: "m"}, sampleResults())
	assert.Error(t, err)

	// The failed transaction left no extra results behind.
	_, results, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, _, err := s.ReadRun(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)

	for i, id := range []string{"a", "b", "c"} {
		_, err := s.RecordRun(ctx, Run{ID: id, ManifestURL: "m", StartedAt: base.Add(time.Duration(i) * time.Minute)}, nil)
		require.NoError(t, err)
	}

	runs, err = s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
	assert.Equal(t, "a", runs[2].ID)
	assert.Equal(t, 0, runs[0].Total)
}

func TestRunDigest(t *testing.T) {
	a, err := RunDigest(sampleResults())
	require.NoError(t, err)

	// Durations and details do not affect the verdict digest.
	other := sampleResults()
	other[0].Duration = time.Hour
	other[1].Detail = "different"
	b, err := RunDigest(other)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other[1].OK = true
	c, err := RunDigest(other)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
