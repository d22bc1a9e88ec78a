package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/rdftest/internal/engine"
	"github.com/roach88/rdftest/internal/manifest"
	"github.com/roach88/rdftest/internal/testcase"
)

// Resolver produces the manifest tree of a suite.
type Resolver interface {
	Resolve(ctx context.Context, url string) (*manifest.Manifest, error)
}

// Clock measures test durations.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// RunOptions select the tests of a run.
type RunOptions struct {
	// Specification keeps only tests associated with this IRI.
	Specification string
	// IncludeUnassociated keeps tests that declare no specification at
	// all when Specification is set.
	IncludeUnassociated bool
	// TestPattern keeps only tests whose URI matches.
	TestPattern *regexp.Regexp
}

// Runner executes suites.
type Runner struct {
	Resolver Resolver
	Logger   *slog.Logger
	// Concurrency bounds the number of tests running at once. Zero or
	// less means no bound.
	Concurrency int
	// Clock defaults to the system clock.
	Clock Clock
}

// RunManifest resolves the suite at url and runs it against eng.
// It fails only if the suite cannot be resolved.
func (r *Runner) RunManifest(ctx context.Context, url string, eng engine.Engine, opts RunOptions) ([]testcase.Result, error) {
	logger := r.logger()

	m, err := r.Resolver.Resolve(ctx, url)
	if err != nil {
		return nil, err
	}

	all := manifest.Flatten(m)
	cases := r.Select(all, opts)
	logger.Info("running tests", "manifest", url, "selected", len(cases), "total", len(all))

	return r.Execute(ctx, cases, eng), nil
}

// Select applies the filters of opts, keeping document order. Tests
// without any specification are kept under a specification filter only
// with IncludeUnassociated; otherwise their number is logged as a warning.
func (r *Runner) Select(cases []testcase.TestCase, opts RunOptions) []testcase.TestCase {
	var (
		out          []testcase.TestCase
		unassociated int
	)
	for _, tc := range cases {
		info := tc.Info()
		if opts.Specification != "" && !slices.Contains(info.Specifications, opts.Specification) {
			switch {
			case len(info.Specifications) > 0:
				continue
			case !opts.IncludeUnassociated:
				unassociated++
				continue
			}
		}
		if opts.TestPattern != nil && !opts.TestPattern.MatchString(info.URI) {
			continue
		}
		out = append(out, tc)
	}

	if unassociated > 0 {
		r.logger().Warn("skipped tests without a specification",
			"specification", opts.Specification,
			"count", unassociated,
			"hint", "use --include-unassociated to run them",
		)
	}
	return out
}

// Execute runs cases against eng and returns their results in input order.
func (r *Runner) Execute(ctx context.Context, cases []testcase.TestCase, eng engine.Engine) []testcase.Result {
	results := make([]testcase.Result, len(cases))

	var g errgroup.Group
	if r.Concurrency > 0 {
		g.SetLimit(r.Concurrency)
	}
	for i, tc := range cases {
		g.Go(func() error {
			results[i] = r.runOne(ctx, tc, eng)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (r *Runner) runOne(ctx context.Context, tc testcase.TestCase, eng engine.Engine) (res testcase.Result) {
	clock := r.clock()
	info := tc.Info()
	start := clock.Now()

	defer func() {
		if p := recover(); p != nil {
			res = testcase.NewResult(info, testcase.Outcome{
				Detail: fmt.Sprintf("execution failed: panic: %v", p),
			}, clock.Now().Sub(start))
			r.logger().Error("test panicked", "test", info.URI, "panic", p)
		}
	}()

	out, err := tc.Run(ctx, eng)
	elapsed := clock.Now().Sub(start)
	if err != nil {
		out = testcase.Outcome{Detail: fmt.Sprintf("execution failed: %v", err)}
		r.logger().Debug("test failed to run", "test", info.URI, "error", err)
	}

	r.logger().Debug("test finished", "test", info.URI, "ok", out.OK, "duration", elapsed)
	return testcase.NewResult(info, out, elapsed)
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

func (r *Runner) clock() Clock {
	if r.Clock == nil {
		return systemClock{}
	}
	return r.Clock
}
