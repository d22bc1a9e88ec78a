package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/roach88/rdftest/internal/config"
	"github.com/roach88/rdftest/internal/engine"
	"github.com/roach88/rdftest/internal/fetch"
	"github.com/roach88/rdftest/internal/harness"
	"github.com/roach88/rdftest/internal/manifest"
	"github.com/roach88/rdftest/internal/report"
	"github.com/roach88/rdftest/internal/store"
	"github.com/roach88/rdftest/internal/testcase"
)

func runSuite(cmd *cobra.Command, opts *RootOptions, args []string) error {
	if len(args) != 2 {
		return usageError(args)
	}

	cfg, err := settings(cmd, opts)
	if err != nil {
		return WrapExitError(ExitFailure, "invalid configuration", err)
	}
	logger := NewLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	workDir := opts.workDir()

	// EARL properties are checked before anything runs so that a missing
	// file never costs a full suite run.
	var props *report.Properties
	if cfg.Format == config.FormatEarl {
		props, err = earlProperties(cfg, workDir)
		if err != nil {
			return err
		}
	}

	var pattern *regexp.Regexp
	if cfg.TestPattern != "" {
		pattern = regexp.MustCompile(cfg.TestPattern)
	}

	manifestURL, err := fetch.Normalize(args[1])
	if err != nil {
		return WrapExitError(ExitFailure, "invalid manifest location", err)
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = &fetch.HTTPFetcher{}
	}
	if cfg.Cache != "" {
		cached, closer, err := fetch.OpenCache(inDir(workDir, cfg.Cache), fetcher, logger)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open cache", err)
		}
		defer closeLogged(logger, "cache", closer)
		fetcher = cached
	}

	eng := opts.Engine
	if eng == nil {
		eng = &engine.Process{Path: inDir(workDir, args[0]), Timeout: cfg.EngineTimeout}
	}

	runner := &harness.Runner{
		Resolver: &manifest.Resolver{
			Fetcher:     fetcher,
			Logger:      logger,
			Concurrency: cfg.Concurrency,
		},
		Logger:      logger,
		Concurrency: cfg.Concurrency,
		Clock:       opts.Clock,
	}

	ctx := commandContext(cmd)

	startedAt := opts.now()
	results, err := runner.RunManifest(ctx, manifestURL, eng, harness.RunOptions{
		Specification:       cfg.Specification,
		IncludeUnassociated: cfg.IncludeUnassociated,
		TestPattern:         pattern,
	})
	if err != nil {
		return WrapExitError(ExitFailure, "failed to run manifest", err)
	}

	if cfg.DB != "" {
		run, err := recordRun(ctx, inDir(workDir, cfg.DB), store.Run{
			ID:            opts.ids().Generate(),
			ManifestURL:   manifestURL,
			Specification: cfg.Specification,
			StartedAt:     startedAt,
		}, results)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		logger.Info("run recorded", "id", run.ID, "digest", run.Digest)
	}

	if err := writeResults(cmd.OutOrStdout(), cfg.Format, results, props, startedAt); err != nil {
		return WrapExitError(ExitFailure, "failed to write report", err)
	}

	if cfg.ExitZero {
		return nil
	}
	return failureError(results)
}

func recordRun(ctx context.Context, path string, run store.Run, results []testcase.Result) (store.Run, error) {
	st, err := store.Open(path)
	if err != nil {
		return store.Run{}, err
	}
	defer st.Close()

	return st.RecordRun(ctx, run, toStoreResults(results))
}

func toStoreResults(results []testcase.Result) []store.Result {
	out := make([]store.Result, len(results))
	for i, r := range results {
		out[i] = store.Result{
			Seq:            i,
			TestURI:        r.URI,
			Anonymous:      r.Anonymous,
			Name:           r.Name,
			Comment:        r.Comment,
			Specifications: r.Specifications,
			OK:             r.OK,
			Detail:         r.Detail,
			Duration:       r.Duration,
		}
	}
	return out
}

func fromStoreResults(results []store.Result) []testcase.Result {
	out := make([]testcase.Result, len(results))
	for i, r := range results {
		out[i] = testcase.Result{
			URI:            r.TestURI,
			Anonymous:      r.Anonymous,
			Name:           r.Name,
			Comment:        r.Comment,
			Specifications: r.Specifications,
			OK:             r.OK,
			Detail:         r.Detail,
			Duration:       r.Duration,
		}
	}
	return out
}

func closeLogged(logger *slog.Logger, what string, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Error(fmt.Sprintf("error closing %s", what), "error", err)
	}
}
