package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/rdftest/internal/config"
	"github.com/roach88/rdftest/internal/report"
	"github.com/roach88/rdftest/internal/store"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List the suite runs recorded with --db, newest first.

Two runs with the same digest produced the same verdict for every test.

Example:
  rdf-test-suite history --db runs.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "path to SQLite database (required unless set in the config file)")

	return cmd
}

// NewReportCommand creates the report command.
func NewReportCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <run-id>",
		Short: "Render a recorded run",
		Long: `Render the results of a run recorded with --db in any output format.

Example:
  rdf-test-suite report --db runs.db 0190f3c2-7a4e-7c1d-9a55-1f2e3d4c5b6a -o summary
  rdf-test-suite report --db runs.db 0190f3c2-7a4e-7c1d-9a55-1f2e3d4c5b6a -o earl -p earl-meta.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, args[0])
		},
	}

	defaults := config.Default()
	cmd.Flags().StringVar(&opts.DB, "db", "", "path to SQLite database (required unless set in the config file)")
	cmd.Flags().StringVarP(&opts.Format, "output", "o", defaults.Format, "output format (detailed|summary|earl)")
	cmd.Flags().StringVarP(&opts.Properties, "properties", "p", "", "EARL properties file, generated from the package descriptor if missing")
	cmd.Flags().StringVar(&opts.Descriptor, "descriptor", defaults.Descriptor, "package descriptor used to generate EARL properties")

	return cmd
}

const (
	passMark = "✔"
	failMark = "✖"
)

func openExisting(cfg config.Config, workDir string) (*store.Store, error) {
	if cfg.DB == "" {
		return nil, NewExitError(ExitCommandError, "no database given: use --db or set db in the config file")
	}
	path := inDir(workDir, cfg.DB)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", path))
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func runHistory(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := settings(cmd, opts)
	if err != nil {
		return WrapExitError(ExitFailure, "invalid configuration", err)
	}
	st, err := openExisting(cfg, opts.workDir())
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(commandContext(cmd))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found in database.")
		return nil
	}
	fmt.Fprintf(w, "Runs: %d\n", len(runs))
	fmt.Fprintln(w)
	for _, run := range runs {
		writeRun(w, run)
	}
	return nil
}

func writeRun(w io.Writer, run store.Run) {
	mark := passMark
	if run.Passed != run.Total {
		mark = failMark
	}
	fmt.Fprintf(w, "%s %s\n", mark, run.ID)
	fmt.Fprintf(w, "  Started:  %s\n", run.StartedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "  Manifest: %s\n", run.ManifestURL)
	if run.Specification != "" {
		fmt.Fprintf(w, "  Spec:     %s\n", run.Specification)
	}
	fmt.Fprintf(w, "  Passed:   %d / %d\n", run.Passed, run.Total)
	fmt.Fprintf(w, "  Digest:   %s\n", run.Digest)
}

func runReport(cmd *cobra.Command, opts *RootOptions, id string) error {
	cfg, err := settings(cmd, opts)
	if err != nil {
		return WrapExitError(ExitFailure, "invalid configuration", err)
	}
	workDir := opts.workDir()

	var props *report.Properties
	if cfg.Format == config.FormatEarl {
		props, err = earlProperties(cfg, workDir)
		if err != nil {
			return err
		}
	}

	st, err := openExisting(cfg, workDir)
	if err != nil {
		return err
	}
	defer st.Close()

	run, results, err := st.ReadRun(commandContext(cmd), id)
	if errors.Is(err, store.ErrRunNotFound) {
		return WrapExitError(ExitCommandError, "unknown run", err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	if err := writeResults(cmd.OutOrStdout(), cfg.Format, fromStoreResults(results), props, run.StartedAt); err != nil {
		return WrapExitError(ExitFailure, "failed to write report", err)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
