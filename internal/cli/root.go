package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/rdftest/internal/config"
	"github.com/roach88/rdftest/internal/engine"
	"github.com/roach88/rdftest/internal/fetch"
	"github.com/roach88/rdftest/internal/harness"
	"github.com/roach88/rdftest/internal/store"
)

const usage = `rdf-test-suite executes RDF and SPARQL test suites

Usage:
  rdf-test-suite path/to/engine https://www.w3.org/2001/sw/DataAccess/tests/data-r2/manifest-syntax.ttl
  rdf-test-suite path/to/engine https://www.w3.org/2013/sparql11-test-suite/manifest-all.ttl \
    -s http://www.w3.org/TR/sparql11-query/
  rdf-test-suite path/to/engine https://w3c.github.io/rdf-tests/rdf/rdf11/rdf-turtle/manifest.ttl \
    -o earl -p earl-meta.json > earl.ttl

Options:
  -o    output format (detailed, summary, earl; defaults to detailed)
  -p    file with earl properties, generated from package.json if not available (only needed for EARL reports)
  -s    a specification URI to filter by (e.g. http://www.w3.org/TR/sparql11-query/)
  -c    enable caching of fetched documents, optionally at the given directory
  -e    always exit with status code 0 on test failures
`

// RootOptions holds the flags of the root command and the collaborators
// tests substitute.
type RootOptions struct {
	ConfigPath    string
	Format        string
	Properties    string
	Specification string
	Unassociated  bool
	Cache         string
	Descriptor    string
	DB            string
	ExitZero      bool
	Concurrency   int
	TestPattern   string
	EngineTimeout time.Duration
	LogLevel      string
	LogFormat     string

	// WorkDir anchors relative paths. Defaults to the process working directory.
	WorkDir string
	// Fetcher retrieves documents. Defaults to fetch.HTTPFetcher.
	Fetcher fetch.Fetcher
	// Engine is the engine under test. Defaults to an engine.Process running
	// the first positional argument.
	Engine engine.Engine
	// Clock measures test durations and stamps runs. Defaults to the wall clock.
	Clock harness.Clock
	// IDs generates recorded run ids. Defaults to store.UUIDv7Generator.
	IDs store.IDGenerator
}

// NewRootCommand creates the rdf-test-suite command.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the rdf-test-suite command bound to opts.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rdf-test-suite <engine> <manifest-url>",
		Short: "Run RDF and SPARQL conformance test suites against an engine",
		Long:  usage,
		Args:  cobra.ArbitraryArgs,
		// Usage problems are reported through ExitError with the usage text.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(cmd, opts, args)
		},
	}

	defaults := config.Default()
	flags := cmd.Flags()
	flags.StringVarP(&opts.Format, "output", "o", defaults.Format, "output format (detailed|summary|earl)")
	flags.StringVarP(&opts.Properties, "properties", "p", "", "EARL properties file, generated from the package descriptor if missing")
	flags.StringVarP(&opts.Specification, "specification", "s", "", "only run tests associated with this specification URI")
	flags.BoolVar(&opts.Unassociated, "include-unassociated", false, "with -s, also run tests that declare no specification")
	flags.StringVarP(&opts.Cache, "cache", "c", "", "cache fetched documents in this directory")
	flags.Lookup("cache").NoOptDefVal = fetch.DefaultCacheDir
	flags.BoolVarP(&opts.ExitZero, "exit-zero", "e", false, "always exit with status code 0 on test failures")
	flags.StringVar(&opts.Descriptor, "descriptor", defaults.Descriptor, "package descriptor used to generate EARL properties")
	flags.StringVar(&opts.DB, "db", "", "record the run in this SQLite database")
	flags.StringVarP(&opts.TestPattern, "test-pattern", "t", "", "only run tests whose URI matches this regular expression")
	flags.IntVar(&opts.Concurrency, "concurrency", 0, "maximum number of tests run at once (0 is unbounded)")
	flags.DurationVar(&opts.EngineTimeout, "engine-timeout", 0, "time limit per engine invocation (0 is none)")

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&opts.ConfigPath, "config", "", "configuration file (default "+config.DefaultFile+" if present)")
	persistent.StringVar(&opts.LogLevel, "log-level", defaults.LogLevel, "log level (debug|info|warn|error)")
	persistent.StringVar(&opts.LogFormat, "log-format", defaults.LogFormat, "log format (text|json)")

	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))

	return cmd
}

// settings merges the configuration file with the flags set on cmd.
// Explicitly set flags win.
func settings(cmd *cobra.Command, opts *RootOptions) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.Load(inDir(opts.workDir(), opts.ConfigPath))
	} else {
		cfg, err = config.LoadOptional(inDir(opts.workDir(), config.DefaultFile))
	}
	if err != nil {
		return config.Config{}, err
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("output") {
		cfg.Format = opts.Format
	}
	if changed("properties") {
		cfg.Properties = opts.Properties
	}
	if changed("specification") {
		cfg.Specification = opts.Specification
	}
	if changed("include-unassociated") {
		cfg.IncludeUnassociated = opts.Unassociated
	}
	if changed("cache") {
		cfg.Cache = opts.Cache
	}
	if changed("exit-zero") {
		cfg.ExitZero = opts.ExitZero
	}
	if changed("descriptor") {
		cfg.Descriptor = opts.Descriptor
	}
	if changed("db") {
		cfg.DB = opts.DB
	}
	if changed("test-pattern") {
		cfg.TestPattern = opts.TestPattern
	}
	if changed("concurrency") {
		cfg.Concurrency = opts.Concurrency
	}
	if changed("engine-timeout") {
		cfg.EngineTimeout = opts.EngineTimeout
	}
	if changed("log-level") {
		cfg.LogLevel = opts.LogLevel
	}
	if changed("log-format") {
		cfg.LogFormat = opts.LogFormat
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (o *RootOptions) workDir() string {
	if o.WorkDir != "" {
		return o.WorkDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func (o *RootOptions) now() time.Time {
	if o.Clock != nil {
		return o.Clock.Now()
	}
	return time.Now()
}

func (o *RootOptions) ids() store.IDGenerator {
	if o.IDs != nil {
		return o.IDs
	}
	return store.UUIDv7Generator{}
}

// NormalizeArgs rewrites "-c dir" and "--cache dir" into their attached
// forms. The cache flag takes an optional value, which the flag parser only
// reads when attached, so a following argument that is not a flag is taken
// as the directory. Arguments after "--" are left alone.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return append(out, args[i:]...)
		}
		if (a == "-c" || a == "--cache") && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, a+"="+args[i+1])
			i++
			continue
		}
		out = append(out, a)
	}
	return out
}

// inDir resolves a relative path against dir.
func inDir(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func usageError(args []string) error {
	return NewExitError(ExitFailure, fmt.Sprintf("expected <engine> and <manifest-url>, got %d argument(s)\n\n%s", len(args), usage))
}
