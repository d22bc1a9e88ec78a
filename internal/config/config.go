// Package config loads the optional YAML configuration file of the
// rdf-test-suite command. Command line flags take precedence over it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no file is named.
const DefaultFile = ".rdf-test-suite.yaml"

// Output formats.
const (
	FormatDetailed = "detailed"
	FormatSummary  = "summary"
	FormatEarl     = "earl"
	// FormatText is accepted as an alias of FormatDetailed.
	FormatText = "text"
)

// Config holds the settings that may be given in the configuration file.
type Config struct {
	Format        string        `yaml:"format"`
	Specification string        `yaml:"specification"`
	Cache         string        `yaml:"cache"`
	Properties    string        `yaml:"properties"`
	Descriptor    string        `yaml:"descriptor"`
	DB            string        `yaml:"db"`
	ExitZero      bool          `yaml:"exit_zero"`
	Concurrency   int           `yaml:"concurrency"`
	TestPattern   string        `yaml:"test_pattern"`
	EngineTimeout time.Duration `yaml:"engine_timeout"`
	LogLevel      string        `yaml:"log_level"`
	LogFormat     string        `yaml:"log_format"`

	// IncludeUnassociated keeps tests without any specification when
	// Specification filters the run.
	IncludeUnassociated bool `yaml:"include_unassociated"`
}

// Default returns the settings used when neither file nor flags set a value.
func Default() Config {
	return Config{
		Format:     FormatDetailed,
		Descriptor: "package.json",
		LogLevel:   "warn",
		LogFormat:  "text",
	}
}

// Parse decodes YAML data over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load reads the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields the defaults.
func LoadOptional(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks that every setting holds a usable value.
func (c Config) Validate() error {
	switch c.Format {
	case FormatDetailed, FormatSummary, FormatEarl, FormatText:
	default:
		return fmt.Errorf("invalid format %q (want %s, %s or %s)", c.Format, FormatDetailed, FormatSummary, FormatEarl)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("invalid concurrency %d: must not be negative", c.Concurrency)
	}
	if c.EngineTimeout < 0 {
		return fmt.Errorf("invalid engine_timeout %s: must not be negative", c.EngineTimeout)
	}
	if c.TestPattern != "" {
		if _, err := regexp.Compile(c.TestPattern); err != nil {
			return fmt.Errorf("invalid test_pattern: %w", err)
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q", c.LogFormat)
	}
	return nil
}
