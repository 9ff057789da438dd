// Package config provides configuration management for the cleaner.
package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"socleaner/internal/dataset"
	"socleaner/internal/normalizer"
	"socleaner/internal/report"
)

// EnvPrefix is the prefix of environment overrides, e.g. SOCLEAN_FILTERS_MIN_LENGTH.
const EnvPrefix = "SOCLEAN"

// Configuration validation errors.
var (
	ErrMissingInputPath   = errors.New("input.path is required")
	ErrMissingOutputPath  = errors.New("output.path is required")
	ErrSameInputOutput    = errors.New("input.path and output.path must differ")
	ErrInvalidEncoding    = errors.New("unknown encoding")
	ErrInvalidDelimiter   = errors.New("delimiter must be a single character")
	ErrInvalidQuote       = errors.New("input.quote must be a single character")
	ErrInvalidEscape      = errors.New("input.escape must be empty or a single character")
	ErrCharacterCollision = errors.New("delimiter, quote and escape must be distinct")
	ErrNoRequiredFields   = errors.New("filters.required_fields must not be empty")
	ErrNoTextFields       = errors.New("filters.text_fields must not be empty")
	ErrMissingDedupKey    = errors.New("filters.dedup_key is required")
	ErrMissingErrorField  = errors.New("filters.error_field is required")
	ErrMissingErrorMarker = errors.New("filters.error_marker is required")
	ErrInvalidMinLength   = errors.New("filters.min_length must be at least 1")
	ErrInvalidSampleSize  = errors.New("report.sample_size must be non-negative")
	ErrInvalidTitleWidth  = errors.New("report.title_width must be at least 1")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat   = errors.New("logging.format must be 'text' or 'json'")
)

// Config represents the complete cleaner configuration.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Filters FiltersConfig `yaml:"filters"`
	Report  ReportConfig  `yaml:"report"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig describes the source file.
type InputConfig struct {
	Path      string   `yaml:"path" split_words:"true"`
	Encoding  string   `yaml:"encoding" split_words:"true"`
	Delimiter string   `yaml:"delimiter" split_words:"true"`
	Quote     string   `yaml:"quote" split_words:"true"`
	Escape    string   `yaml:"escape" split_words:"true"`
	NAValues  []string `yaml:"na_values" split_words:"true"`
}

// OutputConfig describes the cleaned file.
type OutputConfig struct {
	Path      string `yaml:"path" split_words:"true"`
	Encoding  string `yaml:"encoding" split_words:"true"`
	Delimiter string `yaml:"delimiter" split_words:"true"`
}

// FiltersConfig selects columns and thresholds of the filter chain.
type FiltersConfig struct {
	RequiredFields []string `yaml:"required_fields" split_words:"true"`
	TextFields     []string `yaml:"text_fields" split_words:"true"`
	LengthFields   []string `yaml:"length_fields" split_words:"true"`
	DedupKey       string   `yaml:"dedup_key" split_words:"true"`
	ErrorField     string   `yaml:"error_field" split_words:"true"`
	ErrorMarker    string   `yaml:"error_marker" split_words:"true"`
	MinLength      int      `yaml:"min_length" split_words:"true"`
}

// ReportConfig controls the summary.
type ReportConfig struct {
	SampleSize  int    `yaml:"sample_size" split_words:"true"`
	TitleWidth  int    `yaml:"title_width" split_words:"true"`
	MetricsFile string `yaml:"metrics_file" split_words:"true"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level" split_words:"true"`
	Format string `yaml:"format" split_words:"true"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	filters := normalizer.DefaultOptions()
	rep := report.DefaultOptions()

	return &Config{
		Input: InputConfig{
			Path:      "stackoverflow_with_gpt_answers.csv",
			Encoding:  "utf-8-sig",
			Delimiter: ",",
			Quote:     `"`,
			Escape:    `\`,
			NAValues:  append([]string(nil), dataset.DefaultNAValues...),
		},
		Output: OutputConfig{
			Path:      "stackoverflow_cleaned.csv",
			Encoding:  "utf-8-sig",
			Delimiter: ",",
		},
		Filters: FiltersConfig{
			RequiredFields: filters.RequiredFields,
			TextFields:     filters.TextFields,
			LengthFields:   filters.LengthFields,
			DedupKey:       filters.DedupKey,
			ErrorField:     filters.ErrorField,
			ErrorMarker:    filters.ErrorMarker,
			MinLength:      filters.MinLength,
		},
		Report: ReportConfig{
			SampleSize: rep.SampleSize,
			TitleWidth: rep.TitleWidth,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig builds the configuration from defaults, the YAML file at
// filepath (skipped when empty) and SOCLEAN_* environment variables, in that order.
func LoadConfig(filepath string) (*Config, error) {
	cfg := Default()

	if filepath != "" {
		data, err := os.ReadFile(filepath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return ErrMissingInputPath
	}

	if c.Output.Path == "" {
		return ErrMissingOutputPath
	}

	if c.Input.Path == c.Output.Path {
		return ErrSameInputOutput
	}

	for _, enc := range []string{c.Input.Encoding, c.Output.Encoding} {
		if _, err := dataset.LookupEncoding(enc); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidEncoding, enc)
		}
	}

	if utf8.RuneCountInString(c.Input.Delimiter) != 1 || utf8.RuneCountInString(c.Output.Delimiter) != 1 {
		return ErrInvalidDelimiter
	}

	if utf8.RuneCountInString(c.Input.Quote) != 1 {
		return ErrInvalidQuote
	}

	if utf8.RuneCountInString(c.Input.Escape) > 1 {
		return ErrInvalidEscape
	}

	d := c.Dialect()
	if d.Delimiter == d.Quote || d.Delimiter == d.Escape || d.Quote == d.Escape {
		return ErrCharacterCollision
	}

	// output is re-read with the input quote and escape
	if out := firstRune(c.Output.Delimiter); out == d.Quote || out == d.Escape {
		return ErrCharacterCollision
	}

	if len(c.Filters.RequiredFields) == 0 {
		return ErrNoRequiredFields
	}

	if len(c.Filters.TextFields) == 0 {
		return ErrNoTextFields
	}

	if c.Filters.DedupKey == "" {
		return ErrMissingDedupKey
	}

	if c.Filters.ErrorField == "" {
		return ErrMissingErrorField
	}

	if c.Filters.ErrorMarker == "" {
		return ErrMissingErrorMarker
	}

	if c.Filters.MinLength < 1 {
		return ErrInvalidMinLength
	}

	if c.Report.SampleSize < 0 {
		return ErrInvalidSampleSize
	}

	if c.Report.TitleWidth < 1 {
		return ErrInvalidTitleWidth
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// Dialect returns the input tokenizer settings. Call after Validate.
func (c *Config) Dialect() dataset.Dialect {
	return dataset.Dialect{
		Delimiter: firstRune(c.Input.Delimiter),
		Quote:     firstRune(c.Input.Quote),
		Escape:    firstRune(c.Input.Escape),
	}
}

// LoaderOptions returns the options for dataset.NewLoader.
func (c *Config) LoaderOptions() dataset.LoaderOptions {
	return dataset.LoaderOptions{
		Encoding: c.Input.Encoding,
		Dialect:  c.Dialect(),
		NAValues: c.Input.NAValues,
	}
}

// WriterOptions returns the options for dataset.NewWriter.
func (c *Config) WriterOptions() dataset.WriterOptions {
	return dataset.WriterOptions{
		Encoding:  c.Output.Encoding,
		Delimiter: firstRune(c.Output.Delimiter),
		Escape:    firstRune(c.Input.Escape),
	}
}

// FilterOptions returns the options for normalizer.NewProcessor.
func (c *Config) FilterOptions() normalizer.Options {
	return normalizer.Options{
		RequiredFields: c.Filters.RequiredFields,
		TextFields:     c.Filters.TextFields,
		LengthFields:   c.Filters.LengthFields,
		DedupKey:       c.Filters.DedupKey,
		ErrorField:     c.Filters.ErrorField,
		ErrorMarker:    c.Filters.ErrorMarker,
		MinLength:      c.Filters.MinLength,
	}
}

// ReportOptions returns the options for report.Compute.
func (c *Config) ReportOptions() report.Options {
	return report.Options{
		Fields:     c.Filters.TextFields,
		TitleField: report.DefaultOptions().TitleField,
		SampleSize: c.Report.SampleSize,
		TitleWidth: c.Report.TitleWidth,
	}
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s, Output: %s, MinLength: %d}",
		c.Input.Path,
		c.Output.Path,
		c.Filters.MinLength,
	)
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0
	}

	return r
}
