package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	// ErrInvalidConfig wraps settings the dashboard cannot start with.
	ErrInvalidConfig = errors.New("invalid dashboard settings")
	// ErrLoadConfig wraps failures reading the config file or environment.
	ErrLoadConfig = errors.New("read dashboard settings")
)

// EnvPrefix prefixes every environment override, e.g. RESUMEDASH_ADDR.
const EnvPrefix = "RESUMEDASH_"

// EnvConfigFile names the variable holding an optional YAML config path.
const EnvConfigFile = EnvPrefix + "CONFIG"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) from path, or RESUMEDASH_CONFIG when path is empty
//  3. env (prefix RESUMEDASH_)
func Load(_ context.Context, path string) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// RESUMEDASH_DATASET_PATH -> dataset_path (flat keys, underscores kept).
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DatasetPath) == "":
		return fmt.Errorf("%w: dataset_path must not be empty", ErrInvalidConfig)
	case c.ChartWidth <= 0 || c.ChartHeight <= 0:
		return fmt.Errorf("%w: chart_width and chart_height must be positive", ErrInvalidConfig)
	case c.PrerenderWorkers < 0:
		return fmt.Errorf("%w: prerender_workers must not be negative", ErrInvalidConfig)
	case utf8.RuneCountInString(c.CSVDelimiter) != 1:
		return fmt.Errorf("%w: csv_delimiter must be a single character", ErrInvalidConfig)
	}

	switch strings.ToLower(c.Language) {
	case "en", "ru":
	default:
		return fmt.Errorf("%w: unknown language %q", ErrInvalidConfig, c.Language)
	}

	switch strings.ToLower(c.DatasetEncoding) {
	case "", "utf-8", "utf8", "windows-1251", "cp1251":
	default:
		return fmt.Errorf("%w: unknown dataset_encoding %q", ErrInvalidConfig, c.DatasetEncoding)
	}

	switch strings.ToLower(c.DatasetFormat) {
	case "", "csv", "xlsx":
	default:
		return fmt.Errorf("%w: unknown dataset_format %q", ErrInvalidConfig, c.DatasetFormat)
	}
	return nil
}

// Delimiter returns the CSV separator rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSVDelimiter)
	return r
}
