// SPDX-License-Identifier: MIT

// Package config holds the run configuration of the txpath CLI.
//
// Precedence, lowest first: Default(), the YAML file given to Load, the
// process environment (optionally seeded from a .env file by ApplyEnv),
// then command-line flags applied by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/txpath/loader"
	"github.com/katalvlaran/txpath/sampling"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Environment variables read by ApplyEnv.
const (
	EnvEdges       = "TXPATH_EDGES"
	EnvTimestamps  = "TXPATH_TIMESTAMPS"
	EnvLabels      = "TXPATH_LABELS"
	EnvLogLevel    = "TXPATH_LOG_LEVEL"
	EnvLogFormat   = "TXPATH_LOG_FORMAT"
	EnvSeed        = "TXPATH_SEED"
	EnvMetricsAddr = "TXPATH_METRICS_ADDR"
)

// Config is the complete run configuration.
type Config struct {
	Input    loader.Paths    `yaml:"input"`
	Cycles   CycleConfig     `yaml:"cycles"`
	Paths    PathConfig      `yaml:"paths"`
	Sampling sampling.Config `yaml:"sampling"`
	Log      LogConfig       `yaml:"log"`
	Metrics  MetricsConfig   `yaml:"metrics"`
}

// CycleConfig drives the cycles command.
type CycleConfig struct {
	K         int  `yaml:"k"`
	MinLength int  `yaml:"min_length"`
	Canonical bool `yaml:"canonical"`
	Limit     int  `yaml:"limit"` // 0 = unlimited
}

// PathConfig drives the paths, summarize and reuse commands.
type PathConfig struct {
	Depth    int `yaml:"depth"`
	MaxPaths int `yaml:"max_paths"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cycles:   CycleConfig{K: 3, MinLength: 3},
		Paths:    PathConfig{Depth: 6, MaxPaths: 50},
		Sampling: sampling.DefaultConfig(),
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads a YAML file over Default(). Unknown keys are rejected.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv loads envFile into the process environment when it exists
// (variables already set are kept) and applies the TXPATH_* overrides.
// An empty envFile skips the file step.
func ApplyEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: loading %s: %w", envFile, err)
		}
	}

	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	str(EnvEdges, &cfg.Input.Edges)
	str(EnvTimestamps, &cfg.Input.Timestamps)
	str(EnvLabels, &cfg.Input.Labels)
	str(EnvLogLevel, &cfg.Log.Level)
	str(EnvLogFormat, &cfg.Log.Format)
	str(EnvMetricsAddr, &cfg.Metrics.Addr)

	if v, ok := os.LookupEnv(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvSeed, v, err)
		}
		cfg.Sampling.Seed = seed
	}

	return nil
}

// Validate checks every section. Input paths are not required here; the
// commands that read a graph check them.
func (c Config) Validate() error {
	if c.Cycles.K < 0 || c.Cycles.Limit < 0 {
		return fmt.Errorf("%w: cycles: k=%d limit=%d must be non-negative", ErrInvalid, c.Cycles.K, c.Cycles.Limit)
	}
	if c.Cycles.MinLength < 1 {
		return fmt.Errorf("%w: cycles.min_length=%d must be >= 1", ErrInvalid, c.Cycles.MinLength)
	}
	if c.Paths.Depth < 0 || c.Paths.MaxPaths < 0 {
		return fmt.Errorf("%w: paths: depth=%d max_paths=%d must be non-negative", ErrInvalid, c.Paths.Depth, c.Paths.MaxPaths)
	}
	if err := c.Sampling.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format=%q (want text or json)", ErrInvalid, c.Log.Format)
	}

	return nil
}

// SlogLevel parses Level. Names are case-insensitive; "warning" is accepted.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(l.Level))
	if name == "warning" {
		name = "warn"
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log.level=%q", ErrInvalid, l.Level)
	}

	return lvl, nil
}

// NewLogger builds a slog.Logger writing to w with the configured handler.
func (l LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	lvl, err := l.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}
