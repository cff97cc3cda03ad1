// SPDX-License-Identifier: MIT

// Package sampling repeats randomized sample-explore-score trials over a
// labeled core.Graph and reduces each node's per-trial mixer scores to a mean
// with a 95% confidence interval.
//
// One trial, for each label side (licit, illicit):
//
//  1. sample SampleSize source nodes of that label without replacement;
//  2. collect nodes reachable from them within ReachDepth;
//  3. keep the TopTargets reachable nodes by out-degree, then sample
//     TargetSample of those as targets;
//  4. dfs.Summarize sources × targets (SummaryDepth, MaxPathsPerPair);
//  5. materialize paths for the TopPairs pairs with dfs.CollectPaths (PathDepth);
//  6. count interior nodes of those paths (reuse.Score).
//
// The two sides' frequency maps give per-node mixer scores
// illicit/(licit+1) (and the mirrored licit/(illicit+1)), appended to each
// node's series. After Trials trials every series is reduced and the top
// TopK nodes are reported.
//
// Randomness comes only from the injected *rand.Rand (WithRand) or
// Config.Seed, so a fixed seed reproduces a run exactly.
package sampling

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptySeries is returned when reducing a series with no values.
	ErrEmptySeries = errors.New("sampling: empty score series")

	// ErrEmptyPopulation is returned when a label has no nodes to sample from.
	ErrEmptyPopulation = errors.New("sampling: empty label population")

	// ErrBadConfig wraps every Config validation failure.
	ErrBadConfig = errors.New("sampling: invalid config")

	// ErrGraphNil is returned by NewDriver for a nil graph.
	ErrGraphNil = errors.New("sampling: graph is nil")
)

// Config holds the driver parameters. All bounds are required to be positive.
type Config struct {
	Trials          int   `yaml:"trials" json:"trials"`
	SampleSize      int   `yaml:"sample_size" json:"sample_size"`
	ReachDepth      int   `yaml:"reach_depth" json:"reach_depth"`
	TopTargets      int   `yaml:"top_targets" json:"top_targets"`
	TargetSample    int   `yaml:"target_sample" json:"target_sample"`
	SummaryDepth    int   `yaml:"summary_depth" json:"summary_depth"`
	MaxPathsPerPair int   `yaml:"max_paths_per_pair" json:"max_paths_per_pair"`
	TopPairs        int   `yaml:"top_pairs" json:"top_pairs"`
	PathDepth       int   `yaml:"path_depth" json:"path_depth"`
	TopK            int   `yaml:"top_k" json:"top_k"`
	Seed            int64 `yaml:"seed" json:"seed"`
}

// DefaultConfig returns conservative bounds suitable for graphs with a few
// hundred thousand transactions.
func DefaultConfig() Config {
	return Config{
		Trials:          30,
		SampleSize:      50,
		ReachDepth:      4,
		TopTargets:      100,
		TargetSample:    20,
		SummaryDepth:    6,
		MaxPathsPerPair: 50,
		TopPairs:        10,
		PathDepth:       7,
		TopK:            20,
		Seed:            0,
	}
}

// Validate reports the first invalid field wrapped in ErrBadConfig.
// PathDepth must be at least SummaryDepth: materialization is never
// stricter than counting.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    int
	}{
		{"trials", c.Trials},
		{"sample_size", c.SampleSize},
		{"reach_depth", c.ReachDepth},
		{"top_targets", c.TopTargets},
		{"target_sample", c.TargetSample},
		{"summary_depth", c.SummaryDepth},
		{"max_paths_per_pair", c.MaxPathsPerPair},
		{"top_pairs", c.TopPairs},
		{"path_depth", c.PathDepth},
		{"top_k", c.TopK},
	} {
		if f.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrBadConfig, f.name, f.v)
		}
	}
	if c.PathDepth < c.SummaryDepth {
		return fmt.Errorf("%w: path_depth (%d) < summary_depth (%d)", ErrBadConfig, c.PathDepth, c.SummaryDepth)
	}

	return nil
}

// SideStats describes one label side of a trial.
type SideStats struct {
	Sources   int  // sampled sources
	Reachable int  // nodes reachable from the sources
	Targets   int  // sampled targets
	Pairs     int  // pairs with at least one counted path
	Paths     int  // materialized paths
	Clamped   bool // a sample request exceeded its population
}

// TrialStats describes one completed trial.
type TrialStats struct {
	Trial    int
	Licit    SideStats
	Illicit  SideStats
	Scored   int // nodes that received a score this trial
	Duration time.Duration
}

// Observer receives trial lifecycle events; see metrics.Collector.
type Observer interface {
	TrialStarted(trial int)
	TrialFinished(stats TrialStats)
}

// Result is the outcome of Driver.Run.
type Result struct {
	Config Config
	Trials []TrialStats

	// Illicit ranks nodes by mean illicit/(licit+1): mixer candidates.
	Illicit []NodeSummary
	// Licit ranks nodes by mean licit/(illicit+1).
	Licit []NodeSummary

	IllicitSeries map[string][]float64
	LicitSeries   map[string][]float64
}
