// SPDX-License-Identifier: MIT

// Package dfs defines errors, options and result types for the bounded
// depth-first searches over a core.Graph: cycle finding, time-ordered path
// exploration and per-pair path counting.
package dfs

import "errors"

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed to any search.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrNegativeBound indicates a negative depth, length or path-count bound.
	ErrNegativeBound = errors.New("dfs: negative bound")
)

// Path is a walk taken by a search: node identifiers in visiting order.
// Within a single path no node repeats (cycles close on their first node).
type Path = []string

// CycleOption configures FindKCycles.
type CycleOption func(*CycleOptions)

// CycleOptions holds configurable parameters for the cycle finder.
type CycleOptions struct {
	// MinLength is the minimum number of edges in a reported cycle.
	// Default 3: the path stack must exceed two nodes before closing,
	// so 2-cycles (A→B→A) are skipped. Values below 2 are raised to 2.
	MinLength int

	// Canonical, if true, rotates every cycle to its lexicographically
	// minimal rotation and drops duplicates found from other origins.
	Canonical bool

	// Limit, if positive, stops the search after that many cycles.
	Limit int
}

// DefaultCycleOptions returns CycleOptions with:
//   - MinLength 3
//   - rotations reported once per origin (Canonical = false)
//   - no limit
func DefaultCycleOptions() CycleOptions {
	return CycleOptions{
		MinLength: 3,
		Canonical: false,
		Limit:     0,
	}
}

// WithMinCycleLength sets the minimum edge count of a reported cycle.
func WithMinCycleLength(n int) CycleOption {
	return func(o *CycleOptions) {
		o.MinLength = n
	}
}

// WithCanonicalCycles deduplicates rotations of the same cycle.
func WithCanonicalCycles() CycleOption {
	return func(o *CycleOptions) {
		o.Canonical = true
	}
}

// WithCycleLimit caps the number of cycles returned.
func WithCycleLimit(n int) CycleOption {
	return func(o *CycleOptions) {
		o.Limit = n
	}
}

// Pair keys the path-count summary by (start, target).
type Pair struct {
	Start  string
	Target string
}

// PairStats accumulates completed paths for one Pair.
// TotalDepth sums the node depth at each match, the origin being depth 1.
type PairStats struct {
	Count      int
	TotalDepth int
}

// AvgDepth returns TotalDepth/Count. ok is false when no path was counted.
func (s PairStats) AvgDepth() (avg float64, ok bool) {
	if s.Count == 0 {
		return 0, false
	}

	return float64(s.TotalDepth) / float64(s.Count), true
}

// PairCount is one ranked entry of a summary.
type PairCount struct {
	Pair
	PairStats
}
