// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Graph, Label and Stats types, sentinel errors and the NewGraph constructor.
// Concurrency:
//   - A single sync.RWMutex guards adjacency, timestamps and labels.
//   - Loaders mutate the graph once; analyses afterwards only read it.

package core

import (
	"errors"
	"math"
	"strings"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that an empty string was used as a node identifier.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrNegativeTimestamp indicates a timestamp below zero.
	ErrNegativeTimestamp = errors.New("core: timestamp is negative")
)

// UnknownTargetTime is the timestamp assumed for a node without a recorded
// timestamp when it is the target of an edge. Together with a source default
// of zero it makes an untimed node always enterable and always departable.
const UnknownTargetTime = math.MaxInt

// Label classifies a node for source-set partitioning. It never affects traversal.
type Label uint8

const (
	// LabelUnknown is the zero value: no class recorded.
	LabelUnknown Label = iota
	// LabelLicit marks a node of class "1".
	LabelLicit
	// LabelIllicit marks a node of class "2".
	LabelIllicit
)

// String returns the lower-case label name.
func (l Label) String() string {
	switch l {
	case LabelLicit:
		return "licit"
	case LabelIllicit:
		return "illicit"
	default:
		return "unknown"
	}
}

// ParseLabel maps a class field to a Label.
// "1" and "licit" map to LabelLicit, "2" and "illicit" to LabelIllicit;
// everything else (including "unknown") is LabelUnknown.
func ParseLabel(s string) Label {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "licit":
		return LabelLicit
	case "2", "illicit":
		return LabelIllicit
	default:
		return LabelUnknown
	}
}

// Graph is a directed transaction graph with per-node timestamps and labels.
//
// Successor sets are stored as sorted, duplicate-free slices so every
// traversal visits neighbors in the same order. A node referenced only as a
// successor has no adjacency entry; that is equivalent to an empty set.
type Graph struct {
	mu sync.RWMutex

	// adjacency[from] is the sorted successor set of from.
	adjacency map[string][]string

	// timestamps[id] is the discretized time step of id (>= 0).
	timestamps map[string]int

	// labels[id] is the recorded class of id.
	labels map[string]Label

	// edges counts distinct (from, to) pairs.
	edges int
}

// Stats is a point-in-time summary of a Graph.
type Stats struct {
	Vertices int // distinct identifiers seen anywhere
	Edges    int // distinct directed edges
	Sources  int // nodes with an adjacency entry

	// AvgOutDegree is Edges/Sources, zero when Sources is zero.
	AvgOutDegree float64

	Timestamped int // nodes with a recorded timestamp
	Licit       int
	Illicit     int
	Unknown     int // nodes with an explicit unknown label
}

// NewGraph returns an empty Graph.
// Complexity: O(1).
func NewGraph() *Graph {
	return &Graph{
		adjacency:  make(map[string][]string),
		timestamps: make(map[string]int),
		labels:     make(map[string]Label),
	}
}
