// SPDX-License-Identifier: MIT
//
// File: methods_adjacent.go
// Role: Neighborhood and time-ordering queries used by every traversal.
// Determinism:
//   - Successors() returns IDs sorted lexicographically ascending.

package core

import "sort"

// Successors returns a copy of the successor set of id, sorted ascending.
// A node without an adjacency entry (a sink, or unknown) yields nil.
//
// Complexity: O(d).
func (g *Graph) Successors(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	succ := g.adjacency[id]
	if len(succ) == 0 {
		return nil
	}

	return append([]string(nil), succ...)
}

// HasEdge reports whether from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	succ := g.adjacency[from]
	i := sort.SearchStrings(succ, to)

	return i < len(succ) && succ[i] == to
}

// OutDegree returns the number of successors of id.
func (g *Graph) OutDegree(id string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.adjacency[id])
}

// Timestamp returns the recorded time step of id and whether one exists.
func (g *Graph) Timestamp(id string) (int, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ts, ok := g.timestamps[id]

	return ts, ok
}

// SourceTime is the timestamp of id when departing from it: 0 when unknown.
func (g *Graph) SourceTime(id string) int {
	if ts, ok := g.Timestamp(id); ok {
		return ts
	}

	return 0
}

// TargetTime is the timestamp of id when entering it: UnknownTargetTime when unknown.
func (g *Graph) TargetTime(id string) int {
	if ts, ok := g.Timestamp(id); ok {
		return ts
	}

	return UnknownTargetTime
}

// CanTraverse reports whether the edge from→to respects time ordering,
// i.e. TargetTime(to) >= SourceTime(from). Edge existence is not checked.
func (g *Graph) CanTraverse(from, to string) bool {
	return g.TargetTime(to) >= g.SourceTime(from)
}

// Label returns the recorded class of id, LabelUnknown when absent.
func (g *Graph) Label(id string) Label {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.labels[id]
}
