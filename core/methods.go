// SPDX-License-Identifier: MIT
//
// File: methods.go
// Role: Mutators (AddVertex, AddEdge, SetTimestamp, SetLabel) and FromAdjacency.
// Policy:
//   - Duplicate edges merge into the successor set (no parallel edges).
//   - Duplicate scalar keys overwrite (last write wins).

package core

import (
	"fmt"
	"sort"
)

// FromAdjacency builds a Graph from plain maps, the shape produced by most loaders.
// Nil maps are treated as empty. Empty identifiers are rejected.
//
// Complexity: O(E log d + T + L) where d is the maximum out-degree.
func FromAdjacency(adj map[string][]string, timestamps map[string]int, labels map[string]Label) (*Graph, error) {
	g := NewGraph()

	// 1) Edges: AddVertex first so nodes with an empty successor list keep their entry.
	for from, succ := range adj {
		if err := g.AddVertex(from); err != nil {
			return nil, err
		}
		for _, to := range succ {
			if _, err := g.AddEdge(from, to); err != nil {
				return nil, fmt.Errorf("core: FromAdjacency: edge %q->%q: %w", from, to, err)
			}
		}
	}

	// 2) Timestamps
	for id, ts := range timestamps {
		if err := g.SetTimestamp(id, ts); err != nil {
			return nil, fmt.Errorf("core: FromAdjacency: timestamp %q: %w", id, err)
		}
	}

	// 3) Labels
	for id, l := range labels {
		if err := g.SetLabel(id, l); err != nil {
			return nil, fmt.Errorf("core: FromAdjacency: label %q: %w", id, err)
		}
	}

	return g, nil
}

// AddVertex registers id with an empty successor set if it has no adjacency entry yet.
// Idempotent. Complexity: O(1).
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.adjacency[id]; !ok {
		g.adjacency[id] = nil
	}

	return nil
}

// AddEdge inserts the directed edge from→to and reports whether it was new.
// Adding an existing edge is a no-op that returns (false, nil).
// Self-loops are accepted; traversals never re-enter a node already on their path.
//
// Complexity: O(d) for the sorted insert, d = out-degree of from.
func (g *Graph) AddEdge(from, to string) (bool, error) {
	if from == "" || to == "" {
		return false, ErrEmptyVertexID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	succ := g.adjacency[from]
	i := sort.SearchStrings(succ, to)
	if i < len(succ) && succ[i] == to {
		return false, nil
	}

	// Sorted insert keeps Successors free of a per-call sort.
	succ = append(succ, "")
	copy(succ[i+1:], succ[i:])
	succ[i] = to
	g.adjacency[from] = succ
	g.edges++

	return true, nil
}

// SetTimestamp records the time step of id, overwriting any previous value.
func (g *Graph) SetTimestamp(id string, ts int) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	if ts < 0 {
		return ErrNegativeTimestamp
	}

	g.mu.Lock()
	g.timestamps[id] = ts
	g.mu.Unlock()

	return nil
}

// SetLabel records the class of id, overwriting any previous value.
func (g *Graph) SetLabel(id string, l Label) error {
	if id == "" {
		return ErrEmptyVertexID
	}

	g.mu.Lock()
	g.labels[id] = l
	g.mu.Unlock()

	return nil
}
