// SPDX-License-Identifier: MIT
//
// File: methods_vertices.go
// Role: Node enumeration and graph statistics.
// Determinism:
//   - Vertices(), Sources() and NodesByLabel() return IDs sorted ascending.

package core

import "sort"

// HasVertex reports whether id appears anywhere in the graph: as an adjacency
// key, a successor, or a timestamp/label key.
//
// Complexity: O(1) for keyed nodes, O(E) when id only appears as a successor.
func (g *Graph) HasVertex(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.adjacency[id]; ok {
		return true
	}
	if _, ok := g.timestamps[id]; ok {
		return true
	}
	if _, ok := g.labels[id]; ok {
		return true
	}
	for _, succ := range g.adjacency {
		i := sort.SearchStrings(succ, id)
		if i < len(succ) && succ[i] == id {
			return true
		}
	}

	return false
}

// Vertices returns every identifier known to the graph, sorted ascending.
// Complexity: O(V log V + E).
func (g *Graph) Vertices() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return sortedKeys(g.vertexSetLocked())
}

// Sources returns the nodes that have an adjacency entry, sorted ascending.
// These are the roots the cycle finder starts from.
func (g *Graph) Sources() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]string, 0, len(g.adjacency))
	for id := range g.adjacency {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

// NodesByLabel returns the nodes carrying label l, sorted ascending.
// For LabelUnknown only nodes with an explicit unknown label are returned.
func (g *Graph) NodesByLabel(l Label) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []string
	for id, got := range g.labels {
		if got == l {
			out = append(out, id)
		}
	}
	sort.Strings(out)

	return out
}

// Stats returns a summary snapshot of the graph.
// Complexity: O(V + E).
func (g *Graph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := Stats{
		Vertices:    len(g.vertexSetLocked()),
		Edges:       g.edges,
		Sources:     len(g.adjacency),
		Timestamped: len(g.timestamps),
	}
	if s.Sources > 0 {
		s.AvgOutDegree = float64(s.Edges) / float64(s.Sources)
	}
	for _, l := range g.labels {
		switch l {
		case LabelLicit:
			s.Licit++
		case LabelIllicit:
			s.Illicit++
		default:
			s.Unknown++
		}
	}

	return s
}

// vertexSetLocked collects all identifiers; caller holds g.mu.
func (g *Graph) vertexSetLocked() map[string]struct{} {
	set := make(map[string]struct{}, len(g.adjacency)+len(g.timestamps))
	for id, succ := range g.adjacency {
		set[id] = struct{}{}
		for _, to := range succ {
			set[to] = struct{}{}
		}
	}
	for id := range g.timestamps {
		set[id] = struct{}{}
	}
	for id := range g.labels {
		set[id] = struct{}{}
	}

	return set
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}
