// SPDX-License-Identifier: MIT

// Package reuse scores intermediary nodes by how often they sit strictly
// inside collected paths.
//
// Score counts interior occurrences (every node except a path's first and
// last) across a batch of paths. Running it once on licit-sourced paths and
// once on illicit-sourced paths yields two Frequency maps; MixerScores turns
// them into the ratio illicit/(licit+1), which grows without bound for nodes
// seen only on illicit paths and approaches 0 for nodes seen only on licit ones.
package reuse

import "sort"

// Frequency maps a node to its interior occurrence count.
type Frequency map[string]int

// NodeCount is one ranked Frequency entry.
type NodeCount struct {
	Node  string
	Count int
}

// MixerScore compares a node's licit and illicit interior counts.
type MixerScore struct {
	Node    string
	Licit   int
	Illicit int
	Score   float64 // Illicit / (Licit + 1)
}

// Score counts interior nodes over paths. Paths of fewer than three nodes
// have no interior and contribute nothing. A node repeated inside one path
// (which the explorers never produce) is counted once per occurrence.
//
// Invariant: Score(paths).Total() == Σ max(len(p)-2, 0).
func Score(paths [][]string) Frequency {
	freq := make(Frequency)
	for _, p := range paths {
		if len(p) <= 2 {
			continue
		}
		for _, id := range p[1 : len(p)-1] {
			freq[id]++
		}
	}

	return freq
}

// Merge adds other's counts into f.
func (f Frequency) Merge(other Frequency) {
	for id, c := range other {
		f[id] += c
	}
}

// Total returns the sum of all counts.
func (f Frequency) Total() int {
	total := 0
	for _, c := range f {
		total += c
	}

	return total
}

// Top returns the n most frequent nodes, count descending then node
// ascending. n <= 0 returns every node.
func (f Frequency) Top(n int) []NodeCount {
	out := make([]NodeCount, 0, len(f))
	for id, c := range f {
		out = append(out, NodeCount{Node: id, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Node < out[j].Node
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}

	return out
}

// MixerScores scores every node in the union of both maps as
// illicit/(licit+1), where the +1 keeps nodes absent from licit paths
// finite. The result is ordered by Score descending, then Node ascending.
func MixerScores(illicit, licit Frequency) []MixerScore {
	nodes := make(map[string]struct{}, len(illicit)+len(licit))
	for id := range illicit {
		nodes[id] = struct{}{}
	}
	for id := range licit {
		nodes[id] = struct{}{}
	}

	out := make([]MixerScore, 0, len(nodes))
	for id := range nodes {
		l, il := licit[id], illicit[id]
		out = append(out, MixerScore{
			Node:    id,
			Licit:   l,
			Illicit: il,
			Score:   float64(il) / float64(l+1),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}

		return out[i].Node < out[j].Node
	})

	return out
}
