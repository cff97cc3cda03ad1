// Package dfs implements the path-count summarizer: a memory-bounded variant
// of CollectPaths that keeps only (count, total depth) per (start, target)
// pair instead of materializing paths.
//
// Complexity:
//
//   - Memory: O(|starts| · |targets|) entries plus O(maxDepth) stack,
//     independent of how many paths exist.
//   - Time:   one bounded DFS per pair; a pair's search stops as soon as its
//     count reaches maxPaths.
package dfs

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/txpath/core"
)

// summaryWalker counts paths for a single (start, target) pair.
type summaryWalker struct {
	graph    *core.Graph
	target   string
	maxDepth int
	maxPaths int

	onPath map[string]struct{}
	stats  PairStats
}

// Summarize runs a depth-bounded, time-ordered DFS for every pair in
// starts × targets and returns the per-pair path count and total depth.
//
// The origin is at depth 1. A node at depth >= maxDepth is not expanded, and
// an edge is followed only while depth < maxDepth, so counted paths have at
// most maxDepth-1 nodes. Reaching target at depth > 1 completes a path; once
// a pair has maxPaths paths, further completions are dropped.
//
// Pairs with no counted path are absent from the result.
// Errors: ErrGraphNil, ErrNegativeBound (maxDepth or maxPaths < 0).
func Summarize(g *core.Graph, starts, targets []string, maxDepth, maxPaths int) (map[Pair]PairStats, error) {
	// 1. Validate
	if g == nil {
		return nil, ErrGraphNil
	}
	if maxDepth < 0 || maxPaths < 0 {
		return nil, fmt.Errorf("dfs: Summarize: maxDepth=%d maxPaths=%d: %w", maxDepth, maxPaths, ErrNegativeBound)
	}

	stats := make(map[Pair]PairStats)
	if maxPaths == 0 {
		return stats, nil
	}

	// 2. One fresh walker per pair; on-path state never leaks between pairs.
	//    A pair repeated in starts/targets resumes from its stored counts.
	for _, s := range starts {
		for _, t := range targets {
			key := Pair{Start: s, Target: t}
			w := &summaryWalker{
				graph:    g,
				target:   t,
				maxDepth: maxDepth,
				maxPaths: maxPaths,
				onPath:   make(map[string]struct{}),
				stats:    stats[key],
			}
			if w.stats.Count >= maxPaths {
				continue
			}
			w.visit(s, 1)
			if w.stats.Count > 0 {
				stats[key] = w.stats
			}
		}
	}

	return stats, nil
}

// visit returns true once the pair is saturated.
func (w *summaryWalker) visit(id string, depth int) bool {
	if depth >= w.maxDepth {
		return false
	}
	if _, on := w.onPath[id]; on {
		return false
	}

	if id == w.target && depth > 1 {
		// Count < maxPaths always holds here: the walk stops at saturation.
		w.stats.Count++
		w.stats.TotalDepth += depth

		return w.stats.Count >= w.maxPaths
	}

	w.onPath[id] = struct{}{}
	defer delete(w.onPath, id)

	for _, nb := range w.graph.Successors(id) {
		if !w.graph.CanTraverse(id, nb) || depth >= w.maxDepth {
			continue
		}
		if w.visit(nb, depth+1) {
			return true
		}
	}

	return false
}

// RankPairs orders a summary by Count descending, then Start and Target
// ascending, so ties are broken deterministically.
func RankPairs(stats map[Pair]PairStats) []PairCount {
	out := make([]PairCount, 0, len(stats))
	for p, s := range stats {
		out = append(out, PairCount{Pair: p, PairStats: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}

		return out[i].Target < out[j].Target
	})

	return out
}
