// Package dfs implements bounded cycle finding on a directed core.Graph.
// FindKCycles runs a depth-bounded DFS from every node that has successors
// and reports each closed walk back to the origin whose edge count is at most
// k+1. Results are not deduplicated across origins unless WithCanonicalCycles
// is given; canonical cycles use the minimal rotation (Booth) as key.
//
// Complexity:
//
//   - Time:   O(V · d^(k+1)) worst case (d = max out-degree), bounded by k.
//   - Memory: O(k) for the path stack plus the reported cycles.
package dfs

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/txpath/core"
)

// cycleWalker holds the state of one origin's search.
type cycleWalker struct {
	graph  *core.Graph
	opts   CycleOptions
	origin string
	bound  int // maximum edges in a cycle (k+1)

	path   []string            // current DFS stack
	onPath map[string]struct{} // members of path
	seen   map[string]struct{} // canonical signatures, when opts.Canonical
	cycles [][]string
}

// FindKCycles returns cycles of at most k+1 edges, each closed (first == last).
//
// For every origin s (nodes with an adjacency entry, ascending) the walker
// pushes the current node, then for each successor:
//   - successor == s and the stack holds at least MinLength nodes: record;
//   - otherwise recurse if the successor is not on the stack and the
//     stack is shorter than k+1.
//
// A missing adjacency entry is "no successors", never an error.
// Errors: ErrGraphNil, ErrNegativeBound (k < 0).
func FindKCycles(g *core.Graph, k int, opts ...CycleOption) ([][]string, error) {
	// 1. Validate input
	if g == nil {
		return nil, ErrGraphNil
	}
	if k < 0 {
		return nil, fmt.Errorf("dfs: FindKCycles: k=%d: %w", k, ErrNegativeBound)
	}

	// 2. Apply options
	copts := DefaultCycleOptions()
	for _, fn := range opts {
		fn(&copts)
	}
	if copts.MinLength < 2 {
		copts.MinLength = 2
	}

	w := &cycleWalker{
		graph:  g,
		opts:   copts,
		bound:  k + 1,
		onPath: make(map[string]struct{}),
	}
	if copts.Canonical {
		w.seen = make(map[string]struct{})
	}

	// 3. One search per origin; path and onPath are empty between origins.
	for _, s := range g.Sources() {
		w.origin = s
		if w.visit(s) {
			break
		}
	}

	// 4. Canonical cycles are listed in lexicographic order.
	if copts.Canonical {
		sort.Slice(w.cycles, func(i, j int) bool {
			return Compare(w.cycles[i], w.cycles[j]) < 0
		})
	}

	return w.cycles, nil
}

// visit explores from id and reports whether the cycle limit was reached.
func (w *cycleWalker) visit(id string) bool {
	w.path = append(w.path, id)
	w.onPath[id] = struct{}{}
	defer func() {
		w.path = w.path[:len(w.path)-1]
		delete(w.onPath, id)
	}()

	for _, nb := range w.graph.Successors(id) {
		if nb == w.origin {
			if len(w.path) >= w.opts.MinLength && len(w.path) <= w.bound {
				if w.record() {
					return true
				}
			}
			continue
		}
		if _, on := w.onPath[nb]; on || len(w.path) >= w.bound {
			continue
		}
		if w.visit(nb) {
			return true
		}
	}

	return false
}

// record stores the current stack as a closed cycle; true means stop.
func (w *cycleWalker) record() bool {
	open := w.path
	if w.opts.Canonical {
		open = MinimalRotation(w.path)
		sig := JoinSig(open)
		if _, dup := w.seen[sig]; dup {
			return false
		}
		w.seen[sig] = struct{}{}
	}
	w.cycles = append(w.cycles, closeCycle(open))

	return w.opts.Limit > 0 && len(w.cycles) >= w.opts.Limit
}

// FindCycleFrom returns the first cycle through start with at most maxDepth+1
// edges, closed on start. 2-cycles count. ok is false when none exists.
// Successors are tried in ascending order, so the result is deterministic.
func FindCycleFrom(g *core.Graph, start string, maxDepth int) (cycle []string, ok bool, err error) {
	if g == nil {
		return nil, false, ErrGraphNil
	}
	if maxDepth < 0 {
		return nil, false, fmt.Errorf("dfs: FindCycleFrom: maxDepth=%d: %w", maxDepth, ErrNegativeBound)
	}

	w := &cycleWalker{
		graph:  g,
		opts:   CycleOptions{MinLength: 2, Limit: 1},
		origin: start,
		bound:  maxDepth + 1,
		onPath: make(map[string]struct{}),
	}
	w.visit(start)
	if len(w.cycles) == 0 {
		return nil, false, nil
	}

	return w.cycles[0], true, nil
}
