// Package dfs implements the time-ordered path explorers on core.Graph.
//
// Every explorer descends from u to a successor v only when
// g.CanTraverse(u, v) holds (T(v) >= T(u), with the core defaults for
// untimed nodes) and v is not already on the current path. The on-path set is
// owned by one call and cleared on every exit, so a node blocked on one
// branch is still reachable through another.
//
// Depth convention: the origin has depth 1 and each edge adds one.
//
// Complexity: exponential in maxDepth on dense graphs; maxDepth is the only
// termination guarantee besides the on-path set.
package dfs

import (
	"fmt"

	"github.com/katalvlaran/txpath/core"
)

// pathWalker encapsulates the mutable state of one explorer call.
type pathWalker struct {
	graph    *core.Graph
	maxDepth int

	onPath map[string]struct{}
	path   []string

	reachable map[string]struct{} // reachability mode
	paths     [][]string          // enumeration modes
}

func newPathWalker(g *core.Graph, maxDepth int) *pathWalker {
	return &pathWalker{
		graph:    g,
		maxDepth: maxDepth,
		onPath:   make(map[string]struct{}),
	}
}

func (w *pathWalker) push(id string) {
	w.path = append(w.path, id)
	w.onPath[id] = struct{}{}
}

func (w *pathWalker) pop(id string) {
	w.path = w.path[:len(w.path)-1]
	delete(w.onPath, id)
}

func (w *pathWalker) snapshot() {
	w.paths = append(w.paths, append([]string(nil), w.path...))
}

// CollectReachable returns every node reachable from any of starts along a
// time-ordered simple path of at most maxDepth nodes. Starts themselves are
// included when maxDepth >= 1. The result accumulates across all starts.
//
// Errors: ErrGraphNil, ErrNegativeBound (maxDepth < 0).
func CollectReachable(g *core.Graph, starts []string, maxDepth int) (map[string]struct{}, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if maxDepth < 0 {
		return nil, fmt.Errorf("dfs: CollectReachable: maxDepth=%d: %w", maxDepth, ErrNegativeBound)
	}

	w := newPathWalker(g, maxDepth)
	w.reachable = make(map[string]struct{})
	for _, s := range starts {
		w.reach(s, 1)
	}

	return w.reachable, nil
}

func (w *pathWalker) reach(id string, depth int) {
	if depth > w.maxDepth {
		return
	}
	if _, on := w.onPath[id]; on {
		return
	}

	w.push(id)
	w.reachable[id] = struct{}{}
	for _, nb := range w.graph.Successors(id) {
		if w.graph.CanTraverse(id, nb) {
			w.reach(nb, depth+1)
		}
	}
	w.pop(id)
}

// CollectPaths enumerates every time-ordered simple path from start to target
// with at most maxDepth nodes. A path is recorded the moment target is
// reached at depth > 1 and is not extended past target; other branches may
// reach target again, so many paths to the same target can be returned.
// start == target never yields a path (the start is already on the path).
//
// Errors: ErrGraphNil, ErrNegativeBound (maxDepth < 0).
func CollectPaths(g *core.Graph, start, target string, maxDepth int) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if maxDepth < 0 {
		return nil, fmt.Errorf("dfs: CollectPaths: maxDepth=%d: %w", maxDepth, ErrNegativeBound)
	}

	w := newPathWalker(g, maxDepth)
	w.toTarget(start, target, 1)

	return w.paths, nil
}

func (w *pathWalker) toTarget(id, target string, depth int) {
	if depth > w.maxDepth {
		return
	}
	if _, on := w.onPath[id]; on {
		return
	}

	w.push(id)
	if id == target && depth > 1 {
		w.snapshot()
	} else {
		for _, nb := range w.graph.Successors(id) {
			if w.graph.CanTraverse(id, nb) {
				w.toTarget(nb, target, depth+1)
			}
		}
	}
	w.pop(id)
}

// CollectMaximalPaths returns, for each start in order, every leaf path of the
// time-ordered simple-path tree: a path is recorded exactly when no
// traversable, not-yet-visited successor remains. A start without eligible
// successors yields the single path [start].
//
// maxDepth > 0 caps paths at maxDepth nodes; a path cut by the cap counts as
// a leaf. maxDepth == 0 leaves the search unbounded, which is exponential on
// dense graphs.
//
// Errors: ErrGraphNil, ErrNegativeBound (maxDepth < 0).
func CollectMaximalPaths(g *core.Graph, starts []string, maxDepth int) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if maxDepth < 0 {
		return nil, fmt.Errorf("dfs: CollectMaximalPaths: maxDepth=%d: %w", maxDepth, ErrNegativeBound)
	}

	w := newPathWalker(g, maxDepth)
	for _, s := range starts {
		w.maximal(s)
	}

	return w.paths, nil
}

func (w *pathWalker) maximal(id string) {
	w.push(id)

	extended := false
	if w.maxDepth == 0 || len(w.path) < w.maxDepth {
		for _, nb := range w.graph.Successors(id) {
			if _, on := w.onPath[nb]; on {
				continue
			}
			if w.graph.CanTraverse(id, nb) {
				extended = true
				w.maximal(nb)
			}
		}
	}
	if !extended {
		w.snapshot()
	}

	w.pop(id)
}

// CollectPrefixPaths ignores timestamps and records the path to every node
// of the simple-path tree rooted at each start, including the one-node path
// [start]. Paths hold at most maxDepth+1 nodes. Used for account graphs,
// where every prefix contributes to intermediary reuse counts.
//
// Errors: ErrGraphNil, ErrNegativeBound (maxDepth < 0).
func CollectPrefixPaths(g *core.Graph, starts []string, maxDepth int) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if maxDepth < 0 {
		return nil, fmt.Errorf("dfs: CollectPrefixPaths: maxDepth=%d: %w", maxDepth, ErrNegativeBound)
	}

	w := newPathWalker(g, maxDepth)
	for _, s := range starts {
		w.prefix(s)
	}

	return w.paths, nil
}

func (w *pathWalker) prefix(id string) {
	if len(w.path) > w.maxDepth {
		return
	}

	w.push(id)
	for _, nb := range w.graph.Successors(id) {
		if _, on := w.onPath[nb]; !on {
			w.prefix(nb)
		}
	}
	// recorded on exit: deeper prefixes precede their ancestors
	w.snapshot()
	w.pop(id)
}
