package dfs_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/txpath/core"
)

// edge is a directed from→to pair used to build fixtures.
type edge struct{ From, To string }

// buildGraph creates a graph from edges and optional timestamps.
func buildGraph(tb testing.TB, edges []edge, ts map[string]int) *core.Graph {
	tb.Helper()
	g := core.NewGraph()
	for _, e := range edges {
		_, err := g.AddEdge(e.From, e.To)
		require.NoError(tb, err)
	}
	for id, v := range ts {
		require.NoError(tb, g.SetTimestamp(id, v))
	}

	return g
}

// completeDigraph links every ordered pair of n nodes N0..N{n-1}.
func completeDigraph(tb testing.TB, n int) *core.Graph {
	tb.Helper()
	g := core.NewGraph()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				_, err := g.AddEdge(fmt.Sprintf("N%d", i), fmt.Sprintf("N%d", j))
				require.NoError(tb, err)
			}
		}
	}

	return g
}

// randomTimedGraph builds a seeded random digraph with cycles and partial timestamps.
func randomTimedGraph(tb testing.TB, seed int64, nodes, edges int) *core.Graph {
	tb.Helper()
	r := rand.New(rand.NewSource(seed))
	g := core.NewGraph()
	for i := 0; i < edges; i++ {
		u := fmt.Sprintf("v%d", r.Intn(nodes))
		v := fmt.Sprintf("v%d", r.Intn(nodes))
		if u == v {
			continue
		}
		_, err := g.AddEdge(u, v)
		require.NoError(tb, err)
	}
	for i := 0; i < nodes; i++ {
		// leave roughly one node in five untimed
		if r.Intn(5) == 0 {
			continue
		}
		require.NoError(tb, g.SetTimestamp(fmt.Sprintf("v%d", i), r.Intn(6)))
	}

	return g
}

// summaryFixture is A→B, B→{C,F}, C→{F,D}, D→F with strictly increasing time steps.
func summaryFixture(tb testing.TB) *core.Graph {
	return buildGraph(tb,
		[]edge{{"A", "B"}, {"B", "C"}, {"B", "F"}, {"C", "F"}, {"C", "D"}, {"D", "F"}},
		map[string]int{"A": 1, "B": 2, "C": 3, "D": 4, "F": 5},
	)
}

func assertNoRepeat(tb testing.TB, path []string) {
	tb.Helper()
	seen := make(map[string]bool, len(path))
	for _, id := range path {
		require.False(tb, seen[id], "node %s repeated in %v", id, path)
		seen[id] = true
	}
}

func assertTimeOrdered(tb testing.TB, g *core.Graph, path []string) {
	tb.Helper()
	for i := 0; i+1 < len(path); i++ {
		require.True(tb, g.HasEdge(path[i], path[i+1]), "missing edge %s->%s", path[i], path[i+1])
		require.True(tb, g.CanTraverse(path[i], path[i+1]),
			"time order broken %s(%d)->%s(%d)", path[i], g.SourceTime(path[i]), path[i+1], g.TargetTime(path[i+1]))
	}
}
