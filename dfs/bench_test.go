package dfs_test

import (
	"testing"

	"github.com/katalvlaran/txpath/dfs"
)

// BenchmarkSummarize_Random measures capped path counting on a random timed graph.
func BenchmarkSummarize_Random(b *testing.B) {
	g := randomTimedGraph(b, 7, 200, 1200)
	starts := []string{"v0", "v1", "v2", "v3", "v4"}
	targets := []string{"v10", "v11", "v12", "v13", "v14"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = dfs.Summarize(g, starts, targets, 6, 50)
	}
}

// BenchmarkFindKCycles_Complete runs the cycle finder on a complete digraph.
func BenchmarkFindKCycles_Complete(b *testing.B) {
	g := completeDigraph(b, 8)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = dfs.FindKCycles(g, 3)
	}
}
