package builder_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/txpath/builder"
	"github.com/katalvlaran/txpath/core"
	"github.com/katalvlaran/txpath/dfs"
)

func TestPathAndRamp_TimeOrderedChain(t *testing.T) {
	g, err := builder.BuildGraph(nil, builder.Path(5), builder.TimestampRamp(5, 10, 2))
	require.NoError(t, err)

	assert.Equal(t, []string{"0", "1", "2", "3", "4"}, g.Vertices())
	ts, ok := g.Timestamp("4")
	require.True(t, ok)
	assert.Equal(t, 18, ts)

	paths, err := dfs.CollectPaths(g, "0", "4", 5)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"0", "1", "2", "3", "4"}}, paths)
}

func TestCycle_FoundByCycleFinder(t *testing.T) {
	g, err := builder.BuildGraph(
		[]builder.BuilderOption{builder.WithIDScheme(builder.PrefixIDFn("c"))},
		builder.Cycle(4),
	)
	require.NoError(t, err)

	cycles, err := dfs.FindKCycles(g, 4, dfs.WithCanonicalCycles())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"c0", "c1", "c2", "c3", "c0"}}, cycles)
}

func TestStarAndComplete(t *testing.T) {
	g, err := builder.BuildGraph(nil, builder.Star(4))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, g.Successors("0"))

	g, err = builder.BuildGraph(nil, builder.Complete(4))
	require.NoError(t, err)
	assert.Equal(t, 12, g.Stats().Edges)

	g, err = builder.BuildGraph(nil, builder.Complete(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, g.Vertices())
}

func TestFunnel_HubIsInterior(t *testing.T) {
	g, err := builder.BuildGraph(nil,
		builder.Funnel(3, 2),
		builder.LabelRange(1, 4, core.LabelIllicit),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3"}, g.NodesByLabel(core.LabelIllicit))
	paths, err := dfs.CollectMaximalPaths(g, g.NodesByLabel(core.LabelIllicit), 0)
	require.NoError(t, err)
	require.Len(t, paths, 6)
	for _, p := range paths {
		assert.Equal(t, "0", p[1])
	}
}

func TestRandomSparse_Deterministic(t *testing.T) {
	build := func(seed int64) *core.Graph {
		g, err := builder.BuildGraph(
			[]builder.BuilderOption{builder.WithSeed(seed)},
			builder.RandomSparse(40, 0.1),
			builder.RandomTimestamps(40, 9),
			builder.RandomLabels(40, 0.2, 0.5),
		)
		require.NoError(t, err)

		return g
	}
	a, b := build(3), build(3)
	assert.Equal(t, a.Stats(), b.Stats())
	for _, id := range a.Vertices() {
		assert.Equal(t, a.Successors(id), b.Successors(id))
		assert.Equal(t, a.Label(id), b.Label(id))
	}
	assert.Len(t, a.Vertices(), 40, "isolated vertices are registered")
}

func TestRandomSparse_ExtremeProbabilities(t *testing.T) {
	g, err := builder.BuildGraph(nil, builder.RandomSparse(5, 0))
	require.NoError(t, err)
	assert.Equal(t, 0, g.Stats().Edges)
	assert.Len(t, g.Vertices(), 5)

	g, err = builder.BuildGraph(nil, builder.RandomSparse(5, 1))
	require.NoError(t, err)
	assert.Equal(t, 20, g.Stats().Edges)
}

func TestRandomLabels_Partition(t *testing.T) {
	g, err := builder.BuildGraph(
		[]builder.BuilderOption{builder.WithRand(rand.New(rand.NewSource(1)))},
		builder.RandomLabels(200, 0.25, 0.25),
	)
	require.NoError(t, err)

	st := g.Stats()
	assert.Equal(t, 200, st.Licit+st.Illicit+st.Unknown)
	assert.InDelta(t, 50, st.Illicit, 25)
	assert.InDelta(t, 50, st.Licit, 25)
}

func TestBuildGraph_Errors(t *testing.T) {
	cases := map[string]struct {
		cons builder.Constructor
		want error
	}{
		"short path":       {builder.Path(1), builder.ErrTooFewVertices},
		"short cycle":      {builder.Cycle(1), builder.ErrTooFewVertices},
		"empty funnel":     {builder.Funnel(0, 1), builder.ErrTooFewVertices},
		"bad probability":  {builder.RandomSparse(3, 1.5), builder.ErrInvalidProbability},
		"no rng":           {builder.RandomSparse(3, 0.5), builder.ErrNeedRandSource},
		"negative step":    {builder.TimestampRamp(3, 0, -1), builder.ErrInvalidTimestamp},
		"negative max":     {builder.RandomTimestamps(3, -1), builder.ErrInvalidTimestamp},
		"label mass":       {builder.RandomLabels(3, 0.7, 0.7), builder.ErrInvalidProbability},
		"labels no rng":    {builder.RandomLabels(3, 0.1, 0), builder.ErrNeedRandSource},
		"timestamp no rng": {builder.RandomTimestamps(3, 4), builder.ErrNeedRandSource},
		"nil constructor":  {nil, builder.ErrConstructFailed},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			g, err := builder.BuildGraph(nil, tc.cons)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, g)
		})
	}
}

func TestOptions_PanicOnNil(t *testing.T) {
	assert.Panics(t, func() { builder.WithIDScheme(nil) })
	assert.Panics(t, func() { builder.WithRand(nil) })
}
