package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/txpath/core"
	"github.com/katalvlaran/txpath/loader"
)

var ctx = context.Background()

func TestLoadEdges(t *testing.T) {
	in := "txId1,txId2\nA,B\nA,C\nB,C\nA,B\n"
	adj, err := loader.LoadEdges(ctx, strings.NewReader(in), loader.ReadOptions{Header: true})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"A": {"B", "C", "B"}, "B": {"C"}}, adj)
}

func TestLoadEdges_ShortRecord(t *testing.T) {
	in := "h1,h2\nA,B\nlonely\n"
	_, err := loader.LoadEdges(ctx, strings.NewReader(in), loader.ReadOptions{Name: "edges.csv", Header: true})
	require.ErrorIs(t, err, loader.ErrMalformedRecord)
	assert.Contains(t, err.Error(), "edges.csv:3")
}

func TestLoadEdges_EmptyTarget(t *testing.T) {
	_, err := loader.LoadEdges(ctx, strings.NewReader("A,\n"), loader.ReadOptions{})
	assert.ErrorIs(t, err, loader.ErrMalformedRecord)
}

func TestLoadTimestamps(t *testing.T) {
	in := "A,1,0.5,0.7\nB, 4,1\nA,2\n"
	ts, err := loader.LoadTimestamps(ctx, strings.NewReader(in), loader.ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 2, "B": 4}, ts, "last write wins")
}

func TestLoadTimestamps_Bad(t *testing.T) {
	for name, in := range map[string]string{
		"not a number": "A,x\n",
		"negative":     "A,-3\n",
		"empty id":     ",3\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := loader.LoadTimestamps(ctx, strings.NewReader(in), loader.ReadOptions{Name: "f.csv"})
			require.ErrorIs(t, err, loader.ErrMalformedRecord)
			assert.Contains(t, err.Error(), "f.csv:1")
		})
	}
}

func TestLoadLabels(t *testing.T) {
	in := "txId,class\nA,1\nB,2\nC,unknown\n"
	labels, err := loader.LoadLabels(ctx, strings.NewReader(in), loader.ReadOptions{Header: true})
	require.NoError(t, err)
	assert.Equal(t, map[string]core.Label{
		"A": core.LabelLicit,
		"B": core.LabelIllicit,
		"C": core.LabelUnknown,
	}, labels)
}

func TestLoad_Cancelled(t *testing.T) {
	c, cancel := context.WithCancel(ctx)
	cancel()
	_, err := loader.LoadEdges(c, strings.NewReader("a,b\n"), loader.ReadOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	return p
}

func TestLoadGraph(t *testing.T) {
	dir := t.TempDir()
	p := loader.Paths{
		Edges:      writeFile(t, dir, "edges.csv", "txId1,txId2\nA,B\nB,C\nA,B\n"),
		Timestamps: writeFile(t, dir, "features.csv", "A,1,9\nB,2,9\nC,3,9\n"),
		Labels:     writeFile(t, dir, "classes.csv", "txId,class\nA,2\nC,1\n"),
	}

	g, err := loader.LoadGraph(ctx, p)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, g.Vertices())
	assert.Equal(t, []string{"B"}, g.Successors("A"))
	assert.True(t, g.CanTraverse("A", "B"))
	assert.Equal(t, core.LabelIllicit, g.Label("A"))
	assert.Equal(t, core.LabelLicit, g.Label("C"))

	st := g.Stats()
	assert.Equal(t, 2, st.Edges)
	assert.Equal(t, 3, st.Timestamped)
}

func TestLoadGraph_EdgesOnly(t *testing.T) {
	dir := t.TempDir()
	g, err := loader.LoadGraph(ctx, loader.Paths{Edges: writeFile(t, dir, "e.csv", "h,h\nX,Y\n")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Y"}, g.Successors("X"))
	assert.Empty(t, g.NodesByLabel(core.LabelIllicit))
}

func TestLoadGraph_Errors(t *testing.T) {
	_, err := loader.LoadGraph(ctx, loader.Paths{})
	assert.Error(t, err)

	dir := t.TempDir()
	_, err = loader.LoadGraph(ctx, loader.Paths{
		Edges:      writeFile(t, dir, "e.csv", "h,h\nX,Y\n"),
		Timestamps: writeFile(t, dir, "f.csv", "X,oops\n"),
	})
	assert.ErrorIs(t, err, loader.ErrMalformedRecord)

	_, err = loader.LoadGraph(ctx, loader.Paths{Edges: filepath.Join(dir, "missing.csv")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
