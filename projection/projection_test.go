package projection_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/txpath/core"
	"github.com/katalvlaran/txpath/projection"
)

func TestAssignAccounts_Chaining(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.SetTimestamp("A", 3))

	a := projection.AssignAccounts([][]string{
		{"A", "B", "C"},
		{"A", "D"},      // A already assigned: D chains from A's end
		{"E", "B", "F"}, // B already assigned: F chains from B's end
	}, g)

	assert.Equal(t, projection.Assignment{
		"A": {Tx: "A", Start: 0, End: 1, Timestamp: 3},
		"B": {Tx: "B", Start: 1, End: 2},
		"C": {Tx: "C", Start: 2, End: 3},
		"D": {Tx: "D", Start: 1, End: 4},
		"E": {Tx: "E", Start: 5, End: 6},
		"F": {Tx: "F", Start: 2, End: 7},
	}, a)
}

func TestAssignAccounts_Empty(t *testing.T) {
	assert.Empty(t, projection.AssignAccounts(nil, nil))
	assert.Empty(t, projection.AssignAccounts([][]string{{}}, nil))
}

func TestBuildAccountGraph(t *testing.T) {
	a := projection.AssignAccounts([][]string{{"A", "B", "C"}, {"A", "D"}}, nil)
	ag := projection.BuildAccountGraph(a)

	assert.Equal(t, []projection.AccountEdge{
		{From: 0, To: 1, Weight: 1},
		{From: 1, To: 2, Weight: 1},
		{From: 1, To: 4, Weight: 1},
		{From: 2, To: 3, Weight: 1},
	}, projection.Edges(ag))
	assert.Equal(t, 5, ag.Nodes().Len())
}

func TestBuildAccountGraph_ParallelTransactionsAggregate(t *testing.T) {
	a := projection.Assignment{
		"t1": {Tx: "t1", Start: 0, End: 1},
		"t2": {Tx: "t2", Start: 0, End: 1},
		"t3": {Tx: "t3", Start: 0, End: 1},
		"t4": {Tx: "t4", Start: 1, End: 2},
		"t5": {Tx: "t5", Start: 2, End: 0},
	}
	ag := projection.BuildAccountGraph(a)

	assert.Equal(t, []projection.AccountEdge{
		{From: 0, To: 1, Weight: 3},
		{From: 1, To: 2, Weight: 1},
		{From: 2, To: 0, Weight: 1},
	}, projection.Edges(ag))
	assert.Equal(t, map[int]int{3: 1, 1: 2}, projection.WeightHistogram(ag))
}

func TestWeightHistogram_FromPaths(t *testing.T) {
	paths := make([][]string, 0, 10)
	for i := 0; i < 10; i++ {
		paths = append(paths, []string{"root", fmt.Sprintf("leaf%d", i)})
	}
	ag := projection.BuildAccountGraph(projection.AssignAccounts(paths, nil))

	// root once plus ten leaves chained from root's end.
	assert.Equal(t, map[int]int{1: 11}, projection.WeightHistogram(ag))
}

func TestAssignment_Sorted(t *testing.T) {
	a := projection.Assignment{
		"z": {Tx: "z", Start: 0, End: 1},
		"y": {Tx: "y", Start: 0, End: 1},
		"x": {Tx: "x", Start: 1, End: 2},
	}
	got := a.Sorted()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"y", "z", "x"}, []string{got[0].Tx, got[1].Tx, got[2].Tx})
}
