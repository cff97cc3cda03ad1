package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/txpath/dfs"
	"github.com/katalvlaran/txpath/projection"
	"github.com/katalvlaran/txpath/report"
	"github.com/katalvlaran/txpath/reuse"
	"github.com/katalvlaran/txpath/sampling"
)

var runID = uuid.MustParse("6f1c2d3e-4a5b-4c6d-8e7f-0a1b2c3d4e5f")

func newWriter(f report.Format) (*report.Writer, *bytes.Buffer) {
	var buf bytes.Buffer

	return report.NewWriter(&buf, f, report.WithRunID(runID)), &buf
}

func TestNewWriter_RandomRunID(t *testing.T) {
	a := report.NewWriter(&bytes.Buffer{}, report.Text)
	b := report.NewWriter(&bytes.Buffer{}, report.Text)
	assert.NotEqual(t, uuid.Nil, a.RunID())
	assert.NotEqual(t, a.RunID(), b.RunID())
}

func TestCycles_Text(t *testing.T) {
	w, buf := newWriter(report.Text)
	require.NoError(t, w.Cycles([][]string{{"A", "B", "C", "A"}}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# cycles (run "+runID.String()+")\n"))
	assert.Contains(t, out, "EDGES  CYCLE")
	assert.Contains(t, out, "3      A -> B -> C -> A")
}

func TestCycles_JSON(t *testing.T) {
	w, buf := newWriter(report.JSON)
	require.NoError(t, w.Cycles([][]string{{"A", "B", "A"}}))

	var got struct {
		RunID string `json:"run_id"`
		Kind  string `json:"kind"`
		Data  []struct {
			Nodes  []string `json:"nodes"`
			Length int      `json:"length"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, runID.String(), got.RunID)
	assert.Equal(t, "cycles", got.Kind)
	require.Len(t, got.Data, 1)
	assert.Equal(t, 2, got.Data[0].Length)
}

func TestPairs_JSON(t *testing.T) {
	w, buf := newWriter(report.JSON)
	pairs := dfs.RankPairs(map[dfs.Pair]dfs.PairStats{
		{Start: "A", Target: "F"}: {Count: 3, TotalDepth: 12},
	})
	require.NoError(t, w.Pairs(pairs))

	assert.JSONEq(t, `{
		"run_id": "`+runID.String()+`",
		"kind": "pairs",
		"data": [{"start":"A","target":"F","count":3,"total_depth":12,"avg_depth":4}]
	}`, buf.String())
}

func TestFrequenciesAndMixers_Text(t *testing.T) {
	w, buf := newWriter(report.Text)
	freq := reuse.Frequency{"M": 4, "C": 1}
	require.NoError(t, w.Frequencies(freq.Top(0)))
	require.NoError(t, w.Mixers(reuse.MixerScores(freq, reuse.Frequency{"C": 3})))

	out := buf.String()
	assert.Contains(t, out, "# frequencies")
	assert.Contains(t, out, "# mixers")
	assert.Contains(t, out, "4.0000")
	assert.Contains(t, out, "0.2500")
}

func TestSampling_Text(t *testing.T) {
	w, buf := newWriter(report.Text)
	res := &sampling.Result{
		Config: sampling.Config{Seed: 9},
		Trials: []sampling.TrialStats{{}, {Illicit: sampling.SideStats{Clamped: true}}},
		Illicit: []sampling.NodeSummary{
			{Node: "M", Summary: sampling.Summary{N: 2, Mean: 2, Lower: 2, Upper: 2}},
		},
	}
	require.NoError(t, w.Sampling(res))

	out := buf.String()
	assert.Contains(t, out, "illicit  M     2  2.0000  0.0000  [2.0000, 2.0000]")
	assert.Contains(t, out, "trials: 2 clamped: 1\n")
}

func TestAccounts_JSON(t *testing.T) {
	w, buf := newWriter(report.JSON)
	edges := []projection.AccountEdge{{From: 0, To: 1, Weight: 2}}
	require.NoError(t, w.Accounts(edges, map[int]int{2: 1}))

	assert.JSONEq(t, `{
		"run_id": "`+runID.String()+`",
		"kind": "accounts",
		"data": {
			"edges": [{"from":0,"to":1,"weight":2}],
			"histogram": [{"weight":2,"edges":1}]
		}
	}`, buf.String())
}

func TestPaths_EmptyText(t *testing.T) {
	w, buf := newWriter(report.Text)
	require.NoError(t, w.Paths(nil))
	assert.Contains(t, buf.String(), "DEPTH  PATH")
}
