package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture writes a small dataset: the A..F summarizer diamond (timestamped,
// A illicit) and an untimed X→Y→Z→X triangle (X licit).
func fixture(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

		return p
	}

	return []string{
		"--edges", write("edges.csv", "txId1,txId2\nA,B\nB,C\nB,F\nC,F\nC,D\nD,F\nX,Y\nY,Z\nZ,X\n"),
		"--timestamps", write("features.csv", "A,1\nB,2\nC,3\nD,4\nF,5\n"),
		"--labels", write("classes.csv", "txId,class\nA,2\nX,1\n"),
		"--env-file", "",
		"--log-level", "error",
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

type envelope struct {
	RunID string          `json:"run_id"`
	Kind  string          `json:"kind"`
	Data  json.RawMessage `json:"data"`
}

func decode(t *testing.T, out string) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	require.NotEmpty(t, env.RunID)

	return env
}

func TestCycles(t *testing.T) {
	base := fixture(t)

	out, err := run(t, append([]string{"cycles", "--json", "--k", "3"}, base...)...)
	require.NoError(t, err)
	env := decode(t, out)
	assert.Equal(t, "cycles", env.Kind)

	var rows []struct {
		Nodes  []string `json:"nodes"`
		Length int      `json:"length"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Len(t, rows, 3, "one row per rotation")

	out, err = run(t, append([]string{"cycles", "--json", "--canonical"}, base...)...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(decode(t, out).Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"X", "Y", "Z", "X"}, rows[0].Nodes)

	out, err = run(t, append([]string{"cycles", "--json", "--k", "2"}, base...)...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(decode(t, out).Data, &rows))
	require.Len(t, rows, 3, "k=2 admits the 3-edge triangle")
	for _, r := range rows {
		assert.Equal(t, 3, r.Length)
	}

	rows = nil
	out, err = run(t, append([]string{"cycles", "--json", "--k", "1"}, base...)...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(decode(t, out).Data, &rows))
	assert.Empty(t, rows)
}

func TestPaths(t *testing.T) {
	out, err := run(t, append([]string{"paths", "--json", "--start", "A", "--target", "F", "--depth", "10"}, fixture(t)...)...)
	require.NoError(t, err)

	var rows []struct {
		Nodes []string `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal(decode(t, out).Data, &rows))
	assert.Len(t, rows, 3)
}

func TestPaths_NeedsMode(t *testing.T) {
	_, err := run(t, append([]string{"paths", "--start", "A"}, fixture(t)...)...)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	out, err := run(t, append([]string{"summarize", "--json", "--starts", "A", "--targets", "F,D", "--depth", "10"}, fixture(t)...)...)
	require.NoError(t, err)

	var rows []struct {
		Start      string `json:"start"`
		Target     string `json:"target"`
		Count      int    `json:"count"`
		TotalDepth int    `json:"total_depth"`
	}
	require.NoError(t, json.Unmarshal(decode(t, out).Data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "F", rows[0].Target)
	assert.Equal(t, 3, rows[0].Count)
	assert.Equal(t, 12, rows[0].TotalDepth)
}

func TestReuse_TextOutput(t *testing.T) {
	out, err := run(t, append([]string{"reuse", "--label", "illicit", "--depth", "0"}, fixture(t)...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "# frequencies")
	// B is interior to all three maximal paths from A.
	assert.Regexp(t, `(?m)^B\s+3$`, out)
}

func TestReuse_BadLabel(t *testing.T) {
	_, err := run(t, append([]string{"reuse", "--label", "grey"}, fixture(t)...)...)
	assert.ErrorContains(t, err, "grey")
}

func TestMixers(t *testing.T) {
	out, err := run(t, append([]string{"mixers", "--json", "--trials", "2", "--seed", "5"}, fixture(t)...)...)
	require.NoError(t, err)

	var data struct {
		Trials int   `json:"trials"`
		Seed   int64 `json:"seed"`
	}
	env := decode(t, out)
	assert.Equal(t, "sampling", env.Kind)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2, data.Trials)
	assert.Equal(t, int64(5), data.Seed)
}

func TestProject(t *testing.T) {
	out, err := run(t, append([]string{"project", "--json", "--depth", "0"}, fixture(t)...)...)
	require.NoError(t, err)

	var data struct {
		Edges []struct {
			Weight int `json:"weight"`
		} `json:"edges"`
		Histogram []struct {
			Weight int `json:"weight"`
			Edges  int `json:"edges"`
		} `json:"histogram"`
	}
	require.NoError(t, json.Unmarshal(decode(t, out).Data, &data))
	assert.Len(t, data.Edges, 5)
	require.Len(t, data.Histogram, 1)
	assert.Equal(t, 5, data.Histogram[0].Edges)
}

func TestMissingEdges(t *testing.T) {
	t.Setenv("TXPATH_EDGES", "")
	_, err := run(t, "cycles", "--env-file", "", "--log-level", "error")
	assert.ErrorIs(t, err, errNoEdges)
}

func TestBadConfigFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(p, []byte("sampling:\n  trials: -1\n"), 0o600))
	_, err := run(t, append([]string{"cycles", "--config", p}, fixture(t)...)...)
	assert.Error(t, err)
}

func TestGenerate_FeedsOtherCommands(t *testing.T) {
	dir := t.TempDir()
	base := []string{"--env-file", "", "--log-level", "error"}
	gen := append([]string{"generate", "--nodes", "60", "--p", "0.08", "--seed", "5", "--out", dir}, base...)
	out, err := run(t, gen...)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "edges.csv"))

	edges, err := os.ReadFile(filepath.Join(dir, "edges.csv"))
	require.NoError(t, err)

	again := t.TempDir()
	_, err = run(t, append([]string{"generate", "--nodes", "60", "--p", "0.08", "--seed", "5", "--out", again}, base...)...)
	require.NoError(t, err)
	edges2, err := os.ReadFile(filepath.Join(again, "edges.csv"))
	require.NoError(t, err)
	assert.Equal(t, string(edges), string(edges2), "same seed, same dataset")

	_, err = run(t, append([]string{"reuse", "--json", "--label", "illicit", "--depth", "4",
		"--edges", filepath.Join(dir, "edges.csv"),
		"--timestamps", filepath.Join(dir, "features.csv"),
		"--labels", filepath.Join(dir, "classes.csv"),
	}, base...)...)
	require.NoError(t, err)
}

func TestGenerate_BadProbability(t *testing.T) {
	_, err := run(t, "generate", "--p", "2", "--out", t.TempDir(), "--env-file", "", "--log-level", "error")
	assert.Error(t, err)
}
