// SPDX-License-Identifier: MIT

// Package report renders engine results as aligned text tables or as one
// JSON document per call. Every document carries the writer's run ID so
// the sections of one CLI invocation can be correlated.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/katalvlaran/txpath/dfs"
	"github.com/katalvlaran/txpath/projection"
	"github.com/katalvlaran/txpath/reuse"
	"github.com/katalvlaran/txpath/sampling"
)

// Format selects the output encoding.
type Format int

const (
	Text Format = iota
	JSON
)

// Option configures a Writer.
type Option func(*Writer)

// WithRunID fixes the run ID instead of generating a random one.
func WithRunID(id uuid.UUID) Option {
	return func(w *Writer) { w.runID = id }
}

// Writer renders results to an io.Writer. Not safe for concurrent use.
type Writer struct {
	out    io.Writer
	format Format
	runID  uuid.UUID
}

// NewWriter returns a Writer with a fresh random run ID.
func NewWriter(out io.Writer, f Format, opts ...Option) *Writer {
	w := &Writer{out: out, format: f, runID: uuid.New()}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// RunID returns the run identifier stamped on every section.
func (w *Writer) RunID() uuid.UUID { return w.runID }

type envelope struct {
	RunID string `json:"run_id"`
	Kind  string `json:"kind"`
	Data  any    `json:"data"`
}

// section writes data as JSON, or as a titled table built by rows followed
// by an optional footer.
func (w *Writer) section(kind string, data any, header string, rows func(tw io.Writer), footer string) error {
	if w.format == JSON {
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(envelope{RunID: w.runID.String(), Kind: kind, Data: data}); err != nil {
			return fmt.Errorf("report: %s: %w", kind, err)
		}

		return nil
	}

	if _, err := fmt.Fprintf(w.out, "# %s (run %s)\n", kind, w.runID); err != nil {
		return fmt.Errorf("report: %s: %w", kind, err)
	}
	tw := tabwriter.NewWriter(w.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("report: %s: %w", kind, err)
	}
	if footer != "" {
		if _, err := io.WriteString(w.out, footer); err != nil {
			return fmt.Errorf("report: %s: %w", kind, err)
		}
	}

	return nil
}

func arrow(p []string) string { return strings.Join(p, " -> ") }

// Cycles renders closed cycles.
func (w *Writer) Cycles(cycles [][]string) error {
	type row struct {
		Nodes  []string `json:"nodes"`
		Length int      `json:"length"`
	}
	data := make([]row, len(cycles))
	for i, c := range cycles {
		data[i] = row{Nodes: c, Length: len(c) - 1}
	}

	return w.section("cycles", data, "EDGES\tCYCLE", func(tw io.Writer) {
		for _, r := range data {
			fmt.Fprintf(tw, "%d\t%s\n", r.Length, arrow(r.Nodes))
		}
	}, "")
}

// Paths renders node paths.
func (w *Writer) Paths(paths [][]string) error {
	type row struct {
		Nodes []string `json:"nodes"`
		Depth int      `json:"depth"`
	}
	data := make([]row, len(paths))
	for i, p := range paths {
		data[i] = row{Nodes: p, Depth: len(p)}
	}

	return w.section("paths", data, "DEPTH\tPATH", func(tw io.Writer) {
		for _, r := range data {
			fmt.Fprintf(tw, "%d\t%s\n", r.Depth, arrow(r.Nodes))
		}
	}, "")
}

// Pairs renders ranked summarizer output.
func (w *Writer) Pairs(pairs []dfs.PairCount) error {
	type row struct {
		Start      string  `json:"start"`
		Target     string  `json:"target"`
		Count      int     `json:"count"`
		TotalDepth int     `json:"total_depth"`
		AvgDepth   float64 `json:"avg_depth"`
	}
	data := make([]row, len(pairs))
	for i, p := range pairs {
		avg, _ := p.AvgDepth()
		data[i] = row{Start: p.Start, Target: p.Target, Count: p.Count, TotalDepth: p.TotalDepth, AvgDepth: avg}
	}

	return w.section("pairs", data, "START\tTARGET\tCOUNT\tTOTAL_DEPTH\tAVG_DEPTH", func(tw io.Writer) {
		for _, r := range data {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.2f\n", r.Start, r.Target, r.Count, r.TotalDepth, r.AvgDepth)
		}
	}, "")
}

// Frequencies renders interior-node counts.
func (w *Writer) Frequencies(top []reuse.NodeCount) error {
	type row struct {
		Node  string `json:"node"`
		Count int    `json:"count"`
	}
	data := make([]row, len(top))
	for i, nc := range top {
		data[i] = row{Node: nc.Node, Count: nc.Count}
	}

	return w.section("frequencies", data, "NODE\tCOUNT", func(tw io.Writer) {
		for _, r := range data {
			fmt.Fprintf(tw, "%s\t%d\n", r.Node, r.Count)
		}
	}, "")
}

// Mixers renders single-pass mixer scores.
func (w *Writer) Mixers(scores []reuse.MixerScore) error {
	type row struct {
		Node    string  `json:"node"`
		Illicit int     `json:"illicit"`
		Licit   int     `json:"licit"`
		Score   float64 `json:"score"`
	}
	data := make([]row, len(scores))
	for i, s := range scores {
		data[i] = row{Node: s.Node, Illicit: s.Illicit, Licit: s.Licit, Score: s.Score}
	}

	return w.section("mixers", data, "NODE\tILLICIT\tLICIT\tSCORE", func(tw io.Writer) {
		for _, r := range data {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%.4f\n", r.Node, r.Illicit, r.Licit, r.Score)
		}
	}, "")
}

type summaryRow struct {
	Node   string  `json:"node"`
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Lower  float64 `json:"ci_lower"`
	Upper  float64 `json:"ci_upper"`
}

func summaryRows(in []sampling.NodeSummary) []summaryRow {
	out := make([]summaryRow, len(in))
	for i, s := range in {
		out[i] = summaryRow{Node: s.Node, N: s.N, Mean: s.Mean, StdDev: s.StdDev, Lower: s.Lower, Upper: s.Upper}
	}

	return out
}

// Sampling renders the ranked outcome of a sampling run.
func (w *Writer) Sampling(res *sampling.Result) error {
	clamped := 0
	for _, ts := range res.Trials {
		if ts.Licit.Clamped || ts.Illicit.Clamped {
			clamped++
		}
	}
	data := struct {
		Trials  int          `json:"trials"`
		Clamped int          `json:"clamped_trials"`
		Seed    int64        `json:"seed"`
		Illicit []summaryRow `json:"illicit"`
		Licit   []summaryRow `json:"licit"`
	}{
		Trials:  len(res.Trials),
		Clamped: clamped,
		Seed:    res.Config.Seed,
		Illicit: summaryRows(res.Illicit),
		Licit:   summaryRows(res.Licit),
	}

	return w.section("sampling", data, "SIDE\tNODE\tN\tMEAN\tSTD\tCI95", func(tw io.Writer) {
		for _, side := range []struct {
			name string
			rows []summaryRow
		}{{"illicit", data.Illicit}, {"licit", data.Licit}} {
			for _, r := range side.rows {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%.4f\t%.4f\t[%.4f, %.4f]\n",
					side.name, r.Node, r.N, r.Mean, r.StdDev, r.Lower, r.Upper)
			}
		}
	}, fmt.Sprintf("trials: %d clamped: %d\n", data.Trials, data.Clamped))
}

// Accounts renders the projected account graph and its weight histogram.
func (w *Writer) Accounts(edges []projection.AccountEdge, hist map[int]int) error {
	type bucket struct {
		Weight int `json:"weight"`
		Edges  int `json:"edges"`
	}
	buckets := make([]bucket, 0, len(hist))
	for wt, n := range hist {
		buckets = append(buckets, bucket{Weight: wt, Edges: n})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Weight < buckets[j].Weight })

	data := struct {
		Edges     []projection.AccountEdge `json:"edges"`
		Histogram []bucket                 `json:"histogram"`
	}{edges, buckets}

	var footer strings.Builder
	for _, b := range buckets {
		fmt.Fprintf(&footer, "weight %d: %d edges\n", b.Weight, b.Edges)
	}

	return w.section("accounts", data, "FROM\tTO\tWEIGHT", func(tw io.Writer) {
		for _, e := range edges {
			fmt.Fprintf(tw, "%d\t%d\t%d\n", e.From, e.To, e.Weight)
		}
	}, footer.String())
}
