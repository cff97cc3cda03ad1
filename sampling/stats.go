// SPDX-License-Identifier: MIT

package sampling

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Z95 is the two-sided 95% normal quantile used for confidence intervals.
const Z95 = 1.96

// Summary reduces one node's score series.
type Summary struct {
	N      int     // number of trials the node was scored in
	Mean   float64 // arithmetic mean
	StdDev float64 // population standard deviation
	Lower  float64 // Mean - Z95·StdDev/√N
	Upper  float64 // Mean + Z95·StdDev/√N
}

// NodeSummary pairs a node with its reduced series.
type NodeSummary struct {
	Node string
	Summary
}

// Summarize reduces series to mean, population standard deviation and a 95%
// normal-approximation confidence interval.
// Errors: ErrEmptySeries when series is empty.
func Summarize(series []float64) (Summary, error) {
	if len(series) == 0 {
		return Summary{}, ErrEmptySeries
	}

	mean, std := stat.PopMeanStdDev(series, nil)
	half := Z95 * std / math.Sqrt(float64(len(series)))

	return Summary{
		N:      len(series),
		Mean:   mean,
		StdDev: std,
		Lower:  mean - half,
		Upper:  mean + half,
	}, nil
}

// RankSeries summarizes every series and returns the top k by Mean
// descending, Node ascending on ties. k <= 0 returns all nodes.
// Empty series are skipped.
func RankSeries(series map[string][]float64, k int) ([]NodeSummary, error) {
	out := make([]NodeSummary, 0, len(series))
	for node, s := range series {
		if len(s) == 0 {
			continue
		}
		sum, err := Summarize(s)
		if err != nil {
			return nil, fmt.Errorf("sampling: RankSeries: node %q: %w", node, err)
		}
		out = append(out, NodeSummary{Node: node, Summary: sum})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}

		return out[i].Node < out[j].Node
	})
	if k > 0 && k < len(out) {
		out = out[:k]
	}

	return out, nil
}
