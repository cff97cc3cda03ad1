// SPDX-License-Identifier: MIT

// Package projection turns transaction paths into a synthetic account graph.
//
// Transactions are nodes in core.Graph; here each transaction becomes an
// edge between two synthetic accounts. Walking a path, the first unseen
// transaction gets a fresh start account, every later one starts where the
// previous transaction ended, and each gets a fresh end account. A
// transaction already assigned by an earlier path is not reassigned; it only
// moves the chain to its recorded end account.
//
// The result is aggregated into a gonum weighted directed graph whose edge
// weights count transactions between the same pair of accounts.
package projection

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/txpath/core"
)

// TxAccount is the account edge assigned to one transaction.
type TxAccount struct {
	Tx        string
	Start     int64
	End       int64
	Timestamp int // 0 when the transaction has no timestamp
}

// Assignment maps a transaction ID to its account edge.
type Assignment map[string]TxAccount

// AssignAccounts walks paths in order and assigns account edges.
// Account IDs are dense, starting at 0, in order of first use, so the
// result is deterministic for a given path order. g supplies timestamps
// and may be nil.
//
// Complexity: O(Σ len(p)).
func AssignAccounts(paths [][]string, g *core.Graph) Assignment {
	out := make(Assignment)
	var next int64
	fresh := func() int64 {
		id := next
		next++

		return id
	}

	for _, p := range paths {
		havePrev := false
		var prevEnd int64
		for _, tx := range p {
			if a, ok := out[tx]; ok {
				prevEnd, havePrev = a.End, true
				continue
			}

			var start int64
			if havePrev {
				start = prevEnd
			} else {
				start = fresh()
			}
			a := TxAccount{Tx: tx, Start: start, End: fresh()}
			if g != nil {
				a.Timestamp, _ = g.Timestamp(tx)
			}
			out[tx] = a
			prevEnd, havePrev = a.End, true
		}
	}

	return out
}

// Sorted returns the assignments ordered by Start, then End, then Tx.
func (a Assignment) Sorted() []TxAccount {
	out := make([]TxAccount, 0, len(a))
	for _, v := range a {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		if out[i].End != out[j].End {
			return out[i].End < out[j].End
		}

		return out[i].Tx < out[j].Tx
	})

	return out
}

// AccountEdge is one aggregated account-to-account edge.
type AccountEdge struct {
	From   int64 `json:"from"`
	To     int64 `json:"to"`
	Weight int   `json:"weight"`
}

// BuildAccountGraph aggregates the assignment into a weighted directed
// graph: the weight of From→To is the number of transactions between them.
func BuildAccountGraph(a Assignment) *simple.WeightedDirectedGraph {
	ag := simple.NewWeightedDirectedGraph(0, 0)
	for _, tx := range a.Sorted() {
		w := 1.0
		if e := ag.WeightedEdge(tx.Start, tx.End); e != nil {
			w += e.Weight()
		}
		ag.SetWeightedEdge(ag.NewWeightedEdge(simple.Node(tx.Start), simple.Node(tx.End), w))
	}

	return ag
}

// Edges lists the edges of ag ordered by From, then To.
func Edges(ag *simple.WeightedDirectedGraph) []AccountEdge {
	var out []AccountEdge
	it := ag.WeightedEdges()
	for it.Next() {
		e := it.WeightedEdge()
		out = append(out, AccountEdge{From: e.From().ID(), To: e.To().ID(), Weight: int(e.Weight())})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}

		return out[i].To < out[j].To
	})

	return out
}

// WeightHistogram maps an edge weight to the number of edges carrying it.
func WeightHistogram(ag *simple.WeightedDirectedGraph) map[int]int {
	hist := make(map[int]int)
	it := ag.WeightedEdges()
	for it.Next() {
		hist[int(it.WeightedEdge().Weight())]++
	}

	return hist
}
