// SPDX-License-Identifier: MIT
// Package: txpath/builder
//
// impl_topology.go - directed topology constructors.
//
// Contract (all constructors):
//   - Vertices are addressed as cfg.idFn(i) for i in [0, n).
//   - Edges are emitted in a stable, documented order; core merges duplicates.
//   - No self-loops are produced.
//
// Complexity: linear in emitted edges, except RandomSparse (O(n²) trials).

package builder

import (
	"fmt"

	"github.com/katalvlaran/txpath/core"
)

const (
	methodPath         = "Path"
	methodCycle        = "Cycle"
	methodStar         = "Star"
	methodComplete     = "Complete"
	methodFunnel       = "Funnel"
	methodRandomSparse = "RandomSparse"

	minPathNodes  = 2
	minCycleNodes = 2
	minStarNodes  = 2
)

// addEdge wraps core.AddEdge with method context.
func addEdge(g *core.Graph, method, u, v string) error {
	if _, err := g.AddEdge(u, v); err != nil {
		return fmt.Errorf("%s: AddEdge(%s→%s): %v: %w", method, u, v, err, ErrConstructFailed)
	}

	return nil
}

// Path builds the chain 0→1→…→n-1 (n ≥ 2).
func Path(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		for i := 0; i+1 < n; i++ {
			if err := addEdge(g, methodPath, cfg.idFn(i), cfg.idFn(i+1)); err != nil {
				return err
			}
		}

		return nil
	}
}

// Cycle builds the directed ring 0→1→…→n-1→0 (n ≥ 2).
func Cycle(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}
		for i := 0; i < n; i++ {
			if err := addEdge(g, methodCycle, cfg.idFn(i), cfg.idFn((i+1)%n)); err != nil {
				return err
			}
		}

		return nil
	}
}

// Star builds a fan-out from center 0 to leaves 1..n-1 (n ≥ 2).
func Star(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewVertices)
		}
		center := cfg.idFn(0)
		for i := 1; i < n; i++ {
			if err := addEdge(g, methodStar, center, cfg.idFn(i)); err != nil {
				return err
			}
		}

		return nil
	}
}

// Complete links every ordered pair of distinct vertices (n ≥ 1).
// Emission order: i asc, then j asc.
func Complete(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < 1 {
			return fmt.Errorf("%s: n=%d < min=1: %w", methodComplete, n, ErrTooFewVertices)
		}
		for i := 0; i < n; i++ {
			if err := g.AddVertex(cfg.idFn(i)); err != nil {
				return fmt.Errorf("%s: AddVertex: %v: %w", methodComplete, err, ErrConstructFailed)
			}
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				if err := addEdge(g, methodComplete, cfg.idFn(i), cfg.idFn(j)); err != nil {
					return err
				}
			}
		}

		return nil
	}
}

// Funnel builds a fan-in/fan-out through a single hub: sources 1..in all
// pay hub 0, which pays sinks in+1..in+out. It is the smallest shape on which
// the hub is interior to every source-to-sink path.
func Funnel(in, out int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if in < 1 || out < 1 {
			return fmt.Errorf("%s: in=%d out=%d, both must be >= 1: %w", methodFunnel, in, out, ErrTooFewVertices)
		}
		hub := cfg.idFn(0)
		for i := 1; i <= in; i++ {
			if err := addEdge(g, methodFunnel, cfg.idFn(i), hub); err != nil {
				return err
			}
		}
		for i := in + 1; i <= in+out; i++ {
			if err := addEdge(g, methodFunnel, hub, cfg.idFn(i)); err != nil {
				return err
			}
		}

		return nil
	}
}

// RandomSparse samples a directed Erdős–Rényi graph: every ordered pair
// (i,j), i≠j, becomes an edge independently with probability p. All n
// vertices are registered even when isolated.
//
// p ∈ {0,1} is deterministic and needs no RNG; otherwise WithSeed/WithRand
// is required. Trial order is i asc, then j asc.
func RandomSparse(n int, p float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < 1 {
			return fmt.Errorf("%s: n=%d < min=1: %w", methodRandomSparse, n, ErrTooFewVertices)
		}
		if p < 0 || p > 1 {
			return fmt.Errorf("%s: p=%.6f not in [0,1]: %w", methodRandomSparse, p, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > 0 && p < 1 {
			return fmt.Errorf("%s: %w", methodRandomSparse, ErrNeedRandSource)
		}

		for i := 0; i < n; i++ {
			if err := g.AddVertex(cfg.idFn(i)); err != nil {
				return fmt.Errorf("%s: AddVertex: %v: %w", methodRandomSparse, err, ErrConstructFailed)
			}
		}
		if p == 0 {
			return nil
		}

		var u string
		for i := 0; i < n; i++ {
			u = cfg.idFn(i)
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				if p < 1 && cfg.rng.Float64() >= p {
					continue
				}
				if err := addEdge(g, methodRandomSparse, u, cfg.idFn(j)); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
