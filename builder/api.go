// SPDX-License-Identifier: MIT
// Package: txpath/builder
//
// api.go - public entry point and constructor type.
//
// Design contract:
//   - One orchestrator: BuildGraph(bopts, cons...). Creates g, resolves cfg, runs cons in order.
//   - Functional options (BuilderOption) resolve into a builderConfig passed by value.
//   - Determinism: same inputs, options, seed and constructor order ⇒ identical graphs.
//   - Safety: constructors never panic; they return sentinel errors wrapped with context.

package builder

import (
	"fmt"

	"github.com/katalvlaran/txpath/core"
)

// Constructor applies a deterministic graph mutation using the resolved
// builderConfig. Topology constructors add edges; annotators set timestamps
// or labels on vertices addressed through cfg.idFn.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates an empty core.Graph, resolves the builder configuration
// from bopts and applies all constructors in order. The first constructor
// error is wrapped as "BuildGraph: %w" and returned; no partial graph is
// returned.
//
// Complexity: O(len(bopts)) + Σ cost of each constructor.
func BuildGraph(bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph()
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	return g, nil
}
