// SPDX-License-Identifier: MIT

// Package core provides the in-memory transaction graph analysed by txpath.
//
// A Graph G = (V, E, T, L) combines:
//
//   - E: directed successor sets, one per source node. No parallel edges;
//     successors are kept sorted so traversals are deterministic.
//   - T: a non-negative time step per node. An edge u→v may only be walked
//     when T(v) >= T(u). A node without a recorded time step counts as 0
//     when departed from and as +inf (UnknownTargetTime) when entered, so
//     untimed nodes are never silently dropped.
//   - L: a Label per node (licit, illicit, unknown) used only to pick source
//     sets for sampling. Labels never change what a traversal may visit.
//
// A node that appears only as a successor has no adjacency entry; every
// query treats that as an empty successor set, never as an error.
//
// Lifecycle:
//
//	g := core.NewGraph()
//	_, _ = g.AddEdge("tx1", "tx2")
//	_ = g.SetTimestamp("tx1", 3)
//	_ = g.SetLabel("tx1", core.LabelIllicit)
//
// Graphs are built once by a loader and read-only afterwards. All methods are
// guarded by a sync.RWMutex, so one loaded graph can back concurrent analyses.
//
// Errors:
//
//	ErrEmptyVertexID     - empty node identifier.
//	ErrNegativeTimestamp - time step below zero.
package core
