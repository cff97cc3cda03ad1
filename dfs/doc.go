// Package dfs implements the bounded depth-first searches of txpath on a
// core.Graph: cycle finding, time-ordered path exploration and per-pair path
// counting.
//
// What:
//
//   - FindKCycles: closed walks back to each origin with at most k+1 edges.
//     Rotations of one cycle are reported once per origin unless
//     WithCanonicalCycles is set.
//   - FindCycleFrom: the first cycle through a given node.
//   - CollectReachable: nodes reachable along time-ordered simple paths.
//   - CollectPaths: all time-ordered simple paths from a start to a target.
//   - CollectMaximalPaths: every leaf path of the time-ordered path tree.
//   - CollectPrefixPaths: every prefix of the (untimed) simple-path tree.
//   - Summarize: (count, total depth) per (start, target) pair, capped.
//   - RankPairs: summary entries ordered by count.
//
// Why:
//
//   - Exhaustive path enumeration is exponential; every search here is
//     bounded by a depth limit, and Summarize additionally by a per-pair cap,
//     so callers pick the trade-off between detail and run time.
//   - The on-path set forbids revisiting a node within one path, which
//     guarantees termination on cyclic graphs.
//
// Time ordering:
//
//	An edge u→v is followed only when g.CanTraverse(u, v) holds. Missing
//	timestamps default to 0 as a source and +inf as a target (see core).
//	FindKCycles and CollectPrefixPaths do not look at timestamps.
//
// Depth:
//
//	The origin has depth 1 and every edge adds 1. A path of n nodes ends at
//	depth n.
//
// Errors:
//
//   - ErrGraphNil        graph pointer is nil
//   - ErrNegativeBound   negative k, depth or path cap
//
// Searches are synchronous and single-threaded; all state lives in a walker
// owned by the call, so concurrent calls on one graph are safe.
package dfs
