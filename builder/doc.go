// SPDX-License-Identifier: MIT

// Package builder generates deterministic transaction-graph fixtures.
//
// A fixture is composed from topology constructors (Path, Cycle, Star,
// Complete, Funnel, RandomSparse) and annotators (TimestampRamp,
// RandomTimestamps, LabelRange, RandomLabels) applied in order by
// BuildGraph:
//
//	g, err := builder.BuildGraph(
//		[]builder.BuilderOption{builder.WithSeed(7), builder.WithIDScheme(builder.PrefixIDFn("tx"))},
//		builder.RandomSparse(500, 0.01),
//		builder.RandomTimestamps(500, 49),
//		builder.RandomLabels(500, 0.1, 0.6),
//	)
//
// The same options, seed and constructor order always yield the same graph,
// which makes builder the source of benchmark inputs and of the synthetic
// datasets written by `txpath generate`.
package builder
