// Package txpath is an in-memory engine for path analysis over timestamped
// transaction graphs: who can reach whom forward in time, how many ways,
// and which intermediaries keep showing up on illicit routes.
//
// What is in the box?
//
//	core/       - thread-safe transaction graph: successor sets, timestamps, licit/illicit labels
//	dfs/        - bounded cycle finder, time-ordered path explorers, path-count summarizer
//	reuse/      - interior-node frequencies and mixer scores
//	sampling/   - seeded trial driver with gonum statistics over mixer-score series
//	projection/ - transaction paths projected onto a weighted account graph
//	loader/     - CSV readers and writers for edge list, features and classes files
//	builder/    - deterministic synthetic fixtures
//	config/     - YAML + .env configuration and slog logger setup
//	metrics/    - Prometheus collectors fed by the sampling driver
//	report/     - text and JSON rendering with run IDs
//	cmd/txpath  - the command-line front end
//
// # Traversal rule
//
// An edge u→v may be followed only if v's timestamp is not earlier than u's.
// A node without a timestamp departs at time 0 and is entered at the maximum
// int, so it never blocks a step into it and never constrains a step out of it.
// The cycle finder ignores time.
//
// # Quick start
//
//	g, _ := loader.LoadGraph(ctx, loader.Paths{Edges: "edges.csv", Timestamps: "features.csv", Labels: "classes.csv"})
//	stats, _ := dfs.Summarize(g, []string{"A"}, []string{"F"}, 6, 50)
//	fmt.Println(stats[dfs.Pair{Start: "A", Target: "F"}])
package txpath
