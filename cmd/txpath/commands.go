// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/txpath/builder"
	"github.com/katalvlaran/txpath/core"
	"github.com/katalvlaran/txpath/dfs"
	"github.com/katalvlaran/txpath/loader"
	"github.com/katalvlaran/txpath/metrics"
	"github.com/katalvlaran/txpath/projection"
	"github.com/katalvlaran/txpath/reuse"
	"github.com/katalvlaran/txpath/sampling"
)

func newCyclesCmd(a *app) *cobra.Command {
	var (
		k, minLen, limit int
		canonical        bool
		from             string
	)
	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "Find cycles of at most k+1 edges",
		Long: `Find simple directed cycles of at most k+1 edges, ignoring timestamps.
Cycles are printed closed (first node repeated at the end). Every rotation
is reported unless --canonical is set. With --from only the first cycle
through that node is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := a.cfg.Cycles
			if cmd.Flags().Changed("k") {
				cc.K = k
			}
			if cmd.Flags().Changed("min-length") {
				cc.MinLength = minLen
			}
			if cmd.Flags().Changed("limit") {
				cc.Limit = limit
			}
			if cmd.Flags().Changed("canonical") {
				cc.Canonical = canonical
			}

			g, err := a.graph(cmd.Context())
			if err != nil {
				return err
			}

			if from != "" {
				c, ok, err := dfs.FindCycleFrom(g, from, cc.K)
				if err != nil {
					return err
				}
				var out [][]string
				if ok {
					out = append(out, c)
				}

				return a.writer().Cycles(out)
			}

			opts := []dfs.CycleOption{dfs.WithMinCycleLength(cc.MinLength), dfs.WithCycleLimit(cc.Limit)}
			if cc.Canonical {
				opts = append(opts, dfs.WithCanonicalCycles())
			}
			cycles, err := dfs.FindKCycles(g, cc.K, opts...)
			if err != nil {
				return err
			}
			a.log.Info("cycles found", slog.Int("k", cc.K), slog.Int("count", len(cycles)))

			return a.writer().Cycles(cycles)
		},
	}
	f := cmd.Flags()
	f.IntVar(&k, "k", 3, "search depth; cycles have at most k+1 edges")
	f.IntVar(&minLen, "min-length", 3, "minimum cycle length in edges")
	f.IntVar(&limit, "limit", 0, "stop after this many cycles (0 = all)")
	f.BoolVar(&canonical, "canonical", false, "report each cycle once, in its minimal rotation")
	f.StringVar(&from, "from", "", "only look for a cycle through this node")

	return cmd
}

func newPathsCmd(a *app) *cobra.Command {
	var (
		starts          []string
		target          string
		depth           int
		maximal, prefix bool
	)
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Enumerate time-ordered paths",
		Long: `Enumerate time-ordered simple paths of at most --depth nodes.

  paths --start A --target F          every path from A to F
  paths --start A,B --maximal         every leaf path of the search tree
  paths --start A --prefix            every prefix path, ignoring time`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(starts) == 0 {
				return errors.New("--start is required")
			}
			if cmd.Flags().Changed("depth") {
				a.cfg.Paths.Depth = depth
			}
			g, err := a.graph(cmd.Context())
			if err != nil {
				return err
			}

			var paths [][]string
			switch {
			case maximal:
				paths, err = dfs.CollectMaximalPaths(g, starts, a.cfg.Paths.Depth)
			case prefix:
				paths, err = dfs.CollectPrefixPaths(g, starts, a.cfg.Paths.Depth)
			case target != "":
				for _, s := range starts {
					var ps [][]string
					if ps, err = dfs.CollectPaths(g, s, target, a.cfg.Paths.Depth); err != nil {
						break
					}
					paths = append(paths, ps...)
				}
			default:
				return errors.New("one of --target, --maximal or --prefix is required")
			}
			if err != nil {
				return err
			}
			a.log.Info("paths collected", slog.Int("count", len(paths)))

			return a.writer().Paths(paths)
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&starts, "start", nil, "start node(s), comma separated")
	f.StringVar(&target, "target", "", "target node")
	f.IntVar(&depth, "depth", 6, "maximum nodes per path (0 = unbounded for --maximal)")
	f.BoolVar(&maximal, "maximal", false, "collect maximal paths")
	f.BoolVar(&prefix, "prefix", false, "collect every prefix path, ignoring timestamps")
	cmd.MarkFlagsMutuallyExclusive("target", "maximal", "prefix")

	return cmd
}

func newSummarizeCmd(a *app) *cobra.Command {
	var (
		starts, targets []string
		depth, maxPaths int
		top             int
	)
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Count time-ordered paths for every start/target pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("depth") {
				a.cfg.Paths.Depth = depth
			}
			if cmd.Flags().Changed("max-paths") {
				a.cfg.Paths.MaxPaths = maxPaths
			}
			g, err := a.graph(cmd.Context())
			if err != nil {
				return err
			}

			stats, err := dfs.Summarize(g, starts, targets, a.cfg.Paths.Depth, a.cfg.Paths.MaxPaths)
			if err != nil {
				return err
			}
			ranked := dfs.RankPairs(stats)
			if top > 0 && top < len(ranked) {
				ranked = ranked[:top]
			}

			return a.writer().Pairs(ranked)
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&starts, "starts", nil, "start nodes, comma separated")
	f.StringSliceVar(&targets, "targets", nil, "target nodes, comma separated")
	f.IntVar(&depth, "depth", 6, "depth bound; paths have at most depth-1 nodes")
	f.IntVar(&maxPaths, "max-paths", 50, "stop counting a pair at this many paths")
	f.IntVar(&top, "top", 0, "print only the top pairs (0 = all)")
	_ = cmd.MarkFlagRequired("starts")
	_ = cmd.MarkFlagRequired("targets")

	return cmd
}

// labelPaths collects maximal paths from every node carrying label.
func labelPaths(a *app, g *core.Graph, label string, depth int) ([][]string, error) {
	l, err := parseLabel(label)
	if err != nil {
		return nil, err
	}
	sources := g.NodesByLabel(l)
	paths, err := dfs.CollectMaximalPaths(g, sources, depth)
	if err != nil {
		return nil, err
	}
	a.log.Info("maximal paths collected",
		slog.String("label", l.String()),
		slog.Int("sources", len(sources)),
		slog.Int("paths", len(paths)),
	)

	return paths, nil
}

func newReuseCmd(a *app) *cobra.Command {
	var (
		label      string
		depth, top int
		mixers     bool
	)
	cmd := &cobra.Command{
		Use:   "reuse",
		Short: "Rank intermediaries on maximal paths from labeled sources",
		Long: `Rank nodes by how often they appear strictly inside maximal time-ordered
paths that start at nodes with --label. With --mixers both labels are
explored once and nodes are ranked by illicit/(licit+1) instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("depth") {
				a.cfg.Paths.Depth = depth
			}
			g, err := a.graph(cmd.Context())
			if err != nil {
				return err
			}
			if !mixers {
				paths, err := labelPaths(a, g, label, a.cfg.Paths.Depth)
				if err != nil {
					return err
				}

				return a.writer().Frequencies(reuse.Score(paths).Top(top))
			}

			illicit, err := labelPaths(a, g, "illicit", a.cfg.Paths.Depth)
			if err != nil {
				return err
			}
			licit, err := labelPaths(a, g, "licit", a.cfg.Paths.Depth)
			if err != nil {
				return err
			}
			scores := reuse.MixerScores(reuse.Score(illicit), reuse.Score(licit))
			if top > 0 && top < len(scores) {
				scores = scores[:top]
			}

			return a.writer().Mixers(scores)
		},
	}
	f := cmd.Flags()
	f.StringVar(&label, "label", "illicit", "source label: licit or illicit")
	f.IntVar(&depth, "depth", 6, "maximum nodes per path (0 = unbounded)")
	f.IntVar(&top, "top", 20, "print only the top nodes (0 = all)")
	f.BoolVar(&mixers, "mixers", false, "score illicit against licit reuse in a single pass")

	return cmd
}

func newMixersCmd(a *app) *cobra.Command {
	var (
		trials int
		seed   int64
		addr   string
	)
	cmd := &cobra.Command{
		Use:   "mixers",
		Short: "Estimate mixer scores with repeated random sampling",
		Long: `Run sampling trials: each samples licit and illicit sources, explores
their time-ordered neighbourhood, materializes paths for the busiest pairs
and scores every interior node as illicit/(licit+1). The per-trial scores
are reduced to a mean with a 95% confidence interval.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc := a.cfg.Sampling
			if cmd.Flags().Changed("trials") {
				sc.Trials = trials
			}
			if cmd.Flags().Changed("seed") {
				sc.Seed = seed
			}
			if cmd.Flags().Changed("metrics-addr") {
				a.cfg.Metrics.Addr = addr
			}

			g, err := a.graph(cmd.Context())
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			opts := []sampling.Option{
				sampling.WithLogger(a.log),
				sampling.WithObserver(metrics.NewCollector(reg)),
			}
			if a.cfg.Metrics.Addr != "" {
				stop := a.serveMetrics(reg)
				defer stop()
			}

			d, err := sampling.NewDriver(g, sc, opts...)
			if err != nil {
				return err
			}
			res, err := d.Run(cmd.Context())
			if err != nil {
				return err
			}

			return a.writer().Sampling(res)
		},
	}
	f := cmd.Flags()
	f.IntVar(&trials, "trials", 30, "number of trials")
	f.Int64Var(&seed, "seed", 0, "random seed (0 = fixed default)")
	f.StringVar(&addr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	return cmd
}

// serveMetrics exposes reg on /metrics and returns a shutdown func.
func (a *app) serveMetrics(reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{Addr: a.cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server", slog.Any("err", err))
		}
	}()
	a.log.Info("serving metrics", slog.String("addr", srv.Addr))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func newProjectCmd(a *app) *cobra.Command {
	var (
		label string
		depth int
	)
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project maximal paths onto a synthetic account graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("depth") {
				a.cfg.Paths.Depth = depth
			}
			g, err := a.graph(cmd.Context())
			if err != nil {
				return err
			}
			paths, err := labelPaths(a, g, label, a.cfg.Paths.Depth)
			if err != nil {
				return err
			}

			ag := projection.BuildAccountGraph(projection.AssignAccounts(paths, g))
			a.log.Info("account graph built",
				slog.Int("accounts", ag.Nodes().Len()),
				slog.Int("edges", ag.Edges().Len()),
			)

			return a.writer().Accounts(projection.Edges(ag), projection.WeightHistogram(ag))
		},
	}
	cmd.Flags().StringVar(&label, "label", "illicit", "source label: licit or illicit")
	cmd.Flags().IntVar(&depth, "depth", 6, "maximum nodes per path (0 = unbounded)")

	return cmd
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		nodes, maxTime int
		p              float64
		pIllicit       float64
		pLicit         float64
		seed           int64
		dir, prefix    string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a seeded synthetic dataset in the loader's CSV layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := builder.BuildGraph(
				[]builder.BuilderOption{builder.WithSeed(seed), builder.WithIDScheme(builder.PrefixIDFn(prefix))},
				builder.RandomSparse(nodes, p),
				builder.RandomTimestamps(nodes, maxTime),
				builder.RandomLabels(nodes, pIllicit, pLicit),
			)
			if err != nil {
				return err
			}

			if err = os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			paths := loader.Paths{
				Edges:      filepath.Join(dir, "edges.csv"),
				Timestamps: filepath.Join(dir, "features.csv"),
				Labels:     filepath.Join(dir, "classes.csv"),
			}
			if err = loader.SaveGraph(cmd.Context(), paths, g); err != nil {
				return err
			}

			st := g.Stats()
			a.log.Info("dataset written",
				slog.String("dir", dir),
				slog.Int("vertices", st.Vertices),
				slog.Int("edges", st.Edges),
				slog.Int("illicit", st.Illicit),
				slog.Int("licit", st.Licit),
			)
			_, err = fmt.Fprintf(a.out, "edges: %s\ntimestamps: %s\nlabels: %s\n", paths.Edges, paths.Timestamps, paths.Labels)

			return err
		},
	}
	f := cmd.Flags()
	f.IntVar(&nodes, "nodes", 500, "number of transactions")
	f.Float64Var(&p, "p", 0.01, "edge probability per ordered pair")
	f.IntVar(&maxTime, "max-time", 49, "timestamps are drawn from [0, max-time]")
	f.Float64Var(&pIllicit, "illicit", 0.1, "share of illicit transactions")
	f.Float64Var(&pLicit, "licit", 0.6, "share of licit transactions")
	f.Int64Var(&seed, "seed", 1, "random seed")
	f.StringVar(&dir, "out", ".", "output directory")
	f.StringVar(&prefix, "prefix", "tx", "transaction id prefix")

	return cmd
}
