// SPDX-License-Identifier: MIT

package sampling

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/katalvlaran/txpath/core"
	"github.com/katalvlaran/txpath/dfs"
	"github.com/katalvlaran/txpath/reuse"
)

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger used for per-trial debug lines and clamp
// warnings. nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// WithObserver attaches an Observer notified around every trial.
func WithObserver(o Observer) Option {
	return func(d *Driver) {
		d.obs = o
	}
}

// WithRand injects the random source. It overrides Config.Seed.
func WithRand(r *rand.Rand) Option {
	return func(d *Driver) {
		if r != nil {
			d.rng = r
		}
	}
}

// Driver runs sampling trials over a single graph. A Driver is not safe for
// concurrent use: it owns a *rand.Rand.
type Driver struct {
	g   *core.Graph
	cfg Config
	rng *rand.Rand
	log *slog.Logger
	obs Observer

	licit   []string
	illicit []string
}

// NewDriver validates cfg and snapshots the label populations of g.
// Errors: ErrGraphNil, ErrBadConfig (wrapped), ErrEmptyPopulation when
// either label has no nodes.
func NewDriver(g *core.Graph, cfg Config, opts ...Option) (*Driver, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &Driver{g: g, cfg: cfg, log: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		d.rng = NewRand(cfg.Seed)
	}

	d.licit = g.NodesByLabel(core.LabelLicit)
	d.illicit = g.NodesByLabel(core.LabelIllicit)
	if len(d.licit) == 0 {
		return nil, fmt.Errorf("sampling: NewDriver: %s: %w", core.LabelLicit, ErrEmptyPopulation)
	}
	if len(d.illicit) == 0 {
		return nil, fmt.Errorf("sampling: NewDriver: %s: %w", core.LabelIllicit, ErrEmptyPopulation)
	}

	return d, nil
}

// Run executes cfg.Trials trials and reduces the collected series.
// ctx is checked before each trial; a cancelled run returns ctx.Err()
// and no partial result.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	res := &Result{
		Config:        d.cfg,
		Trials:        make([]TrialStats, 0, d.cfg.Trials),
		IllicitSeries: make(map[string][]float64),
		LicitSeries:   make(map[string][]float64),
	}

	for trial := 0; trial < d.cfg.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ts, err := d.trial(trial, res)
		if err != nil {
			return nil, fmt.Errorf("sampling: Run: trial %d: %w", trial, err)
		}
		res.Trials = append(res.Trials, ts)
	}

	var err error
	if res.Illicit, err = RankSeries(res.IllicitSeries, d.cfg.TopK); err != nil {
		return nil, err
	}
	if res.Licit, err = RankSeries(res.LicitSeries, d.cfg.TopK); err != nil {
		return nil, err
	}

	return res, nil
}

func (d *Driver) trial(trial int, res *Result) (TrialStats, error) {
	if d.obs != nil {
		d.obs.TrialStarted(trial)
	}
	began := time.Now()
	ts := TrialStats{Trial: trial}

	illicitFreq, err := d.side(trial, core.LabelIllicit, d.illicit, &ts.Illicit)
	if err != nil {
		return ts, err
	}
	licitFreq, err := d.side(trial, core.LabelLicit, d.licit, &ts.Licit)
	if err != nil {
		return ts, err
	}

	for _, s := range reuse.MixerScores(illicitFreq, licitFreq) {
		res.IllicitSeries[s.Node] = append(res.IllicitSeries[s.Node], s.Score)
	}
	for _, s := range reuse.MixerScores(licitFreq, illicitFreq) {
		res.LicitSeries[s.Node] = append(res.LicitSeries[s.Node], s.Score)
	}

	scored := make(map[string]struct{}, len(illicitFreq)+len(licitFreq))
	for id := range illicitFreq {
		scored[id] = struct{}{}
	}
	for id := range licitFreq {
		scored[id] = struct{}{}
	}
	ts.Scored = len(scored)
	ts.Duration = time.Since(began)

	d.log.Debug("trial finished",
		slog.Int("trial", trial),
		slog.Int("illicit_paths", ts.Illicit.Paths),
		slog.Int("licit_paths", ts.Licit.Paths),
		slog.Int("scored", ts.Scored),
		slog.Duration("took", ts.Duration),
	)
	if d.obs != nil {
		d.obs.TrialFinished(ts)
	}

	return ts, nil
}

// side runs one label's sample-explore-score pipeline and returns the
// interior frequency of its materialized paths.
func (d *Driver) side(trial int, label core.Label, population []string, st *SideStats) (reuse.Frequency, error) {
	sources, clamped := Sample(d.rng, population, d.cfg.SampleSize)
	if clamped {
		st.Clamped = true
		d.log.Warn("sample size exceeds population",
			slog.Int("trial", trial),
			slog.String("label", label.String()),
			slog.String("stage", "sources"),
			slog.Int("requested", d.cfg.SampleSize),
			slog.Int("population", len(population)),
		)
	}
	st.Sources = len(sources)

	reach, err := dfs.CollectReachable(d.g, sources, d.cfg.ReachDepth)
	if err != nil {
		return nil, err
	}
	st.Reachable = len(reach)

	candidates := d.topByOutDegree(reach, d.cfg.TopTargets)
	targets, clamped := Sample(d.rng, candidates, d.cfg.TargetSample)
	if clamped && len(candidates) > 0 {
		st.Clamped = true
		d.log.Warn("sample size exceeds population",
			slog.Int("trial", trial),
			slog.String("label", label.String()),
			slog.String("stage", "targets"),
			slog.Int("requested", d.cfg.TargetSample),
			slog.Int("population", len(candidates)),
		)
	}
	st.Targets = len(targets)

	stats, err := dfs.Summarize(d.g, sources, targets, d.cfg.SummaryDepth, d.cfg.MaxPathsPerPair)
	if err != nil {
		return nil, err
	}
	st.Pairs = len(stats)

	ranked := dfs.RankPairs(stats)
	if len(ranked) > d.cfg.TopPairs {
		ranked = ranked[:d.cfg.TopPairs]
	}

	freq := make(reuse.Frequency)
	for _, pc := range ranked {
		paths, err := dfs.CollectPaths(d.g, pc.Start, pc.Target, d.cfg.PathDepth)
		if err != nil {
			return nil, err
		}
		st.Paths += len(paths)
		freq.Merge(reuse.Score(paths))
	}

	return freq, nil
}

// topByOutDegree ranks nodes by out-degree descending, id ascending, and
// keeps the first m.
func (d *Driver) topByOutDegree(nodes map[string]struct{}, m int) []string {
	type nodeDeg struct {
		id  string
		deg int
	}
	all := make([]nodeDeg, 0, len(nodes))
	for id := range nodes {
		all = append(all, nodeDeg{id: id, deg: d.g.OutDegree(id)})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].deg != all[j].deg {
			return all[i].deg > all[j].deg
		}

		return all[i].id < all[j].id
	})
	if m < len(all) {
		all = all[:m]
	}

	out := make([]string, len(all))
	for i, nd := range all {
		out[i] = nd.id
	}

	return out
}
