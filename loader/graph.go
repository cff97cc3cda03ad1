// SPDX-License-Identifier: MIT

package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/txpath/core"
)

// Paths names the input files. Timestamps and Labels are optional.
type Paths struct {
	Edges      string `yaml:"edges"`
	Timestamps string `yaml:"timestamps"`
	Labels     string `yaml:"labels"`
}

// Option configures LoadGraph.
type Option func(*graphLoader)

// WithLogger sets the logger for load progress. nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(gl *graphLoader) {
		if l != nil {
			gl.log = l
		}
	}
}

type graphLoader struct {
	log *slog.Logger
}

// LoadGraph reads the three inputs concurrently and assembles a core.Graph.
// The first failing reader cancels the others.
func LoadGraph(ctx context.Context, p Paths, opts ...Option) (*core.Graph, error) {
	gl := &graphLoader{log: slog.Default()}
	for _, opt := range opts {
		opt(gl)
	}
	if p.Edges == "" {
		return nil, fmt.Errorf("loader: LoadGraph: edges path is required")
	}

	began := time.Now()
	var (
		adj    map[string][]string
		ts     map[string]int
		labels map[string]core.Label
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return readFile(egCtx, p.Edges, func(r io.Reader) (err error) {
			adj, err = LoadEdges(egCtx, r, ReadOptions{Name: p.Edges, Header: true})
			return err
		})
	})
	if p.Timestamps != "" {
		eg.Go(func() error {
			return readFile(egCtx, p.Timestamps, func(r io.Reader) (err error) {
				ts, err = LoadTimestamps(egCtx, r, ReadOptions{Name: p.Timestamps})
				return err
			})
		})
	}
	if p.Labels != "" {
		eg.Go(func() error {
			return readFile(egCtx, p.Labels, func(r io.Reader) (err error) {
				labels, err = LoadLabels(egCtx, r, ReadOptions{Name: p.Labels, Header: true})
				return err
			})
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g, err := core.FromAdjacency(adj, ts, labels)
	if err != nil {
		return nil, fmt.Errorf("loader: LoadGraph: %w", err)
	}

	st := g.Stats()
	gl.log.Info("graph loaded",
		slog.Int("vertices", st.Vertices),
		slog.Int("edges", st.Edges),
		slog.Int("timestamped", st.Timestamped),
		slog.Int("licit", st.Licit),
		slog.Int("illicit", st.Illicit),
		slog.Duration("took", time.Since(began)),
	)

	return g, nil
}

func readFile(ctx context.Context, path string, fn func(io.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loader: open %s: %w", path, err)
	}
	defer f.Close()

	return fn(f)
}
