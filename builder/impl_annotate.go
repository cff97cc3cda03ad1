// SPDX-License-Identifier: MIT
// Package: txpath/builder
//
// impl_annotate.go - constructors that annotate vertices 0..n-1 with
// timestamps or labels instead of adding edges.
//
// Annotators address vertices through cfg.idFn exactly like topology
// constructors, so BuildGraph(opts, Path(5), TimestampRamp(5, 0, 1)) stamps
// the chain it just built. Annotating an ID without edges is allowed; the
// graph then knows the vertex through its timestamp or label.

package builder

import (
	"fmt"

	"github.com/katalvlaran/txpath/core"
)

const (
	methodTimestampRamp    = "TimestampRamp"
	methodRandomTimestamps = "RandomTimestamps"
	methodLabelRange       = "LabelRange"
	methodRandomLabels     = "RandomLabels"
)

// TimestampRamp sets timestamp(i) = start + i*step for i in [0, n).
// A non-negative step makes every i→j edge with i<j time-ordered.
func TimestampRamp(n, start, step int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < 1 {
			return fmt.Errorf("%s: n=%d < min=1: %w", methodTimestampRamp, n, ErrTooFewVertices)
		}
		if start < 0 || step < 0 {
			return fmt.Errorf("%s: start=%d step=%d: %w", methodTimestampRamp, start, step, ErrInvalidTimestamp)
		}
		for i := 0; i < n; i++ {
			if err := g.SetTimestamp(cfg.idFn(i), start+i*step); err != nil {
				return fmt.Errorf("%s: %v: %w", methodTimestampRamp, err, ErrConstructFailed)
			}
		}

		return nil
	}
}

// RandomTimestamps draws timestamp(i) uniformly from [0, max] for i in [0, n).
// Requires an RNG.
func RandomTimestamps(n, max int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < 1 {
			return fmt.Errorf("%s: n=%d < min=1: %w", methodRandomTimestamps, n, ErrTooFewVertices)
		}
		if max < 0 {
			return fmt.Errorf("%s: max=%d: %w", methodRandomTimestamps, max, ErrInvalidTimestamp)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodRandomTimestamps, ErrNeedRandSource)
		}
		for i := 0; i < n; i++ {
			if err := g.SetTimestamp(cfg.idFn(i), cfg.rng.Intn(max+1)); err != nil {
				return fmt.Errorf("%s: %v: %w", methodRandomTimestamps, err, ErrConstructFailed)
			}
		}

		return nil
	}
}

// LabelRange labels vertices from..to-1 with l. An empty range is a no-op.
func LabelRange(from, to int, l core.Label) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if from < 0 {
			return fmt.Errorf("%s: from=%d < 0: %w", methodLabelRange, from, ErrTooFewVertices)
		}
		for i := from; i < to; i++ {
			if err := g.SetLabel(cfg.idFn(i), l); err != nil {
				return fmt.Errorf("%s: %v: %w", methodLabelRange, err, ErrConstructFailed)
			}
		}

		return nil
	}
}

// RandomLabels labels each vertex in [0, n) illicit with probability
// pIllicit, licit with probability pLicit and unknown otherwise. One
// uniform draw per vertex, in index order. Requires an RNG unless both
// probabilities are 0.
func RandomLabels(n int, pIllicit, pLicit float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < 1 {
			return fmt.Errorf("%s: n=%d < min=1: %w", methodRandomLabels, n, ErrTooFewVertices)
		}
		if pIllicit < 0 || pLicit < 0 || pIllicit+pLicit > 1 {
			return fmt.Errorf("%s: pIllicit=%.4f pLicit=%.4f: %w", methodRandomLabels, pIllicit, pLicit, ErrInvalidProbability)
		}
		if pIllicit == 0 && pLicit == 0 {
			return nil
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodRandomLabels, ErrNeedRandSource)
		}

		var (
			x float64
			l core.Label
		)
		for i := 0; i < n; i++ {
			x = cfg.rng.Float64()
			switch {
			case x < pIllicit:
				l = core.LabelIllicit
			case x < pIllicit+pLicit:
				l = core.LabelLicit
			default:
				l = core.LabelUnknown
			}
			if err := g.SetLabel(cfg.idFn(i), l); err != nil {
				return fmt.Errorf("%s: %v: %w", methodRandomLabels, err, ErrConstructFailed)
			}
		}

		return nil
	}
}
