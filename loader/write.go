// SPDX-License-Identifier: MIT

package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/txpath/core"
)

// Header rows written by the Write* functions and skipped by LoadGraph.
var (
	EdgesHeader  = []string{"txId1", "txId2"}
	LabelsHeader = []string{"txId", "class"}
)

// classCode is the inverse of core.ParseLabel for the classes file.
func classCode(l core.Label) string {
	switch l {
	case core.LabelLicit:
		return "1"
	case core.LabelIllicit:
		return "2"
	default:
		return "unknown"
	}
}

// WriteEdges writes g's edges with a header row, sources and successors in
// ascending order.
func WriteEdges(w io.Writer, g *core.Graph) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EdgesHeader); err != nil {
		return err
	}
	for _, from := range g.Sources() {
		for _, to := range g.Successors(from) {
			if err := cw.Write([]string{from, to}); err != nil {
				return err
			}
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteTimestamps writes "id,timestamp" for every timestamped vertex, no header.
func WriteTimestamps(w io.Writer, g *core.Graph) error {
	cw := csv.NewWriter(w)
	for _, id := range g.Vertices() {
		ts, ok := g.Timestamp(id)
		if !ok {
			continue
		}
		if err := cw.Write([]string{id, strconv.Itoa(ts)}); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteLabels writes "id,class" for every labeled vertex with a header row.
func WriteLabels(w io.Writer, g *core.Graph) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(LabelsHeader); err != nil {
		return err
	}
	for _, l := range []core.Label{core.LabelLicit, core.LabelIllicit, core.LabelUnknown} {
		for _, id := range g.NodesByLabel(l) {
			if err := cw.Write([]string{id, classCode(l)}); err != nil {
				return err
			}
		}
	}
	cw.Flush()

	return cw.Error()
}

// SaveGraph writes g to the files named in p concurrently. Empty paths are
// skipped; the output round-trips through LoadGraph.
func SaveGraph(ctx context.Context, p Paths, g *core.Graph) error {
	eg, egCtx := errgroup.WithContext(ctx)
	for _, job := range []struct {
		path  string
		write func(io.Writer, *core.Graph) error
	}{
		{p.Edges, WriteEdges},
		{p.Timestamps, WriteTimestamps},
		{p.Labels, WriteLabels},
	} {
		if job.path == "" {
			continue
		}
		job := job
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			return writeFile(job.path, func(w io.Writer) error { return job.write(w, g) })
		})
	}

	return eg.Wait()
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("loader: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("loader: close %s: %w", path, cerr)
		}
	}()

	if err = fn(f); err != nil {
		return fmt.Errorf("loader: write %s: %w", path, err)
	}

	return nil
}
