// SPDX-License-Identifier: MIT

// Package loader reads the comma-separated inputs of the engine:
//
//   - edge list: "from,to" per line, first line is a header;
//   - features: "id,timestamp,..." per line, no header, extra columns ignored;
//   - classes: "id,class" per line, first line is a header; class "1" is
//     licit, "2" illicit, anything else unknown.
//
// Every record needs at least two fields. A short record, an empty ID or an
// unparsable/negative timestamp fails the whole load with ErrMalformedRecord
// wrapped together with the file name and line. Duplicate edges merge;
// duplicate timestamp or label keys keep the last value.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/txpath/core"
)

// ErrMalformedRecord marks an input line that cannot be interpreted.
var ErrMalformedRecord = errors.New("loader: malformed record")

// ReadOptions describes one input stream.
type ReadOptions struct {
	Name   string // used in error messages; "<input>" when empty
	Header bool   // skip the first record
}

// ctxCheckEvery is how many records are read between context checks.
const ctxCheckEvery = 4096

func (o ReadOptions) name() string {
	if o.Name == "" {
		return "<input>"
	}

	return o.Name
}

// eachRecord feeds every (non-header) record with at least two non-empty
// leading fields to fn, together with its 1-based line number.
func eachRecord(ctx context.Context, r io.Reader, opts ReadOptions, fn func(line int, rec []string) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return fmt.Errorf("%w: %s:%d: %v", ErrMalformedRecord, opts.name(), pe.Line, pe.Err)
			}

			return fmt.Errorf("loader: %s: %w", opts.name(), err)
		}
		line, _ := cr.FieldPos(0)
		if n == 0 && opts.Header {
			continue
		}
		if len(rec) < 2 {
			return fmt.Errorf("%w: %s:%d: want at least 2 fields, got %d", ErrMalformedRecord, opts.name(), line, len(rec))
		}
		rec[0], rec[1] = strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])
		if rec[0] == "" {
			return fmt.Errorf("%w: %s:%d: empty id", ErrMalformedRecord, opts.name(), line)
		}
		if err = fn(line, rec); err != nil {
			return err
		}
	}
}

// LoadEdges reads an edge list into an adjacency map. Successor lists keep
// input order and may contain duplicates; core.FromAdjacency merges them.
func LoadEdges(ctx context.Context, r io.Reader, opts ReadOptions) (map[string][]string, error) {
	adj := make(map[string][]string)
	err := eachRecord(ctx, r, opts, func(line int, rec []string) error {
		if rec[1] == "" {
			return fmt.Errorf("%w: %s:%d: empty target", ErrMalformedRecord, opts.name(), line)
		}
		adj[rec[0]] = append(adj[rec[0]], rec[1])

		return nil
	})
	if err != nil {
		return nil, err
	}

	return adj, nil
}

// LoadTimestamps reads the second column of a features file as each node's
// timestamp.
func LoadTimestamps(ctx context.Context, r io.Reader, opts ReadOptions) (map[string]int, error) {
	ts := make(map[string]int)
	err := eachRecord(ctx, r, opts, func(line int, rec []string) error {
		v, err := strconv.Atoi(rec[1])
		if err != nil || v < 0 {
			return fmt.Errorf("%w: %s:%d: bad timestamp %q", ErrMalformedRecord, opts.name(), line, rec[1])
		}
		ts[rec[0]] = v

		return nil
	})
	if err != nil {
		return nil, err
	}

	return ts, nil
}

// LoadLabels reads a classes file. Unrecognized classes become
// core.LabelUnknown rather than errors.
func LoadLabels(ctx context.Context, r io.Reader, opts ReadOptions) (map[string]core.Label, error) {
	labels := make(map[string]core.Label)
	err := eachRecord(ctx, r, opts, func(_ int, rec []string) error {
		labels[rec[0]] = core.ParseLabel(rec[1])

		return nil
	})
	if err != nil {
		return nil, err
	}

	return labels, nil
}
