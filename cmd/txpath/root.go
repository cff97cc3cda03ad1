// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/txpath/config"
	"github.com/katalvlaran/txpath/core"
	"github.com/katalvlaran/txpath/loader"
	"github.com/katalvlaran/txpath/report"
)

// Version is the txpath CLI version.
var Version = "0.3.0"

var errNoEdges = errors.New("no edge list: pass --edges, set input.edges or " + config.EnvEdges)

// app carries state shared by every subcommand of one invocation.
type app struct {
	out, errOut io.Writer

	cfgPath    string
	envFile    string
	jsonOut    bool
	edges      string
	timestamps string
	labels     string
	logLevel   string

	cfg config.Config
	log *slog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "txpath",
		Short: "Path analysis over timestamped transaction graphs",
		Long: `txpath reads a transaction edge list with optional timestamps and
licit/illicit labels, then finds bounded cycles, enumerates time-ordered
paths, summarizes path counts between node sets and scores intermediaries
that sit on illicit paths far more often than on licit ones.`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file with TXPATH_* variables (ignored if missing)")
	pf.StringVar(&a.edges, "edges", "", "edge list CSV (header line, from,to)")
	pf.StringVar(&a.timestamps, "timestamps", "", "features CSV (id,timestamp,...)")
	pf.StringVar(&a.labels, "labels", "", "classes CSV (header line, id,class)")
	pf.BoolVar(&a.jsonOut, "json", false, "emit JSON instead of text tables")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newCyclesCmd(a),
		newPathsCmd(a),
		newSummarizeCmd(a),
		newReuseCmd(a),
		newMixersCmd(a),
		newProjectCmd(a),
		newGenerateCmd(a),
	)

	return root
}

// setup resolves the configuration: defaults, file, environment, flags.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if err = config.ApplyEnv(&cfg, a.envFile); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("edges") {
		cfg.Input.Edges = a.edges
	}
	if flags.Changed("timestamps") {
		cfg.Input.Timestamps = a.timestamps
	}
	if flags.Changed("labels") {
		cfg.Input.Labels = a.labels
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	if a.log, err = cfg.Log.NewLogger(a.errOut); err != nil {
		return err
	}
	a.cfg = cfg

	return nil
}

// graph loads the configured inputs.
func (a *app) graph(ctx context.Context) (*core.Graph, error) {
	if a.cfg.Input.Edges == "" {
		return nil, errNoEdges
	}

	return loader.LoadGraph(ctx, a.cfg.Input, loader.WithLogger(a.log))
}

func (a *app) writer() *report.Writer {
	f := report.Text
	if a.jsonOut {
		f = report.JSON
	}
	w := report.NewWriter(a.out, f)
	a.log.Debug("report writer ready", slog.String("run_id", w.RunID().String()))

	return w
}

// parseLabel accepts the names and class codes understood by core.ParseLabel
// but rejects anything that would map to unknown.
func parseLabel(s string) (core.Label, error) {
	l := core.ParseLabel(s)
	if l == core.LabelUnknown {
		return l, fmt.Errorf("label %q: want licit, illicit, 1 or 2", s)
	}

	return l, nil
}
