// SPDX-License-Identifier: MIT

// Command txpath analyzes timestamped transaction graphs: bounded cycles,
// time-ordered paths, path-count summaries, intermediary reuse and the
// sampled mixer score.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
