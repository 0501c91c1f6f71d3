package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mpint/internal/observ"
	"mpint/internal/trace"
)

// phase runs fn as a timed phase with its own trace span.
func phase(ctx context.Context, timer *observ.Timer, name string, fn func() error) error {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeCommand, name, trace.CurrentSpan(ctx))
	err := timer.Measure(name, fn)
	if err != nil {
		span.End(err.Error())
		return err
	}
	span.End("")
	return nil
}

func printTimings(cmd *cobra.Command, timer *observ.Timer) {
	show, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil || !show {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
}
