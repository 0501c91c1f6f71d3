package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mpint/internal/cache"
	"mpint/internal/mpi"
	"mpint/internal/trace"
)

const cacheApp = "mpint"

var divmodCmd = &cobra.Command{
	Use:   "divmod N D",
	Short: "Print the quotient and remainder of N / D",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCommandCache(cmd)
		if err != nil {
			return err
		}
		return evaluate(cmd, args, func(ctx context.Context, ops []*mpi.Int) ([]result, error) {
			q, r := mpi.New(), mpi.New()
			err := memoized(ctx, cmd, c, "divmod", ops, []*mpi.Int{q, r}, func() error {
				return mpi.DivMod(q, r, ops[0], ops[1])
			})
			if err != nil {
				return nil, err
			}
			return []result{{label: "q", value: q}, {label: "r", value: r}}, nil
		})
	},
}

var gcdCmd = &cobra.Command{
	Use:   "gcd A B",
	Short: "Print the greatest common divisor of A and B",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCommandCache(cmd)
		if err != nil {
			return err
		}
		return evaluate(cmd, args, func(ctx context.Context, ops []*mpi.Int) ([]result, error) {
			g := mpi.New()
			err := memoized(ctx, cmd, c, "gcd", ops, []*mpi.Int{g}, func() error {
				return mpi.GCD(g, ops[0], ops[1])
			})
			if err != nil {
				return nil, err
			}
			return []result{{value: g}}, nil
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{divmodCmd, gcdCmd} {
		cmd.Flags().Bool("no-cache", false, "neither read nor write the result cache")
	}
}

// openCommandCache returns the result cache, or nil when caching is off
// through the config file or --no-cache.
func openCommandCache(cmd *cobra.Command) (*cache.Disk, error) {
	if off, err := cmd.Flags().GetBool("no-cache"); err == nil && off {
		return nil, nil
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	return openCache(cfg.Cache)
}

func openCache(cfg cacheConfig) (*cache.Disk, error) {
	if cfg.Dir != "" {
		return cache.OpenDir(cfg.Dir)
	}
	return cache.Open(cacheApp)
}

// memoized fills results from the cache or runs compute and stores what
// it produced. Cache trouble is reported as a warning; it never fails the
// command.
func memoized(ctx context.Context, cmd *cobra.Command, c *cache.Disk, op string, inputs, results []*mpi.Int, compute func() error) error {
	tr := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	hit, err := c.Load(op, inputs, results...)
	if err != nil {
		warnCache(cmd, err)
	}
	if hit {
		trace.Point(tr, trace.ScopeCommand, "cache", "hit", parent)
		return nil
	}

	span := trace.Begin(tr, trace.ScopeOp, op, parent)
	if err := compute(); err != nil {
		span.End(err.Error())
		return err
	}
	span.End("")

	if err := c.Store(op, inputs, results...); err != nil {
		warnCache(cmd, err)
	}
	return nil
}

func warnCache(cmd *cobra.Command, err error) {
	if quiet(cmd) {
		return
	}
	msg := "cache: " + err.Error()
	if errors.Is(err, cache.ErrCorrupt) {
		msg += " (run \"mpint cache clear\")"
	}
	fmt.Fprintln(cmd.ErrOrStderr(), warnColor.Sprint("warning: ")+msg)
}
