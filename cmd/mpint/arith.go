package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mpint/internal/mpi"
	"mpint/internal/observ"
	"mpint/internal/trace"
)

// computeFunc turns parsed operands into results.
type computeFunc func(ctx context.Context, operands []*mpi.Int) ([]result, error)

// evaluate parses args, computes and prints the results, timing each phase.
func evaluate(cmd *cobra.Command, args []string, compute computeFunc) error {
	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeCommand, cmd.Name(), trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)
	timer := observ.NewTimer()

	var (
		operands []*mpi.Int
		results  []result
		labels   []string
		texts    []string
	)
	err := phase(ctx, timer, "parse", func() error {
		var err error
		operands, err = parseOperands(args)
		return err
	})
	if err == nil {
		err = phase(ctx, timer, "compute", func() error {
			var err error
			results, err = compute(ctx, operands)
			return err
		})
	}
	if err == nil {
		err = phase(ctx, timer, "format", func() error {
			for _, r := range results {
				labels = append(labels, r.label)
				texts = append(texts, r.render())
			}
			return nil
		})
	}
	if err != nil {
		span.End(err.Error())
		return err
	}
	span.End("")

	printResults(cmd.OutOrStdout(), labels, texts)
	printTimings(cmd, timer)
	return nil
}

var addCmd = &cobra.Command{
	Use:   "add X Y",
	Short: "Print X + Y",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return evaluate(cmd, args, func(_ context.Context, ops []*mpi.Int) ([]result, error) {
			z := mpi.New()
			if err := z.Add(ops[0], ops[1]); err != nil {
				return nil, err
			}
			return []result{{value: z}}, nil
		})
	},
}

var subCmd = &cobra.Command{
	Use:   "sub X Y",
	Short: "Print X - Y (X must not be less than Y)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return evaluate(cmd, args, func(_ context.Context, ops []*mpi.Int) ([]result, error) {
			z := mpi.New()
			if err := z.Sub(ops[0], ops[1]); err != nil {
				return nil, err
			}
			return []result{{value: z}}, nil
		})
	},
}

var mulCmd = &cobra.Command{
	Use:   "mul X Y...",
	Short: "Print the product of the operands",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return evaluate(cmd, args, func(_ context.Context, ops []*mpi.Int) ([]result, error) {
			z := mpi.New()
			if err := z.Set(ops[0]); err != nil {
				return nil, err
			}
			for _, x := range ops[1:] {
				if err := z.Mul(z, x); err != nil {
					return nil, err
				}
			}
			return []result{{value: z}}, nil
		})
	},
}

var cmpCmd = &cobra.Command{
	Use:   "cmp X Y",
	Short: "Print -1, 0 or 1 as X is less than, equal to or greater than Y",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return evaluate(cmd, args, func(_ context.Context, ops []*mpi.Int) ([]result, error) {
			return []result{{text: strconv.Itoa(ops[0].Cmp(ops[1]))}}, nil
		})
	},
}

var shlCmd = &cobra.Command{
	Use:   "shl X N",
	Short: "Print X shifted left by N bits",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseCount("shift", args[1])
		if err != nil {
			return err
		}
		return evaluate(cmd, args[:1], func(_ context.Context, ops []*mpi.Int) ([]result, error) {
			z := mpi.New()
			if err := z.Lsh(ops[0], n); err != nil {
				return nil, err
			}
			return []result{{value: z}}, nil
		})
	},
}

var bitsCmd = &cobra.Command{
	Use:   "bits X",
	Short: "Show the bit length and base-2^31 digits of X",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := cmd.Flags().GetStringSlice("set")
		if err != nil {
			return fmt.Errorf("failed to get set flag: %w", err)
		}
		indices := make([]uint, len(set))
		for i, s := range set {
			if indices[i], err = parseCount("bit index", s); err != nil {
				return err
			}
		}
		return evaluate(cmd, args, func(_ context.Context, ops []*mpi.Int) ([]result, error) {
			x := ops[0]
			for _, i := range indices {
				if err := x.SetBit(i); err != nil {
					return nil, err
				}
			}
			return describeDigits(x), nil
		})
	},
}

func init() {
	bitsCmd.Flags().StringSlice("set", nil, "set these bits before describing the value")
}

// describeDigits reports the value, its size in bits and its digits in
// storage order.
func describeDigits(x *mpi.Int) []result {
	out := []result{
		{label: "value", value: x},
		{label: "bits", text: strconv.Itoa(x.BitLen())},
		{label: "capacity", text: strconv.Itoa(x.Capacity())},
	}
	for i, d := range x.Digits() {
		out = append(out, result{label: fmt.Sprintf("digit[%d]", i), text: fmt.Sprintf("0x%08x", d)})
	}
	return out
}
