package check

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"runtime"
	"slices"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"mpint/internal/trace"
)

const (
	// DefaultCases is the number of cases per property when unset.
	DefaultCases = 200
	// DefaultMaxDigits is the operand length bound when unset.
	DefaultMaxDigits = 60
	// maxOperandDigits keeps a single case bounded; divmod is quadratic in
	// the operand length.
	maxOperandDigits = 20_000
)

func (o Options) normalized() (Options, error) {
	if o.Cases <= 0 {
		o.Cases = DefaultCases
	}
	if o.MaxDigits <= 0 {
		o.MaxDigits = DefaultMaxDigits
	}
	if o.MaxDigits > maxOperandDigits {
		return o, fmt.Errorf("max digits %d exceeds the limit of %d", o.MaxDigits, maxOperandDigits)
	}
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	if len(o.Properties) == 0 {
		o.Properties = AllProperties()
	}
	props := make([]Property, 0, len(o.Properties))
	for _, p := range o.Properties {
		if _, ok := laws[p]; !ok {
			return o, fmt.Errorf("unknown property %q", p)
		}
		if !slices.Contains(props, p) {
			props = append(props, p)
		}
	}
	o.Properties = props
	return o, nil
}

// Run checks every selected property against generated operands, running
// properties in parallel. A counterexample does not stop other properties;
// it is recorded in the report. The returned error is reserved for bad
// options and cancellation.
func Run(ctx context.Context, opts Options, sink Sink) (Report, error) {
	opts, err := opts.normalized()
	if err != nil {
		return Report{}, err
	}
	if sink == nil {
		sink = nopSink{}
	}

	tr := trace.FromContext(ctx)
	root := trace.Begin(tr, trace.ScopeCommand, "check", trace.CurrentSpan(ctx))
	root.WithExtra("seed", strconv.FormatUint(opts.Seed, 10)).
		WithExtra("cases", strconv.Itoa(opts.Cases)).
		WithExtra("max_digits", strconv.Itoa(opts.MaxDigits))

	for _, p := range opts.Properties {
		sink.OnEvent(Event{Property: p, Status: StatusQueued, Total: opts.Cases})
	}

	results := make([]Result, len(opts.Properties))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.Jobs, len(opts.Properties)))
	for i, p := range opts.Properties {
		g.Go(func() error {
			// Each slot is written by exactly one goroutine.
			res, err := runProperty(gctx, p, opts, sink, root.ID())
			results[i] = res
			return err
		})
	}
	err = g.Wait()

	report := Report{Seed: opts.Seed, Results: results}
	switch {
	case err != nil:
		root.End("cancelled")
		return report, err
	case report.Failed():
		root.End(fmt.Sprintf("%d failing", len(report.Failures())))
	default:
		root.End("passed")
	}
	return report, nil
}

func runProperty(ctx context.Context, p Property, opts Options, sink Sink, parent uint64) (Result, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeCommand, "property:"+string(p), parent)
	start := time.Now()

	l := laws[p]
	gen := &generator{
		rng:       rand.New(rand.NewPCG(opts.Seed, streamFor(p))),
		maxDigits: opts.MaxDigits,
	}
	res := Result{Property: p}
	sink.OnEvent(Event{Property: p, Status: StatusRunning, Total: opts.Cases})

	for c := 0; c < opts.Cases; c++ {
		if err := ctx.Err(); err != nil {
			res.Elapsed = time.Since(start)
			span.End("cancelled")
			return res, err
		}

		inputs := l.gen(gen)
		cs := trace.Begin(tr, trace.ScopeCase, string(p), span.ID())
		err := l.check(&env{tr: tr, parent: cs.ID()}, inputs)
		res.Cases = c + 1
		if err != nil {
			for i, in := range inputs {
				cs.WithExtra("in"+strconv.Itoa(i), in)
			}
			cs.End("failed")
			res.Failure = &Failure{Property: p, Case: c, Inputs: inputs, Err: err}
			res.Elapsed = time.Since(start)
			sink.OnEvent(Event{Property: p, Status: StatusFailed, Done: res.Cases, Total: opts.Cases, Err: res.Failure, Elapsed: res.Elapsed})
			span.End("failed")
			return res, nil
		}
		cs.End("")
		sink.OnEvent(Event{Property: p, Status: StatusRunning, Done: res.Cases, Total: opts.Cases})
	}

	res.Elapsed = time.Since(start)
	sink.OnEvent(Event{Property: p, Status: StatusPassed, Done: res.Cases, Total: opts.Cases, Elapsed: res.Elapsed})
	span.End("passed")
	return res, nil
}

// streamFor derives a per-property random stream so a property's cases do
// not depend on which other properties are selected.
func streamFor(p Property) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(p)) //nolint:errcheck // hash writes never fail
	return h.Sum64()
}
