package check

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mpint/internal/mpi"
	"mpint/internal/trace"
)

// errLaw marks a violated property, as opposed to an operation error.
var errLaw = errors.New("property violated")

type law struct {
	gen   func(g *generator) []string
	check func(e *env, in []string) error
}

var laws = map[Property]law{
	PropCmp: {
		gen:   func(g *generator) []string { return []string{g.decimal(false), g.decimal(false)} },
		check: checkCmp,
	},
	PropMul: {
		gen:   func(g *generator) []string { return []string{g.decimal(false), g.decimal(false)} },
		check: checkMul,
	},
	PropDivMod: {
		gen:   func(g *generator) []string { return []string{g.decimal(false), g.nonzero()} },
		check: checkDivMod,
	},
	PropGCD: {
		gen:   func(g *generator) []string { return []string{g.nonzero(), g.nonzero()} },
		check: checkGCD,
	},
	PropShift: {
		gen:   func(g *generator) []string { return []string{g.decimal(false), g.shift()} },
		check: checkShift,
	},
	PropParse: {
		gen:   func(g *generator) []string { return []string{g.decimal(true)} },
		check: checkParse,
	},
}

// env traces the operations of one case.
type env struct {
	tr     trace.Tracer
	parent uint64
}

func (e *env) op(name string, fn func() error) error {
	span := trace.Begin(e.tr, trace.ScopeOp, name, e.parent)
	if err := fn(); err != nil {
		span.End(err.Error())
		return err
	}
	span.End("")
	return nil
}

func (e *env) parse(in []string) ([]*mpi.Int, error) {
	out := make([]*mpi.Int, len(in))
	for i, s := range in {
		if err := e.op("parse", func() error {
			var err error
			out[i], err = mpi.Parse(s)
			return err
		}); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func violated(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errLaw}, args...)...)
}

func checkCmp(e *env, in []string) error {
	xs, err := e.parse(in)
	if err != nil {
		return err
	}
	a, b := xs[0], xs[1]

	ab, ba := a.Cmp(b), b.Cmp(a)
	if ab != -ba {
		return violated("cmp(a,b) = %d but cmp(b,a) = %d", ab, ba)
	}
	if c := a.Cmp(a); c != 0 {
		return violated("cmp(a,a) = %d", c)
	}
	if ab == 0 && a.String() != b.String() {
		return violated("cmp reports equal for %s and %s", a, b)
	}

	padded := mpi.New()
	if err := e.op("set", func() error { return padded.Set(a) }); err != nil {
		return err
	}
	if err := e.op("enlarge", func() error { return padded.Enlarge(a.Capacity() + 3) }); err != nil {
		return err
	}
	if padded.Cmp(a) != 0 || a.Cmp(padded) != 0 {
		return violated("cmp differs after padding with zero digits")
	}
	return nil
}

func checkMul(e *env, in []string) error {
	xs, err := e.parse(in)
	if err != nil {
		return err
	}
	a, b := xs[0], xs[1]

	ab, ba := mpi.New(), mpi.New()
	if err := e.op("mul", func() error { return ab.Mul(a, b) }); err != nil {
		return err
	}
	if err := e.op("mul", func() error { return ba.Mul(b, a) }); err != nil {
		return err
	}
	if ab.Cmp(ba) != 0 {
		return violated("a*b = %s but b*a = %s", ab, ba)
	}

	zero := mpi.New()
	if err := e.op("mul", func() error { return zero.Mul(a, mpi.New()) }); err != nil {
		return err
	}
	if zero.Capacity() != 0 {
		return violated("a*0 has capacity %d", zero.Capacity())
	}
	return nil
}

func checkDivMod(e *env, in []string) error {
	xs, err := e.parse(in)
	if err != nil {
		return err
	}
	n, d := xs[0], xs[1]

	q, r := mpi.New(), mpi.New()
	if err := e.op("divmod", func() error { return mpi.DivMod(q, r, n, d) }); err != nil {
		return err
	}
	back := mpi.New()
	if err := e.op("mul", func() error { return back.Mul(q, d) }); err != nil {
		return err
	}
	if err := e.op("add", func() error { return back.Add(back, r) }); err != nil {
		return err
	}
	if back.Cmp(n) != 0 {
		return violated("q*d + r = %s, want %s (q=%s, r=%s)", back, n, q, r)
	}
	if r.Cmp(d) >= 0 {
		return violated("remainder %s not below divisor %s", r, d)
	}
	return nil
}

func checkGCD(e *env, in []string) error {
	xs, err := e.parse(in)
	if err != nil {
		return err
	}
	a, b := xs[0], xs[1]

	g := mpi.New()
	if err := e.op("gcd", func() error { return mpi.GCD(g, a, b) }); err != nil {
		return err
	}

	q, r := mpi.New(), mpi.New()
	for _, x := range []*mpi.Int{a, b} {
		if err := e.op("divmod", func() error { return mpi.DivMod(q, r, x, g) }); err != nil {
			return err
		}
		if !r.IsZero() {
			return violated("gcd %s does not divide %s", g, x)
		}
	}

	if err := e.op("divmod", func() error { return mpi.DivMod(q, r, a, b) }); err != nil {
		return err
	}
	if r.IsZero() {
		if g.Cmp(b) != 0 {
			return violated("b divides a but gcd is %s, not %s", g, b)
		}
		return nil
	}
	step := mpi.New()
	if err := e.op("gcd", func() error { return mpi.GCD(step, b, r) }); err != nil {
		return err
	}
	if step.Cmp(g) != 0 {
		return violated("gcd(b, a mod b) = %s, gcd(a, b) = %s", step, g)
	}
	return nil
}

func checkShift(e *env, in []string) error {
	xs, err := e.parse(in[:1])
	if err != nil {
		return err
	}
	a := xs[0]
	k, err := strconv.ParseUint(in[1], 10, 32)
	if err != nil {
		return fmt.Errorf("shift count: %w", err)
	}
	n := uint(k)

	shifted := mpi.New()
	if err := e.op("lsh", func() error { return shifted.Lsh(a, n) }); err != nil {
		return err
	}
	pow := mpi.New()
	if err := e.op("setbit", func() error { return pow.SetBit(n) }); err != nil {
		return err
	}
	want := mpi.New()
	if err := e.op("mul", func() error { return want.Mul(a, pow) }); err != nil {
		return err
	}
	if shifted.Cmp(want) != 0 {
		return violated("a<<%d = %s, a*2^%d = %s", n, shifted, n, want)
	}
	for i := uint(0); i < n; i++ {
		if shifted.Bit(i) != 0 {
			return violated("bit %d of a<<%d is set", i, n)
		}
	}
	for i := 0; i < a.BitLen(); i++ {
		bit := uint(i) //nolint:gosec // G115: i is a non-negative bit index.
		if shifted.Bit(bit+n) != a.Bit(bit) {
			return violated("bit %d of a<<%d differs from bit %d of a", bit+n, n, bit)
		}
	}
	return nil
}

func checkParse(e *env, in []string) error {
	xs, err := e.parse(in)
	if err != nil {
		return err
	}
	want := strings.TrimLeft(in[0], "0")
	if want == "" {
		want = "0"
	}
	if got := xs[0].String(); got != want {
		return violated("round trip of %q gave %q", in[0], got)
	}
	return nil
}
