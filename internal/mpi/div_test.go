package mpi

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivModWorkedExample(t *testing.T) {
	q, r := New(), New()
	require.NoError(t, DivMod(q, r, mustParse(t, "10"), mustParse(t, "4")))
	assert.Equal(t, 0, q.CmpUint32(2))
	assert.Equal(t, 0, r.CmpUint32(2))
}

func TestDivModByZeroLeavesResultsUntouched(t *testing.T) {
	q, r := mustWord(t, 11), mustWord(t, 12)
	padded := New()
	require.NoError(t, padded.Enlarge(4))

	for _, d := range []*Int{New(), mustWord(t, 0), padded} {
		err := DivMod(q, r, mustParse(t, "100"), d)
		require.ErrorIs(t, err, ErrDivByZero)
		assert.Equal(t, 0, q.CmpUint32(11))
		assert.Equal(t, 0, r.CmpUint32(12))
	}
}

func TestDivModRejectsSharedResult(t *testing.T) {
	q := mustWord(t, 1)
	err := DivMod(q, q, mustParse(t, "10"), mustParse(t, "3"))
	require.ErrorIs(t, err, ErrAlias)
	assert.Equal(t, 0, q.CmpUint32(1))
}

func TestDivModOfZero(t *testing.T) {
	q, r := mustWord(t, 5), mustWord(t, 6)
	require.NoError(t, DivMod(q, r, New(), mustParse(t, "7")))
	assert.Equal(t, 0, q.Capacity())
	assert.Equal(t, 0, r.Capacity())
}

func TestDivModSmallerDividend(t *testing.T) {
	q, r := New(), New()
	require.NoError(t, DivMod(q, r, mustParse(t, "3"), mustParse(t, "98765432109876543210")))
	assert.True(t, q.IsZero())
	assert.Equal(t, "3", r.String())
}

func TestDivModAliasedInputs(t *testing.T) {
	n := mustParse(t, "1000000000000000000000")
	d := mustParse(t, "7")
	r := New()
	require.NoError(t, DivMod(n, r, n, d))
	assert.Equal(t, "142857142857142857142", n.String())
	assert.Equal(t, "6", r.String())

	n = mustParse(t, "1000000000000000000000")
	q := New()
	require.NoError(t, DivMod(q, d, n, d))
	assert.Equal(t, "142857142857142857142", q.String())
	assert.Equal(t, "6", d.String())
}

func TestDivModReconstructs(t *testing.T) {
	rng := newRand(t)
	for i := 0; i < 200; i++ {
		a := randBig(rng, 300)
		b := randBig(rng, 200)
		if b.Sign() == 0 {
			b.SetInt64(1)
		}
		n, d := fromBig(t, a), fromBig(t, b)
		q, r := New(), New()
		require.NoError(t, DivMod(q, r, n, d))

		wantQ, wantR := new(big.Int).QuoRem(a, b, new(big.Int))
		requireEqualBig(t, wantQ, q, "%s / %s", a, b)
		requireEqualBig(t, wantR, r, "%s %% %s", a, b)
		requireCanonical(t, q)
		requireCanonical(t, r)

		back := New()
		require.NoError(t, back.Mul(q, d))
		require.NoError(t, back.Add(back, r))
		assert.Equal(t, 0, back.Cmp(n))
		assert.Equal(t, -1, r.Cmp(d))
	}
}

func TestGCDWorkedExample(t *testing.T) {
	z := New()
	require.NoError(t, GCD(z, mustParse(t, "50"), mustParse(t, "30")))
	assert.Equal(t, 0, z.CmpUint32(10))
}

func TestGCDRejectsZero(t *testing.T) {
	z := mustWord(t, 4)
	require.ErrorIs(t, GCD(z, New(), mustParse(t, "30")), ErrGCDZero)
	require.ErrorIs(t, GCD(z, mustParse(t, "30"), New()), ErrGCDZero)
	require.ErrorIs(t, GCD(z, New(), New()), ErrGCDZero)
	assert.Equal(t, 0, z.CmpUint32(4))
}

func TestGCDMatchesBig(t *testing.T) {
	rng := newRand(t)
	for i := 0; i < 100; i++ {
		common := randBig(rng, 60)
		a := new(big.Int).Mul(randBig(rng, 120), common)
		b := new(big.Int).Mul(randBig(rng, 120), common)
		if a.Sign() == 0 || b.Sign() == 0 {
			continue
		}
		x, y := fromBig(t, a), fromBig(t, b)
		z := New()
		require.NoError(t, GCD(z, x, y))
		requireEqualBig(t, new(big.Int).GCD(nil, nil, a, b), z, "gcd(%s, %s)", a, b)

		// The result divides both operands.
		q, r := New(), New()
		require.NoError(t, DivMod(q, r, x, z))
		assert.True(t, r.IsZero())
		require.NoError(t, DivMod(q, r, y, z))
		assert.True(t, r.IsZero())

		// gcd(a, b) == gcd(b, a mod b) while a mod b is nonzero.
		require.NoError(t, DivMod(q, r, x, y))
		if !r.IsZero() {
			step := New()
			require.NoError(t, GCD(step, y, r))
			assert.Equal(t, 0, step.Cmp(z))
		}
	}
}

func TestGCDAliased(t *testing.T) {
	a := mustParse(t, "1071")
	require.NoError(t, GCD(a, a, mustParse(t, "462")))
	assert.Equal(t, "21", a.String())
}
