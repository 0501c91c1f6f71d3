package mpi

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) *Int {
	t.Helper()
	z, err := Parse(s)
	require.NoError(t, err, "parse %q", s)
	return z
}

func mustWord(t *testing.T, w uint32) *Int {
	t.Helper()
	z := New()
	require.NoError(t, z.SetUint32(w))
	return z
}

// toBig rebuilds x from its raw digits so the oracle does not depend on
// String.
func toBig(x *Int) *big.Int {
	b := new(big.Int)
	for i := len(x.digits) - 1; i >= 0; i-- {
		b.Lsh(b, DigitBits)
		b.Or(b, big.NewInt(int64(x.digits[i])))
	}
	return b
}

func fromBig(t *testing.T, b *big.Int) *Int {
	t.Helper()
	require.GreaterOrEqual(t, b.Sign(), 0)
	var digits []uint32
	rest := new(big.Int).Set(b)
	mask := big.NewInt(digitMask)
	for rest.Sign() > 0 {
		digits = append(digits, uint32(new(big.Int).And(rest, mask).Uint64()))
		rest.Rsh(rest, DigitBits)
	}
	z := New()
	require.NoError(t, z.SetDigits(digits))
	return z
}

func newRand(t *testing.T) *rand.Rand {
	t.Helper()
	return rand.New(rand.NewPCG(0x6d70, uint64(len(t.Name()))))
}

// randBig returns a value of up to maxBits bits, biased towards all-ones
// digits now and then so carry chains get exercised.
func randBig(rng *rand.Rand, maxBits int) *big.Int {
	n := rng.IntN(maxBits + 1)
	b := new(big.Int)
	for i := 0; i < n; i++ {
		b.Lsh(b, 1)
		if rng.IntN(4) != 0 {
			b.SetBit(b, 0, 1)
		}
	}
	return b
}

func requireEqualBig(t *testing.T, want *big.Int, got *Int, msgAndArgs ...any) {
	t.Helper()
	require.Equal(t, want.String(), toBig(got).String(), msgAndArgs...)
}

func requireCanonical(t *testing.T, x *Int) {
	t.Helper()
	if n := len(x.digits); n > 0 {
		require.NotZero(t, x.digits[n-1], "high digit of %v is zero", x.digits)
	}
}
