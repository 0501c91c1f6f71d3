package mpi

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLshOneBy31(t *testing.T) {
	z := New()
	require.NoError(t, z.Lsh(mustWord(t, 1), 31))
	assert.Equal(t, 0, z.CmpUint32(2147483648))
	assert.Equal(t, "2147483648", z.String())
	assert.Equal(t, []uint32{0, 1}, z.Digits())
}

func TestLshMatchesBig(t *testing.T) {
	rng := newRand(t)
	shifts := []uint{0, 1, 7, 30, 31, 32, 61, 62, 63, 100, 311}
	for i := 0; i < 200; i++ {
		a := randBig(rng, 250)
		for _, n := range shifts {
			z := New()
			require.NoError(t, z.Lsh(fromBig(t, a), n))
			requireEqualBig(t, new(big.Int).Lsh(a, n), z, "%s << %d", a, n)
			requireCanonical(t, z)
		}
	}
}

func TestLshAliased(t *testing.T) {
	x := mustParse(t, "123456789")
	require.NoError(t, x.Lsh(x, 40))
	assert.Equal(t, new(big.Int).Lsh(big.NewInt(123456789), 40).String(), x.String())
}

func TestLshOfZero(t *testing.T) {
	z := mustWord(t, 8)
	require.NoError(t, z.Lsh(New(), 1000))
	assert.Equal(t, 0, z.Capacity())
}

func TestLshPastLimitFails(t *testing.T) {
	z := New()
	err := z.Lsh(mustWord(t, 1), DigitBits*MaxDigits)
	require.ErrorIs(t, err, ErrOutOfMemory)
}

func TestSetBitAndBit(t *testing.T) {
	z := New()
	require.NoError(t, z.SetBit(62))
	assert.Equal(t, uint(1), z.Bit(62))
	assert.Equal(t, uint(0), z.Bit(61))
	assert.Equal(t, uint(0), z.Bit(63))
	assert.Equal(t, 3, z.Capacity())
	requireEqualBig(t, new(big.Int).Lsh(big.NewInt(1), 62), z)
}

func TestSetBitKeepsOtherBits(t *testing.T) {
	z := mustWord(t, 0b1010)
	require.NoError(t, z.SetBit(0))
	require.NoError(t, z.SetBit(1))
	assert.Equal(t, 0, z.CmpUint32(0b1011))
}

func TestBitOutOfRange(t *testing.T) {
	x := mustWord(t, 1)
	assert.Equal(t, uint(0), x.Bit(1<<40))
	assert.Equal(t, uint(0), New().Bit(0))
}

func TestBitMatchesBig(t *testing.T) {
	rng := newRand(t)
	for i := 0; i < 100; i++ {
		a := randBig(rng, 200)
		x := fromBig(t, a)
		for b := 0; b < 210; b++ {
			require.Equal(t, a.Bit(b), x.Bit(uint(b)), "bit %d of %s", b, a)
		}
	}
}

func TestBitLen(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"1", 1},
		{"2147483647", 31},
		{"2147483648", 32},
		{"4611686018427387904", 63},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mustParse(t, tt.in).BitLen(), tt.in)
	}

	padded := New()
	require.NoError(t, padded.SetDigits([]uint32{5, 0, 0}))
	assert.Equal(t, 3, padded.BitLen())
}
