package mpi

import (
	"fmt"
	"math/bits"

	"fortio.org/safecast"
)

// Bit returns the value of bit i of x (0 is least significant). Bits past
// the stored digits are zero.
func (x *Int) Bit(i uint) uint {
	word := i / DigitBits
	if word >= uint(len(x.digits)) {
		return 0
	}
	return uint(x.digits[word]>>(i%DigitBits)) & 1
}

// SetBit sets bit i of z to 1, growing z to cover it.
func (z *Int) SetBit(i uint) error {
	word := i / DigitBits
	capacity, err := safecast.Conv[int](word + 1)
	if err != nil {
		return fmt.Errorf("set bit %d: %w (%w)", i, ErrOutOfMemory, err)
	}
	if err := z.Enlarge(capacity); err != nil {
		return fmt.Errorf("set bit %d: %w", i, err)
	}
	z.digits[word] |= 1 << (i % DigitBits)
	return nil
}

// BitLen returns the length of x in bits; zero has length 0.
func (x *Int) BitLen() int {
	for i := len(x.digits) - 1; i >= 0; i-- {
		if d := x.digits[i]; d != 0 {
			return i*DigitBits + bits.Len32(d)
		}
	}
	return 0
}

// Lsh sets z to x * 2^n. The result is compacted.
func (z *Int) Lsh(x *Int, n uint) error {
	wordShift := n / DigitBits
	bitShift := n % DigitBits
	words := wordShift
	if bitShift != 0 {
		words++
	}

	extra, err := safecast.Conv[int](words)
	if err != nil || extra > MaxDigits {
		return fmt.Errorf("lsh: %w (shift by %d bits)", ErrOutOfMemory, n)
	}
	var t Int
	if err := t.Enlarge(len(x.digits) + extra); err != nil {
		return fmt.Errorf("lsh: %w", err)
	}

	shift := int(wordShift) //nolint:gosec // G115: bounded by MaxDigits above.
	for i := shift; i < len(t.digits); i++ {
		t.digits[i] = shiftedDigit(x.digits, i-shift, bitShift)
	}

	if err := z.Set(&t); err != nil {
		return fmt.Errorf("lsh: %w", err)
	}
	z.Compact()
	return nil
}

// shiftedDigit returns digit i of digits shifted left by s < DigitBits bits:
// the low bits of digits[i] joined with the high bits of digits[i-1].
func shiftedDigit(digits []uint32, i int, s uint) uint32 {
	var r uint32
	if i < len(digits) {
		r |= (digits[i] << s) & digitMask
	}
	if s != 0 && i > 0 && i-1 < len(digits) {
		r |= digits[i-1] >> (DigitBits - s)
	}
	return r
}
