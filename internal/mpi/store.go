// Package mpi implements unsigned multi-precision integers over base-2^31
// digits.
//
// Operations follow the output-receiver convention: the receiver (or the
// first arguments of DivMod and GCD) is overwritten with the result, and
// may alias any operand. Every precondition violation is returned as an
// error wrapping one of the package sentinels; the receiver is not
// modified when an operation fails its precondition checks.
//
// A value is not safe for concurrent mutation. Independent values may be
// used from different goroutines.
package mpi

import (
	"fmt"
	"slices"
)

const (
	// DigitBits is the number of value bits carried by one digit.
	DigitBits = 31

	digitMask = 1<<DigitBits - 1

	// wordDigits is the number of digits needed to hold a uint32.
	wordDigits = 2
)

// Int is an unsigned multi-precision integer.
//
// The zero value is ready to use and represents 0.
type Int struct {
	// digits are base-2^31 little-endian (digits[0] is least significant).
	// The top bit of every element is always clear.
	//
	// len(digits) is the capacity; it may include high zero digits until
	// the value is compacted. Canonical zero is the empty slice.
	digits []uint32
}

// New returns a zero Int.
func New() *Int { return &Int{} }

// Capacity returns the number of stored digits, including high zero digits
// that have not been compacted away.
func (z *Int) Capacity() int { return len(z.digits) }

// Enlarge grows the store to at least capacity digits. New digits are zero.
// It never shrinks. A negative capacity is rejected.
func (z *Int) Enlarge(capacity int) error {
	if capacity < 0 {
		return fmt.Errorf("%w (negative capacity %d)", ErrOutOfMemory, capacity)
	}
	if capacity <= len(z.digits) {
		return nil
	}
	if capacity > MaxDigits {
		return fmt.Errorf("%w (%d digits requested)", ErrOutOfMemory, capacity)
	}
	if capacity <= cap(z.digits) {
		n := len(z.digits)
		z.digits = z.digits[:capacity]
		clear(z.digits[n:])
		return nil
	}
	grown := make([]uint32, capacity)
	copy(grown, z.digits)
	z.digits = grown
	return nil
}

// Compact strips high zero digits. Zero ends up with capacity 0.
func (z *Int) Compact() {
	n := len(z.digits)
	for n > 0 && z.digits[n-1] == 0 {
		n--
	}
	switch {
	case n == 0:
		z.digits = nil
	case n == len(z.digits):
	case cap(z.digits) > 2*n:
		// Give back the slack when most of the backing array is unused.
		z.digits = slices.Clone(z.digits[:n])
	default:
		z.digits = z.digits[:n]
	}
}

// Set copies x into z. If z holds more digits than x the excess digits are
// zeroed; the capacity of z does not shrink.
func (z *Int) Set(x *Int) error {
	if z == x {
		return nil
	}
	if err := z.Enlarge(len(x.digits)); err != nil {
		return fmt.Errorf("set: %w", err)
	}
	n := copy(z.digits, x.digits)
	clear(z.digits[n:])
	return nil
}

// Clear releases the digit store, leaving z equal to zero.
func (z *Int) Clear() {
	z.digits = nil
}

// Digits returns a copy of the stored digits, least significant first.
func (z *Int) Digits() []uint32 {
	return slices.Clone(z.digits)
}

// SetDigits replaces the store with a copy of digits. Each digit must be
// below 2^31.
func (z *Int) SetDigits(digits []uint32) error {
	for i, d := range digits {
		if d > digitMask {
			return fmt.Errorf("set digits: %w: digit %d is %#x", ErrDigit, i, d)
		}
	}
	if len(digits) > MaxDigits {
		return fmt.Errorf("set digits: %w (%d digits requested)", ErrOutOfMemory, len(digits))
	}
	z.digits = slices.Clone(digits)
	return nil
}

// IsZero reports whether z is zero, regardless of its capacity.
func (z *Int) IsZero() bool {
	for _, d := range z.digits {
		if d != 0 {
			return false
		}
	}
	return true
}
