package mpi

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// decimalChunk is the largest power of ten below 2^31.
const (
	decimalChunk       = 1_000_000_000
	decimalChunkDigits = 9
)

// Parse returns the value of the base-10 literal s.
func Parse(s string) (*Int, error) {
	z := New()
	if err := z.SetString(s, 10); err != nil {
		return nil, err
	}
	return z, nil
}

// SetString sets z to the value of s interpreted in the given base. Only
// base 10 is supported and every byte of s must be an ASCII digit; leading
// zeros are allowed and the empty string is zero. On error z is left
// unchanged.
func (z *Int) SetString(s string, base int) error {
	if base != 10 {
		return fmt.Errorf("set string: %w %d (only base 10)", ErrBase, base)
	}
	var t Int
	if err := t.SetUint32(0); err != nil {
		return fmt.Errorf("set string: %w", err)
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < '0' || ch > '9' {
			return fmt.Errorf("set string: %w: %q at offset %d", ErrSyntax, ch, i)
		}
		if err := t.MulUint32(&t, 10); err != nil {
			return fmt.Errorf("set string: %w", err)
		}
		if err := t.AddUint32(&t, uint32(ch-'0')); err != nil {
			return fmt.Errorf("set string: %w", err)
		}
	}
	t.Compact()
	return z.Set(&t)
}

// CmpUint32 compares x with w and returns -1, 0 or +1. The word is treated
// as a two-digit value, so x need not be compacted.
func (x *Int) CmpUint32(w uint32) int {
	n := max(len(x.digits), wordDigits)
	for i := n - 1; i >= 0; i-- {
		var xd, wd uint32
		if i < len(x.digits) {
			xd = x.digits[i]
		}
		switch i {
		case 0:
			wd = w & digitMask
		case 1:
			wd = w >> DigitBits
		}
		switch {
		case xd < wd:
			return -1
		case xd > wd:
			return 1
		}
	}
	return 0
}

// Uint64 returns x as a uint64 and reports whether it fits.
func (x *Int) Uint64() (uint64, bool) {
	var v uint64
	for i := len(x.digits) - 1; i >= 0; i-- {
		d := x.digits[i]
		if d == 0 && v == 0 {
			continue
		}
		if v>>(64-DigitBits) != 0 {
			return 0, false
		}
		v = v<<DigitBits | uint64(d)
	}
	return v, true
}

// String returns the decimal representation of x.
func (x *Int) String() string {
	q := slices.Clone(x.digits)
	q = trimDigits(q)
	if len(q) == 0 {
		return "0"
	}

	var chunks []uint32
	for len(q) > 0 {
		chunks = append(chunks, divDigits(q, decimalChunk))
		q = trimDigits(q)
	}

	var sb strings.Builder
	sb.Grow(len(chunks) * decimalChunkDigits)
	sb.WriteString(strconv.FormatUint(uint64(chunks[len(chunks)-1]), 10))
	for i := len(chunks) - 2; i >= 0; i-- {
		part := strconv.FormatUint(uint64(chunks[i]), 10)
		sb.WriteString(strings.Repeat("0", decimalChunkDigits-len(part)))
		sb.WriteString(part)
	}
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler.
func (x *Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *Int) UnmarshalText(text []byte) error {
	return z.SetString(string(text), 10)
}

func trimDigits(digits []uint32) []uint32 {
	for len(digits) > 0 && digits[len(digits)-1] == 0 {
		digits = digits[:len(digits)-1]
	}
	return digits
}
