package mpi

import "fmt"

// SetUint32 sets z to w. Digits above the two needed for w are zeroed.
func (z *Int) SetUint32(w uint32) error {
	if err := z.Enlarge(wordDigits); err != nil {
		return fmt.Errorf("set word: %w", err)
	}
	z.digits[0] = w & digitMask
	z.digits[1] = w >> DigitBits
	clear(z.digits[wordDigits:])
	return nil
}

// AddUint32 sets z to x + w. On error z is left unchanged.
func (z *Int) AddUint32(x *Int, w uint32) error {
	n := max(len(x.digits), wordDigits)
	var t Int
	if err := t.Enlarge(n); err != nil {
		return fmt.Errorf("add word: %w", err)
	}

	var carry uint32
	for i := range t.digits {
		var d uint32
		if i < len(x.digits) {
			d = x.digits[i]
		}
		sum := d + (w & digitMask) + carry
		w >>= DigitBits
		t.digits[i] = sum & digitMask
		carry = sum >> DigitBits
	}

	if carry != 0 {
		if err := t.Enlarge(n + 1); err != nil {
			return fmt.Errorf("add word: %w", err)
		}
		t.digits[n] = carry
	}
	if err := z.Set(&t); err != nil {
		return fmt.Errorf("add word: %w", err)
	}
	return nil
}

// MulUint32 sets z to x * w. On error z is left unchanged.
func (z *Int) MulUint32(x *Int, w uint32) error {
	n := len(x.digits)
	var t Int
	if err := t.Enlarge(n); err != nil {
		return fmt.Errorf("mul word: %w", err)
	}

	var carry uint64
	for i := 0; i < n; i++ {
		prod := uint64(x.digits[i])*uint64(w) + carry
		t.digits[i] = uint32(prod & digitMask)
		carry = prod >> DigitBits
	}

	// The residual carry can be up to 33 bits wide, so it may spill into
	// more than one new digit.
	for i := n; carry != 0; i++ {
		if err := t.Enlarge(i + 1); err != nil {
			return fmt.Errorf("mul word: %w", err)
		}
		t.digits[i] = uint32(carry & digitMask)
		carry >>= DigitBits
	}
	if err := z.Set(&t); err != nil {
		return fmt.Errorf("mul word: %w", err)
	}
	return nil
}

// divDigits divides q in place by d and returns the remainder.
func divDigits(q []uint32, d uint32) uint32 {
	var rem uint64
	for i := len(q) - 1; i >= 0; i-- {
		cur := rem<<DigitBits | uint64(q[i])
		q[i] = uint32(cur / uint64(d)) //nolint:gosec // G115: quotient fits in 31 bits.
		rem = cur % uint64(d)
	}
	return uint32(rem) //nolint:gosec // G115: remainder is below d.
}
