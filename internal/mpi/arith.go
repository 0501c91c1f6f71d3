package mpi

import "fmt"

// Mul sets z to x * y using schoolbook multiplication. The result is
// compacted.
func (z *Int) Mul(x, y *Int) error {
	n := len(x.digits) + len(y.digits)
	var t Int
	if err := t.Enlarge(n); err != nil {
		return fmt.Errorf("mul: %w", err)
	}

	for i, xd := range x.digits {
		for j, yd := range y.digits {
			prod := uint64(xd) * uint64(yd)
			// Several digit pairs land on the same position before the
			// ripple settles, so keep carrying until both the product and
			// the carry are spent. The partial sum never exceeds the full
			// product, so k stays below n.
			var carry uint32
			for k := i + j; prod != 0 || carry != 0; k++ {
				sum := t.digits[k] + uint32(prod&digitMask) + carry
				t.digits[k] = sum & digitMask
				carry = sum >> DigitBits
				prod >>= DigitBits
			}
		}
	}

	if err := z.Set(&t); err != nil {
		return fmt.Errorf("mul: %w", err)
	}
	z.Compact()
	return nil
}

// Sub sets z to x - y. It fails with ErrNegative, leaving z unchanged, when
// y > x. The result is compacted.
func (z *Int) Sub(x, y *Int) error {
	n := max(len(x.digits), len(y.digits))
	var t Int
	if err := t.Enlarge(n); err != nil {
		return fmt.Errorf("sub: %w", err)
	}

	var borrow uint32
	for i := range n {
		var xd, yd uint32
		if i < len(x.digits) {
			xd = x.digits[i]
		}
		if i < len(y.digits) {
			yd = y.digits[i]
		}
		diff := xd - yd - borrow
		t.digits[i] = diff & digitMask
		borrow = diff >> DigitBits
	}
	if borrow != 0 {
		return fmt.Errorf("sub: %w", ErrNegative)
	}

	if err := z.Set(&t); err != nil {
		return fmt.Errorf("sub: %w", err)
	}
	z.Compact()
	return nil
}

// Add sets z to x + y. The result is compacted.
func (z *Int) Add(x, y *Int) error {
	n := max(len(x.digits), len(y.digits))
	var t Int
	if err := t.Enlarge(n + 1); err != nil {
		return fmt.Errorf("add: %w", err)
	}

	var carry uint32
	for i := range n {
		var xd, yd uint32
		if i < len(x.digits) {
			xd = x.digits[i]
		}
		if i < len(y.digits) {
			yd = y.digits[i]
		}
		sum := xd + yd + carry
		t.digits[i] = sum & digitMask
		carry = sum >> DigitBits
	}
	t.digits[n] = carry

	if err := z.Set(&t); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	z.Compact()
	return nil
}

// Cmp compares x and y and returns -1, 0 or +1. Neither operand needs to be
// compacted: missing high digits read as zero.
func (x *Int) Cmp(y *Int) int {
	n := max(len(x.digits), len(y.digits))
	for i := n - 1; i >= 0; i-- {
		var xd, yd uint32
		if i < len(x.digits) {
			xd = x.digits[i]
		}
		if i < len(y.digits) {
			yd = y.digits[i]
		}
		switch {
		case xd < yd:
			return -1
		case xd > yd:
			return 1
		}
	}
	return 0
}
