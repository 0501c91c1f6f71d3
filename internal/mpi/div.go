package mpi

import "fmt"

// DivMod sets q and r to the quotient and remainder of n / d, so that
// n = q*d + r with 0 <= r < d. Both results are compacted.
//
// A zero divisor fails with ErrDivByZero before q or r is touched. q and r
// must be distinct values; either may alias n or d.
func DivMod(q, r, n, d *Int) error {
	if d.CmpUint32(0) == 0 {
		return fmt.Errorf("divmod: %w", ErrDivByZero)
	}
	if q == r {
		return fmt.Errorf("divmod: %w", ErrAlias)
	}

	var n0, d0 Int
	if err := n0.Set(n); err != nil {
		return fmt.Errorf("divmod: %w", err)
	}
	if err := d0.Set(d); err != nil {
		return fmt.Errorf("divmod: %w", err)
	}

	var quo, rem Int
	for i := uint(n0.BitLen()); i > 0; i-- {
		bit := i - 1
		if err := rem.Lsh(&rem, 1); err != nil {
			return fmt.Errorf("divmod: %w", err)
		}
		if n0.Bit(bit) != 0 {
			if err := rem.SetBit(0); err != nil {
				return fmt.Errorf("divmod: %w", err)
			}
		}
		if rem.Cmp(&d0) >= 0 {
			if err := rem.Sub(&rem, &d0); err != nil {
				return fmt.Errorf("divmod: %w", err)
			}
			if err := quo.SetBit(bit); err != nil {
				return fmt.Errorf("divmod: %w", err)
			}
		}
	}

	if err := q.Set(&quo); err != nil {
		return fmt.Errorf("divmod: %w", err)
	}
	if err := r.Set(&rem); err != nil {
		return fmt.Errorf("divmod: %w", err)
	}
	q.Compact()
	r.Compact()
	return nil
}

// GCD sets z to the greatest common divisor of a and b using Euclid's
// algorithm. Both operands must be nonzero; otherwise it fails with
// ErrGCDZero and z is left unchanged.
func GCD(z, a, b *Int) error {
	if a.CmpUint32(0) == 0 || b.CmpUint32(0) == 0 {
		return fmt.Errorf("gcd: %w", ErrGCDZero)
	}

	var x, y, q, r Int
	if err := x.Set(a); err != nil {
		return fmt.Errorf("gcd: %w", err)
	}
	if err := y.Set(b); err != nil {
		return fmt.Errorf("gcd: %w", err)
	}
	for y.CmpUint32(0) != 0 {
		if err := DivMod(&q, &r, &x, &y); err != nil {
			return fmt.Errorf("gcd: %w", err)
		}
		x, y = y, r
		r = Int{}
	}

	if err := z.Set(&x); err != nil {
		return fmt.Errorf("gcd: %w", err)
	}
	z.Compact()
	return nil
}
