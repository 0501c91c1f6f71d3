package mpi

import "errors"

// MaxDigits is the largest digit count a value may be enlarged to. Requests
// beyond it are reported as allocation failures.
const MaxDigits = 1_000_000

var (
	// ErrOutOfMemory indicates the digit store could not be enlarged.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrNegative indicates a subtraction whose result would be negative.
	ErrNegative = errors.New("negative numbers not supported")
	// ErrDivByZero indicates an attempt to divide by zero.
	ErrDivByZero = errors.New("division by zero")
	// ErrGCDZero indicates a GCD request with a zero operand.
	ErrGCDZero = errors.New("gcd undefined for zero operand")
	// ErrSyntax indicates a malformed decimal literal.
	ErrSyntax = errors.New("invalid decimal literal")
	// ErrBase indicates a parse base other than 10.
	ErrBase = errors.New("unsupported base")
	// ErrDigit indicates a raw digit that does not fit in 31 bits.
	ErrDigit = errors.New("digit out of range")
	// ErrAlias indicates that quotient and remainder share storage.
	ErrAlias = errors.New("quotient and remainder must be distinct values")
)
