package tetration

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrOverflow is returned when the accumulator no longer fits the exponent width.
var ErrOverflow = errors.New("tetration overflow: accumulator exceeds exponent width")

// ErrResultTooLarge is returned by an Evaluator with MaxBits set when the next level
// is certain to exceed the limit.
var ErrResultTooLarge = errors.New("tetration result exceeds configured size limit")

// OverflowError describes where a tower stopped being representable.
// It unwraps to ErrOverflow.
type OverflowError struct {
	// Level is the number of levels completed before narrowing failed.
	Level uint64
	// Bits is the bit length of the accumulator that could not be narrowed.
	Bits int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%v: level %d accumulator has %d bits (limit %d)", ErrOverflow, e.Level, e.Bits, ExponentBits)
}

func (e *OverflowError) Unwrap() error {
	return ErrOverflow
}

func newOverflowError(level uint64, acc *big.Int) *OverflowError {
	return &OverflowError{Level: level, Bits: acc.BitLen()}
}
