package domain

import (
	"math/big"
	"time"
)

// Outcome is the result of evaluating one Request.
// Exactly one of Value and Err is set.
type Outcome struct {
	Request Request
	Value   *big.Int
	Elapsed time.Duration
	Cached  bool
	Err     error

	decimal string
}

// OK reports whether the evaluation produced a value.
func (o *Outcome) OK() bool {
	return o.Err == nil && o.Value != nil
}

// Decimal returns the value in base 10, computing it once.
func (o *Outcome) Decimal() string {
	if o.Value == nil {
		return ""
	}
	if o.decimal == "" {
		o.decimal = o.Value.String()
	}
	return o.decimal
}

// Digits is the number of decimal digits in the value.
func (o *Outcome) Digits() int {
	return len(o.Decimal())
}
