package tetration

import (
	"fmt"
	"math"
	"math/big"

	"github.com/holiman/uint256"
)

const (
	// ExponentBits is the width every exponent is narrowed to before a power step.
	ExponentBits = 32
	// MaxExponent is the largest accumulator usable as the next exponent.
	MaxExponent = math.MaxUint32
)

// Evaluator computes power towers. The zero value has no size limit.
type Evaluator struct {
	// MaxBits rejects a level whose result is known to need more bits than this.
	// Zero disables the check. The estimate is a lower bound, so a result that
	// would fit is never rejected.
	MaxBits uint64
}

// Evaluate computes base^^height with no size limit.
// The only error it returns wraps ErrOverflow.
func Evaluate(base, height *uint256.Int) (*big.Int, error) {
	return Evaluator{}.Evaluate(base, height)
}

// Evaluate computes base^^height.
//
// Once the tower becomes periodic (base 1 reaches a fixed point, base 0 alternates
// between 1 and 0) the remaining levels are resolved without further iterations, so
// large heights finish immediately for those bases.
func (ev Evaluator) Evaluate(base, height *uint256.Int) (*big.Int, error) {
	b := base.ToBig()
	acc := big.NewInt(1)
	var prev *big.Int

	remaining := height.Clone()
	var level uint64
	for !remaining.IsZero() {
		exp, ok := narrow(acc)
		if !ok {
			return nil, newOverflowError(level, acc)
		}
		if err := ev.checkSize(b, exp); err != nil {
			return nil, err
		}

		// big.Int.Exp defines 0^0 as 1.
		next := new(big.Int).Exp(b, new(big.Int).SetUint64(uint64(exp)), nil)
		remaining.SubUint64(remaining, 1)
		level++

		if next.Cmp(acc) == 0 {
			return next, nil
		}
		if prev != nil && next.Cmp(prev) == 0 {
			// Period two: the tower alternates between acc and next from here on.
			if remaining.Uint64()&1 == 1 {
				return acc, nil
			}
			return next, nil
		}
		prev, acc = acc, next
	}
	return acc, nil
}

func (ev Evaluator) checkSize(base *big.Int, exp uint32) error {
	if ev.MaxBits == 0 || base.Sign() == 0 {
		return nil
	}
	// base^exp has at least (bitlen(base)-1)*exp + 1 bits.
	minBits := uint64(base.BitLen()-1)*uint64(exp) + 1
	if minBits > ev.MaxBits {
		return fmt.Errorf("%w: at least %d bits needed, limit %d", ErrResultTooLarge, minBits, ev.MaxBits)
	}
	return nil
}

// narrow converts the accumulator to an exponent, reporting false when it does not fit.
func narrow(acc *big.Int) (uint32, bool) {
	if !acc.IsUint64() || acc.Uint64() > MaxExponent {
		return 0, false
	}
	return uint32(acc.Uint64()), true
}
