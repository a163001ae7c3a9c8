/*
Package tetration evaluates power towers (iterated exponentiation) exactly.

The tower base^^height is defined as base^^0 = 1 and base^^n = base^(base^^(n-1)).
Evaluation keeps an arbitrary-precision accumulator and raises base to it once per
level. Each exponent must fit in 32 bits; when the accumulator grows past that the
evaluation stops with ErrOverflow instead of truncating.

	v, err := tetration.Evaluate(uint256.NewInt(3), uint256.NewInt(3))
	// v == 7625597484987

Only a handful of (base, height) pairs succeed: 3^^4 already needs an exponent of
7625597484987. That is the nature of tetration, not a limitation to work around.
*/
package tetration
