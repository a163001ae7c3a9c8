package tetration

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Calculator holds a base and a height between evaluations.
// It does no validation: zero is a legal value for both.
type Calculator struct {
	base   uint256.Int
	height uint256.Int
}

// NewCalculator returns a calculator with base 1 and height 0.
func NewCalculator() *Calculator {
	c := &Calculator{}
	c.base.SetUint64(1)
	return c
}

func (c *Calculator) SetBase(v *uint256.Int) {
	c.base.Set(v)
}

func (c *Calculator) Base() *uint256.Int {
	return c.base.Clone()
}

func (c *Calculator) SetHeight(v *uint256.Int) {
	c.height.Set(v)
}

func (c *Calculator) Height() *uint256.Int {
	return c.height.Clone()
}

// Evaluate computes the tower for the current base and height.
func (c *Calculator) Evaluate() (*big.Int, error) {
	return Evaluate(&c.base, &c.height)
}
