package domain

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Request is a (base, height) pair to evaluate.
type Request struct {
	Base   uint256.Int
	Height uint256.Int
}

// NewRequest builds a Request from small operands.
func NewRequest(base, height uint64) Request {
	var r Request
	r.Base.SetUint64(base)
	r.Height.SetUint64(height)
	return r
}

// Key identifies the request in caches.
func (r Request) Key() string {
	return r.Base.Dec() + ":" + r.Height.Dec()
}

// String renders the request as the tower label used in output, e.g. "Tetrator(3, 3)".
func (r Request) String() string {
	return fmt.Sprintf("Tetrator(%s, %s)", r.Base.Dec(), r.Height.Dec())
}
