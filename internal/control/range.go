package control

import (
	"fmt"
	"math"
)

// Range is a closed numeric interval [Lo, Hi] used to saturate values.
// Either side may be infinite, in which case clamping is a no-op
// on that side.
type Range struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Unbounded returns a range that never modifies its input.
func Unbounded() Range {
	return Range{
		Lo: math.Inf(-1),
		Hi: math.Inf(1),
	}
}

// NewRange creates a range from the given bounds.
// Use math.Inf to leave a side open.
func NewRange(lo float64, hi float64) (Range, error) {
	if lo > hi {
		return Range{}, fmt.Errorf("invalid range: lower bound %v is above upper bound %v", lo, hi)
	}
	return Range{Lo: lo, Hi: hi}, nil
}

// Clamp saturates x to the interval.
// NaN fails both bound checks and is passed through unmodified.
func (r Range) Clamp(x float64) float64 {
	if x < r.Lo {
		return r.Lo
	}
	if x > r.Hi {
		return r.Hi
	}
	return x
}
