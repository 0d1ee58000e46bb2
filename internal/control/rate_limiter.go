package control

import "fmt"

// RateLimiter bounds the per-tick change of its internal value,
// approaching the most recent input by at most maxStep per tick.
type RateLimiter struct {
	maxStep float64
	value   float64
}

// NewRateLimiter creates a rate limiter with the given maximum
// change per tick. The internal value starts at 0.
func NewRateLimiter(maxStep float64) (*RateLimiter, error) {
	if maxStep < 0 {
		return nil, fmt.Errorf("invalid rate limiter step: %v", maxStep)
	}
	return &RateLimiter{
		maxStep: maxStep,
	}, nil
}

// SetInput moves the internal value toward target by at most
// maxStep in either direction.
func (r *RateLimiter) SetInput(target float64) {
	diff := target - r.value
	step := Range{Lo: -r.maxStep, Hi: r.maxStep}
	r.value += step.Clamp(diff)
}

// Output returns the current internal value.
func (r *RateLimiter) Output() float64 {
	return r.value
}

// Update feeds target into the limiter and returns the new value.
func (r *RateLimiter) Update(target float64) float64 {
	r.SetInput(target)
	return r.Output()
}
