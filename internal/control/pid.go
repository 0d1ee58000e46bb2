package control

import "fmt"

// DefaultTickDuration is the tick duration used when none is configured.
const DefaultTickDuration = 0.001

// PIDController is a discrete-time PID controller. Each tick it compares
// a measured value against the configured setpoint and combines the
// proportional, integral and derivative terms of the error into a single
// control output. Every term carries its own saturation range, the
// integral accumulator is clamped at accumulation time (anti-windup),
// and the derivative term can optionally be smoothed with a moving
// average low-pass filter.
//
// A controller must only ever be ticked from a single goroutine.
type PIDController struct {
	// Setpoint is the target value the controller drives the
	// measurement toward. May be changed at any time.
	Setpoint float64

	// gain multipliers for the three terms
	Kp float64
	Ki float64
	Kd float64

	// PRange clamps the proportional term.
	PRange Range
	// IRange clamps the integral term on read.
	IRange Range
	// DRange clamps the derivative term.
	DRange Range
	// ORange clamps the combined output.
	ORange Range
	// ERange clamps the raw integral accumulator on write,
	// independently of IRange.
	ERange Range

	dt      float64
	measure float64
	err     float64
	lastErr float64
	sumErr  float64
	lowPass *MovingAverage
}

// PIDOption customizes a PIDController during construction.
type PIDOption func(*PIDController) error

// WithTickDuration sets the fixed tick duration in seconds.
func WithTickDuration(dt float64) PIDOption {
	return func(p *PIDController) error {
		return p.SetTickDuration(dt)
	}
}

// WithLowPassTicks enables low-pass filtering of the derivative term
// over the given number of ticks. 0 disables the filter.
func WithLowPassTicks(ticks uint) PIDOption {
	return func(p *PIDController) error {
		if ticks == 0 {
			p.lowPass = nil
			return nil
		}
		lowPass, err := NewMovingAverage(ticks)
		if err != nil {
			return err
		}
		p.lowPass = lowPass
		return nil
	}
}

// NewPIDController creates a controller for the given setpoint.
// Gains default to 1.0 and all ranges default to unbounded.
func NewPIDController(setpoint float64, opts ...PIDOption) (*PIDController, error) {
	p := &PIDController{
		Setpoint: setpoint,
		Kp:       1.0,
		Ki:       1.0,
		Kd:       1.0,
		PRange:   Unbounded(),
		IRange:   Unbounded(),
		DRange:   Unbounded(),
		ORange:   Unbounded(),
		ERange:   Unbounded(),
		dt:       DefaultTickDuration,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// TickDuration returns the fixed tick duration in seconds.
func (p *PIDController) TickDuration() float64 {
	return p.dt
}

// SetTickDuration changes the tick duration.
// The duration must be strictly positive.
func (p *PIDController) SetTickDuration(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("tick duration must be positive, got %v", dt)
	}
	p.dt = dt
	return nil
}

// SetInput advances the controller by one tick using the given
// measurement. State is updated in a fixed order: the previous error
// is remembered, the new error is computed, the gain-weighted error is
// accumulated into the clamped integral accumulator, and finally the
// low-pass filter (if any) is fed the just-recomputed raw derivative.
func (p *PIDController) SetInput(measure float64) {
	p.lastErr = p.err
	p.measure = measure
	p.err = p.Setpoint - measure
	p.sumErr = p.ERange.Clamp(p.sumErr + p.Ki*p.err*p.dt)
	if p.lowPass != nil {
		p.lowPass.SetInput(p.Derivative())
	}
}

// Update advances the controller by one tick and returns the new
// control output.
func (p *PIDController) Update(measure float64) float64 {
	p.SetInput(measure)
	return p.Output()
}

// Measure returns the last observed input.
func (p *PIDController) Measure() float64 {
	return p.measure
}

// Error returns the current error, i.e. setpoint - measure.
func (p *PIDController) Error() float64 {
	return p.err
}

// LastError returns the error of the previous tick.
func (p *PIDController) LastError() float64 {
	return p.lastErr
}

// SumError returns the raw integral accumulator.
func (p *PIDController) SumError() float64 {
	return p.sumErr
}

// Proportion returns the clamped proportional term.
func (p *PIDController) Proportion() float64 {
	return p.PRange.Clamp(p.Kp * p.err)
}

// Integral returns the clamped integral term.
func (p *PIDController) Integral() float64 {
	return p.IRange.Clamp(p.sumErr)
}

// Derivative returns the clamped raw derivative term. On the very
// first tick the previous error is 0, so this spikes to
// Kd * setpoint / dt. That transient is expected.
func (p *PIDController) Derivative() float64 {
	return p.DRange.Clamp(p.Kd * (p.err - p.lastErr) / p.dt)
}

// Output combines the three terms into the clamped control output.
// With a low-pass filter configured, its output replaces the raw
// derivative term.
func (p *PIDController) Output() float64 {
	derivative := p.Derivative()
	if p.lowPass != nil {
		derivative = p.lowPass.Output()
	}
	return p.ORange.Clamp(p.Proportion() + p.Integral() + derivative)
}
