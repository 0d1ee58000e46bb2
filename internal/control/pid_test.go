package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPIDControllerDefaults(t *testing.T) {
	// WHEN
	pid, err := NewPIDController(1000)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1000.0, pid.Setpoint)
	assert.Equal(t, 1.0, pid.Kp)
	assert.Equal(t, 1.0, pid.Ki)
	assert.Equal(t, 1.0, pid.Kd)
	assert.Equal(t, DefaultTickDuration, pid.TickDuration())
	assert.Equal(t, 0.0, pid.Error())
	assert.Equal(t, 0.0, pid.LastError())
	assert.Equal(t, 0.0, pid.SumError())
}

func TestNewPIDControllerInvalidTickDuration(t *testing.T) {
	// WHEN
	_, err := NewPIDController(100, WithTickDuration(0))

	// THEN
	assert.Error(t, err)

	// WHEN
	_, err = NewPIDController(100, WithTickDuration(-0.5))

	// THEN
	assert.Error(t, err)
}

func TestPIDControllerSetTickDuration(t *testing.T) {
	// GIVEN
	pid, _ := NewPIDController(100)

	// WHEN
	err := pid.SetTickDuration(0.5)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 0.5, pid.TickDuration())

	// WHEN
	err = pid.SetTickDuration(0)

	// THEN
	assert.Error(t, err)
	assert.Equal(t, 0.5, pid.TickDuration())
}

func TestPIDControllerProportion(t *testing.T) {
	// GIVEN
	pid, _ := NewPIDController(1000)
	pid.Kp = 1.0

	// WHEN
	pid.SetInput(0)
	// THEN
	assert.Equal(t, 1000.0, pid.Proportion())

	// WHEN
	pid.SetInput(1)
	// THEN
	assert.Equal(t, 999.0, pid.Proportion())

	// WHEN
	pid.SetInput(1001)
	// THEN
	assert.Equal(t, -1.0, pid.Proportion())
}

func TestPIDControllerIntegral(t *testing.T) {
	// GIVEN
	pid, _ := NewPIDController(1000, WithTickDuration(0.001))
	pid.Ki = 1.0

	// WHEN
	pid.SetInput(0)
	// THEN: 1.0 * 1000 * 0.001
	assert.InDelta(t, 1.0, pid.Integral(), 1e-9)

	// WHEN
	pid.SetInput(999)
	// THEN
	assert.InDelta(t, 1.001, pid.Integral(), 1e-9)
}

func TestPIDControllerDerivative(t *testing.T) {
	// GIVEN
	pid, _ := NewPIDController(1000, WithTickDuration(0.001))
	pid.Kd = 1.0

	// WHEN: first tick, last error is still 0
	pid.SetInput(0)
	// THEN
	assert.InDelta(t, 1_000_000.0, pid.Derivative(), 1e-6)

	// WHEN
	pid.SetInput(500)
	// THEN
	assert.InDelta(t, -500_000.0, pid.Derivative(), 1e-6)
}

func TestPIDControllerErrorTracking(t *testing.T) {
	// GIVEN
	pid, _ := NewPIDController(10)

	// WHEN
	pid.SetInput(4)

	// THEN
	assert.Equal(t, 4.0, pid.Measure())
	assert.Equal(t, 6.0, pid.Error())
	assert.Equal(t, 0.0, pid.LastError())

	// WHEN
	pid.SetInput(8)

	// THEN
	assert.Equal(t, 2.0, pid.Error())
	assert.Equal(t, 6.0, pid.LastError())
}

func TestPIDControllerOutputClamp(t *testing.T) {
	// GIVEN
	pid, _ := NewPIDController(1000)
	pid.ORange, _ = NewRange(0, 1)

	measurements := []float64{0, 1, 5000, -5000, 1000, 999}
	for _, measure := range measurements {
		// WHEN
		output := pid.Update(measure)

		// THEN
		assert.GreaterOrEqual(t, output, 0.0, "measure: %v", measure)
		assert.LessOrEqual(t, output, 1.0, "measure: %v", measure)
	}
}

func TestPIDControllerAccumulatorClamp(t *testing.T) {
	// GIVEN
	pid, _ := NewPIDController(100000)
	pid.Ki = 50.0
	pid.ERange, _ = NewRange(999, 1000)

	for i := 0; i < 20; i++ {
		// WHEN: sustained large positive error
		pid.SetInput(0)

		// THEN: accumulator stays pinned regardless of error magnitude
		assert.GreaterOrEqual(t, pid.SumError(), 999.0, "tick: %d", i)
		assert.LessOrEqual(t, pid.SumError(), 1000.0, "tick: %d", i)
	}

	// WHEN: sustained large negative error
	for i := 0; i < 20; i++ {
		pid.SetInput(1e9)

		// THEN
		assert.GreaterOrEqual(t, pid.SumError(), 999.0, "tick: %d", i)
		assert.LessOrEqual(t, pid.SumError(), 1000.0, "tick: %d", i)
	}
}

func TestPIDControllerNoZeroCrossingReset(t *testing.T) {
	// GIVEN
	pid, _ := NewPIDController(0, WithTickDuration(1))
	pid.Ki = 1.0

	// WHEN: error flips sign between ticks
	pid.SetInput(-10)
	accumulated := pid.SumError()
	pid.SetInput(10)

	// THEN: the accumulator keeps integrating instead of resetting
	assert.Equal(t, accumulated-10.0, pid.SumError())
}

func TestPIDControllerLowPassSmoothsDerivative(t *testing.T) {
	// GIVEN
	pid, _ := NewPIDController(100, WithTickDuration(1), WithLowPassTicks(2))
	pid.Kp = 0
	pid.Ki = 0
	pid.Kd = 1.0

	// WHEN: first tick, raw derivative is (100 - 0) / 1 = 100
	output := pid.Update(0)
	// THEN: filter holds a single sample
	assert.Equal(t, 100.0, output)

	// WHEN: second tick, raw derivative is (50 - 100) / 1 = -50
	output = pid.Update(50)
	// THEN: mean of [100, -50]
	assert.Equal(t, 25.0, output)

	// WHEN: third tick, raw derivative is (40 - 50) / 1 = -10,
	// rolling the 100 out of the window
	output = pid.Update(60)
	// THEN: mean of [-50, -10]
	assert.Equal(t, -30.0, output)
}

func TestPIDControllerPerTermClamps(t *testing.T) {
	// GIVEN
	pid, _ := NewPIDController(1000, WithTickDuration(0.001))
	pid.PRange, _ = NewRange(-10, 10)
	pid.DRange, _ = NewRange(-20, 20)
	pid.IRange, _ = NewRange(-0.5, 0.5)

	// WHEN
	pid.SetInput(0)

	// THEN
	assert.Equal(t, 10.0, pid.Proportion())
	assert.Equal(t, 20.0, pid.Derivative())
	assert.Equal(t, 0.5, pid.Integral())
	// the raw accumulator is unaffected by the read-side clamp
	assert.InDelta(t, 1.0, pid.SumError(), 1e-9)
}
