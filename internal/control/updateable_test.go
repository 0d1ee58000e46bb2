package control

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// readOnlyProcessor has an output but no input setter.
type readOnlyProcessor struct {
	value float64
}

func (p *readOnlyProcessor) Output() float64 {
	return p.value
}

func TestUpdateMovingAverage(t *testing.T) {
	// GIVEN
	avg, _ := NewMovingAverage(4)

	// WHEN
	result, err := Update(avg, 8)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 8.0, result)
}

func TestUpdateRateLimiter(t *testing.T) {
	// GIVEN
	limiter, _ := NewRateLimiter(1)

	// WHEN
	result, err := Update(limiter, 10)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1.0, result)
}

func TestUpdatePIDController(t *testing.T) {
	// GIVEN
	pid, _ := NewPIDController(10, WithTickDuration(1))
	pid.Ki = 0
	pid.Kd = 0

	// WHEN
	result, err := Update(pid, 4)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 6.0, result)
}

func TestUpdateReadOnlyProcessorFails(t *testing.T) {
	// GIVEN
	p := &readOnlyProcessor{value: 42}

	// WHEN
	_, err := Update(p, 1)

	// THEN
	assert.True(t, errors.Is(err, ErrNotUpdateable))
}
