package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMovingAverageZeroCapacity(t *testing.T) {
	// WHEN
	_, err := NewMovingAverage(0)

	// THEN
	assert.Error(t, err)
}

func TestMovingAverageEmpty(t *testing.T) {
	// GIVEN
	avg, _ := NewMovingAverage(5)

	// WHEN
	result := avg.Output()

	// THEN
	assert.Equal(t, 0.0, result)
}

func TestMovingAveragePartiallyFilled(t *testing.T) {
	// GIVEN
	avg, _ := NewMovingAverage(5)

	// WHEN
	avg.SetInput(2)
	avg.SetInput(4)

	// THEN: divisor is the number of inputs, not the capacity
	assert.Equal(t, 3.0, avg.Output())
}

func TestMovingAverageFullBuffer(t *testing.T) {
	// GIVEN
	avg, _ := NewMovingAverage(3)

	// WHEN
	for _, value := range []float64{1, 2, 3} {
		avg.SetInput(value)
	}

	// THEN
	assert.Equal(t, 2.0, avg.Output())
}

func TestMovingAverageRollsOffOldest(t *testing.T) {
	// GIVEN
	avg, _ := NewMovingAverage(3)
	for _, value := range []float64{1, 2, 3} {
		avg.SetInput(value)
	}

	// WHEN: 10 overwrites the 1
	avg.SetInput(10)

	// THEN
	assert.Equal(t, 5.0, avg.Output())
}

func TestMovingAverageUpdate(t *testing.T) {
	// GIVEN
	avg, _ := NewMovingAverage(2)

	// WHEN
	first := avg.Update(4)
	second := avg.Update(8)
	third := avg.Update(16)

	// THEN
	assert.Equal(t, 4.0, first)
	assert.Equal(t, 6.0, second)
	assert.Equal(t, 12.0, third)
}
