package control

import "fmt"

// MovingAverage computes the running mean over the last "capacity"
// inputs using a fixed-size circular buffer.
type MovingAverage struct {
	buffer []float64
	// total number of inputs ever received, only increases
	count uint64
}

// NewMovingAverage creates a moving average over the given number of inputs.
func NewMovingAverage(capacity uint) (*MovingAverage, error) {
	if capacity == 0 {
		return nil, fmt.Errorf("invalid moving average capacity: %d", capacity)
	}
	return &MovingAverage{
		buffer: make([]float64, capacity),
	}, nil
}

// SetInput stores the given value, overwriting the oldest one
// once the buffer is full.
func (m *MovingAverage) SetInput(value float64) {
	m.buffer[m.count%uint64(len(m.buffer))] = value
	m.count++
}

// Output returns the mean of the values received so far, at most
// the last "capacity" of them. Returns 0 before the first input.
func (m *MovingAverage) Output() float64 {
	if m.count == 0 {
		return 0
	}
	n := m.count
	if capacity := uint64(len(m.buffer)); n > capacity {
		n = capacity
	}
	// slots beyond count are still zero-initialized, so summing the
	// whole buffer and dividing by n yields the mean of the n
	// values actually received
	sum := 0.0
	for _, value := range m.buffer {
		sum += value
	}
	return sum / float64(n)
}

// Update feeds value into the filter and returns the new mean.
func (m *MovingAverage) Update(value float64) float64 {
	m.SetInput(value)
	return m.Output()
}
