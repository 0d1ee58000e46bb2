package simulation

import "github.com/controlkit/pidloop/internal/configuration"

// Plant converts a control output into the next process measurement.
// The control core never calls plants directly, the runner wires the
// loop between controller and plant.
type Plant func(output float64) float64

// NewFirstOrderPlant returns a first-order lag process: each tick the
// process value moves toward gain*output, slowed down by the
// configured time constant (in ticks).
func NewFirstOrderPlant(config configuration.PlantConfig) Plant {
	value := config.Initial
	timeConstant := config.TimeConstant
	if timeConstant < 1 {
		timeConstant = 1
	}
	return func(output float64) float64 {
		target := config.Gain * output
		value += (target - value) / timeConstant
		return value
	}
}

// NewStaticPlant returns a process that ignores the control output
// and always reports the same measurement.
func NewStaticPlant(value float64) Plant {
	return func(output float64) float64 {
		return value
	}
}
