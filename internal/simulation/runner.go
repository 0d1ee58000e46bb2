package simulation

import (
	"fmt"

	"github.com/controlkit/pidloop/internal/loops"
)

// Result holds the recorded series of one simulation run.
type Result struct {
	Measurements []float64
	Outputs      []float64
	Final        loops.Snapshot
}

// Runner drives a single loop against a plant, one synchronous tick
// at a time. The runner owns loop timing, the loop owns the controller.
type Runner struct {
	loop  *loops.Loop
	plant Plant
}

func NewRunner(loop *loops.Loop, plant Plant) (*Runner, error) {
	if loop == nil {
		return nil, fmt.Errorf("no loop given")
	}
	if plant == nil {
		return nil, fmt.Errorf("no plant given")
	}
	return &Runner{
		loop:  loop,
		plant: plant,
	}, nil
}

// Run executes the given number of ticks: apply the previous output
// to the plant, feed the resulting measurement to the loop, repeat.
func (r *Runner) Run(ticks int) Result {
	result := Result{
		Measurements: make([]float64, 0, ticks),
		Outputs:      make([]float64, 0, ticks),
	}

	output := 0.0
	for i := 0; i < ticks; i++ {
		measure := r.plant(output)
		output = r.loop.Tick(measure)

		result.Measurements = append(result.Measurements, measure)
		result.Outputs = append(result.Outputs, output)
	}

	result.Final = r.loop.Snapshot()
	return result
}
