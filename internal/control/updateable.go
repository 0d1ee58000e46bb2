package control

import (
	"errors"
	"fmt"
)

// ErrNotUpdateable is returned by Update when the given processor
// exposes an output but has no input setter.
var ErrNotUpdateable = errors.New("processor does not accept inputs")

// Processor is anything that can report a scalar output value.
type Processor interface {
	// Output returns the current output without modifying any state
	Output() float64
}

// Updateable is a Processor that additionally accepts scalar inputs.
// Feeding an input may mutate arbitrary internal state.
type Updateable interface {
	Processor
	SetInput(value float64)
}

// Update feeds the given input into the processor and returns the
// resulting output. Read-only processors cause an ErrNotUpdateable
// instead of silently ignoring the input.
func Update(p Processor, input float64) (float64, error) {
	u, ok := p.(Updateable)
	if !ok {
		return 0, fmt.Errorf("%w: %T", ErrNotUpdateable, p)
	}
	u.SetInput(input)
	return u.Output(), nil
}
