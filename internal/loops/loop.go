package loops

import (
	"math"
	"sync"

	"github.com/asecurityteam/rolling"
	"github.com/controlkit/pidloop/internal/configuration"
	"github.com/controlkit/pidloop/internal/control"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// LoopMap holds all configured loops by id.
var LoopMap = cmap.New[*Loop]()

// Snapshot is the externally visible state of a loop after a tick.
type Snapshot struct {
	ID         string  `json:"id"`
	Ticks      uint64  `json:"ticks"`
	Setpoint   float64 `json:"setpoint"`
	Measure    float64 `json:"measure"`
	Error      float64 `json:"error"`
	Proportion float64 `json:"proportion"`
	Integral   float64 `json:"integral"`
	Derivative float64 `json:"derivative"`
	Output     float64 `json:"output"`
}

// Loop drives one PID controller: the measurement passes through the
// configured measure filters, the controller computes the control
// output, and the output filters shape the result. Ticks must come
// from a single goroutine; snapshots may be read from anywhere.
type Loop struct {
	Config configuration.LoopConfig

	controller     *control.PIDController
	measureFilters []control.Updateable
	outputFilters  []control.Updateable

	// rolling window of recent outputs for reporting
	history     *rolling.PointPolicy
	historySize int

	snapshotMu sync.Mutex
	snapshot   Snapshot
}

// NewLoop assembles a loop from its configuration. Filter instances
// are created per loop, never shared.
func NewLoop(
	config configuration.LoopConfig,
	filterConfigs []configuration.FilterConfig,
	historySize int,
) (*Loop, error) {
	opts := []control.PIDOption{
		control.WithLowPassTicks(config.LowPassTicks),
	}
	if config.Tick > 0 {
		opts = append(opts, control.WithTickDuration(config.Tick))
	}

	controller, err := control.NewPIDController(config.Setpoint, opts...)
	if err != nil {
		return nil, err
	}
	controller.Kp = config.Kp
	controller.Ki = config.Ki
	controller.Kd = config.Kd

	if controller.PRange, err = rangeFromConfig(config.ProportionalRange); err != nil {
		return nil, err
	}
	if controller.IRange, err = rangeFromConfig(config.IntegralRange); err != nil {
		return nil, err
	}
	if controller.DRange, err = rangeFromConfig(config.DerivativeRange); err != nil {
		return nil, err
	}
	if controller.ORange, err = rangeFromConfig(config.OutputRange); err != nil {
		return nil, err
	}
	if controller.ERange, err = rangeFromConfig(config.AccumulatorRange); err != nil {
		return nil, err
	}

	measureFilters, err := filtersFromIds(config.MeasureFilters, filterConfigs)
	if err != nil {
		return nil, err
	}
	outputFilters, err := filtersFromIds(config.OutputFilters, filterConfigs)
	if err != nil {
		return nil, err
	}

	if historySize <= 0 {
		historySize = 1
	}

	return &Loop{
		Config:         config,
		controller:     controller,
		measureFilters: measureFilters,
		outputFilters:  outputFilters,
		history:        rolling.NewPointPolicy(rolling.NewWindow(historySize)),
		historySize:    historySize,
	}, nil
}

func rangeFromConfig(config *configuration.RangeConfig) (control.Range, error) {
	if config == nil {
		return control.Unbounded(), nil
	}
	lo := math.Inf(-1)
	hi := math.Inf(1)
	if config.Min != nil {
		lo = *config.Min
	}
	if config.Max != nil {
		hi = *config.Max
	}
	return control.NewRange(lo, hi)
}

func filtersFromIds(filterIds []string, configs []configuration.FilterConfig) ([]control.Updateable, error) {
	filters := make([]control.Updateable, 0, len(filterIds))
	for _, filterId := range filterIds {
		filter, err := NewFilterById(filterId, configs)
		if err != nil {
			return nil, err
		}
		filters = append(filters, filter)
	}
	return filters, nil
}

// GetId returns the loop id.
func (l *Loop) GetId() string {
	return l.Config.ID
}

// Controller exposes the underlying PID controller.
func (l *Loop) Controller() *control.PIDController {
	return l.controller
}

// Tick advances the loop by one update cycle with the given raw
// measurement and returns the shaped control output.
func (l *Loop) Tick(measure float64) float64 {
	for _, filter := range l.measureFilters {
		filter.SetInput(measure)
		measure = filter.Output()
	}

	output := l.controller.Update(measure)

	for _, filter := range l.outputFilters {
		filter.SetInput(output)
		output = filter.Output()
	}

	snapshot := Snapshot{
		ID:         l.Config.ID,
		Setpoint:   l.controller.Setpoint,
		Measure:    l.controller.Measure(),
		Error:      l.controller.Error(),
		Proportion: l.controller.Proportion(),
		Integral:   l.controller.Integral(),
		Derivative: l.controller.Derivative(),
		Output:     output,
	}

	l.snapshotMu.Lock()
	snapshot.Ticks = l.snapshot.Ticks + 1
	if snapshot.Ticks == 1 {
		// seed the window so early reductions aren't skewed by
		// missing samples
		fillWindow(l.history, l.historySize, output)
	} else {
		l.history.Append(output)
	}
	l.snapshot = snapshot
	l.snapshotMu.Unlock()

	return output
}

// Snapshot returns the state of the loop as of the last tick.
func (l *Loop) Snapshot() Snapshot {
	l.snapshotMu.Lock()
	defer l.snapshotMu.Unlock()
	return l.snapshot
}

// OutputAvg returns the mean output over the history window.
func (l *Loop) OutputAvg() float64 {
	return l.history.Reduce(rolling.Avg)
}

// OutputMin returns the smallest output in the history window.
func (l *Loop) OutputMin() float64 {
	return l.history.Reduce(rolling.Min)
}

// OutputMax returns the largest output in the history window.
func (l *Loop) OutputMax() float64 {
	return l.history.Reduce(rolling.Max)
}

func fillWindow(window *rolling.PointPolicy, size int, value float64) {
	for i := 0; i < size; i++ {
		window.Append(value)
	}
}
