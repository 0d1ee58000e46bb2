package configuration

// RangeConfig describes one clamping interval. A missing side
// leaves that side unbounded.
type RangeConfig struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

type LoopConfig struct {
	ID string `json:"id"`

	// Setpoint is the target value for the measurement.
	Setpoint float64 `json:"setpoint"`
	// Tick is the fixed tick duration in seconds.
	// 0 selects the controller default.
	Tick float64 `json:"tick"`

	Kp float64 `json:"kp"`
	Ki float64 `json:"ki"`
	Kd float64 `json:"kd"`

	// LowPassTicks smooths the derivative term over the given
	// number of ticks, 0 disables the filter.
	LowPassTicks uint `json:"lowPassTicks"`

	ProportionalRange *RangeConfig `json:"proportionalRange,omitempty"`
	IntegralRange     *RangeConfig `json:"integralRange,omitempty"`
	DerivativeRange   *RangeConfig `json:"derivativeRange,omitempty"`
	OutputRange       *RangeConfig `json:"outputRange,omitempty"`
	// AccumulatorRange clamps the raw integral accumulator on write
	// (anti-windup), independently of IntegralRange.
	AccumulatorRange *RangeConfig `json:"accumulatorRange,omitempty"`

	// MeasureFilters are applied to the measurement, in order,
	// before it reaches the controller.
	MeasureFilters []string `json:"measureFilters,omitempty"`
	// OutputFilters are applied to the controller output, in order.
	OutputFilters []string `json:"outputFilters,omitempty"`
}

type FilterConfig struct {
	ID string `json:"id"`

	MovingAverage *MovingAverageFilterConfig `json:"movingAverage,omitempty"`
	RateLimiter   *RateLimiterFilterConfig   `json:"rateLimiter,omitempty"`
	Chain         *ChainFilterConfig         `json:"chain,omitempty"`
}

type MovingAverageFilterConfig struct {
	Window uint `json:"window"`
}

type RateLimiterFilterConfig struct {
	MaxStep float64 `json:"maxStep"`
}

// ChainFilterConfig composes other filters by id, applied in order.
type ChainFilterConfig struct {
	Filters []string `json:"filters"`
}

type SimulationConfig struct {
	// Ticks is the number of update cycles an offline simulation runs.
	Ticks int `json:"ticks"`
	// HistoryWindowSize is the size of the rolling window of recent
	// loop outputs kept for reporting.
	HistoryWindowSize int         `json:"historyWindowSize"`
	Plant             PlantConfig `json:"plant"`
}

// PlantConfig describes the simulated first-order process the
// controller output is applied to.
type PlantConfig struct {
	// Gain scales the control output's effect on the process value.
	Gain float64 `json:"gain"`
	// TimeConstant is the lag of the process in ticks.
	TimeConstant float64 `json:"timeConstant"`
	// Initial is the process value before the first tick.
	Initial float64 `json:"initial"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

type ApiConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}
