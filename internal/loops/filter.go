package loops

import (
	"fmt"

	"github.com/controlkit/pidloop/internal/configuration"
	"github.com/controlkit/pidloop/internal/control"
)

// chainFilter applies a list of filters in declaration order,
// feeding each stage the output of the previous one.
type chainFilter struct {
	stages []control.Updateable
	value  float64
}

func (c *chainFilter) SetInput(value float64) {
	for _, stage := range c.stages {
		stage.SetInput(value)
		value = stage.Output()
	}
	c.value = value
}

func (c *chainFilter) Output() float64 {
	return c.value
}

// NewFilter creates a filter instance from the given configuration.
// Filters are stateful, so every caller gets its own instance.
func NewFilter(config configuration.FilterConfig, configs []configuration.FilterConfig) (control.Updateable, error) {
	if config.MovingAverage != nil {
		return control.NewMovingAverage(config.MovingAverage.Window)
	}

	if config.RateLimiter != nil {
		return control.NewRateLimiter(config.RateLimiter.MaxStep)
	}

	if config.Chain != nil {
		stages := make([]control.Updateable, 0, len(config.Chain.Filters))
		for _, filterId := range config.Chain.Filters {
			stage, err := NewFilterById(filterId, configs)
			if err != nil {
				return nil, err
			}
			stages = append(stages, stage)
		}
		return &chainFilter{stages: stages}, nil
	}

	return nil, fmt.Errorf("no matching filter type for filter: %s", config.ID)
}

// NewFilterById resolves a filter id against the given configurations.
func NewFilterById(filterId string, configs []configuration.FilterConfig) (control.Updateable, error) {
	for _, config := range configs {
		if config.ID == filterId {
			return NewFilter(config, configs)
		}
	}
	return nil, fmt.Errorf("no filter definition with id '%s' found", filterId)
}
