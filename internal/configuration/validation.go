package configuration

import (
	"errors"
	"fmt"

	"github.com/controlkit/pidloop/internal/ui"
	"github.com/looplab/tarjan"
	"golang.org/x/exp/slices"
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	err := validateFilters(config)
	if err != nil {
		return err
	}
	return validateLoops(config)
}

func validateLoops(config *Configuration) error {
	if len(config.Loops) <= 0 {
		return errors.New("no loop configurations found")
	}

	var seenIds []string
	for _, loopConfig := range config.Loops {
		if slices.Contains(seenIds, loopConfig.ID) {
			return fmt.Errorf("duplicate loop id: %s", loopConfig.ID)
		}
		seenIds = append(seenIds, loopConfig.ID)

		// a tick of 0 selects the controller default
		if loopConfig.Tick < 0 {
			return fmt.Errorf("loop %s: tick duration must not be negative", loopConfig.ID)
		}

		if loopConfig.Kp == 0 && loopConfig.Ki == 0 && loopConfig.Kd == 0 {
			return fmt.Errorf("loop %s: all PID constants are zero", loopConfig.ID)
		}

		ranges := map[string]*RangeConfig{
			"proportionalRange": loopConfig.ProportionalRange,
			"integralRange":     loopConfig.IntegralRange,
			"derivativeRange":   loopConfig.DerivativeRange,
			"outputRange":       loopConfig.OutputRange,
			"accumulatorRange":  loopConfig.AccumulatorRange,
		}
		for name, rangeConfig := range ranges {
			if err := validateRange(loopConfig.ID, name, rangeConfig); err != nil {
				return err
			}
		}

		for _, filterList := range [][]string{loopConfig.MeasureFilters, loopConfig.OutputFilters} {
			for _, filterId := range filterList {
				if !filterIdExists(filterId, config) {
					return fmt.Errorf("loop %s: no filter definition with id '%s' found", loopConfig.ID, filterId)
				}
			}
		}
	}

	return nil
}

func validateRange(loopId string, name string, rangeConfig *RangeConfig) error {
	if rangeConfig == nil || rangeConfig.Min == nil || rangeConfig.Max == nil {
		return nil
	}
	if *rangeConfig.Min > *rangeConfig.Max {
		return fmt.Errorf("loop %s: %s: min %v is above max %v", loopId, name, *rangeConfig.Min, *rangeConfig.Max)
	}
	return nil
}

func validateFilters(config *Configuration) error {
	graph := make(map[interface{}][]interface{})

	var seenIds []string
	for _, filterConfig := range config.Filters {
		if slices.Contains(seenIds, filterConfig.ID) {
			return fmt.Errorf("duplicate filter id: %s", filterConfig.ID)
		}
		seenIds = append(seenIds, filterConfig.ID)

		subConfigs := 0
		if filterConfig.MovingAverage != nil {
			subConfigs++
		}
		if filterConfig.RateLimiter != nil {
			subConfigs++
		}
		if filterConfig.Chain != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("filter %s: only one filter type can be used per filter definition block", filterConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("filter %s: sub-configuration for filter is missing, use one of: movingAverage | rateLimiter | chain", filterConfig.ID)
		}

		if !isFilterConfigInUse(filterConfig, config) {
			ui.Warning("Unused filter configuration: %s", filterConfig.ID)
		}

		if filterConfig.MovingAverage != nil {
			if filterConfig.MovingAverage.Window <= 0 {
				return fmt.Errorf("filter %s: window must be > 0", filterConfig.ID)
			}
		}

		if filterConfig.RateLimiter != nil {
			if filterConfig.RateLimiter.MaxStep < 0 {
				return fmt.Errorf("filter %s: maxStep must be >= 0", filterConfig.ID)
			}
		}

		if filterConfig.Chain != nil {
			if len(filterConfig.Chain.Filters) <= 0 {
				return fmt.Errorf("filter %s: chain contains no filters", filterConfig.ID)
			}
			var connections []interface{}
			for _, filterId := range filterConfig.Chain.Filters {
				if filterId == filterConfig.ID {
					return fmt.Errorf("filter %s: a filter cannot reference itself", filterConfig.ID)
				}
				if !filterIdExists(filterId, config) {
					return fmt.Errorf("filter %s: no filter definition with id '%s' found", filterConfig.ID, filterId)
				}
				connections = append(connections, filterId)
			}
			graph[filterConfig.ID] = connections
		}
	}

	return validateNoCycles(graph)
}

func filterIdExists(filterId string, config *Configuration) bool {
	for _, filter := range config.Filters {
		if filter.ID == filterId {
			return true
		}
	}

	return false
}

func isFilterConfigInUse(config FilterConfig, configuration *Configuration) bool {
	for _, filterConfig := range configuration.Filters {
		if filterConfig.Chain != nil {
			if slices.Contains(filterConfig.Chain.Filters, config.ID) {
				return true
			}
		}
	}

	for _, loopConfig := range configuration.Loops {
		if slices.Contains(loopConfig.MeasureFilters, config.ID) {
			return true
		}
		if slices.Contains(loopConfig.OutputFilters, config.ID) {
			return true
		}
	}

	return false
}

func validateNoCycles(graph map[interface{}][]interface{}) error {
	output := tarjan.Connections(graph)
	for _, items := range output {
		if len(items) > 1 {
			return fmt.Errorf("you have created a filter dependency cycle: %v", items)
		}
	}
	return nil
}
