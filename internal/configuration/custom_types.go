package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// rangeBoundHookFunc returns a mapstructure decode hook that allows
// range bounds to be written as strings in the configuration,
// including the open-interval sentinels "-inf" and "+inf".
func rangeBoundHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t.Kind() != reflect.Float64 {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse '%s' as a number", s)
		}
		return value, nil
	}
}
