package control

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrUnknownScheme is returned by Tune for tuning scheme names
// that have no table entry.
var ErrUnknownScheme = errors.New("unknown tuning scheme")

// Gains holds the gain recommendations produced by Tune.
// Coefficients the chosen scheme does not define are nil.
type Gains struct {
	Kp *float64 `json:"kp,omitempty"`
	Ti *float64 `json:"ti,omitempty"`
	Td *float64 `json:"td,omitempty"`
	Ki *float64 `json:"ki,omitempty"`
	Kd *float64 `json:"kd,omitempty"`
}

// na marks coefficients a tuning scheme does not define.
var na = math.NaN()

type tuningCoefficients struct {
	kp float64
	ti float64
	td float64
	ki float64
	kd float64
}

// Ziegler-Nichols coefficient table, including the Pessen integral
// rule ("pir") and the reduced-overshoot variants.
var tuningTable = map[string]tuningCoefficients{
	"p":              {kp: 0.5, ti: na, td: na, ki: na, kd: na},
	"pi":             {kp: 0.45, ti: 5.0 / 6.0, td: na, ki: 0.54, kd: na},
	"pd":             {kp: 0.8, ti: na, td: 1.0 / 8.0, ki: na, kd: 0.1},
	"pid":            {kp: 0.6, ti: 0.5, td: 1.0 / 8.0, ki: 1.2, kd: 0.075},
	"pir":            {kp: 0.7, ti: 0.4, td: 0.15, ki: 1.75, kd: 0.105},
	"some-overshoot": {kp: 1.0 / 3.0, ti: 0.5, td: 1.0 / 3.0, ki: 2.0 / 3.0, kd: 1.0 / 9.0},
	"no-overshoot":   {kp: 0.2, ti: 0.5, td: 1.0 / 3.0, ki: 0.4, kd: 1.0 / 15.0},
}

// TuningSchemes returns the names of all supported tuning schemes,
// sorted alphabetically.
func TuningSchemes() []string {
	schemes := make([]string, 0, len(tuningTable))
	for scheme := range tuningTable {
		schemes = append(schemes, scheme)
	}
	sort.Strings(schemes)
	return schemes
}

// Tune computes Ziegler-Nichols gain recommendations for the given
// scheme from the ultimate gain ku and the oscillation period tu of a
// sustained-oscillation tuning experiment. The scheme name is matched
// case-insensitively.
func Tune(scheme string, ku float64, tu float64) (Gains, error) {
	if ku <= 0 {
		return Gains{}, fmt.Errorf("ultimate gain must be positive, got %v", ku)
	}
	if tu <= 0 {
		return Gains{}, fmt.Errorf("oscillation period must be positive, got %v", tu)
	}

	coefficients, ok := tuningTable[strings.ToLower(scheme)]
	if !ok {
		return Gains{}, fmt.Errorf("%w: '%s', use one of: %s", ErrUnknownScheme, scheme, strings.Join(TuningSchemes(), " | "))
	}

	gains := Gains{}
	if !math.IsNaN(coefficients.kp) {
		kp := coefficients.kp * ku
		gains.Kp = &kp
	}
	if !math.IsNaN(coefficients.ti) {
		ti := coefficients.ti * tu
		gains.Ti = &ti
	}
	if !math.IsNaN(coefficients.td) {
		td := coefficients.td * tu
		gains.Td = &td
	}
	if !math.IsNaN(coefficients.ki) {
		ki := coefficients.ki * (ku / tu)
		gains.Ki = &ki
	}
	if !math.IsNaN(coefficients.kd) {
		kd := coefficients.kd * (ku * tu)
		gains.Kd = &kd
	}
	return gains, nil
}
