package control

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTuneProportionalOnly(t *testing.T) {
	// WHEN
	gains, err := Tune("P", 5, 0.01)

	// THEN
	assert.NoError(t, err)
	assert.NotNil(t, gains.Kp)
	assert.Greater(t, *gains.Kp, 0.0)
	assert.Nil(t, gains.Ti)
	assert.Nil(t, gains.Td)
	assert.Nil(t, gains.Ki)
	assert.Nil(t, gains.Kd)
}

func TestTuneFullPID(t *testing.T) {
	// GIVEN
	ku, tu := 5.0, 0.01

	// WHEN
	gains, err := Tune("PID", ku, tu)

	// THEN
	assert.NoError(t, err)
	assert.InDelta(t, 0.6*ku, *gains.Kp, 1e-9)
	assert.InDelta(t, 0.5*tu, *gains.Ti, 1e-9)
	assert.InDelta(t, 0.125*tu, *gains.Td, 1e-9)
	assert.InDelta(t, 1.2*ku/tu, *gains.Ki, 1e-9)
	assert.InDelta(t, 0.075*ku*tu, *gains.Kd, 1e-9)
}

func TestTuneCaseInsensitive(t *testing.T) {
	for _, scheme := range []string{"pid", "PID", "Pid", "pIr", "No-Overshoot"} {
		// WHEN
		gains, err := Tune(scheme, 5, 0.01)

		// THEN
		assert.NoError(t, err, "scheme: %s", scheme)
		assert.NotNil(t, gains.Kp, "scheme: %s", scheme)
	}
}

func TestTuneUnknownScheme(t *testing.T) {
	// WHEN
	_, err := Tune("pidd", 5, 0.01)

	// THEN
	assert.True(t, errors.Is(err, ErrUnknownScheme))
}

func TestTuneInvalidParameters(t *testing.T) {
	// WHEN
	_, err := Tune("pid", 0, 0.01)
	// THEN
	assert.Error(t, err)

	// WHEN
	_, err = Tune("pid", 5, 0)
	// THEN
	assert.Error(t, err)
}

func TestTuneAllSchemesProducePositiveGains(t *testing.T) {
	for _, scheme := range TuningSchemes() {
		// WHEN
		gains, err := Tune(scheme, 3, 2)

		// THEN
		assert.NoError(t, err, "scheme: %s", scheme)
		for name, value := range map[string]*float64{
			"kp": gains.Kp,
			"ti": gains.Ti,
			"td": gains.Td,
			"ki": gains.Ki,
			"kd": gains.Kd,
		} {
			if value != nil {
				assert.Greater(t, *value, 0.0, "scheme: %s, gain: %s", scheme, name)
			}
		}
	}
}
