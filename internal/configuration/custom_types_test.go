package configuration

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func decodeBound(t *testing.T, data interface{}) interface{} {
	hook := rangeBoundHookFunc()
	result, err := hook(reflect.TypeOf(data), reflect.TypeOf(float64(0)), data)
	assert.NoError(t, err)
	return result
}

func TestRangeBoundHookNumberString(t *testing.T) {
	// WHEN
	result := decodeBound(t, "0.5")

	// THEN
	assert.Equal(t, 0.5, result)
}

func TestRangeBoundHookInfinities(t *testing.T) {
	// WHEN
	positive := decodeBound(t, "+inf")
	negative := decodeBound(t, "-inf")

	// THEN
	assert.Equal(t, math.Inf(1), positive)
	assert.Equal(t, math.Inf(-1), negative)
}

func TestRangeBoundHookPassesFloatsThrough(t *testing.T) {
	// WHEN
	result := decodeBound(t, 42.0)

	// THEN
	assert.Equal(t, 42.0, result)
}

func TestRangeBoundHookInvalidString(t *testing.T) {
	// GIVEN
	hook := rangeBoundHookFunc()

	// WHEN
	_, err := hook(reflect.TypeOf(""), reflect.TypeOf(float64(0)), "not-a-number")

	// THEN
	assert.Error(t, err)
}

func TestRangeBoundHookIgnoresOtherTargets(t *testing.T) {
	// GIVEN
	hook := rangeBoundHookFunc()

	// WHEN
	result, err := hook(reflect.TypeOf(""), reflect.TypeOf(""), "text")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "text", result)
}
