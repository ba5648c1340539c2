package bsonjson

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDouble(t *testing.T) {
	cases := []struct {
		d    float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-1, "-1"},
		{1.5, "1.5"},
		{100, "100"},
		{0.1, "0.1"},
		{123456.789, "123456.789"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{-1e21, "-1e+21"},
		{1e-6, "0.000001"},
		{1e-7, "1e-7"},
		{-1e-7, "-1e-7"},
	}
	for _, c := range cases {
		got := string(formatDouble(nil, c.d))
		assert.Equal(t, c.want, got, "formatDouble(%v)", c.d)
	}
}

func TestFormatDoubleNegativeZero(t *testing.T) {
	negZero := math.Copysign(0, -1)
	assert.Equal(t, "0", string(formatDouble(nil, negZero)))
}

func TestFormatDoublePanicsOnNonFinite(t *testing.T) {
	assert.Panics(t, func() { formatDouble(nil, math.Inf(1)) })
	assert.Panics(t, func() { formatDouble(nil, math.NaN()) })
}
