package util_test

import (
	"testing"

	"lintang/roadgraph/pkg/util"

	"github.com/stretchr/testify/assert"
)

func TestFormatPyFloat(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want string
	}{
		{"integer valued", 123, "123.0"},
		{"zero", 0, "0.0"},
		{"negative fraction", -10644926.307106934, "-10644926.307106934"},
		{"small", 0.00001, "1e-05"},
		{"large", 1e17, "1e+17"},
		{"plain fraction", 0.5, "0.5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, util.FormatPyFloat(tc.in))
		})
	}
}

func TestFormatPyTuple(t *testing.T) {
	assert.Equal(t, "(1.5, -2.0)", util.FormatPyTuple(1.5, -2))
}

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 3.14, util.RoundFloat(3.14159, 2))
	// degree centrality log precision
	assert.Equal(t, 0.33333, util.RoundFloat(1.0/3, 5))
	assert.Equal(t, 0.66667, util.RoundFloat(4.0/6, 5))
}
