package engine

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	cases := []struct {
		name string
		in   any
		def  float64
		want float64
	}{
		{"nil", nil, 0, 0},
		{"float", 3.14, 0, 3.14},
		{"int", 7, 0, 7},
		{"plain string", "42.5", 0, 42.5},
		{"currency", "$1,234.56", 0, 1234.56},
		{"percent", "12%", 0, 12},
		{"spaces", "  99 ", 0, 99},
		{"empty string", "", 5, 5},
		{"none literal", "None", 5, 5},
		{"garbage", "n/a", 0, 0},
		{"negative passes through", "-3", 0, -3},
		{"json number", json.Number("250.5"), 0, 250.5},
		{"bad json number", json.Number("x"), 1, 1},
		{"unsupported type", struct{}{}, 2, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Coerce(tc.in, tc.def))
		})
	}
}

func TestCoerceNeverNaN(t *testing.T) {
	assert.Equal(t, 1.0, Coerce(math.NaN(), 1))
	assert.Equal(t, 1.0, Coerce(math.Inf(1), 1))
	assert.Equal(t, 1.0, Coerce("Inf", 1))
	assert.Equal(t, 1.0, Coerce("NaN", 1))
}

func TestCoerceInt(t *testing.T) {
	assert.Equal(t, 1234, CoerceInt("1,234", 0))
	assert.Equal(t, 9, CoerceInt(nil, 9))
}

func TestNonNegative(t *testing.T) {
	assert.Equal(t, 0.0, NonNegative(-5))
	assert.Equal(t, 5.0, NonNegative(5))
	assert.Equal(t, 0, NonNegativeInt(-5))
	assert.Equal(t, 5, NonNegativeInt(5))
}
