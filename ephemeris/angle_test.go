package ephemeris

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{-30, 330},
		{725, 5},
		{-725, 355},
		{359.5, 359.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Normalize(tt.in), 1e-9, "Normalize(%v)", tt.in)
	}
}

func TestNormalizeRangeAndPeriodicity(t *testing.T) {
	for x := -1000.0; x <= 1000.0; x += 0.37 {
		n := Normalize(x)
		assert.True(t, n >= 0 && n < 360, "Normalize(%v) = %v", x, n)
		for _, k := range []float64{-3, -1, 1, 2} {
			assert.InDelta(t, n, Normalize(x+360*k), 1e-9)
		}
	}
}

func TestDegreeRadianConversion(t *testing.T) {
	assert.InDelta(t, math.Pi, ToRadians(180), 1e-15)
	assert.InDelta(t, 90, ToDegrees(math.Pi/2), 1e-12)
	assert.InDelta(t, 42.5, ToDegrees(ToRadians(42.5)), 1e-12)
}
