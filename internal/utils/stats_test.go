package utils

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-4

func TestAverage(t *testing.T) {
	assert.True(t, math.IsNaN(Average(nil)))
	assert.True(t, math.IsNaN(Average([]float64{})))
	assert.Equal(t, 5.0, Average([]float64{5.0}))
	assert.InDelta(t, 2.0, Average([]float64{1, 2, 3}), 1e-12)
	assert.InDelta(t, 10.015, Average([]float64{10.01, 10.02}), 1e-12)
}

func TestStandardUncertainty(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{"two values", []float64{2, 4}, 1.0},
		{"one to five", []float64{1, 2, 3, 4, 5}, 0.7071},
		{"constant", []float64{7, 7, 7, 7}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, StandardUncertainty(tt.in), tolerance)
		})
	}
}

func TestStandardUncertaintyNeedsTwoValues(t *testing.T) {
	assert.True(t, math.IsNaN(StandardUncertainty(nil)))
	for _, x := range []float64{0, 1, -3.25, 1e9} {
		assert.True(t, math.IsNaN(StandardUncertainty([]float64{x})), "single value %v", x)
	}
}

func TestRepeatability(t *testing.T) {
	assert.Equal(t, 0.0, Repeatability([]float64{1, 1, 1}))
	assert.InDelta(t, 1.5811, Repeatability([]float64{1, 2, 3, 4, 5}), tolerance)
	assert.InDelta(t, math.Sqrt(2), Repeatability([]float64{2, 4}), 1e-12)
	assert.True(t, math.IsNaN(Repeatability(nil)))
	assert.True(t, math.IsNaN(Repeatability([]float64{42})))
}

func TestStandardUncertaintyIsRepeatabilityOverRootN(t *testing.T) {
	in := []float64{10.12, 10.15, 10.11, 10.18, 10.14}
	assert.InDelta(t, Repeatability(in)/math.Sqrt(5), StandardUncertainty(in), 1e-12)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "3.0000", FormatValue(3))
	assert.Equal(t, "0.7071", FormatValue(1/math.Sqrt(2)))
	assert.Equal(t, "-0.1235", FormatValue(-0.12345678))
	assert.Equal(t, "NaN", FormatValue(math.NaN()))
	assert.Equal(t, "1.5811", FormatValue(1.58113883))
}

func TestFormatValueLargeMagnitudes(t *testing.T) {
	for _, v := range []float64{1e305, -1e305, math.MaxFloat64} {
		out := FormatValue(v)
		assert.NotContains(t, out, "Inf", "value %g", v)
		assert.Equal(t, fmt.Sprintf("%.4f", v), out)
		assert.True(t, strings.HasSuffix(out, ".0000"), out)
	}
}
