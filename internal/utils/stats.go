package utils

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// DisplayPrecision is the number of decimals shown for every reported value.
const DisplayPrecision = 4

// FormatValue renders val rounded to DisplayPrecision decimals. NaN is
// rendered as "NaN". Large finite values keep all their digits.
func FormatValue(val float64) string {
	return strconv.FormatFloat(val, 'f', DisplayPrecision, 64)
}

// Average returns the arithmetic mean of the measurements, or NaN when there are none.
func Average(measurements []float64) float64 {
	if len(measurements) == 0 {
		return math.NaN()
	}
	return stat.Mean(measurements, nil)
}

// Repeatability returns the sample standard deviation (denominator n-1).
// At least two measurements are needed; NaN is returned otherwise.
func Repeatability(measurements []float64) float64 {
	if len(measurements) < 2 {
		return math.NaN()
	}
	return stat.StdDev(measurements, nil)
}

// StandardUncertainty returns the standard uncertainty of the mean,
// the sample standard deviation divided by sqrt(n). NaN when n < 2.
func StandardUncertainty(measurements []float64) float64 {
	if len(measurements) < 2 {
		return math.NaN()
	}
	return stat.StdErr(stat.StdDev(measurements, nil), float64(len(measurements)))
}
