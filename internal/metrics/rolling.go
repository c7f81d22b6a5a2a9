// Package metrics derives the two time-windowed series from the cleaned
// observation table and range-checks the incidence output. All derivations
// are pure functions of their input: windows are computed independently per
// country, and no state leaks across countries or across calls.
package metrics

import "math"

// rollingAgg computes a trailing-window aggregate over a series. For each
// position the window covers up to `window` rows ending at that position;
// NaN values inside the window are skipped, and the result is NaN unless at
// least minPeriods non-NaN values are present.
func rollingAgg(values []float64, window, minPeriods int, mean bool) []float64 {
	out := make([]float64, len(values))

	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}

		sum := 0.0
		count := 0
		for j := start; j <= i; j++ {
			if math.IsNaN(values[j]) {
				continue
			}
			sum += values[j]
			count++
		}

		if count < minPeriods {
			out[i] = math.NaN()
			continue
		}
		if mean {
			out[i] = sum / float64(count)
		} else {
			out[i] = sum
		}
	}

	return out
}

// rollingMean is the trailing-window arithmetic mean.
func rollingMean(values []float64, window, minPeriods int) []float64 {
	return rollingAgg(values, window, minPeriods, true)
}

// rollingSum is the trailing-window sum.
func rollingSum(values []float64, window, minPeriods int) []float64 {
	return rollingAgg(values, window, minPeriods, false)
}

// shift lags a series by the given number of positions, filling the head
// with NaN.
func shift(values []float64, periods int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		if i < periods {
			out[i] = math.NaN()
			continue
		}
		out[i] = values[i-periods]
	}
	return out
}
