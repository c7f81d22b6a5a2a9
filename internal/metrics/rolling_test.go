package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollingMean(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		window     int
		minPeriods int
		want       []float64
	}{
		{
			name:       "partial windows allowed",
			values:     []float64{10, 20, 30},
			window:     7,
			minPeriods: 1,
			want:       []float64{10, 15, 20},
		},
		{
			name:       "window slides past oldest value",
			values:     []float64{1, 1, 1, 4},
			window:     3,
			minPeriods: 1,
			want:       []float64{1, 1, 1, 2},
		},
		{
			name:       "nan values are skipped",
			values:     []float64{10, math.NaN(), 30},
			window:     3,
			minPeriods: 1,
			want:       []float64{10, 10, 20},
		},
		{
			name:       "empty series",
			values:     []float64{},
			window:     7,
			minPeriods: 1,
			want:       []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rollingMean(tt.values, tt.window, tt.minPeriods)
			assertFloatSlice(t, tt.want, got)
		})
	}
}

func TestRollingSum(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		window     int
		minPeriods int
		want       []float64
	}{
		{
			name:       "full window required",
			values:     []float64{1, 2, 3, 4},
			window:     3,
			minPeriods: 3,
			want:       []float64{math.NaN(), math.NaN(), 6, 9},
		},
		{
			name:       "nan inside window breaks the minimum count",
			values:     []float64{1, math.NaN(), 3, 4, 5},
			window:     3,
			minPeriods: 3,
			want:       []float64{math.NaN(), math.NaN(), math.NaN(), math.NaN(), 12},
		},
		{
			name:       "partial sums when allowed",
			values:     []float64{1, 2, 3},
			window:     3,
			minPeriods: 1,
			want:       []float64{1, 3, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rollingSum(tt.values, tt.window, tt.minPeriods)
			assertFloatSlice(t, tt.want, got)
		})
	}
}

func TestShift(t *testing.T) {
	got := shift([]float64{1, 2, 3, 4, 5}, 2)
	assertFloatSlice(t, []float64{math.NaN(), math.NaN(), 1, 2, 3}, got)

	assertFloatSlice(t, []float64{math.NaN(), math.NaN()}, shift([]float64{7, 8}, 7))
	assertFloatSlice(t, []float64{}, shift([]float64{}, 7))
}

func assertFloatSlice(t *testing.T, want, got []float64) {
	t.Helper()
	assert.Len(t, got, len(want))
	for i := range want {
		assertSameFloat(t, want[i], got[i])
	}
}
