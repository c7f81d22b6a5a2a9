package metrics

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"epicli/pkg/contracts/domain"
)

func incidenceRecord(value float64) domain.IncidenceRecord {
	return domain.IncidenceRecord{
		Fecha:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Pais:         "Ecuador",
		Incidencia7d: value,
	}
}

func TestValidateIncidence(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		values      []float64
		wantMin     float64
		wantMax     float64
		wantDefined int
		wantInRange bool
	}{
		{
			name:        "all within bounds",
			values:      []float64{0, 12.5, 1999.9, 2000},
			wantMin:     0,
			wantMax:     2000,
			wantDefined: 4,
			wantInRange: true,
		},
		{
			name:        "max above bound",
			values:      []float64{10, 2500},
			wantMin:     10,
			wantMax:     2500,
			wantDefined: 2,
			wantInRange: false,
		},
		{
			name:        "min below bound",
			values:      []float64{-1, 5},
			wantMin:     -1,
			wantMax:     5,
			wantDefined: 2,
			wantInRange: false,
		},
		{
			name:        "nan values ignored for bounds",
			values:      []float64{math.NaN(), 50, math.NaN(), 70},
			wantMin:     50,
			wantMax:     70,
			wantDefined: 2,
			wantInRange: true,
		},
		{
			name:        "single value",
			values:      []float64{42},
			wantMin:     42,
			wantMax:     42,
			wantDefined: 1,
			wantInRange: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]domain.IncidenceRecord, len(tt.values))
			for i, v := range tt.values {
				records[i] = incidenceRecord(v)
			}

			report := ValidateIncidence(ctx, records)

			assert.Equal(t, tt.wantMin, report.Min)
			assert.Equal(t, tt.wantMax, report.Max)
			assert.Equal(t, tt.wantDefined, report.Defined)
			assert.Equal(t, tt.wantInRange, report.InRange)
		})
	}
}

func TestValidateIncidence_UndefinedBounds(t *testing.T) {
	ctx := context.Background()

	// Empty input and all-NaN input are boundary cases, not crashes: the
	// bounds stay undefined and the check reports not-in-range.
	for _, records := range [][]domain.IncidenceRecord{
		nil,
		{},
		{incidenceRecord(math.NaN()), incidenceRecord(math.NaN())},
	} {
		report := ValidateIncidence(ctx, records)
		assert.True(t, math.IsNaN(report.Min))
		assert.True(t, math.IsNaN(report.Max))
		assert.Zero(t, report.Defined)
		assert.False(t, report.InRange)
	}
}
