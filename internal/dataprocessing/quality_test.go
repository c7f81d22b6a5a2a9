package dataprocessing

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epicli/pkg/contracts/domain"
)

func TestQualityGate_FutureDates(t *testing.T) {
	reference := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	gate := NewQualityGate(reference)

	table := domain.ObservationTable{
		row(t, "Ecuador", "2024-05-31", 10, 100, 1000000),
		row(t, "Ecuador", "2024-06-01", 10, 100, 1000000),
		row(t, "Ecuador", "2024-06-02", 10, 100, 1000000),
		row(t, "Ecuador", "2025-01-01", 10, 100, 1000000),
	}

	_, report := gate.Check(context.Background(), table)

	// The reference date itself is not "future"; only strictly later dates are.
	assert.Equal(t, 2, report.FutureDates)
}

func TestQualityGate_UnparsableDatesAreNotFutureButAreTracked(t *testing.T) {
	reference := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	gate := NewQualityGate(reference)

	unparsable := domain.Observation{
		Country:    "Ecuador",
		RawDate:    "not-a-date",
		NewCases:   10,
		Population: 1000000,
	}

	_, report := gate.Check(context.Background(), domain.ObservationTable{unparsable})

	// The zero-time sentinel compares before the reference date, so the row
	// escapes the future check, but the gate still surfaces it.
	assert.Zero(t, report.FutureDates)
	assert.Equal(t, 1, report.UnparsableDates)
	assert.Equal(t, 1, report.NullKeys) // the sentinel date counts as a missing key
}

func TestQualityGate_NullKeys(t *testing.T) {
	gate := NewQualityGate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	table := domain.ObservationTable{
		row(t, "Ecuador", "2024-01-01", 10, 100, 1000000),
		{Country: "", Date: date(t, "2024-01-02"), RawDate: "2024-01-02", NewCases: 10, Population: 1000000},
		{Country: "Ecuador", Date: date(t, "2024-01-03"), RawDate: "2024-01-03", NewCases: 10, Population: math.NaN()},
		{Country: "", NewCases: 10, Population: math.NaN()},
	}

	_, report := gate.Check(context.Background(), table)

	// Null keys sum across columns: row 2 misses country, row 3 misses
	// population, row 4 misses all three.
	assert.Equal(t, 5, report.NullKeys)
}

func TestQualityGate_DuplicateKeys(t *testing.T) {
	gate := NewQualityGate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	table := domain.ObservationTable{
		row(t, "Argentina", "2024-02-01", 50, 100, 45000000),
		row(t, "Argentina", "2024-02-01", 60, 200, 45000000),
		row(t, "Argentina", "2024-02-01", 70, 300, 45000000),
		row(t, "Ecuador", "2024-02-01", 80, 400, 1000000),
	}

	_, report := gate.Check(context.Background(), table)

	// Duplicates count rows beyond the first occurrence of each
	// (country, date) pair, regardless of the other column values.
	assert.Equal(t, 2, report.DuplicateKeys)
}

func TestQualityGate_PassesTableThroughUnchanged(t *testing.T) {
	gate := NewQualityGate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	table := domain.ObservationTable{
		row(t, "Ecuador", "2024-01-01", 10, 100, 1000000),
		row(t, "Ecuador", "2024-01-01", 10, 100, 1000000),
		row(t, "Peru", "2030-01-01", 20, 200, 33000000),
	}

	checked, report := gate.Check(context.Background(), table)

	// Validation is advisory: every row passes through, alerts or not.
	require.Len(t, checked, len(table))
	assert.Equal(t, table, checked)
	assert.Equal(t, 3, report.TotalRows)
	assert.Equal(t, 1, report.DuplicateKeys)
	assert.Equal(t, 1, report.FutureDates)
}

func TestQualityGate_EmptyTable(t *testing.T) {
	gate := NewQualityGate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	checked, report := gate.Check(context.Background(), domain.ObservationTable{})

	assert.Empty(t, checked)
	assert.Equal(t, QualityReport{}, report)
}
