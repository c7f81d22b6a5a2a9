// Package dataprocessing implements the pre-metric stages of the pipeline:
// the advisory quality gate and the cleaner that prepares observations for
// metric computation.
package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"epicli/internal/infrastructure"
	"epicli/pkg/contracts/domain"
)

// QualityReport summarizes the advisory checks for one gate pass.
type QualityReport struct {
	TotalRows       int `json:"total_rows"`
	FutureDates     int `json:"future_dates"`
	NullKeys        int `json:"null_keys"`
	DuplicateKeys   int `json:"duplicate_keys"`
	UnparsableDates int `json:"unparsable_dates"`
}

// QualityGate runs data-quality checks against the raw table. The gate is
// purely observational: it logs alerts and returns its input unchanged,
// establishing an audit trail before any row is dropped.
type QualityGate struct {
	referenceDate time.Time
}

// NewQualityGate creates a gate that compares dates against the given
// reference date. The reference date is injected rather than read from the
// wall clock so tests can pin it.
func NewQualityGate(referenceDate time.Time) *QualityGate {
	return &QualityGate{referenceDate: referenceDate}
}

// Check evaluates the three invariants (no future dates, no nulls in key
// columns, no duplicate (country, date) pairs) plus an unparsable-date
// count, logs each result, and passes the table through untouched.
//
// Rows whose date failed to parse carry the zero time sentinel; the
// sentinel compares before every reference date, so such rows never count
// as future. They are reported separately instead, since a date that does
// not parse is a data-quality problem the future check cannot see.
func (g *QualityGate) Check(ctx context.Context, table domain.ObservationTable) (domain.ObservationTable, QualityReport) {
	logger := infrastructure.LoggerFromContext(ctx)

	report := QualityReport{TotalRows: len(table)}
	seen := make(map[domain.ObservationKey]bool, len(table))

	for _, obs := range table {
		if obs.Date.After(g.referenceDate) {
			report.FutureDates++
		}

		if obs.Country == "" {
			report.NullKeys++
		}
		if !obs.HasDate() {
			report.NullKeys++
		}
		if !obs.HasPopulation() {
			report.NullKeys++
		}

		if obs.RawDate != "" && !obs.HasDate() {
			report.UnparsableDates++
		}

		key := obs.Key()
		if seen[key] {
			report.DuplicateKeys++
		}
		seen[key] = true
	}

	if report.FutureDates > 0 {
		logger.WarnContext(ctx, "rows dated after the reference date",
			slog.Int("count", report.FutureDates),
			slog.String("reference_date", g.referenceDate.Format(domain.DateFormat)))
	} else {
		logger.InfoContext(ctx, "all dates are valid")
	}

	if report.NullKeys > 0 {
		logger.WarnContext(ctx, "null values found in key columns",
			slog.Int("count", report.NullKeys),
			slog.Any("columns", domain.KeyColumns))
	} else {
		logger.InfoContext(ctx, "all key columns contain data")
	}

	if report.DuplicateKeys > 0 {
		logger.WarnContext(ctx, "duplicate (country, date) rows found",
			slog.Int("count", report.DuplicateKeys))
	} else {
		logger.InfoContext(ctx, "no duplicates by country and date")
	}

	if report.UnparsableDates > 0 {
		logger.WarnContext(ctx, "rows with unparsable dates are invisible to the future-date check",
			slog.Int("count", report.UnparsableDates))
	}

	return table, report
}
