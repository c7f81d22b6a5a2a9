package metrics

import (
	"context"
	"log/slog"
	"math"

	"epicli/internal/infrastructure"
	"epicli/pkg/contracts/domain"
)

// Plausibility bounds for the smoothed incidence, per 100k inhabitants.
const (
	incidenceLowerBound = 0
	incidenceUpperBound = 2000
)

// RangeReport summarizes the incidence range check.
type RangeReport struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Defined int     `json:"defined"`
	InRange bool    `json:"in_range"`
}

// ValidateIncidence range-checks the smoothed incidence against the
// [0, 2000] plausibility bound. The check is diagnostic only: it logs and
// reports, never errors and never mutates rows. NaN values are skipped when
// taking the bounds; a table with no defined values (including the empty
// table) yields NaN bounds, is reported as not in range, and is logged as a
// boundary case rather than an out-of-range alert.
func ValidateIncidence(ctx context.Context, records []domain.IncidenceRecord) RangeReport {
	logger := infrastructure.LoggerFromContext(ctx)

	report := RangeReport{Min: math.NaN(), Max: math.NaN()}

	for _, rec := range records {
		if math.IsNaN(rec.Incidencia7d) {
			continue
		}
		if report.Defined == 0 || rec.Incidencia7d < report.Min {
			report.Min = rec.Incidencia7d
		}
		if report.Defined == 0 || rec.Incidencia7d > report.Max {
			report.Max = rec.Incidencia7d
		}
		report.Defined++
	}

	if report.Defined == 0 {
		logger.WarnContext(ctx, "incidence bounds undefined, no defined values to check",
			slog.Int("rows", len(records)))
		return report
	}

	report.InRange = report.Min >= incidenceLowerBound && report.Min <= incidenceUpperBound &&
		report.Max >= incidenceLowerBound && report.Max <= incidenceUpperBound

	if report.InRange {
		logger.InfoContext(ctx, "7-day incidence within expected range",
			slog.Float64("min", report.Min),
			slog.Float64("max", report.Max))
	} else {
		logger.WarnContext(ctx, "7-day incidence outside expected range",
			slog.Float64("min", report.Min),
			slog.Float64("max", report.Max),
			slog.Float64("lower_bound", incidenceLowerBound),
			slog.Float64("upper_bound", incidenceUpperBound))
	}

	return report
}
