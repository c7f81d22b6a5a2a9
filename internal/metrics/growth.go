package metrics

import (
	"epicli/pkg/contracts/domain"
)

// Growth derives the 7-day case growth factor per country. The weekly case
// total is a trailing 7-row sum that requires a full window: the first six
// rows of every country's series are undefined. The prior-week value is
// the same summed series lagged by seven rows in the country's own
// chronological ordering, so the comparison point is seven raw rows back,
// not seven calendar weeks. The factor divides the two with IEEE
// semantics: an undefined operand propagates NaN, a zero denominator
// yields ±Inf, and 0/0 yields NaN. Output rows align one-to-one with the
// input rows.
func Growth(table domain.ObservationTable) []domain.GrowthRecord {
	weekly := make([]float64, len(table))
	factor := make([]float64, len(table))

	for _, indices := range groupByCountry(table) {
		series := make([]float64, len(indices))
		for k, idx := range indices {
			series[k] = table[idx].NewCases
		}

		current := rollingSum(series, metricWindow, metricWindow)
		previous := shift(current, metricWindow)

		for k, idx := range indices {
			weekly[idx] = current[k]
			factor[idx] = current[k] / previous[k]
		}
	}

	records := make([]domain.GrowthRecord, len(table))
	for i, obs := range table {
		records[i] = domain.GrowthRecord{
			SemanaFin:    obs.Date,
			Pais:         obs.Country,
			CasosSemana:  weekly[i],
			FactorCrec7d: factor[i],
		}
	}

	return records
}
