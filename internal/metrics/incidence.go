package metrics

import (
	"epicli/pkg/contracts/domain"
)

const (
	// incidenceScale expresses daily incidence per 100,000 inhabitants.
	incidenceScale = 100000

	// metricWindow is the trailing window length shared by both derivations.
	metricWindow = 7
)

// Incidence derives the 7-day incidence series: per-row daily cases per
// 100k population, smoothed per country with a trailing 7-row mean. The
// mean uses a minimum window of one, so every row with a defined daily
// incidence gets a defined smoothed value, including the first rows of a
// country's series. Output rows align one-to-one with the input rows.
func Incidence(table domain.ObservationTable) []domain.IncidenceRecord {
	daily := make([]float64, len(table))
	for i, obs := range table {
		daily[i] = obs.NewCases / obs.Population * incidenceScale
	}

	smoothed := make([]float64, len(table))
	for _, indices := range groupByCountry(table) {
		series := make([]float64, len(indices))
		for k, idx := range indices {
			series[k] = daily[idx]
		}

		windowed := rollingMean(series, metricWindow, 1)
		for k, idx := range indices {
			smoothed[idx] = windowed[k]
		}
	}

	records := make([]domain.IncidenceRecord, len(table))
	for i, obs := range table {
		records[i] = domain.IncidenceRecord{
			Fecha:        obs.Date,
			Pais:         obs.Country,
			Incidencia7d: smoothed[i],
		}
	}

	return records
}
