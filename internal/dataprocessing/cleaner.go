package dataprocessing

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"epicli/internal/infrastructure"
	"epicli/pkg/contracts/domain"
)

// Cleaner drops rows unusable for metric computation and restricts the
// table to the configured countries. It filters and projects only; it never
// mutates values or reorders rows, so cleaning an already-clean table is a
// fixed point.
type Cleaner struct {
	countries map[string]struct{}
}

// NewCleaner creates a cleaner restricted to the given country set.
func NewCleaner(countries map[string]struct{}) *Cleaner {
	return &Cleaner{countries: countries}
}

// Clean applies the cleaning steps in order: drop rows with absent
// new_cases or people_vaccinated, drop exact-duplicate rows across all
// columns, keep only configured countries, and project to the fixed
// processed column set. The order is fixed for determinism.
func (c *Cleaner) Clean(ctx context.Context, table domain.ObservationTable) domain.ObservationTable {
	logger := infrastructure.LoggerFromContext(ctx)

	cleaned := make(domain.ObservationTable, 0, len(table))
	seen := make(map[string]bool, len(table))

	for _, obs := range table {
		if !obs.HasNewCases() || !obs.HasPeopleVaccinated() {
			continue
		}

		fp := fingerprint(obs)
		if seen[fp] {
			continue
		}
		seen[fp] = true

		if _, ok := c.countries[obs.Country]; !ok {
			continue
		}

		cleaned = append(cleaned, project(obs))
	}

	logger.InfoContext(ctx, "observations cleaned",
		slog.Int("rows_in", len(table)),
		slog.Int("rows_out", len(cleaned)))

	return cleaned
}

// project reduces an observation to the fixed processed column set by
// clearing the carrier fields that are not part of it.
func project(obs domain.Observation) domain.Observation {
	obs.RawDate = ""
	return obs
}

// fingerprint builds an equality key over all projected columns. Floats are
// rendered with strconv so two NaN cells compare equal, matching
// whole-row duplicate semantics rather than IEEE NaN inequality.
func fingerprint(obs domain.Observation) string {
	return strings.Join([]string{
		obs.Country,
		obs.Date.Format(domain.DateFormat),
		strconv.FormatFloat(obs.NewCases, 'g', -1, 64),
		strconv.FormatFloat(obs.PeopleVaccinated, 'g', -1, 64),
		strconv.FormatFloat(obs.Population, 'g', -1, 64),
	}, "|")
}
