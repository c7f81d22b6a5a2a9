package metrics

import (
	"sort"

	"epicli/pkg/contracts/domain"
)

// groupByCountry returns, per country, the table indices of that country's
// rows sorted by date ascending. The sort is stable, so rows sharing a date
// keep their original relative order. Countries are keyed by name only;
// rows of different countries never share a window even when adjacent in
// the input.
func groupByCountry(table domain.ObservationTable) map[string][]int {
	groups := make(map[string][]int)
	for i, obs := range table {
		groups[obs.Country] = append(groups[obs.Country], i)
	}

	for _, indices := range groups {
		sort.SliceStable(indices, func(a, b int) bool {
			return table[indices[a]].Date.Before(table[indices[b]].Date)
		})
	}

	return groups
}
