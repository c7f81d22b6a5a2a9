package domain

import (
	"math"
	"time"
)

// Observation represents a single (country, date) sample from the source
// time series. Numeric fields use NaN for absent values so that downstream
// arithmetic follows IEEE semantics instead of branching on presence flags.
type Observation struct {
	Country          string    `json:"country"`
	Date             time.Time `json:"date"`
	RawDate          string    `json:"raw_date,omitempty"` // original cell, kept for unparsable-date reporting
	NewCases         float64   `json:"new_cases"`
	PeopleVaccinated float64   `json:"people_vaccinated"`
	Population       float64   `json:"population"`
}

// ObservationTable is an ordered sequence of observations for one or more
// countries. Input order is preserved through cleaning; metric derivations
// treat each country's rows as a date-ascending time series.
type ObservationTable []Observation

// HasNewCases reports whether the new_cases value is present.
func (o Observation) HasNewCases() bool {
	return !math.IsNaN(o.NewCases)
}

// HasPeopleVaccinated reports whether the people_vaccinated value is present.
func (o Observation) HasPeopleVaccinated() bool {
	return !math.IsNaN(o.PeopleVaccinated)
}

// HasPopulation reports whether the population value is present.
func (o Observation) HasPopulation() bool {
	return !math.IsNaN(o.Population)
}

// HasDate reports whether the date parsed successfully. An unparsable date
// is stored as the zero time sentinel, which sorts before every real date
// and therefore never trips the future-date check.
func (o Observation) HasDate() bool {
	return !o.Date.IsZero()
}

// Key returns the natural (country, date) key used for duplicate detection.
func (o Observation) Key() ObservationKey {
	return ObservationKey{Country: o.Country, Date: o.Date}
}

// ObservationKey is the natural key of an observation row.
type ObservationKey struct {
	Country string
	Date    time.Time
}

// IncidenceRecord is one row of the derived incidence series: the trailing
// 7-row mean of daily cases per 100k population, defined from the first row
// onward (minimum window of one).
type IncidenceRecord struct {
	Fecha        time.Time `json:"fecha"`
	Pais         string    `json:"pais"`
	Incidencia7d float64   `json:"incidencia_7d"`
}

// GrowthRecord is one row of the derived growth-factor series. CasosSemana
// is the trailing 7-row case sum and is NaN until a full window of seven
// samples exists; FactorCrec7d divides it by its value seven rows earlier
// with IEEE division semantics (NaN operands propagate, x/0 yields ±Inf,
// 0/0 yields NaN).
type GrowthRecord struct {
	SemanaFin    time.Time `json:"semana_fin"`
	Pais         string    `json:"pais"`
	CasosSemana  float64   `json:"casos_semana"`
	FactorCrec7d float64   `json:"factor_crec_7d"`
}

// Report bundles the three tables persisted by the report sink.
type Report struct {
	Processed ObservationTable
	Incidence []IncidenceRecord
	Growth    []GrowthRecord
}
