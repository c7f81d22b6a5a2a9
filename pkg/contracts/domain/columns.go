package domain

// Source column names, as they appear in the OWID compact CSV header.
const (
	ColCountry          = "country"
	ColDate             = "date"
	ColNewCases         = "new_cases"
	ColPeopleVaccinated = "people_vaccinated"
	ColPopulation       = "population"
)

// KeyColumns are the columns whose null counts the quality gate sums.
var KeyColumns = []string{ColCountry, ColDate, ColPopulation}

// RequiredColumns are the columns the cleaner requires to be non-null
// before a row can feed metric computation.
var RequiredColumns = []string{ColNewCases, ColPeopleVaccinated}

// ProcessedColumns is the fixed projection the cleaner emits and the report
// sink writes to the datos_procesados sheet, in order.
var ProcessedColumns = []string{ColCountry, ColDate, ColNewCases, ColPeopleVaccinated, ColPopulation}

// Report sheet names, in the order they appear in the artifact.
const (
	SheetProcessed = "datos_procesados"
	SheetIncidence = "incidencia_7d"
	SheetGrowth    = "factor_crec_7d"
)

// IncidenceColumns is the incidencia_7d sheet header. The date and country
// columns are renamed for the report; the rename lives here rather than in
// the derivation so schema changes stay centralized.
var IncidenceColumns = []string{"fecha", "país", "incidencia_7d"}

// GrowthColumns is the factor_crec_7d sheet header, with date renamed to the
// week-ending label and the weekly sum renamed from its working name.
var GrowthColumns = []string{"semana_fin", "país", "casos_semana", "factor_crec_7d"}

// DateFormat is the wire and report representation of calendar dates.
const DateFormat = "2006-01-02"
