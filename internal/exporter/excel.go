// Package exporter persists the pipeline output as a single multi-sheet
// Excel artifact.
package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"epicli/internal/config"
	"epicli/internal/infrastructure"
	"epicli/pkg/contracts/domain"
)

// ExcelWriter writes the cleaned table and both derived tables as named
// sheets in one workbook, overwriting any prior artifact at the configured
// path.
type ExcelWriter struct {
	outputPath string
}

// NewExcelWriter creates a writer targeting the configured report path.
func NewExcelWriter(cfg config.ReportConfig) *ExcelWriter {
	return &ExcelWriter{outputPath: cfg.OutputPath}
}

// Write persists the three report sheets (datos_procesados, incidencia_7d,
// factor_crec_7d, in that order) and returns the artifact path. Column
// order and header names are written exactly as produced upstream. Empty
// tables produce header-only sheets. Undefined (NaN) cells are left blank,
// the way the upstream spreadsheet tooling renders them; infinite growth
// factors are rendered as "inf"/"-inf" strings since a workbook cell cannot
// hold an IEEE infinity.
func (w *ExcelWriter) Write(ctx context.Context, report domain.Report) (string, error) {
	logger := infrastructure.LoggerFromContext(ctx)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), domain.SheetProcessed); err != nil {
		return "", fmt.Errorf("rename default sheet: %w", err)
	}
	for _, name := range []string{domain.SheetIncidence, domain.SheetGrowth} {
		if _, err := f.NewSheet(name); err != nil {
			return "", fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	if err := w.writeProcessed(f, report.Processed); err != nil {
		return "", err
	}
	if err := w.writeIncidence(f, report.Incidence); err != nil {
		return "", err
	}
	if err := w.writeGrowth(f, report.Growth); err != nil {
		return "", err
	}

	if dir := filepath.Dir(w.outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create report directory: %w", err)
		}
	}

	if err := f.SaveAs(w.outputPath); err != nil {
		return "", fmt.Errorf("save report workbook: %w", err)
	}

	logger.InfoContext(ctx, "report workbook written",
		slog.String("path", w.outputPath),
		slog.Int("processed_rows", len(report.Processed)),
		slog.Int("incidence_rows", len(report.Incidence)),
		slog.Int("growth_rows", len(report.Growth)))

	return w.outputPath, nil
}

func (w *ExcelWriter) writeProcessed(f *excelize.File, table domain.ObservationTable) error {
	if err := writeHeader(f, domain.SheetProcessed, domain.ProcessedColumns); err != nil {
		return err
	}

	for i, obs := range table {
		row := []interface{}{
			obs.Country,
			obs.Date.Format(domain.DateFormat),
			numericCell(obs.NewCases),
			numericCell(obs.PeopleVaccinated),
			numericCell(obs.Population),
		}
		if err := writeRow(f, domain.SheetProcessed, i+2, row); err != nil {
			return err
		}
	}

	return nil
}

func (w *ExcelWriter) writeIncidence(f *excelize.File, records []domain.IncidenceRecord) error {
	if err := writeHeader(f, domain.SheetIncidence, domain.IncidenceColumns); err != nil {
		return err
	}

	for i, rec := range records {
		row := []interface{}{
			rec.Fecha.Format(domain.DateFormat),
			rec.Pais,
			numericCell(rec.Incidencia7d),
		}
		if err := writeRow(f, domain.SheetIncidence, i+2, row); err != nil {
			return err
		}
	}

	return nil
}

func (w *ExcelWriter) writeGrowth(f *excelize.File, records []domain.GrowthRecord) error {
	if err := writeHeader(f, domain.SheetGrowth, domain.GrowthColumns); err != nil {
		return err
	}

	for i, rec := range records {
		row := []interface{}{
			rec.SemanaFin.Format(domain.DateFormat),
			rec.Pais,
			numericCell(rec.CasosSemana),
			numericCell(rec.FactorCrec7d),
		}
		if err := writeRow(f, domain.SheetGrowth, i+2, row); err != nil {
			return err
		}
	}

	return nil
}

// writeHeader writes the header row of a sheet.
func writeHeader(f *excelize.File, sheet string, columns []string) error {
	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	return nil
}

// writeRow writes one data row at the given 1-based row number.
func writeRow(f *excelize.File, sheet string, rowNum int, row []interface{}) error {
	cellRef, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("resolve cell for %s row %d: %w", sheet, rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}

// numericCell maps a float to its workbook representation: NaN becomes a
// blank cell, ±Inf becomes a string marker, everything else is written as a
// number.
func numericCell(v float64) interface{} {
	switch {
	case math.IsNaN(v):
		return nil
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	default:
		return v
	}
}
