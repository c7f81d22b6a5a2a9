// Package app wires the pipeline stages together and runs them in order.
package app

import (
	"context"
	"log/slog"
	"time"

	"epicli/internal/config"
	"epicli/internal/dataprocessing"
	"epicli/internal/exporter"
	"epicli/internal/fetch"
	"epicli/internal/infrastructure"
	"epicli/internal/metrics"
	"epicli/pkg/contracts/domain"
)

// Pipeline runs the six stages strictly in sequence: reader, quality gate,
// cleaner, the two metric derivations, the range validator, and the report
// sink. No stage starts before its predecessor's output is fully
// materialized and no state is shared between stages beyond the tables
// passed along.
type Pipeline struct {
	cfg     *config.Config
	reader  *fetch.Client
	gate    *dataprocessing.QualityGate
	cleaner *dataprocessing.Cleaner
	writer  *exporter.ExcelWriter
}

// New assembles a pipeline from configuration. The reference date anchors
// the gate's future-date check; callers pass today's date in production and
// a pinned date in tests.
func New(cfg *config.Config, referenceDate time.Time) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		reader:  fetch.NewClient(cfg.Source),
		gate:    dataprocessing.NewQualityGate(referenceDate),
		cleaner: dataprocessing.NewCleaner(cfg.Countries()),
		writer:  exporter.NewExcelWriter(cfg.Report),
	}
}

// Run executes one end-to-end pass over a dataset snapshot and returns the
// report artifact path. Transport failures, data-quality alerts and
// out-of-range metrics all degrade to logged diagnostics; the only error
// surface left is failing to persist the artifact itself.
func (p *Pipeline) Run(ctx context.Context) (string, error) {
	logger := infrastructure.LoggerFromContext(ctx)
	started := time.Now()

	raw := p.reader.FetchOrEmpty(ctx)

	checked, quality := p.gate.Check(ctx, raw)

	cleaned := p.cleaner.Clean(ctx, checked)

	incidence := metrics.Incidence(cleaned)
	growth := metrics.Growth(cleaned)

	metrics.ValidateIncidence(ctx, incidence)

	path, err := p.writer.Write(ctx, domain.Report{
		Processed: cleaned,
		Incidence: incidence,
		Growth:    growth,
	})
	if err != nil {
		return "", err
	}

	logger.InfoContext(ctx, "pipeline run completed",
		slog.String("artifact", path),
		slog.Int("raw_rows", quality.TotalRows),
		slog.Int("clean_rows", len(cleaned)),
		slog.Duration("elapsed", time.Since(started)))

	return path, nil
}
