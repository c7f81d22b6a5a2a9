// Package fetch implements the source reader for the OWID compact dataset.
//
// The reader keeps its failure modes distinct (status, transport, malformed
// payload) so each can be unit-tested, and collapses all of them to an empty
// table at the pipeline boundary: a failed download degrades the run to an
// empty report instead of aborting it.
package fetch

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"epicli/internal/config"
	"epicli/internal/infrastructure"
	"epicli/pkg/contracts/domain"
)

// StatusError indicates the source answered with a non-success HTTP status.
type StatusError struct {
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from source", e.StatusCode)
}

// Client downloads and parses the source time series.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a reader client with the configured endpoint and a
// bounded request timeout.
func NewClient(cfg config.SourceConfig) *Client {
	return &Client{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Fetch downloads the source CSV and parses it into an observation table.
// It returns a distinct error per failure mode: *StatusError for non-success
// responses, the transport error for network failures and timeouts, and a
// parse error for malformed payloads. Schema is assumed, not enforced: rows
// are parsed by header name and columns the source does not carry simply
// come back as absent values.
func (c *Client) Fetch(ctx context.Context) (domain.ObservationTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download source CSV: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	table, err := ParseTable(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse source CSV: %w", err)
	}

	return table, nil
}

// FetchOrEmpty is the boundary consumed by the pipeline: any failure is
// logged and substituted with an empty table so downstream stages observe
// zero rows instead of an aborted run.
func (c *Client) FetchOrEmpty(ctx context.Context) domain.ObservationTable {
	logger := infrastructure.LoggerFromContext(ctx)

	table, err := c.Fetch(ctx)
	if err != nil {
		logger.WarnContext(ctx, "source fetch failed, continuing with empty table",
			slog.String("url", c.url),
			slog.String("error", err.Error()))
		return domain.ObservationTable{}
	}

	logger.InfoContext(ctx, "source CSV downloaded",
		slog.String("url", c.url),
		slog.Int("rows", len(table)))
	return table
}

// ParseTable parses a delimiter-separated payload with a header row into an
// observation table. Column positions are resolved from the header by name;
// the source carries many more columns than the pipeline consumes.
func ParseTable(r io.Reader) (domain.ObservationTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty payload")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := mapColumns(header)

	var table domain.ObservationTable
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		table = append(table, parseObservation(record, cols))
	}

	return table, nil
}

// mapColumns resolves the index of each consumed column from the header row.
// Missing columns map to -1 and parse as absent values.
func mapColumns(header []string) map[string]int {
	cols := map[string]int{
		domain.ColCountry:          -1,
		domain.ColDate:             -1,
		domain.ColNewCases:         -1,
		domain.ColPeopleVaccinated: -1,
		domain.ColPopulation:       -1,
	}

	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, wanted := cols[name]; wanted {
			cols[name] = i
		}
	}

	return cols
}

// parseObservation builds an observation from a raw record using the
// resolved column positions. Numeric cells that are empty or unparsable
// become NaN; an unparsable date becomes the zero time sentinel.
func parseObservation(record []string, cols map[string]int) domain.Observation {
	rawDate := cell(record, cols[domain.ColDate])
	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		date = time.Time{}
	}

	return domain.Observation{
		Country:          cell(record, cols[domain.ColCountry]),
		Date:             date,
		RawDate:          rawDate,
		NewCases:         parseFloat(cell(record, cols[domain.ColNewCases])),
		PeopleVaccinated: parseFloat(cell(record, cols[domain.ColPeopleVaccinated])),
		Population:       parseFloat(cell(record, cols[domain.ColPopulation])),
	}
}

// cell returns the trimmed value at index i, or "" when out of range.
func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// parseFloat parses a numeric cell, mapping empty or unparsable values to NaN.
func parseFloat(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return value
}
