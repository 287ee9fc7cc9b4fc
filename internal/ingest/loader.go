// Package ingest builds the four query indexes from the two local CSV
// extracts. Each loader is a single linear scan: sniff the delimiter,
// tokenize, validate row by row, and append to the indexes. Malformed rows
// are dropped silently; a missing file yields empty indexes, never an error.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pondskater/airquery/internal/dataset"
	"github.com/pondskater/airquery/internal/observability"
	"github.com/pondskater/airquery/internal/sniff"
)

// Source labels for metrics.
const (
	sourceMeasurements = "measurements"
	sourceGeography    = "geography"
)

// Loader owns the logging and metrics for both ingestion pipelines and
// doubles as the readiness check for the optional HTTP endpoint.
type Loader struct {
	logger  *slog.Logger
	metrics *observability.Metrics

	measurementsLoaded atomic.Bool
	geographyLoaded    atomic.Bool
}

// NewLoader creates a Loader with the given observability.
func NewLoader(logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{logger: logger, metrics: metrics}
}

// CheckReadiness returns nil once both source files have been loaded.
func (l *Loader) CheckReadiness(_ context.Context) error {
	if !l.measurementsLoaded.Load() || !l.geographyLoaded.Load() {
		return errors.New("indexes have not been built yet")
	}
	return nil
}

// LoadMeasurements parses the measurement file into the by-region and by-date
// indexes in one pass. Row 0 is skipped as a header only when its first cell
// is not a parseable integer. Rows with fewer than 4 cells, or with an
// unparseable id or value, or a blank name or date, are dropped.
func (l *Loader) LoadMeasurements(path string) (dataset.RegionIndex, dataset.DateIndex) {
	start := clock.Now()
	byRegion := dataset.RegionIndex{}
	byDate := dataset.DateIndex{}
	defer l.finish(sourceMeasurements, start)
	defer l.measurementsLoaded.Store(true)

	rows, ok := l.readRows(path, sourceMeasurements)
	if !ok || len(rows) == 0 {
		return byRegion, byDate
	}

	if _, isData := dataset.ParseIntField(rows[0][0]); !isData {
		rows = rows[1:]
	}

	loaded, skipped := 0, 0
	for _, row := range rows {
		m, valid := parseMeasurementRow(row)
		if !valid {
			skipped++
			continue
		}
		byRegion[m.RegionID] = append(byRegion[m.RegionID], m)
		byDate[m.Date] = append(byDate[m.Date], m)
		loaded++
	}

	l.count(sourceMeasurements, loaded, skipped)
	l.metrics.IndexKeys.WithLabelValues("region").Set(float64(len(byRegion)))
	l.metrics.IndexKeys.WithLabelValues("date").Set(float64(len(byDate)))
	l.logger.Info("measurements loaded",
		"path", path, "records", loaded, "skipped", skipped,
		"region_keys", len(byRegion), "date_keys", len(byDate))
	return byRegion, byDate
}

func parseMeasurementRow(row []string) (dataset.Measurement, bool) {
	if len(row) < 4 {
		return dataset.Measurement{}, false
	}
	id, okID := dataset.ParseIntField(row[0])
	name := strings.TrimSpace(row[1])
	date := strings.TrimSpace(row[2])
	value, okValue := dataset.ParseFloatField(row[3])
	if !okID || name == "" || date == "" || !okValue {
		return dataset.Measurement{}, false
	}
	return dataset.Measurement{Date: date, RegionID: id, RegionName: name, Value: value}, true
}

// LoadGeography parses the UHF mapping file into the zip and borough indexes.
// The file layout (header-bearing or positional) is detected once from the
// first non-blank row, then every data row goes through the parser for that
// layout. A key is only created when the row yields at least one region id.
func (l *Loader) LoadGeography(path string) (dataset.PostalIndex, dataset.AreaIndex) {
	start := clock.Now()
	byPostal := dataset.PostalIndex{}
	byArea := dataset.AreaIndex{}
	defer l.finish(sourceGeography, start)
	defer l.geographyLoaded.Store(true)

	rows, ok := l.readRows(path, sourceGeography)
	if !ok {
		return byPostal, byArea
	}
	rows = trimNonBlank(rows)
	if len(rows) == 0 {
		return byPostal, byArea
	}

	layout := dataset.DetectLayout(rows[0])

	var parse func(row []string) (dataset.GeoRow, bool)
	switch layout {
	case dataset.LayoutHeader:
		cols := dataset.LocateColumns(rows[0])
		rows = rows[1:]
		parse = func(row []string) (dataset.GeoRow, bool) {
			return dataset.ParseGeoRowHeader(row, cols)
		}
	default:
		parse = dataset.ParseGeoRowPositional
	}

	loaded, skipped := 0, 0
	for _, row := range rows {
		gr, valid := parse(row)
		if !valid {
			skipped++
			continue
		}
		if len(gr.RegionIDs) == 0 {
			skipped++
			continue
		}
		if gr.Area != "" {
			byArea[gr.Area] = mergeIDs(byArea[gr.Area], gr.RegionIDs)
		}
		for _, z := range gr.Postals {
			byPostal[z] = mergeIDs(byPostal[z], gr.RegionIDs)
		}
		loaded++
	}

	l.count(sourceGeography, loaded, skipped)
	l.metrics.IndexKeys.WithLabelValues("postal").Set(float64(len(byPostal)))
	l.metrics.IndexKeys.WithLabelValues("area").Set(float64(len(byArea)))
	l.logger.Info("geography loaded",
		"path", path, "layout", layoutName(layout), "rows", loaded, "skipped", skipped,
		"postal_keys", len(byPostal), "area_keys", len(byArea))
	return byPostal, byArea
}

// mergeIDs appends ids into an ordered set: duplicates are dropped, first-seen
// order is preserved.
func mergeIDs(existing, ids []int) []int {
	for _, id := range ids {
		found := false
		for _, e := range existing {
			if e == id {
				found = true
				break
			}
		}
		if !found {
			existing = append(existing, id)
		}
	}
	return existing
}

// readRows tokenizes the whole file with the sniffed delimiter. Returns false
// when the file is missing, logging a warning; that is the only recoverable
// load failure with a caller-visible effect (empty indexes). Records that the
// CSV reader itself rejects are skipped like any other malformed row.
func (l *Loader) readRows(path, source string) ([][]string, bool) {
	f, err := os.Open(path)
	if err != nil {
		l.logger.Warn("could not open input file", "source", source, "path", path, "error", err)
		return nil, false
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = sniff.Delimiter(path)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			l.logger.Debug("unreadable row skipped", "source", source, "error", err)
			l.metrics.RowsSkipped.WithLabelValues(source).Inc()
			continue
		}
		rows = append(rows, rec)
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, true
}

// trimNonBlank trims every cell and drops rows whose cells are all blank,
// before any layout detection happens.
func trimNonBlank(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		blank := true
		for i, c := range row {
			row[i] = strings.TrimSpace(c)
			if row[i] != "" {
				blank = false
			}
		}
		if !blank {
			out = append(out, row)
		}
	}
	return out
}

func (l *Loader) count(source string, loaded, skipped int) {
	l.metrics.RowsLoaded.WithLabelValues(source).Add(float64(loaded))
	l.metrics.RowsSkipped.WithLabelValues(source).Add(float64(skipped))
}

func (l *Loader) finish(source string, start time.Time) {
	l.metrics.LoadSeconds.WithLabelValues(source).Observe(clock.Since(start).Seconds())
}

func layoutName(layout dataset.Layout) string {
	if layout == dataset.LayoutHeader {
		return "header"
	}
	return "positional"
}
