// Package loader reads ranking tables from CSV files into domain records.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/unirank/unirank/internal/domain/country"
	"github.com/unirank/unirank/internal/domain/model"
	"github.com/unirank/unirank/pkg/logger"
)

// Required header names. Score columns are optional; a file with no score
// columns still loads, the records simply carry no scores.
const (
	colUniversity = "University"
	colCountry    = "Country"
	colYear       = "Year"
	colRank       = "Rank"
)

// extraHeaders lists dataset header variants that differ from a metric's
// canonical label. The overall score appears under two names across dataset
// vintages, and older exports abbreviate the faculty-student column.
var extraHeaders = map[model.Metric][]string{
	model.MetricOverall:        {"Overall_Score", "Overall"},
	model.MetricFacultyStudent: {"Faculty Student"},
}

// headerAliases returns the header names that populate a metric, canonical
// label first.
func headerAliases(m model.Metric) []string {
	return append([]string{m.Label()}, extraHeaders[m]...)
}

// LoadCSV reads a ranking table from path.
func LoadCSV(ctx context.Context, path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFile, err)
	}
	defer f.Close()

	records, err := Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return records, nil
}

// Read parses CSV content from r into domain records. Rows missing a
// university name or a parseable year are skipped with a warning rather
// than failing the whole load.
func Read(ctx context.Context, r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	log := logger.Named("loader")
	var records []model.Record
	var skipped int
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedCSV, line, err)
		}

		rec, ok := cols.record(row)
		if !ok {
			skipped++
			log.Debug(ctx, "skipping row without university or year", logger.Int("line", line))
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	if skipped > 0 {
		log.Warn(ctx, "skipped unparseable rows", logger.Int("count", skipped))
	}
	return records, nil
}

// columnSet holds resolved column indexes; -1 means absent.
type columnSet struct {
	university int
	country    int
	year       int
	rank       int
	scores     map[model.Metric]int
}

func resolveColumns(header []string) (*columnSet, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	find := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		return -1
	}

	cols := &columnSet{
		university: find(colUniversity),
		country:    find(colCountry),
		year:       find(colYear),
		rank:       find(colRank),
		scores:     make(map[model.Metric]int),
	}
	if cols.university < 0 || cols.year < 0 {
		return nil, fmt.Errorf("%w: need %q and %q columns", ErrMissingColumns, colUniversity, colYear)
	}

	for _, m := range model.Metrics() {
		for _, h := range headerAliases(m) {
			if i, ok := index[h]; ok {
				cols.scores[m] = i
				break
			}
		}
	}
	return cols, nil
}

func (c *columnSet) record(row []string) (model.Record, bool) {
	name := strings.TrimSpace(field(row, c.university))
	year, err := strconv.Atoi(strings.TrimSpace(field(row, c.year)))
	if name == "" || err != nil {
		return model.Record{}, false
	}

	display := strings.TrimSpace(field(row, c.rank))
	rank, ranked := model.ParseRank(display)

	rec := model.Record{
		University:  name,
		Year:        year,
		Rank:        rank,
		RankDisplay: display,
		Ranked:      ranked,
		Country:     country.Normalize(field(row, c.country)),
		Scores:      make(map[model.Metric]float64, len(c.scores)),
	}
	for metric, i := range c.scores {
		raw := strings.TrimSpace(field(row, i))
		if raw == "" || raw == "-" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		rec.Scores[metric] = v
	}
	return rec, true
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
