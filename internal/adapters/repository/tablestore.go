package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/unirank/unirank/internal/domain/model"
	"github.com/unirank/unirank/pkg/metrics"
)

// TableStore is the in-memory, immutable Store implementation.
//
// Ordering within a year: ranked entries ascending by numeric rank, dataset
// order breaking ties; unranked entries follow in dataset order. The sort
// is performed once at construction; reads return the shared slices.
type TableStore struct {
	all    []*model.Record
	byYear map[int][]*model.Record
	years  []int // ascending
	stats  Stats

	updateMetrics bool
}

// NewTableStore builds the immutable table from loaded records. It enforces
// the (university, year) uniqueness invariant and rejects empty input.
func NewTableStore(ctx context.Context, records []model.Record, opts ...Option) (*TableStore, error) {
	s := &TableStore{
		byYear:        make(map[int][]*model.Record),
		updateMetrics: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	type identity struct {
		university string
		year       int
	}
	seen := make(map[identity]struct{}, len(records))
	universities := make(map[string]struct{})
	countries := make(map[string]struct{})

	s.all = make([]*model.Record, len(records))
	for i := range records {
		r := &records[i]
		key := identity{university: strings.ToLower(r.University), year: r.Year}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %q year %d", ErrDuplicateRecord, r.University, r.Year)
		}
		seen[key] = struct{}{}
		universities[key.university] = struct{}{}
		if r.Country.Name != "" {
			countries[r.Country.Name] = struct{}{}
		}

		s.all[i] = r
		s.byYear[r.Year] = append(s.byYear[r.Year], r)
	}

	for year, rows := range s.byYear {
		sortByRank(rows)
		s.years = append(s.years, year)
	}
	sort.Ints(s.years)

	s.stats = Stats{
		Records:      len(s.all),
		Universities: len(universities),
		Years:        len(s.years),
		Countries:    len(countries),
	}

	if s.updateMetrics {
		metrics.UpdateDatasetStats(s.stats.Records, s.stats.Universities, s.stats.Years, s.stats.Countries)
	}

	return s, nil
}

// sortByRank orders rows ranked-first ascending by rank; the sort is stable
// so tied ranks keep dataset order.
func sortByRank(rows []*model.Record) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch {
		case a.Ranked && b.Ranked:
			return a.Rank < b.Rank
		case a.Ranked != b.Ranked:
			return a.Ranked
		default:
			return false
		}
	})
}

// Years returns the distinct ranking years in ascending order.
func (s *TableStore) Years(_ context.Context) []int {
	return s.years
}

// Latest returns the most recent year, or false for an empty table.
func (s *TableStore) Latest(_ context.Context) (int, bool) {
	if len(s.years) == 0 {
		return 0, false
	}
	return s.years[len(s.years)-1], true
}

// HasYear reports whether any record exists for year.
func (s *TableStore) HasYear(_ context.Context, year int) bool {
	_, ok := s.byYear[year]
	return ok
}

// ForYear returns the records of one year in rank order.
func (s *TableStore) ForYear(_ context.Context, year int) []*model.Record {
	return s.byYear[year]
}

// Records returns all records in dataset order.
func (s *TableStore) Records(_ context.Context) []*model.Record {
	return s.all
}

// Stats returns the table's size counters.
func (s *TableStore) Stats(_ context.Context) Stats {
	return s.stats
}
