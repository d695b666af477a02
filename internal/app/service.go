// Package service implements the query operations over the ranking table.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/unirank/unirank/internal/adapters/repository"
	"github.com/unirank/unirank/internal/domain/country"
	"github.com/unirank/unirank/internal/domain/model"
	"github.com/unirank/unirank/internal/domain/stats"
	"github.com/unirank/unirank/internal/domain/types"
	"github.com/unirank/unirank/pkg/logger"
)

// Default page sizes and caps for the listing operations.
const (
	defaultTopUniversities = 10
	defaultCountryStats    = 20
	defaultCountryScores   = 15
	defaultRankChanges     = 20

	topUniversitiesCap = 100
	maxTopN            = 500

	top100Cutoff        = 100
	summaryTop          = 10
	summaryTopCountries = 5
)

// Movement directions accepted by RankChanges.
const (
	DirectionRise = "rise"
	DirectionFall = "fall"
)

// Service answers read-only queries over an immutable ranking table. All
// operations are safe for concurrent use.
type Service struct {
	store repository.Store
	log   logger.Logger

	topUniversitiesCap int
	maxTopN            int
}

// New constructs a Service over the given store.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:              store,
		log:                logger.Named("service"),
		topUniversitiesCap: topUniversitiesCap,
		maxTopN:            maxTopN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchUniversities finds universities whose name contains keyword,
// case-insensitively. An empty keyword matches every university. A non-zero
// year restricts the search to that year's records.
func (s *Service) SearchUniversities(ctx context.Context, keyword string, year int) (*types.SearchResult, error) {
	kw := strings.ToLower(strings.TrimSpace(keyword))

	rows, err := s.scope(ctx, year)
	if err != nil {
		return nil, err
	}

	type group struct {
		name string
		rows []*model.Record
	}
	byName := make(map[string]*group)
	var order []string
	total := 0
	for _, r := range rows {
		lower := strings.ToLower(r.University)
		if kw != "" && !strings.Contains(lower, kw) {
			continue
		}
		total++
		g, ok := byName[lower]
		if !ok {
			g = &group{name: r.University}
			byName[lower] = g
			order = append(order, lower)
		}
		g.rows = append(g.rows, r)
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := matchRank(order[i], kw), matchRank(order[j], kw)
		if a != b {
			return a < b
		}
		return byName[order[i]].name < byName[order[j]].name
	})

	result := &types.SearchResult{
		Keyword:      strings.TrimSpace(keyword),
		YearFilter:   optionalYear(year),
		TotalMatches: len(order),
		TotalRecords: total,
		Universities: make([]types.UniversityMatch, 0, len(order)),
	}
	for _, key := range order {
		result.Universities = append(result.Universities, buildMatch(byName[key].rows, kw))
	}

	s.log.Debug(ctx, "university search",
		logger.String("keyword", kw),
		logger.Int("matches", len(order)))
	return result, nil
}

func matchRank(name, kw string) int {
	switch {
	case kw == "" || name == kw:
		return 0
	case strings.HasPrefix(name, kw):
		return 1
	default:
		return 2
	}
}

func buildMatch(rows []*model.Record, kw string) types.UniversityMatch {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })

	m := types.UniversityMatch{
		Name:    rows[0].University,
		Country: rows[0].Country,
		Years:   make([]types.YearEntry, 0, len(rows)),
	}
	switch matchRank(strings.ToLower(m.Name), kw) {
	case 0:
		m.MatchType = types.MatchExact
	case 1:
		m.MatchType = types.MatchPrefix
	default:
		m.MatchType = types.MatchPartial
	}

	var rankedSeries []int
	for _, r := range rows {
		entry := types.YearEntry{
			Year:        r.Year,
			RankDisplay: r.RankDisplay,
			Ranked:      r.Ranked,
			Scores:      roundedScores(r),
		}
		if r.Ranked {
			entry.Rank = r.Rank
			rankedSeries = append(rankedSeries, r.Rank)
			m.Completeness.YearsWithRank++
		}
		if len(entry.Scores) > 0 {
			m.Completeness.YearsWithScore++
		}
		m.Years = append(m.Years, entry)
	}
	m.Completeness.TotalYears = len(m.Years)

	if len(rankedSeries) >= 2 {
		diff := rankedSeries[0] - rankedSeries[len(rankedSeries)-1]
		trend := &types.Trend{Change: diff}
		switch {
		case diff > 0:
			trend.Direction = types.TrendUp
		case diff < 0:
			trend.Direction = types.TrendDown
			trend.Change = -diff
		default:
			trend.Direction = types.TrendStable
		}
		m.Trend = trend
	}
	return m
}

// TopUniversities lists a year's best-ranked universities, optionally
// restricted to one country. topN defaults to 10 and is capped at 100; a
// filter matching fewer rows than topN is not an error.
func (s *Service) TopUniversities(ctx context.Context, year int, countryQuery string, topN int) (*types.TopResult, error) {
	n, err := clampTopN(topN, defaultTopUniversities, s.topUniversitiesCap)
	if err != nil {
		return nil, err
	}
	rows, err := s.yearRows(ctx, year)
	if err != nil {
		return nil, err
	}

	result := &types.TopResult{
		Year:         year,
		TopN:         n,
		Universities: make([]types.TopEntry, 0, n),
	}

	for _, r := range rows {
		if !r.Ranked {
			continue
		}
		if countryQuery != "" && !country.Matches(r.Country, countryQuery) {
			continue
		}
		if result.CountryFilter == nil && countryQuery != "" {
			c := r.Country
			result.CountryFilter = &c
		}
		result.TotalRanked++
		if len(result.Universities) < n {
			result.Universities = append(result.Universities, types.TopEntry{
				Rank:        r.Rank,
				RankDisplay: r.RankDisplay,
				Name:        r.University,
				Country:     r.Country,
				Scores:      roundedScores(r),
			})
		}
	}
	return result, nil
}

// CountryStats breaks a year's universities down by country, ordered by
// university count. topN defaults to 20 and is capped at 500.
func (s *Service) CountryStats(ctx context.Context, year, topN int) (*types.CountryStatsResult, error) {
	n, err := clampTopN(topN, defaultCountryStats, s.maxTopN)
	if err != nil {
		return nil, err
	}
	rows, err := s.yearRows(ctx, year)
	if err != nil {
		return nil, err
	}

	groups := groupByCountry(rows)
	names := sortedCountries(groups, func(a, b *countryGroup) bool {
		if len(a.rows) != len(b.rows) {
			return len(a.rows) > len(b.rows)
		}
		return a.country.Name < b.country.Name
	})

	result := &types.CountryStatsResult{
		Year:              year,
		TopN:              n,
		TotalUniversities: len(rows),
		TotalCountries:    len(groups),
	}
	for _, g := range groups {
		result.TotalRanked += g.ranked
	}
	for i, name := range names {
		if i == n {
			break
		}
		g := groups[name]
		result.Countries = append(result.Countries, types.CountryCount{
			Position: i + 1,
			Country:  g.country,
			Total:    len(g.rows),
			Ranked:   g.ranked,
			Unranked: len(g.rows) - g.ranked,
			Share:    stats.Round2(float64(len(g.rows)) / float64(len(rows)) * 100),
		})
	}
	return result, nil
}

// CountryScores compares countries by their universities' overall scores for
// one year. Countries without any scored, ranked university are excluded.
// topN defaults to 15 and is capped at 500.
func (s *Service) CountryScores(ctx context.Context, year, topN int) (*types.CountryScoresResult, error) {
	n, err := clampTopN(topN, defaultCountryScores, s.maxTopN)
	if err != nil {
		return nil, err
	}
	rows, err := s.yearRows(ctx, year)
	if err != nil {
		return nil, err
	}

	groups := groupByCountry(scored(ranked(rows)))

	// One Describe per group; the sort below compares the precomputed means.
	type scoredGroup struct {
		mean  float64
		entry types.CountryScore
	}
	entries := make([]scoredGroup, 0, len(groups))
	for _, g := range groups {
		scores := overallScores(g.rows)
		summary, ok := stats.Describe(scores)
		if !ok {
			continue
		}
		best := g.rows[0].Rank
		for _, r := range g.rows {
			if r.Rank < best {
				best = r.Rank
			}
		}
		deviation, _ := stats.StdDev(scores)
		entries = append(entries, scoredGroup{
			mean: summary.Mean,
			entry: types.CountryScore{
				Country:      g.country,
				Average:      stats.Round2(summary.Mean),
				Maximum:      stats.Round2(summary.Max),
				Minimum:      stats.Round2(summary.Min),
				StdDeviation: stats.Round2(deviation),
				Universities: len(g.rows),
				BestRank:     best,
			},
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].mean != entries[j].mean {
			return entries[i].mean > entries[j].mean
		}
		return entries[i].entry.Country.Name < entries[j].entry.Country.Name
	})

	result := &types.CountryScoresResult{
		Year:           year,
		TopN:           n,
		TotalCountries: len(entries),
	}
	for i, e := range entries {
		if i == n {
			break
		}
		e.entry.Position = i + 1
		result.Countries = append(result.Countries, e.entry)
	}
	return result, nil
}

// RankChanges lists universities by rank movement between year-1 and year.
// Movement is previous rank minus current rank, so positive values are
// rises. Direction "rise" orders by movement descending with names breaking
// ties; "fall" returns the same comparable set in exactly the reverse
// order. topN defaults to 20 and is capped at 500.
func (s *Service) RankChanges(ctx context.Context, year, topN int, direction string) (*types.RankChangesResult, error) {
	if direction == "" {
		direction = DirectionRise
	}
	if direction != DirectionRise && direction != DirectionFall {
		return nil, fmt.Errorf("%w: direction %q (want %q or %q)",
			ErrInvalidArgument, direction, DirectionRise, DirectionFall)
	}
	n, err := clampTopN(topN, defaultRankChanges, s.maxTopN)
	if err != nil {
		return nil, err
	}

	curr, err := s.yearRows(ctx, year)
	if err != nil {
		return nil, err
	}
	prevYear := year - 1
	prev, err := s.yearRows(ctx, prevYear)
	if err != nil {
		return nil, err
	}

	prevRanks := make(map[string]int, len(prev))
	for _, r := range prev {
		if r.Ranked {
			prevRanks[strings.ToLower(r.University)] = r.Rank
		}
	}

	var changes []types.RankChange
	for _, r := range curr {
		if !r.Ranked {
			continue
		}
		prevRank, ok := prevRanks[strings.ToLower(r.University)]
		if !ok {
			continue
		}
		changes = append(changes, types.RankChange{
			Name:         r.University,
			Country:      r.Country,
			PreviousRank: prevRank,
			CurrentRank:  r.Rank,
			Change:       prevRank - r.Rank,
		})
	}

	sort.SliceStable(changes, func(i, j int) bool {
		if changes[i].Change != changes[j].Change {
			return changes[i].Change > changes[j].Change
		}
		return changes[i].Name < changes[j].Name
	})
	if direction == DirectionFall {
		for i, j := 0, len(changes)-1; i < j; i, j = i+1, j-1 {
			changes[i], changes[j] = changes[j], changes[i]
		}
	}

	result := &types.RankChangesResult{
		Year:            year,
		CompareYear:     prevYear,
		Direction:       direction,
		TotalComparable: len(changes),
	}
	if len(changes) > n {
		changes = changes[:n]
	}
	for i := range changes {
		changes[i].Position = i + 1
	}
	result.Universities = changes
	return result, nil
}

// Top100Distribution breaks a year's top-100 universities down by country.
func (s *Service) Top100Distribution(ctx context.Context, year int) (*types.DistributionResult, error) {
	rows, err := s.yearRows(ctx, year)
	if err != nil {
		return nil, err
	}

	var top []*model.Record
	for _, r := range rows {
		if r.Ranked && r.Rank <= top100Cutoff {
			top = append(top, r)
		}
	}

	groups := groupByCountry(top)
	names := sortedCountries(groups, func(a, b *countryGroup) bool {
		if len(a.rows) != len(b.rows) {
			return len(a.rows) > len(b.rows)
		}
		return a.country.Name < b.country.Name
	})

	result := &types.DistributionResult{
		Year:              year,
		TotalUniversities: len(top),
		TotalCountries:    len(groups),
		Distribution:      make([]types.DistributionEntry, 0, len(names)),
	}
	for _, name := range names {
		g := groups[name]
		best := g.rows[0].Rank
		for _, r := range g.rows {
			if r.Rank < best {
				best = r.Rank
			}
		}
		result.Distribution = append(result.Distribution, types.DistributionEntry{
			Country:    g.country,
			Count:      len(g.rows),
			Percentage: stats.Round1(float64(len(g.rows)) / float64(len(top)) * 100),
			BestRank:   best,
		})
	}
	return result, nil
}

// Summary reports a year's headline numbers: totals, the ten best-ranked
// universities, the five largest countries, overall-score statistics, and a
// comparison with the preceding year when that year is present.
func (s *Service) Summary(ctx context.Context, year int) (*types.SummaryResult, error) {
	rows, err := s.yearRows(ctx, year)
	if err != nil {
		return nil, err
	}

	groups := groupByCountry(rows)
	result := &types.SummaryResult{
		Year:              year,
		TotalUniversities: len(rows),
		Countries:         len(groups),
	}

	for _, r := range rows {
		if !r.Ranked {
			continue
		}
		result.RankedUniversities++
		if len(result.TopUniversities) < summaryTop {
			result.TopUniversities = append(result.TopUniversities, types.SummaryUniversity{
				Rank:    r.Rank,
				Name:    r.University,
				Country: r.Country,
			})
		}
	}

	names := sortedCountries(groups, func(a, b *countryGroup) bool {
		if len(a.rows) != len(b.rows) {
			return len(a.rows) > len(b.rows)
		}
		return a.country.Name < b.country.Name
	})
	for i, name := range names {
		if i == summaryTopCountries {
			break
		}
		g := groups[name]
		result.TopCountries = append(result.TopCountries, types.SummaryCountry{
			Country: g.country,
			Count:   len(g.rows),
			Share:   stats.Round1(float64(len(g.rows)) / float64(len(rows)) * 100),
		})
	}

	summary, ok := stats.Describe(overallScores(rows))
	if ok {
		rounded := summary
		rounded.Mean = stats.Round1(summary.Mean)
		rounded.Median = stats.Round1(summary.Median)
		result.Scores = &rounded
	}

	if prev := s.store.ForYear(ctx, year-1); len(prev) > 0 {
		cmp := &types.Comparison{
			PreviousYear: year - 1,
			TotalChange:  len(rows) - len(prev),
		}
		prevRanked := 0
		for _, r := range prev {
			if r.Ranked {
				prevRanked++
			}
		}
		cmp.RankedChange = result.RankedUniversities - prevRanked
		if prevMean, prevOK := stats.Mean(overallScores(prev)); ok && prevOK {
			cmp.MeanScoreDelta = stats.Round1(summary.Mean - prevMean)
		}
		result.Comparison = cmp
	}
	return result, nil
}

// ListYears reports the dataset's years in ascending order with per-year
// coverage counters.
func (s *Service) ListYears(ctx context.Context) (*types.YearsResult, error) {
	years := s.store.Years(ctx)
	latest, ok := s.store.Latest(ctx)
	if !ok {
		return nil, ErrYearNotFound
	}

	result := &types.YearsResult{
		Years:      years,
		Count:      len(years),
		Earliest:   years[0],
		Latest:     latest,
		Statistics: make([]types.YearStats, 0, len(years)),
	}
	for _, y := range years {
		rows := s.store.ForYear(ctx, y)
		ys := types.YearStats{Year: y, Total: len(rows)}
		countries := make(map[string]struct{})
		for _, r := range rows {
			if r.Ranked {
				ys.Ranked++
			}
			if r.Country.Name != "" {
				countries[r.Country.Name] = struct{}{}
			}
		}
		ys.Unranked = ys.Total - ys.Ranked
		ys.Countries = len(countries)
		if ys.Total > 0 {
			ys.Coverage = stats.Round1(float64(ys.Ranked) / float64(ys.Total) * 100)
		}
		result.Statistics = append(result.Statistics, ys)
	}
	return result, nil
}

// ListCountries reports the distinct countries in the dataset, or in one
// year when a non-zero year is given, sorted by display name.
func (s *Service) ListCountries(ctx context.Context, year int) (*types.CountriesResult, error) {
	rows, err := s.scope(ctx, year)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]model.Country)
	for _, r := range rows {
		if r.Country.Name == "" {
			continue
		}
		seen[r.Country.Name] = r.Country
	}

	result := &types.CountriesResult{
		YearFilter: optionalYear(year),
		Count:      len(seen),
		Countries:  make([]model.Country, 0, len(seen)),
	}
	for _, c := range seen {
		result.Countries = append(result.Countries, c)
	}
	sort.Slice(result.Countries, func(i, j int) bool {
		return result.Countries[i].Name < result.Countries[j].Name
	})
	return result, nil
}

// scope returns all records, or one year's records when year is non-zero.
func (s *Service) scope(ctx context.Context, year int) ([]*model.Record, error) {
	if year == 0 {
		return s.store.Records(ctx), nil
	}
	return s.yearRows(ctx, year)
}

func (s *Service) yearRows(ctx context.Context, year int) ([]*model.Record, error) {
	if !s.store.HasYear(ctx, year) {
		return nil, fmt.Errorf("%w: %d (available: %v)", ErrYearNotFound, year, s.store.Years(ctx))
	}
	return s.store.ForYear(ctx, year), nil
}

// clampTopN resolves a requested page size: zero means the default,
// negatives are rejected, and values above the limit come back as the limit.
func clampTopN(n, def, limit int) (int, error) {
	switch {
	case n == 0:
		return def, nil
	case n < 0:
		return 0, fmt.Errorf("%w: top_n must be positive, got %d", ErrInvalidArgument, n)
	case n > limit:
		return limit, nil
	default:
		return n, nil
	}
}

type countryGroup struct {
	country model.Country
	rows    []*model.Record
	ranked  int
}

func groupByCountry(rows []*model.Record) map[string]*countryGroup {
	groups := make(map[string]*countryGroup)
	for _, r := range rows {
		if r.Country.Name == "" {
			continue
		}
		g, ok := groups[r.Country.Name]
		if !ok {
			g = &countryGroup{country: r.Country}
			groups[r.Country.Name] = g
		}
		g.rows = append(g.rows, r)
		if r.Ranked {
			g.ranked++
		}
	}
	return groups
}

func sortedCountries(groups map[string]*countryGroup, less func(a, b *countryGroup) bool) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return less(groups[names[i]], groups[names[j]])
	})
	return names
}

func ranked(rows []*model.Record) []*model.Record {
	out := make([]*model.Record, 0, len(rows))
	for _, r := range rows {
		if r.Ranked {
			out = append(out, r)
		}
	}
	return out
}

func scored(rows []*model.Record) []*model.Record {
	out := make([]*model.Record, 0, len(rows))
	for _, r := range rows {
		if _, ok := r.Overall(); ok {
			out = append(out, r)
		}
	}
	return out
}

func overallScores(rows []*model.Record) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		if v, ok := r.Overall(); ok {
			out = append(out, v)
		}
	}
	return out
}

func roundedScores(r *model.Record) map[model.Metric]float64 {
	if len(r.Scores) == 0 {
		return nil
	}
	out := make(map[model.Metric]float64, len(r.Scores))
	for m, v := range r.Scores {
		out[m] = stats.Round1(v)
	}
	return out
}

func optionalYear(year int) *int {
	if year == 0 {
		return nil
	}
	return &year
}
