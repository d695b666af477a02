// Package types contains the result shapes returned by the query operations.
package types

import (
	"github.com/unirank/unirank/internal/domain/model"
	"github.com/unirank/unirank/internal/domain/stats"
)

// MatchType classifies how a university name matched a search keyword.
type MatchType string

const (
	MatchExact   MatchType = "exact"
	MatchPrefix  MatchType = "prefix"
	MatchPartial MatchType = "partial"
)

// TrendDirection describes rank movement between a university's first and
// last ranked year.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// Trend summarizes rank movement across a search result's ranked years.
type Trend struct {
	Direction TrendDirection `json:"direction"`
	Change    int            `json:"change"`
}

// Completeness counts how many of a university's years carry ranks and
// scores.
type Completeness struct {
	YearsWithRank  int `json:"years_with_rank"`
	YearsWithScore int `json:"years_with_score"`
	TotalYears     int `json:"total_years"`
}

// YearEntry is one university-year row inside a search result.
type YearEntry struct {
	Year        int                      `json:"year"`
	Rank        int                      `json:"rank,omitempty"`
	RankDisplay string                   `json:"rank_display,omitempty"`
	Ranked      bool                     `json:"ranked"`
	Scores      map[model.Metric]float64 `json:"scores,omitempty"`
}

// UniversityMatch groups a matched university's rows across years.
type UniversityMatch struct {
	Name         string        `json:"name"`
	MatchType    MatchType     `json:"match_type"`
	Country      model.Country `json:"country"`
	Years        []YearEntry   `json:"years"`
	Completeness Completeness  `json:"data_completeness"`
	Trend        *Trend        `json:"trend,omitempty"`
}

// SearchResult is the output of a university search.
type SearchResult struct {
	Keyword      string            `json:"keyword"`
	YearFilter   *int              `json:"year_filter,omitempty"`
	TotalMatches int               `json:"total_matches"`
	TotalRecords int               `json:"total_records"`
	Universities []UniversityMatch `json:"universities"`
}

// TopEntry is one row of a top-N listing.
type TopEntry struct {
	Rank        int                      `json:"rank"`
	RankDisplay string                   `json:"rank_display"`
	Name        string                   `json:"name"`
	Country     model.Country            `json:"country"`
	Scores      map[model.Metric]float64 `json:"scores,omitempty"`
}

// TopResult is the output of a top-N ranking query.
type TopResult struct {
	Year          int            `json:"year"`
	CountryFilter *model.Country `json:"country_filter,omitempty"`
	TopN          int            `json:"top_n"`
	TotalRanked   int            `json:"total_ranked_in_scope"`
	Universities  []TopEntry     `json:"universities"`
}

// CountryCount is one country's row in a count-by-country breakdown.
type CountryCount struct {
	Position int           `json:"position"`
	Country  model.Country `json:"country"`
	Total    int           `json:"total"`
	Ranked   int           `json:"ranked"`
	Unranked int           `json:"unranked"`
	Share    float64       `json:"percentage_of_total"`
}

// CountryStatsResult is the output of a university-count-by-country query.
type CountryStatsResult struct {
	Year              int            `json:"year"`
	TopN              int            `json:"top_n"`
	TotalUniversities int            `json:"total_universities"`
	TotalRanked       int            `json:"total_ranked"`
	TotalCountries    int            `json:"total_countries"`
	Countries         []CountryCount `json:"countries"`
}

// CountryScore is one country's overall-score aggregate row.
type CountryScore struct {
	Position     int           `json:"position"`
	Country      model.Country `json:"country"`
	Average      float64       `json:"average"`
	Maximum      float64       `json:"maximum"`
	Minimum      float64       `json:"minimum"`
	StdDeviation float64       `json:"std_deviation"`
	Universities int           `json:"university_count"`
	BestRank     int           `json:"best_rank"`
}

// CountryScoresResult is the output of a score-by-country comparison.
type CountryScoresResult struct {
	Year           int            `json:"year"`
	TopN           int            `json:"top_n"`
	TotalCountries int            `json:"total_countries_with_scores"`
	Countries      []CountryScore `json:"countries"`
}

// RankChange is one university's year-over-year rank movement. Change is
// previous rank minus current rank, so positive means the university rose.
type RankChange struct {
	Position     int           `json:"position"`
	Name         string        `json:"name"`
	Country      model.Country `json:"country"`
	PreviousRank int           `json:"previous_rank"`
	CurrentRank  int           `json:"current_rank"`
	Change       int           `json:"change"`
}

// RankChangesResult is the output of a rank-movement query.
type RankChangesResult struct {
	Year            int          `json:"year"`
	CompareYear     int          `json:"compare_year"`
	Direction       string       `json:"direction"`
	TotalComparable int          `json:"total_comparable"`
	Universities    []RankChange `json:"universities"`
}

// DistributionEntry is one country's slice of the top-100 population.
type DistributionEntry struct {
	Country    model.Country `json:"country"`
	Count      int           `json:"count"`
	Percentage float64       `json:"percentage"`
	BestRank   int           `json:"best_rank"`
}

// DistributionResult is the output of a top-100 distribution query.
type DistributionResult struct {
	Year              int                 `json:"year"`
	TotalUniversities int                 `json:"total_universities"`
	TotalCountries    int                 `json:"total_countries"`
	Distribution      []DistributionEntry `json:"distribution"`
}

// SummaryUniversity is one of the leading universities in a year summary.
type SummaryUniversity struct {
	Rank    int           `json:"rank"`
	Name    string        `json:"name"`
	Country model.Country `json:"country"`
}

// SummaryCountry is one of the leading countries in a year summary.
type SummaryCountry struct {
	Country model.Country `json:"country"`
	Count   int           `json:"count"`
	Share   float64       `json:"percentage"`
}

// Comparison contrasts a year with the one before it.
type Comparison struct {
	PreviousYear   int     `json:"previous_year"`
	TotalChange    int     `json:"total_change"`
	RankedChange   int     `json:"ranked_change"`
	MeanScoreDelta float64 `json:"mean_score_delta"`
}

// SummaryResult is the output of a year summary query.
type SummaryResult struct {
	Year               int                 `json:"year"`
	TotalUniversities  int                 `json:"total_universities"`
	RankedUniversities int                 `json:"ranked_universities"`
	Countries          int                 `json:"countries"`
	TopUniversities    []SummaryUniversity `json:"top_universities"`
	TopCountries       []SummaryCountry    `json:"top_countries"`
	Scores             *stats.Summary      `json:"scores,omitempty"`
	Comparison         *Comparison         `json:"comparison,omitempty"`
}

// YearStats carries per-year dataset coverage counters.
type YearStats struct {
	Year      int     `json:"year"`
	Total     int     `json:"total_universities"`
	Ranked    int     `json:"ranked_universities"`
	Unranked  int     `json:"unranked_universities"`
	Countries int     `json:"countries_count"`
	Coverage  float64 `json:"ranking_coverage"`
}

// YearsResult is the output of an available-years query. Years ascend.
type YearsResult struct {
	Years      []int       `json:"years"`
	Count      int         `json:"count"`
	Earliest   int         `json:"earliest_year"`
	Latest     int         `json:"latest_year"`
	Statistics []YearStats `json:"year_statistics"`
}

// CountriesResult is the output of a country listing query. Countries are
// sorted by display name.
type CountriesResult struct {
	YearFilter *int            `json:"year_filter,omitempty"`
	Count      int             `json:"count"`
	Countries  []model.Country `json:"countries"`
}
