package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	service "github.com/unirank/unirank/internal/app"
	"github.com/unirank/unirank/pkg/logger"
	"github.com/unirank/unirank/pkg/metrics"
)

var errYearRequired = errors.New("year is required")

// instrument wraps a tool handler with per-invocation logging and metrics.
// Every call gets a query ID so concurrent invocations can be told apart in
// the logs.
func (s *Server) instrument(name string, h mcpsrv.ToolHandlerFunc) mcpsrv.ToolHandlerFunc {
	return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		queryID := uuid.NewString()
		start := time.Now()

		s.log.Debug(ctx, "tool call",
			logger.String("tool", name),
			logger.String("query_id", queryID))

		res, err := h(ctx, req)

		elapsed := time.Since(start)
		metrics.RecordToolDuration(name, float64(elapsed.Milliseconds()))

		switch {
		case err != nil:
			metrics.RecordToolInvocation(name, "error")
			metrics.RecordToolError(name, "internal")
			s.log.Error(ctx, "tool call failed",
				logger.String("tool", name),
				logger.String("query_id", queryID),
				logger.Error(err))
		case res != nil && res.IsError:
			metrics.RecordToolInvocation(name, "error")
			s.log.Warn(ctx, "tool call rejected",
				logger.String("tool", name),
				logger.String("query_id", queryID))
		default:
			metrics.RecordToolInvocation(name, "success")
			s.log.Debug(ctx, "tool call done",
				logger.String("tool", name),
				logger.String("query_id", queryID),
				logger.Duration("elapsed", elapsed))
		}
		return res, err
	}
}

// classify records the error against the tool's error counter and returns it
// unchanged for wrapping into the result.
func classify(tool string, err error) error {
	switch {
	case errors.Is(err, service.ErrYearNotFound):
		metrics.RecordToolError(tool, "year_not_found")
	case errors.Is(err, service.ErrInvalidArgument):
		metrics.RecordToolError(tool, "invalid_argument")
	default:
		metrics.RecordToolError(tool, "internal")
	}
	return err
}

func (s *Server) toolSearchUniversity() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_university",
		mcplib.WithDescription(`Search universities by name, case-insensitively.

Matches are grouped per university across all years (or one year when given)
and ordered by match quality: exact name first, then names starting with the
keyword, then names containing it. Each match carries its per-year ranks and
scores, a data-completeness summary, and the rank trend between its first
and last ranked year. An empty keyword matches every university.`),
		mcplib.WithString("keyword",
			mcplib.Description("Full or partial university name, e.g. 'MIT' or 'Peking University'."),
			mcplib.Required(),
		),
		mcplib.WithNumber("year",
			mcplib.Description("Restrict the search to one ranking year."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.instrument("search_university", s.handleSearchUniversity)}
}

func (s *Server) handleSearchUniversity(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	keyword, _ := stringArg(req, "keyword")
	year := intArg(req, "year", 0)

	res, err := s.svc.SearchUniversities(ctx, keyword, year)
	if err != nil {
		return resultErr(classify("search_university", err)), nil
	}
	return resultJSON(res)
}

func (s *Server) toolTopUniversities() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_top_universities",
		mcplib.WithDescription(`List a year's best-ranked universities, optionally for one country.

Results are in rank order. The country accepts an ISO 3166-1 alpha-2 code
(CN, US, GB), a full name, or a common alias. A country with fewer
universities than top_n returns all it has.`),
		mcplib.WithNumber("year",
			mcplib.Description("Ranking year, e.g. 2025."),
			mcplib.Required(),
		),
		mcplib.WithString("country",
			mcplib.Description("Country ISO code or name, e.g. 'CN' or 'United States'."),
		),
		mcplib.WithNumber("top_n",
			mcplib.Description("Number of universities to return (default 10, at most 100)."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.instrument("get_top_universities", s.handleTopUniversities)}
}

func (s *Server) handleTopUniversities(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	year := intArg(req, "year", 0)
	if year == 0 {
		return resultErr(errYearRequired), nil
	}
	countryQuery, _ := stringArg(req, "country")
	topN := intArg(req, "top_n", 0)

	res, err := s.svc.TopUniversities(ctx, year, countryQuery, topN)
	if err != nil {
		return resultErr(classify("get_top_universities", err)), nil
	}
	return resultJSON(res)
}

func (s *Server) toolCountryStats() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_country_stats",
		mcplib.WithDescription(`Break a year's universities down by country.

Countries are ordered by university count and carry total, ranked, and
unranked counts plus their share of the year's population.`),
		mcplib.WithNumber("year",
			mcplib.Description("Ranking year, e.g. 2025."),
			mcplib.Required(),
		),
		mcplib.WithNumber("top_n",
			mcplib.Description("Number of countries to return (default 20, at most 500)."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.instrument("get_country_stats", s.handleCountryStats)}
}

func (s *Server) handleCountryStats(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	year := intArg(req, "year", 0)
	if year == 0 {
		return resultErr(errYearRequired), nil
	}

	res, err := s.svc.CountryStats(ctx, year, intArg(req, "top_n", 0))
	if err != nil {
		return resultErr(classify("get_country_stats", err)), nil
	}
	return resultJSON(res)
}

func (s *Server) toolCountryScores() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_country_scores",
		mcplib.WithDescription(`Compare countries by their universities' overall scores in one year.

Countries are ordered by average overall score and carry average, maximum,
minimum, and standard-deviation scores, the number of scored universities,
and the country's best rank. Countries without any scored university are
excluded.`),
		mcplib.WithNumber("year",
			mcplib.Description("Ranking year, e.g. 2025."),
			mcplib.Required(),
		),
		mcplib.WithNumber("top_n",
			mcplib.Description("Number of countries to return (default 15, at most 500)."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.instrument("get_country_scores", s.handleCountryScores)}
}

func (s *Server) handleCountryScores(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	year := intArg(req, "year", 0)
	if year == 0 {
		return resultErr(errYearRequired), nil
	}

	res, err := s.svc.CountryScores(ctx, year, intArg(req, "top_n", 0))
	if err != nil {
		return resultErr(classify("get_country_scores", err)), nil
	}
	return resultJSON(res)
}

func (s *Server) toolRankChanges() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_rank_changes",
		mcplib.WithDescription(`List universities by rank movement between a year and the year before.

A positive change means the university rose. direction 'rise' orders by
movement descending; 'fall' returns the same comparable set in exactly the
reverse order. Only universities numerically ranked in both years are
compared. Both years must exist in the dataset.`),
		mcplib.WithNumber("year",
			mcplib.Description("Ranking year to compare against its predecessor, e.g. 2025."),
			mcplib.Required(),
		),
		mcplib.WithNumber("top_n",
			mcplib.Description("Number of universities to return (default 20, at most 500)."),
		),
		mcplib.WithString("direction",
			mcplib.Description("Movement direction: 'rise' or 'fall' (default 'rise')."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.instrument("get_rank_changes", s.handleRankChanges)}
}

func (s *Server) handleRankChanges(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	year := intArg(req, "year", 0)
	if year == 0 {
		return resultErr(errYearRequired), nil
	}
	direction, _ := stringArg(req, "direction")

	res, err := s.svc.RankChanges(ctx, year, intArg(req, "top_n", 0), direction)
	if err != nil {
		return resultErr(classify("get_rank_changes", err)), nil
	}
	return resultJSON(res)
}

func (s *Server) toolTop100Distribution() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_top100_distribution",
		mcplib.WithDescription(`Show which countries a year's top-100 universities come from.

Countries are ordered by their count of top-100 universities and carry the
count, the percentage of the top-100 population, and the country's best
rank.`),
		mcplib.WithNumber("year",
			mcplib.Description("Ranking year, e.g. 2025."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.instrument("get_top100_distribution", s.handleTop100Distribution)}
}

func (s *Server) handleTop100Distribution(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	year := intArg(req, "year", 0)
	if year == 0 {
		return resultErr(errYearRequired), nil
	}

	res, err := s.svc.Top100Distribution(ctx, year)
	if err != nil {
		return resultErr(classify("get_top100_distribution", err)), nil
	}
	return resultJSON(res)
}

func (s *Server) toolSummary() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_summary",
		mcplib.WithDescription(`Fetch a year's headline numbers in one call.

Includes total and ranked university counts, the number of countries, the
ten best-ranked universities, the five largest countries, overall-score
statistics, and a comparison with the preceding year when it exists.`),
		mcplib.WithNumber("year",
			mcplib.Description("Ranking year, e.g. 2025."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.instrument("get_summary", s.handleSummary)}
}

func (s *Server) handleSummary(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	year := intArg(req, "year", 0)
	if year == 0 {
		return resultErr(errYearRequired), nil
	}

	res, err := s.svc.Summary(ctx, year)
	if err != nil {
		return resultErr(classify("get_summary", err)), nil
	}
	return resultJSON(res)
}

func (s *Server) toolListYears() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_available_years",
		mcplib.WithDescription(`List the ranking years in the dataset, ascending.

Each year carries its total, ranked, and unranked university counts, the
number of countries, and the ranking coverage percentage. Takes no
arguments.`),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.instrument("list_available_years", s.handleListYears)}
}

func (s *Server) handleListYears(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	res, err := s.svc.ListYears(ctx)
	if err != nil {
		return resultErr(classify("list_available_years", err)), nil
	}
	return resultJSON(res)
}

func (s *Server) toolListCountries() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_countries",
		mcplib.WithDescription(`List the countries present in the dataset with ISO codes and display
names, sorted by name. A year restricts the listing to that year's records.`),
		mcplib.WithNumber("year",
			mcplib.Description("Restrict the listing to one ranking year."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.instrument("list_countries", s.handleListCountries)}
}

func (s *Server) handleListCountries(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	res, err := s.svc.ListCountries(ctx, intArg(req, "year", 0))
	if err != nil {
		return resultErr(classify("list_countries", err)), nil
	}
	return resultJSON(res)
}
