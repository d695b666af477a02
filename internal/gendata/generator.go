// Package gendata produces deterministic synthetic ranking CSV files for
// local runs and load testing.
package gendata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"

	"github.com/unirank/unirank/pkg/logger"
)

// Config holds generation parameters. The same seed always yields the same
// file, so fixtures stay reproducible.
type Config struct {
	Years      []int  // ranking years to emit
	PerYear    int    // universities per year
	Seed       int64  // PRNG seed
	OutputFile string // destination path
}

// Rank bands: exact ranks up to 500, then ranges of 50, then one open band.
const (
	exactRankLimit = 500
	rangeWidth     = 50
	openBandStart  = 1401
)

var namePrefixes = []string{
	"National", "Imperial", "Royal", "Central", "Federal", "Technical",
	"Metropolitan", "Pacific", "Northern", "Southern", "Eastern", "Western",
}

var nameStems = []string{
	"Arcadia", "Brookfield", "Caldera", "Dunmore", "Eastvale", "Fairhaven",
	"Glenwood", "Halloran", "Ironbridge", "Jarrow", "Kingsmead", "Larkspur",
	"Meridian", "Northgate", "Oakhurst", "Penrose", "Quarry Hill", "Ravenswood",
	"Silverlake", "Thornbury", "Umberton", "Valemont", "Westbrook", "Yarrowfield",
}

var nameSuffixes = []string{
	"University", "Institute of Technology", "University of Science",
	"Polytechnic University", "State University",
}

// Country codes weighted roughly like real ranking tables: a few large
// systems and a long tail.
var countryPool = []string{
	"US", "US", "US", "US", "GB", "GB", "GB", "CN", "CN", "CN",
	"DE", "DE", "AU", "AU", "JP", "JP", "FR", "KR", "CA", "IN",
	"IT", "ES", "NL", "CH", "SE", "BR", "MY", "HK", "SG", "TW",
}

// Generate writes a synthetic ranking CSV to w.
func Generate(ctx context.Context, w io.Writer, cfg Config) error {
	if cfg.PerYear < 1 || len(cfg.Years) == 0 {
		return fmt.Errorf("generate: need at least one year and one university per year")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	// One stable roster shared by all years so year-over-year joins exist.
	names := make([]string, cfg.PerYear)
	countries := make([]string, cfg.PerYear)
	seen := make(map[string]struct{}, cfg.PerYear)
	for i := range names {
		for {
			name := fmt.Sprintf("%s %s %s",
				namePrefixes[rng.Intn(len(namePrefixes))],
				nameStems[rng.Intn(len(nameStems))],
				nameSuffixes[rng.Intn(len(nameSuffixes))])
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				names[i] = name
				break
			}
		}
		countries[i] = countryPool[rng.Intn(len(countryPool))]
	}

	cw := csv.NewWriter(w)
	header := []string{"University", "Country", "Year", "Rank", "Overall_Score", "Academic Reputation", "Employer Reputation"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("generate: writing header: %w", err)
	}

	for _, year := range cfg.Years {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		// Shuffle positions each year so ranks move between years.
		order := rng.Perm(cfg.PerYear)
		for pos, idx := range order {
			row := []string{
				names[idx],
				countries[idx],
				strconv.Itoa(year),
				rankDisplay(rng, pos+1),
				overallScore(rng, pos+1, cfg.PerYear),
				indicatorScore(rng),
				indicatorScore(rng),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("generate: writing row: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("generate: flushing: %w", err)
	}
	return nil
}

// Run generates the configured CSV file on disk.
func Run(ctx context.Context, cfg Config) error {
	log := logger.Named("gendata")
	f, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("gendata: %w", err)
	}
	defer f.Close()

	if err := Generate(ctx, f, cfg); err != nil {
		return err
	}
	log.Info(ctx, "synthetic dataset written",
		logger.String("path", cfg.OutputFile),
		logger.Int("years", len(cfg.Years)),
		logger.Int("per_year", cfg.PerYear))
	return nil
}

// rankDisplay renders a position the way published tables do: exact up to
// 500, tied now and then, banded beyond 500, open-ended past 1400, and the
// occasional unranked row.
func rankDisplay(rng *rand.Rand, pos int) string {
	switch {
	case rng.Intn(40) == 0:
		return "-"
	case pos >= openBandStart:
		return strconv.Itoa(openBandStart) + "+"
	case pos > exactRankLimit:
		start := ((pos-exactRankLimit-1)/rangeWidth)*rangeWidth + exactRankLimit + 1
		return fmt.Sprintf("%d-%d", start, start+rangeWidth-1)
	case rng.Intn(12) == 0:
		return "=" + strconv.Itoa(pos)
	default:
		return strconv.Itoa(pos)
	}
}

// overallScore falls off with position, with some noise; rows past the
// exact-rank band lose their score as real tables do.
func overallScore(rng *rand.Rand, pos, total int) string {
	if pos > exactRankLimit {
		return ""
	}
	base := 100.0 - 75.0*float64(pos)/float64(total)
	noise := rng.Float64()*4 - 2
	v := base + noise
	if v < 1 {
		v = 1
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func indicatorScore(rng *rand.Rand) string {
	if rng.Intn(5) == 0 {
		return ""
	}
	return strconv.FormatFloat(1+rng.Float64()*99, 'f', 1, 64)
}
