package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/unirank/unirank/internal/gendata"
	"github.com/unirank/unirank/pkg/logger"
)

const (
	defaultPerYear = 1500
	defaultSeed    = 1
)

func main() {
	var (
		out     = flag.String("out", "rankings.csv", "Output CSV file")
		years   = flag.String("years", "2024,2025,2026", "Comma-separated ranking years to generate")
		perYear = flag.Int("per-year", defaultPerYear, "Universities per year")
		seed    = flag.Int64("seed", defaultSeed, "PRNG seed; the same seed yields the same file")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	yearList, err := parseYears(*years)
	if err != nil {
		os.Stderr.WriteString("invalid -years: " + err.Error() + "\n")
		os.Exit(1)
	}

	cfg := gendata.Config{
		Years:      yearList,
		PerYear:    *perYear,
		Seed:       *seed,
		OutputFile: *out,
	}
	if err := gendata.Run(context.Background(), cfg); err != nil {
		os.Stderr.WriteString("generation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func parseYears(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	years := make([]int, 0, len(parts))
	for _, p := range parts {
		y, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, nil
}
