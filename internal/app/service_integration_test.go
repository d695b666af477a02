package service_test

import (
	"bytes"
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/unirank/unirank/internal/adapters/loader"
	"github.com/unirank/unirank/internal/adapters/repository"
	service "github.com/unirank/unirank/internal/app"
	"github.com/unirank/unirank/internal/gendata"
	"github.com/unirank/unirank/pkg/logger"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// Generates a synthetic dataset, loads it through the CSV loader, and runs
// the query operations against the resulting table.
func TestServiceIntegration(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service over a generated dataset", t, func() {
		var buf bytes.Buffer
		err := gendata.Generate(ctx, &buf, gendata.Config{
			Years:   []int{2024, 2025, 2026},
			PerYear: 600,
			Seed:    7,
		})
		So(err, ShouldBeNil)

		records, err := loader.Read(ctx, &buf)
		So(err, ShouldBeNil)

		store, err := repository.NewTableStore(ctx, records, repository.WithMetricsUpdates(false))
		So(err, ShouldBeNil)
		svc := service.New(store)

		Convey("The year listing covers the generated years", func() {
			years, err := svc.ListYears(ctx)
			So(err, ShouldBeNil)
			So(years.Years, ShouldResemble, []int{2024, 2025, 2026})
			So(years.Latest, ShouldEqual, 2026)
			for _, ys := range years.Statistics {
				So(ys.Total, ShouldEqual, 600)
				So(ys.Ranked+ys.Unranked, ShouldEqual, ys.Total)
			}
		})

		Convey("Top listings are rank-ordered for every year", func() {
			for _, year := range []int{2024, 2025, 2026} {
				res, err := svc.TopUniversities(ctx, year, "", 100)
				So(err, ShouldBeNil)
				So(len(res.Universities), ShouldBeLessThanOrEqualTo, 100)
				for i := 1; i < len(res.Universities); i++ {
					So(res.Universities[i].Rank, ShouldBeGreaterThanOrEqualTo, res.Universities[i-1].Rank)
				}
			}
		})

		Convey("Country statistics account for every university", func() {
			res, err := svc.CountryStats(ctx, 2026, 500)
			So(err, ShouldBeNil)
			total := 0
			for _, c := range res.Countries {
				total += c.Total
			}
			So(total, ShouldEqual, res.TotalUniversities)
		})

		Convey("Rank movement is symmetric between rise and fall", func() {
			rise, err := svc.RankChanges(ctx, 2026, 500, "rise")
			So(err, ShouldBeNil)
			fall, err := svc.RankChanges(ctx, 2026, 500, "fall")
			So(err, ShouldBeNil)
			So(rise.TotalComparable, ShouldEqual, fall.TotalComparable)
			for i := 1; i < len(rise.Universities); i++ {
				So(rise.Universities[i].Change, ShouldBeLessThanOrEqualTo, rise.Universities[i-1].Change)
			}
			for i := 1; i < len(fall.Universities); i++ {
				So(fall.Universities[i].Change, ShouldBeGreaterThanOrEqualTo, fall.Universities[i-1].Change)
			}
		})

		Convey("The top-100 distribution covers at most one hundred rows", func() {
			res, err := svc.Top100Distribution(ctx, 2025)
			So(err, ShouldBeNil)
			So(res.TotalUniversities, ShouldBeLessThanOrEqualTo, 100)
			count := 0
			for _, d := range res.Distribution {
				count += d.Count
			}
			So(count, ShouldEqual, res.TotalUniversities)
		})

		Convey("Summaries compare consecutive years", func() {
			res, err := svc.Summary(ctx, 2025)
			So(err, ShouldBeNil)
			So(res.Comparison, ShouldNotBeNil)
			So(res.Comparison.PreviousYear, ShouldEqual, 2024)
			So(res.TopUniversities, ShouldHaveLength, 10)
		})
	})
}
