package repository

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/unirank/unirank/internal/domain/model"
)

func rec(name string, year int, display string, country string) model.Record {
	rank, ranked := model.ParseRank(display)
	return model.Record{
		University:  name,
		Year:        year,
		Rank:        rank,
		RankDisplay: display,
		Ranked:      ranked,
		Country:     model.Country{Code: "XX", Name: country},
		Scores:      map[model.Metric]float64{model.MetricOverall: 50},
	}
}

func TestNewTableStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a set of records across two years", t, func() {
		records := []model.Record{
			rec("Beta University", 2025, "2", "Freedonia"),
			rec("Alpha University", 2025, "1", "Freedonia"),
			rec("Gamma Institute", 2025, "601-650", "Sylvania"),
			rec("Delta College", 2025, "-", "Sylvania"),
			rec("Alpha University", 2024, "3", "Freedonia"),
		}

		Convey("When the store is built", func() {
			store, err := NewTableStore(ctx, records, WithMetricsUpdates(false))
			So(err, ShouldBeNil)

			Convey("Then years are ascending and the latest is known", func() {
				So(store.Years(ctx), ShouldResemble, []int{2024, 2025})
				latest, ok := store.Latest(ctx)
				So(ok, ShouldBeTrue)
				So(latest, ShouldEqual, 2025)
			})

			Convey("Then per-year rows are in rank order with unranked last", func() {
				rows := store.ForYear(ctx, 2025)
				So(rows, ShouldHaveLength, 4)
				So(rows[0].University, ShouldEqual, "Alpha University")
				So(rows[1].University, ShouldEqual, "Beta University")
				So(rows[2].University, ShouldEqual, "Gamma Institute")
				So(rows[3].University, ShouldEqual, "Delta College")
			})

			Convey("Then dataset order is preserved for the full scan", func() {
				all := store.Records(ctx)
				So(all, ShouldHaveLength, 5)
				So(all[0].University, ShouldEqual, "Beta University")
				So(all[4].Year, ShouldEqual, 2024)
			})

			Convey("Then stats count distinct universities and countries", func() {
				stats := store.Stats(ctx)
				So(stats.Records, ShouldEqual, 5)
				So(stats.Universities, ShouldEqual, 4)
				So(stats.Years, ShouldEqual, 2)
				So(stats.Countries, ShouldEqual, 2)
			})

			Convey("Then HasYear answers for both present and absent years", func() {
				So(store.HasYear(ctx, 2024), ShouldBeTrue)
				So(store.HasYear(ctx, 2099), ShouldBeFalse)
			})
		})

		Convey("When a duplicate university-year pair is present", func() {
			withDup := append(records, rec("alpha university", 2025, "7", "Freedonia"))
			_, err := NewTableStore(ctx, withDup, WithMetricsUpdates(false))
			So(errors.Is(err, ErrDuplicateRecord), ShouldBeTrue)
		})
	})

	Convey("Given no records", t, func() {
		_, err := NewTableStore(ctx, nil, WithMetricsUpdates(false))
		So(errors.Is(err, ErrEmptyDataset), ShouldBeTrue)
	})

	Convey("Given records with tied ranks", t, func() {
		records := []model.Record{
			rec("First Listed", 2025, "=12", "Freedonia"),
			rec("Second Listed", 2025, "=12", "Freedonia"),
		}
		store, err := NewTableStore(ctx, records, WithMetricsUpdates(false))
		So(err, ShouldBeNil)

		Convey("Then the tie keeps dataset order", func() {
			rows := store.ForYear(ctx, 2025)
			So(rows[0].University, ShouldEqual, "First Listed")
			So(rows[1].University, ShouldEqual, "Second Listed")
		})
	})
}
