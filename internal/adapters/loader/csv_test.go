package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/unirank/unirank/internal/domain/model"
	"github.com/unirank/unirank/pkg/logger"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const sampleCSV = `University,Country,Year,Rank,Overall_Score,Academic Reputation
Alpha University,United States,2025,1,98.5,99.1
Beta University,uk,2025,=12,87.2,
Gamma Institute,China (Mainland),2025,601-650,,45.0
Delta College,Sylvania,2025,-,,
,United States,2025,5,90.0,
Epsilon University,Germany,2025,1401+,,
`

func TestRead(t *testing.T) {
	ctx := context.Background()

	Convey("Given a CSV with mixed rank formats", t, func() {
		records, err := Read(ctx, strings.NewReader(sampleCSV))
		So(err, ShouldBeNil)

		Convey("Rows without a university name are skipped", func() {
			So(records, ShouldHaveLength, 5)
		})

		Convey("Plain ranks parse as exact positions", func() {
			So(records[0].University, ShouldEqual, "Alpha University")
			So(records[0].Rank, ShouldEqual, 1)
			So(records[0].Ranked, ShouldBeTrue)
			So(records[0].RankDisplay, ShouldEqual, "1")
		})

		Convey("Tied and ranged ranks keep their display form", func() {
			So(records[1].Rank, ShouldEqual, 12)
			So(records[1].RankDisplay, ShouldEqual, "=12")
			So(records[2].Rank, ShouldEqual, 601)
			So(records[2].RankDisplay, ShouldEqual, "601-650")
			So(records[4].Rank, ShouldEqual, 1401)
		})

		Convey("Dash ranks load as unranked", func() {
			So(records[3].Ranked, ShouldBeFalse)
		})

		Convey("Countries are normalized to ISO codes and display names", func() {
			So(records[0].Country.Code, ShouldEqual, "US")
			So(records[0].Country.Name, ShouldEqual, "United States")
			So(records[1].Country.Code, ShouldEqual, "GB")
			So(records[2].Country.Code, ShouldEqual, "CN")
		})

		Convey("Scores populate only present cells", func() {
			overall, ok := records[0].Score(model.MetricOverall)
			So(ok, ShouldBeTrue)
			So(overall, ShouldEqual, 98.5)
			_, ok = records[1].Score(model.MetricAcademicReputation)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a CSV using the Overall alias header", t, func() {
		csv := "University,Country,Year,Rank,Overall\nAlpha University,US,2024,1,95.0\n"
		records, err := Read(ctx, strings.NewReader(csv))
		So(err, ShouldBeNil)
		overall, ok := records[0].Score(model.MetricOverall)
		So(ok, ShouldBeTrue)
		So(overall, ShouldEqual, 95.0)
	})

	Convey("Given a CSV using canonical metric labels", t, func() {
		csv := "University,Country,Year,Rank,Overall Score,Faculty Student Ratio\nAlpha University,US,2024,1,95.0,80.5\n"
		records, err := Read(ctx, strings.NewReader(csv))
		So(err, ShouldBeNil)
		overall, ok := records[0].Score(model.MetricOverall)
		So(ok, ShouldBeTrue)
		So(overall, ShouldEqual, 95.0)
		ratio, ok := records[0].Score(model.MetricFacultyStudent)
		So(ok, ShouldBeTrue)
		So(ratio, ShouldEqual, 80.5)
	})

	Convey("Given a CSV missing the Year column", t, func() {
		csv := "University,Country,Rank\nAlpha University,US,1\n"
		_, err := Read(ctx, strings.NewReader(csv))
		So(errors.Is(err, ErrMissingColumns), ShouldBeTrue)
	})

	Convey("Given an empty reader", t, func() {
		_, err := Read(ctx, strings.NewReader(""))
		So(errors.Is(err, ErrEmptyFile), ShouldBeTrue)
	})

	Convey("Given a header-only file", t, func() {
		_, err := Read(ctx, strings.NewReader("University,Country,Year,Rank\n"))
		So(errors.Is(err, ErrEmptyFile), ShouldBeTrue)
	})
}

func TestLoadCSV(t *testing.T) {
	ctx := context.Background()

	Convey("Given a CSV file on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "rankings.csv")
		So(os.WriteFile(path, []byte(sampleCSV), 0o644), ShouldBeNil)

		records, err := LoadCSV(ctx, path)
		So(err, ShouldBeNil)
		So(records, ShouldHaveLength, 5)
	})

	Convey("Given a missing file", t, func() {
		_, err := LoadCSV(ctx, filepath.Join(t.TempDir(), "absent.csv"))
		So(errors.Is(err, ErrOpenFile), ShouldBeTrue)
	})
}
