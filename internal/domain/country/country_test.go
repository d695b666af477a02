package country_test

import (
	"testing"

	"github.com/unirank/unirank/internal/domain/country"
	"github.com/unirank/unirank/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given raw dataset spellings", t, func() {
		Convey("Then US variants all normalize to one country", func() {
			for _, raw := range []string{"United States", "USA", "United States of America", "America"} {
				c := country.Normalize(raw)
				So(c.Code, ShouldEqual, "US")
				So(c.Name, ShouldEqual, "United States")
			}
		})

		Convey("And code and display name round-trip consistently", func() {
			byCode := country.Normalize("CN")
			byName := country.Normalize("China (Mainland)")
			So(byCode, ShouldResemble, byName)
			So(byCode.Code, ShouldEqual, "CN")
		})

		Convey("And unknown names are kept verbatim with no code", func() {
			c := country.Normalize("Atlantis")
			So(c.Code, ShouldEqual, "")
			So(c.Name, ShouldEqual, "Atlantis")
		})

		Convey("And empty input yields a zero country", func() {
			So(country.Normalize("  "), ShouldResemble, model.Country{})
		})
	})
}

func TestResolve(t *testing.T) {
	Convey("Given lookup queries", t, func() {
		Convey("Then codes resolve case-insensitively", func() {
			code, ok := country.Resolve("cn")
			So(ok, ShouldBeTrue)
			So(code, ShouldEqual, "CN")
		})

		Convey("And aliases resolve", func() {
			for q, want := range map[string]string{
				"uk":        "GB",
				"Britain":   "GB",
				"hongkong":  "HK",
				"Korea":     "KR",
				"Türkiye":   "TR",
				"viet nam":  "VN",
				"Czechia":   "CZ",
				"Singapore": "SG",
			} {
				code, ok := country.Resolve(q)
				So(ok, ShouldBeTrue)
				So(code, ShouldEqual, want)
			}
		})

		Convey("And unknown queries do not resolve", func() {
			_, ok := country.Resolve("Atlantis")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestMatches(t *testing.T) {
	Convey("Given a normalized country", t, func() {
		us := country.Normalize("United States")
		au := country.Normalize("Australia")

		Convey("Then code and name queries both match", func() {
			So(country.Matches(us, "US"), ShouldBeTrue)
			So(country.Matches(us, "united states"), ShouldBeTrue)
			So(country.Matches(us, "USA"), ShouldBeTrue)
		})

		Convey("And a US query never matches Australia", func() {
			// "us" is a substring of "aUStralia"; code resolution must win.
			So(country.Matches(au, "us"), ShouldBeFalse)
			So(country.Matches(au, "united states"), ShouldBeFalse)
		})

		Convey("And unresolvable queries fall back to substring match", func() {
			atlantis := country.Normalize("Greater Atlantis")
			So(country.Matches(atlantis, "atlantis"), ShouldBeTrue)
			So(country.Matches(atlantis, "pacifica"), ShouldBeFalse)
		})
	})
}
