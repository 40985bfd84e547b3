package grading_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/clubrecords/internal/domain/catalog"
	"github.com/okian/clubrecords/internal/domain/grading"
	"github.com/okian/clubrecords/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var timeLevels = grading.Levels{70, 65, 60, 55, 50, 45, 40, 35, 30}

func TestInterpolate(t *testing.T) {
	Convey("Given smaller-is-better levels", t, func() {
		Convey("An exact match to levels[i] grades as i+1", func() {
			for i, l := range timeLevels {
				So(grading.Grade(timeLevels, l, true), ShouldAlmostEqual, float64(i+1), 1e-9)
			}
		})

		Convey("A score between two levels interpolates linearly", func() {
			g := grading.Grade(timeLevels, 52.5, true)
			So(g, ShouldAlmostEqual, 4.5, 1e-9)
			So(g, ShouldBeGreaterThan, 4)
			So(g, ShouldBeLessThan, 5)
		})

		Convey("A score slower than level 1 ramps reciprocally toward zero", func() {
			So(grading.Grade(timeLevels, 140, true), ShouldAlmostEqual, 0.5, 1e-9)
			So(grading.Grade(timeLevels, 7000, true), ShouldBeLessThan, 0.011)
			So(grading.Grade(timeLevels, 7000, true), ShouldBeGreaterThan, 0)
		})

		Convey("A score beyond level 9 ramps toward level 10 at the safety margin", func() {
			So(grading.Grade(timeLevels, 30*0.75, true), ShouldAlmostEqual, 10, 1e-9)
			So(grading.Grade(timeLevels, 30*0.875, true), ShouldAlmostEqual, 9.5, 1e-9)
		})

		Convey("A custom margin moves level 10", func() {
			So(grading.Interpolate(timeLevels, 27, true, 0.1), ShouldAlmostEqual, 10, 1e-9)
		})
	})

	Convey("Given larger-is-better levels", t, func() {
		levels := grading.Levels{2, 3, 4, 5, 6, 7, 8, 9, 10}

		Convey("Interpolation follows the same level numbering", func() {
			So(grading.Grade(levels, 2, false), ShouldAlmostEqual, 1, 1e-9)
			So(grading.Grade(levels, 5.5, false), ShouldAlmostEqual, 4.5, 1e-9)
			So(grading.Grade(levels, 10, false), ShouldAlmostEqual, 9, 1e-9)
		})

		Convey("Below level 1 ramps linearly toward zero", func() {
			So(grading.Grade(levels, 1, false), ShouldAlmostEqual, 0.5, 1e-9)
		})

		Convey("Above level 9 ramps toward level 10", func() {
			So(grading.Grade(levels, 12.5, false), ShouldAlmostEqual, 10, 1e-9)
		})
	})
}

const tablesYAML = `
club_pb:
  - event: "800"
    gender: W
    levels: [180, 170, 160, 150, 145, 140, 135, 130, 125]
  - event: "800"
    gender: W
    category: U15
    levels: [200, 190, 180, 170, 165, 160, 155, 150, 145]
age_grade:
  - event: 5K
    gender: M
    standard: 780
    factors:
      35: 1.0
      40: 0.95
      50: 0.9
  - event: LJ
    gender: W
    standard: 7.0
    factors:
      40: 0.9
`

func writeTables(dir, content string) string {
	path := filepath.Join(dir, "grades.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		panic(err)
	}
	return path
}

func perf(f model.Fields) *model.Performance {
	p, err := model.NewPerformance(f)
	if err != nil {
		panic(err)
	}
	return p
}

func TestTables(t *testing.T) {
	Convey("Given tables loaded from YAML", t, func() {
		path := writeTables(t.TempDir(), tablesYAML)
		tables, err := grading.LoadTables([]string{path, ""})
		So(err, ShouldBeNil)

		pb, ag := tables.Len()
		So(pb, ShouldEqual, 2)
		So(ag, ShouldEqual, 2)

		c := catalog.Default()
		ev800, _ := c.Lookup("800")
		ev5k, _ := c.Lookup("5K")
		evLJ, _ := c.Lookup("LJ")

		Convey("Club PB prefers the category table", func() {
			p := perf(model.Fields{Event: "800", Gender: "W", Category: "U15", Performance: "2:30", Name: "A"})
			g, ok := tables.ClubPB(p, ev800)
			So(ok, ShouldBeTrue)
			So(g, ShouldAlmostEqual, 8, 1e-9)
		})

		Convey("Club PB falls back to the open table", func() {
			p := perf(model.Fields{Event: "800", Gender: "W", Category: "V40", Performance: "2:30", Name: "A"})
			g, ok := tables.ClubPB(p, ev800)
			So(ok, ShouldBeTrue)
			So(g, ShouldAlmostEqual, 4, 1e-9)
		})

		Convey("Club PB without a table is absent, not an error", func() {
			p := perf(model.Fields{Event: "800", Gender: "M", Category: "ALL", Performance: "2:30", Name: "A"})
			_, ok := tables.ClubPB(p, ev800)
			So(ok, ShouldBeFalse)
		})

		Convey("Age grade uses the factor at or below the athlete's age", func() {
			p := perf(model.Fields{Event: "5K", Gender: "M", Category: "V40", Performance: "20:00", Name: "B", Age: 43})
			g, ok := tables.AgeGrade(p, ev5k)
			So(ok, ShouldBeTrue)
			So(g, ShouldAlmostEqual, 780/(1200*0.95)*100, 1e-9)
		})

		Convey("Age grade for field events scales distance up", func() {
			p := perf(model.Fields{Event: "LJ", Gender: "W", Category: "V40", Performance: "4.20", Name: "C", Age: 41})
			g, ok := tables.AgeGrade(p, evLJ)
			So(ok, ShouldBeTrue)
			So(g, ShouldAlmostEqual, 4.2/0.9/7.0*100, 1e-9)
		})

		Convey("Age grade needs an age", func() {
			p := perf(model.Fields{Event: "5K", Gender: "M", Category: "ALL", Performance: "20:00", Name: "B"})
			_, ok := tables.AgeGrade(p, ev5k)
			So(ok, ShouldBeFalse)
		})

		Convey("Age grade below the youngest factor is absent", func() {
			p := perf(model.Fields{Event: "5K", Gender: "M", Category: "ALL", Performance: "20:00", Name: "B", Age: 25})
			_, ok := tables.AgeGrade(p, ev5k)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a club PB table with the wrong number of levels", t, func() {
		path := writeTables(t.TempDir(), "club_pb:\n  - event: HJ\n    gender: M\n    levels: [1, 2, 3]\n")
		_, err := grading.LoadTables([]string{path})

		Convey("Then loading fails with ErrInvalidTable", func() {
			So(errors.Is(err, grading.ErrInvalidTable), ShouldBeTrue)
		})
	})

	Convey("Given a missing file", t, func() {
		_, err := grading.LoadTables([]string{filepath.Join(t.TempDir(), "nope.yaml")})

		Convey("Then loading fails with ErrLoadTables", func() {
			So(errors.Is(err, grading.ErrLoadTables), ShouldBeTrue)
		})
	})
}
