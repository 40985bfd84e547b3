package score_test

import (
	"errors"
	"testing"

	"github.com/okian/clubrecords/internal/domain/score"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given performance strings in the formats seen on ranking pages", t, func() {
		cases := []struct {
			raw    string
			value  float64
			places int
		}{
			{"1:28.37", 88.37, 2},
			{"2:17:23", 8243, 0},
			{"4.85", 4.85, 2},
			{"10.5", 10.5, 1},
			{"6m 26.5s", 386.5, 1},
			{"3min 17.76s", 197.76, 2},
			{"5678pts", 5678, 0},
			{"1;02.3", 62.3, 1},
			{"  12.04  ", 12.04, 2},
		}

		for _, c := range cases {
			res, err := score.Normalize(c.raw)
			So(err, ShouldBeNil)
			So(res.Value, ShouldAlmostEqual, c.value, 1e-9)
			So(res.DecimalPlaces, ShouldEqual, c.places)
			So(res.Invalid, ShouldBeFalse)
			So(res.OriginalSpecial, ShouldBeEmpty)
		}
	})

	Convey("Given the same time written with and without minutes", t, func() {
		a, errA := score.Normalize("1:28.37")
		b, errB := score.Normalize("88.37")

		Convey("Then both normalize to the identical float", func() {
			So(errA, ShouldBeNil)
			So(errB, ShouldBeNil)
			So(a.Value == b.Value, ShouldBeTrue)
		})
	})

	Convey("Given an explicit invalid marker", t, func() {
		res, err := score.Normalize("2:05.0 invalid")

		Convey("Then the score is parsed from the prefix and flagged invalid", func() {
			So(err, ShouldBeNil)
			So(res.Invalid, ShouldBeTrue)
			So(res.Value, ShouldAlmostEqual, 125.0, 1e-9)
			So(res.DecimalPlaces, ShouldEqual, 1)
			So(res.OriginalSpecial, ShouldBeEmpty)
		})
	})

	Convey("Given a wind-assisted annotation", t, func() {
		res, err := score.Normalize("10.21w (+2.3)")

		Convey("Then the numeric prefix is kept and the text preserved verbatim", func() {
			So(err, ShouldBeNil)
			So(res.Value, ShouldAlmostEqual, 10.21, 1e-9)
			So(res.DecimalPlaces, ShouldEqual, 2)
			So(res.OriginalSpecial, ShouldEqual, "10.21w (+2.3)")
		})
	})

	Convey("Given an invalid marker next to non-ASCII text whose case forms differ in length", t, func() {
		Convey("Then the marker is stripped without corrupting the residue", func() {
			res, err := score.Normalize("1:02.3 ȺȺȺ invalid")
			So(err, ShouldBeNil)
			So(res.Invalid, ShouldBeTrue)
			So(res.Value, ShouldAlmostEqual, 62.3, 1e-9)
			So(res.OriginalSpecial, ShouldEqual, "1:02.3 ȺȺȺ")

			res, err = score.Normalize("59.9 \u212a\u212a\u212a INVALID")
			So(err, ShouldBeNil)
			So(res.Invalid, ShouldBeTrue)
			So(res.Value, ShouldAlmostEqual, 59.9, 1e-9)
			So(res.OriginalSpecial, ShouldEqual, "59.9 \u212a\u212a\u212a")
		})

		Convey("Then a missing numeric prefix is an error, not a crash", func() {
			So(func() { _, _ = score.Normalize("ȺȺ invalid") }, ShouldNotPanic)
			_, err := score.Normalize("ȺȺ invalid")
			So(errors.Is(err, score.ErrUnparseableScore), ShouldBeTrue)
		})
	})

	Convey("Given a points unit that is not at the end", t, func() {
		res, err := score.Normalize("1pts2")

		Convey("Then it is treated as residue rather than removed", func() {
			So(err, ShouldBeNil)
			So(res.Value, ShouldAlmostEqual, 1, 1e-9)
			So(res.OriginalSpecial, ShouldEqual, "1pts2")
		})
	})

	Convey("Given strings without a usable numeric prefix", t, func() {
		for _, raw := range []string{"", "DNF", "1::02", "1.2.3", "invalid", ":30"} {
			_, err := score.Normalize(raw)
			So(errors.Is(err, score.ErrUnparseableScore), ShouldBeTrue)
		}
	})
}

func TestFormat(t *testing.T) {
	Convey("Given normalized values", t, func() {
		So(score.Format(88.37, 2, 2), ShouldEqual, "1:28.37")
		So(score.Format(8243, 3, 0), ShouldEqual, "2:17:23")
		So(score.Format(7523.4, 3, 1), ShouldEqual, "2:05:23.4")
		So(score.Format(10.5, 1, 1), ShouldEqual, "10.5")
		So(score.Format(6.04, 1, 2), ShouldEqual, "6.04")
		So(score.Format(65, 2, 0), ShouldEqual, "1:05")
		So(score.Format(62.3, 2, 1), ShouldEqual, "1:02.3")
		So(score.Format(5678, 1, 0), ShouldEqual, "5678")
	})

	Convey("Given a value that rounds up into the next minute", t, func() {
		So(score.Format(119.999, 2, 2), ShouldEqual, "2:00.00")
	})

	Convey("Given more than three decimal places", t, func() {
		So(score.Format(10.12345, 1, 5), ShouldEqual, "10.123")
	})

	Convey("Given any two-component score with two decimal places", t, func() {
		for _, s := range []float64{60.01, 75.5, 88.37, 119.99, 599.09, 3599.99} {
			text := score.Format(s, 2, 2)
			res, err := score.Normalize(text)

			So(err, ShouldBeNil)
			So(res.Value, ShouldAlmostEqual, s, 1e-9)
			So(res.DecimalPlaces, ShouldEqual, 2)
		}
	})
}
