package leaderboard_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/okian/clubrecords/internal/domain/leaderboard"
	"github.com/okian/clubrecords/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func newPerf(name, performance string, src model.Source) *model.Performance {
	p, err := model.NewPerformance(model.Fields{
		Event:       "400",
		Category:    "ALL",
		Gender:      "M",
		Performance: performance,
		Name:        name,
		Source:      src,
	})
	if err != nil {
		panic(err)
	}
	return p
}

func values(b *leaderboard.Board) []float64 {
	var out []float64
	for _, g := range b.Groups() {
		out = append(out, g.Value)
	}
	return out
}

func key() leaderboard.Key {
	return leaderboard.Key{Kind: leaderboard.KindRecord, Category: "ALL", Event: "400", Gender: "M"}
}

func TestInsertCapacity(t *testing.T) {
	Convey("Given a smaller-is-better board of capacity 3", t, func() {
		b := leaderboard.NewBoard(key(), true, 3, nil)

		Convey("When inserting 50, 48, 52, 47, 49 for distinct athletes", func() {
			for i, s := range []string{"50", "48", "52", "47", "49"} {
				b.Insert(newPerf(fmt.Sprintf("athlete %d", i), s, model.PowerOf10(2020)))
			}

			Convey("Then the board keeps 47, 48, 49", func() {
				So(values(b), ShouldResemble, []float64{47, 48, 49})
			})
		})

		Convey("When the board is full", func() {
			for i, s := range []string{"47", "48", "49"} {
				b.Insert(newPerf(fmt.Sprintf("athlete %d", i), s, model.PowerOf10(2020)))
			}

			Convey("Then a worse score is rejected", func() {
				So(b.Insert(newPerf("late", "49.5", model.PowerOf10(2020))), ShouldEqual, leaderboard.OutcomeRejected)
				So(b.Len(), ShouldEqual, 3)
			})

			Convey("Then a tie with the cutoff is admitted", func() {
				So(b.Insert(newPerf("tie", "49", model.PowerOf10(2020))), ShouldEqual, leaderboard.OutcomeTied)
				groups := b.Groups()
				So(groups[2].Members, ShouldHaveLength, 2)
			})
		})
	})

	Convey("Given a larger-is-better board", t, func() {
		b := leaderboard.NewBoard(key(), false, 2, nil)
		for i, s := range []string{"5.10", "6.20", "5.90"} {
			b.Insert(newPerf(fmt.Sprintf("thrower %d", i), s, model.PowerOf10(2020)))
		}

		Convey("Then groups are in descending order", func() {
			So(values(b), ShouldResemble, []float64{6.2, 5.9})
		})
	})
}

func TestInsertSources(t *testing.T) {
	Convey("Given the same result from Po10 and Runbritain", t, func() {
		po10 := newPerf("Ann Smith", "60.00", model.PowerOf10(2019))
		rb := newPerf("ann smith", "60.00", model.Runbritain(2019))

		Convey("When Po10 arrives first", func() {
			b := leaderboard.NewBoard(key(), true, 10, nil)
			So(b.Insert(po10), ShouldEqual, leaderboard.OutcomeAdded)
			So(b.Insert(rb), ShouldEqual, leaderboard.OutcomeDuplicate)

			Convey("Then only the Po10 entry is kept", func() {
				groups := b.Groups()
				So(groups, ShouldHaveLength, 1)
				So(groups[0].Members, ShouldResemble, []*model.Performance{po10})
			})
		})

		Convey("When Runbritain arrives first", func() {
			b := leaderboard.NewBoard(key(), true, 10, nil)
			So(b.Insert(rb), ShouldEqual, leaderboard.OutcomeAdded)
			So(b.Insert(po10), ShouldEqual, leaderboard.OutcomeUpgraded)

			Convey("Then the Po10 entry replaces it", func() {
				groups := b.Groups()
				So(groups, ShouldHaveLength, 1)
				So(groups[0].Members, ShouldResemble, []*model.Performance{po10})
			})
		})
	})

	Convey("Given two entries from sources of equal precedence", t, func() {
		b := leaderboard.NewBoard(key(), true, 10, nil)
		first := newPerf("Ann Smith", "60.00", model.File("a.xlsx:Track"))
		second := newPerf("Ann Smith", "60.00", model.File("b.xlsx:Track"))

		b.Insert(first)

		Convey("Then the newcomer is discarded", func() {
			So(b.Insert(second), ShouldEqual, leaderboard.OutcomeDuplicate)
			So(b.Groups()[0].Members[0], ShouldEqual, first)
		})
	})
}

func TestInsertRetraction(t *testing.T) {
	Convey("Given a listed result", t, func() {
		b := leaderboard.NewBoard(key(), true, 10, nil)
		b.Insert(newPerf("Ann Smith", "60.00", model.PowerOf10(2019)))
		b.Insert(newPerf("Bea Jones", "61.00", model.PowerOf10(2019)))

		Convey("When an invalid marker for the same athlete and score arrives", func() {
			out := b.Insert(newPerf("Ann Smith", "60.00 invalid", model.File("fixes.xlsx:Sheet1")))

			Convey("Then the result is retracted and its empty group removed", func() {
				So(out, ShouldEqual, leaderboard.OutcomeRetracted)
				So(values(b), ShouldResemble, []float64{61})
			})
		})

		Convey("When an invalid marker matches nothing", func() {
			out := b.Insert(newPerf("Cat Brown", "59.00 invalid", model.File("fixes.xlsx:Sheet1")))

			Convey("Then nothing changes", func() {
				So(out, ShouldEqual, leaderboard.OutcomeIgnored)
				So(values(b), ShouldResemble, []float64{60, 61})
			})
		})
	})
}

func TestInsertSingleRank(t *testing.T) {
	Convey("Given an athlete already on the board", t, func() {
		b := leaderboard.NewBoard(key(), true, 10, nil)
		b.Insert(newPerf("Ann Smith", "62.00", model.PowerOf10(2018)))
		b.Insert(newPerf("Bea Jones", "61.00", model.PowerOf10(2018)))

		Convey("When they improve", func() {
			So(b.Insert(newPerf("Ann Smith", "60.00", model.PowerOf10(2019))), ShouldEqual, leaderboard.OutcomeAdded)

			Convey("Then the older, worse rank is removed", func() {
				So(values(b), ShouldResemble, []float64{60, 61})
			})
		})

		Convey("When they record a worse result", func() {
			So(b.Insert(newPerf("Ann Smith", "63.00", model.PowerOf10(2019))), ShouldEqual, leaderboard.OutcomeRejected)

			Convey("Then the board is unchanged", func() {
				So(values(b), ShouldResemble, []float64{61, 62})
			})
		})

		Convey("When they tie someone else with a worse result", func() {
			b.Insert(newPerf("Cat Brown", "64.00", model.PowerOf10(2019)))
			So(b.Insert(newPerf("Ann Smith", "64.00", model.PowerOf10(2019))), ShouldEqual, leaderboard.OutcomeRejected)

			Convey("Then they keep only their best rank", func() {
				groups := b.Groups()
				So(groups, ShouldHaveLength, 3)
				So(groups[2].Members, ShouldHaveLength, 1)
				So(groups[2].Members[0].Name(), ShouldEqual, "Cat Brown")
			})
		})
	})
}

func TestInsertInvariants(t *testing.T) {
	Convey("Given random insertion sequences", t, func() {
		rng := rand.New(rand.NewSource(7))
		sources := []model.Source{model.PowerOf10(2020), model.Runbritain(2020), model.File("f.xlsx:S")}

		for run := 0; run < 50; run++ {
			capacity := 1 + rng.Intn(5)
			smaller := rng.Intn(2) == 0
			b := leaderboard.NewBoard(key(), smaller, capacity, nil)

			for i := 0; i < 40; i++ {
				name := fmt.Sprintf("athlete %d", rng.Intn(8))
				perf := fmt.Sprintf("%d.%d", 50+rng.Intn(10), rng.Intn(2)*5)
				b.Insert(newPerf(name, perf, sources[rng.Intn(len(sources))]))

				So(b.Len(), ShouldBeLessThanOrEqualTo, capacity)

				seen := map[string]bool{}
				groups := b.Groups()
				for gi, g := range groups {
					So(g.Members, ShouldNotBeEmpty)
					for _, m := range g.Members {
						So(seen[m.Athlete()], ShouldBeFalse)
						seen[m.Athlete()] = true
						So(m.Score(), ShouldEqual, g.Value)
					}
					if gi > 0 {
						if smaller {
							So(g.Value, ShouldBeGreaterThan, groups[gi-1].Value)
						} else {
							So(g.Value, ShouldBeLessThan, groups[gi-1].Value)
						}
					}
				}
			}
		}
	})

	Convey("Given the same performances in every order", t, func() {
		perfs := []*model.Performance{
			newPerf("Ann Smith", "60.00", model.Runbritain(2019)),
			newPerf("Ann Smith", "60.00", model.PowerOf10(2019)),
			newPerf("Ann Smith", "60.00", model.File("f.xlsx:S")),
			newPerf("Bea Jones", "60.00", model.PowerOf10(2019)),
		}
		orders := [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {2, 0, 3, 1}, {1, 3, 0, 2}}

		for _, order := range orders {
			b := leaderboard.NewBoard(key(), true, 3, nil)
			for _, i := range order {
				b.Insert(perfs[i])
			}
			groups := b.Groups()
			So(groups, ShouldHaveLength, 1)
			So(groups[0].Members, ShouldHaveLength, 2)
			So(groups[0].Members, ShouldContain, perfs[1])
			So(groups[0].Members, ShouldContain, perfs[3])
		}
	})
}

func TestOutcomeString(t *testing.T) {
	Convey("Outcomes render as metric labels", t, func() {
		So(leaderboard.OutcomeUpgraded.String(), ShouldEqual, "upgraded")
		So(leaderboard.Outcome(99).String(), ShouldEqual, "unknown")
	})
}
