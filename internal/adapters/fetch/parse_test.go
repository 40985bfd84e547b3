package fetch_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/clubrecords/internal/adapters/fetch"
	"github.com/okian/clubrecords/internal/domain/markup"
	"github.com/okian/clubrecords/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const po10Page = `<html><body>
<table width="100%"><tr><td>
  <table class="nav"><tr><td>menu</td></tr></table>
  <table>
    <tr class="rankinglisttitle"><td colspan="6"><b>800 U20W</b></td></tr>
    <tr class="rankinglistheadings"><td><b>Rank</b></td><td><b>Perf</b></td><td><b>Name</b></td><td><b>Venue</b></td><td><b>Date</b></td></tr>
    <tr class="rlr1"><td>1</td><td>2:08.41</td><td><a href="/athletes/profile.aspx?athleteid=11">Ann Smith</a></td><td><a href="/results/results.aspx?meetingid=7">Oxford</a></td><td>12 Jun 19</td></tr>
    <tr class="rlr2"><td></td><td>2:09.10</td><td></td><td><a href="/results/results.aspx?meetingid=8">Bath</a></td><td>20 Jul 19</td></tr>
    <tr class="rlr1"><td>2</td><td>2:11.0</td><td><a href="/athletes/profile.aspx?athleteid=12">Bea Jones</a></td><td><a href="/results/results.aspx?meetingid=9">Reading</a></td><td>3 Aug 19</td></tr>
    <tr class="rankinglisttitle"><td colspan="6"><b>LJ U20W</b></td></tr>
    <tr class="rankinglistheadings"><td><b>Rank</b></td><td><b>Perf</b></td><td><b>Name</b></td><td><b>Venue</b></td><td><b>Date</b></td></tr>
    <tr class="rlr1"><td>1</td><td>5.81w</td><td><a href="/athletes/profile.aspx?athleteid=13">Cat Brown</a></td><td><a href="/results/results.aspx?meetingid=10">Bedford</a></td><td>1 Jun 19</td></tr>
  </table>
</td></tr></table>
</body></html>`

func TestParsePowerOf10(t *testing.T) {
	Convey("Given a Po10 club rankings page", t, func() {
		job := fetch.Job{Site: fetch.SitePowerOf10, Root: "https://po10.test", Year: 2019, Gender: "W", Category: "U20"}

		fields, warnings := fetch.ParsePowerOf10(po10Page, job)

		Convey("Then every named result row is read with absolute links", func() {
			So(warnings, ShouldBeEmpty)
			want := []model.Fields{
				{
					Event: "800", Category: "U20", Gender: "W", Performance: "2:08.41", Name: "Ann Smith",
					NameURL: "https://po10.test/athletes/profile.aspx?athleteid=11", Date: "12 Jun 19",
					Fixture: "Oxford", FixtureURL: "https://po10.test/results/results.aspx?meetingid=7",
					Source: model.PowerOf10(2019),
				},
				{
					Event: "800", Category: "U20", Gender: "W", Performance: "2:11.0", Name: "Bea Jones",
					NameURL: "https://po10.test/athletes/profile.aspx?athleteid=12", Date: "3 Aug 19",
					Fixture: "Reading", FixtureURL: "https://po10.test/results/results.aspx?meetingid=9",
					Source: model.PowerOf10(2019),
				},
				{
					Event: "LJ", Category: "U20", Gender: "W", Performance: "5.81w", Name: "Cat Brown",
					NameURL: "https://po10.test/athletes/profile.aspx?athleteid=13", Date: "1 Jun 19",
					Fixture: "Bedford", FixtureURL: "https://po10.test/results/results.aspx?meetingid=10",
					Source: model.PowerOf10(2019),
				},
			}
			So(cmp.Diff(want, fields), ShouldBeEmpty)
		})
	})

	Convey("Given a page with a results table left open", t, func() {
		page := `<table><tr><td><table><tr class="rankinglisttitle"><td>100 W</td></tr>`

		fields, warnings := fetch.ParsePowerOf10(page, fetch.Job{})

		Convey("Then a malformed markup warning is returned", func() {
			So(fields, ShouldBeEmpty)
			So(warnings, ShouldNotBeEmpty)
			So(errors.Is(warnings[0], markup.ErrMalformedMarkup), ShouldBeTrue)
		})
	})

	Convey("Given a results table without a Venue heading", t, func() {
		page := `<table><tr><td><table>
<tr class="rankinglisttitle"><td>100 W</td></tr>
<tr class="rankinglistheadings"><td>Perf</td><td>Name</td><td>Date</td></tr>
<tr class="rlr1"><td>12.1</td><td><a href="/a">A</a></td><td>2019</td></tr>
</table></td></tr></table>`

		fields, warnings := fetch.ParsePowerOf10(page, fetch.Job{})

		Convey("Then the table is skipped with a warning", func() {
			So(fields, ShouldBeEmpty)
			So(warnings, ShouldHaveLength, 1)
			So(errors.Is(warnings[0], fetch.ErrNoData), ShouldBeTrue)
		})
	})
}

const runbritainPage = `<html><script type="text/javascript">
var runners =
  [
    ['1', '38:12', '', '38:15', '', '', '<a href="/runners/profile.aspx?runnerid=5">Dan Green</a>', 'V40', '', '<a href="/results/e.aspx?id=3">Thames 10K</a>', '14 Apr 19'],
    ['2', '', '', '41:02', '', '', '<a href="/runners/profile.aspx?runnerid=6">Eve White</a>', 'V45', '', '<a href="/results/e.aspx?id=4">Bath 10K</a>', '5 May 19'],
    ['3', '42:00', '', '42:01', '', '', '', '', '', '<a href="/results/e.aspx?id=4">Bath 10K</a>', '5 May 19']
  ];
</script></html>`

func TestParseRunbritain(t *testing.T) {
	Convey("Given a Runbritain rankings page", t, func() {
		job := fetch.Job{Site: fetch.SiteRunbritain, Root: "https://rb.test", Year: 2019, Gender: "M", Category: "V40", Event: "10K"}

		fields, warnings := fetch.ParseRunbritain(runbritainPage, job)

		Convey("Then named rows are read, falling back to gun time", func() {
			So(warnings, ShouldBeEmpty)
			So(fields, ShouldHaveLength, 2)
			So(fields[0].Performance, ShouldEqual, "38:12")
			So(fields[0].Name, ShouldEqual, "Dan Green")
			So(fields[0].NameURL, ShouldEqual, "https://rb.test/runners/profile.aspx?runnerid=5")
			So(fields[0].Fixture, ShouldEqual, "Thames 10K")
			So(fields[0].Date, ShouldEqual, "14 Apr 19")
			So(fields[0].Event, ShouldEqual, "10K")
			So(fields[0].Source, ShouldResemble, model.Runbritain(2019))
			So(fields[1].Performance, ShouldEqual, "41:02")
		})
	})

	Convey("Given runner names carrying escaped and double-quoted apostrophes", t, func() {
		page := `var runners = [
    ['1', '35:40', '', '35:41', '', '', '<a href="/runners/profile.aspx?runnerid=7">Sean O\'Brien</a>', 'V40', '', '<a href="/results/e.aspx?id=3">Thames 10K</a>', '14 Apr 19'],
    ["2", "36:10", "", "36:12", "", "", "<a href=\"/runners/profile.aspx?runnerid=8\">Ann D'Arcy</a>", "V40", "", "Bath 10K", "5 May 19"]
  ];`

		fields, warnings := fetch.ParseRunbritain(page, fetch.Job{Root: "https://rb.test", Year: 2019})

		Convey("Then every row is kept with the apostrophe intact", func() {
			So(warnings, ShouldBeEmpty)
			So(fields, ShouldHaveLength, 2)
			So(fields[0].Name, ShouldEqual, "Sean O'Brien")
			So(fields[0].Performance, ShouldEqual, "35:40")
			So(fields[1].Name, ShouldEqual, "Ann D'Arcy")
			So(fields[1].NameURL, ShouldEqual, "https://rb.test/runners/profile.aspx?runnerid=8")
			So(fields[1].Fixture, ShouldEqual, "Bath 10K")
		})
	})

	Convey("Given a page without a runners array", t, func() {
		_, warnings := fetch.ParseRunbritain("<html>No rankings</html>", fetch.Job{})

		So(warnings, ShouldHaveLength, 1)
		So(errors.Is(warnings[0], fetch.ErrNoData), ShouldBeTrue)
	})

	Convey("Given an empty runners array", t, func() {
		fields, warnings := fetch.ParseRunbritain("var runners = [];", fetch.Job{})

		So(warnings, ShouldBeEmpty)
		So(fields, ShouldBeEmpty)
	})
}
