package fetch

import (
	"strconv"

	"github.com/okian/clubrecords/internal/domain/catalog"
)

// Site identifies a ranking site.
type Site int

const (
	// SitePowerOf10 is thepowerof10.info.
	SitePowerOf10 Site = iota
	// SiteRunbritain is runbritainrankings.com.
	SiteRunbritain
)

func (s Site) String() string {
	switch s {
	case SitePowerOf10:
		return "po10"
	case SiteRunbritain:
		return "runbritain"
	default:
		return "unknown"
	}
}

const (
	powerOf10RankingsPath  = "/rankings/rankinglists.aspx"
	runbritainRankingsPath = "/rankings/rankinglist.aspx"
)

// Job is one page request. Event is only set for Runbritain, whose pages
// list a single event.
type Job struct {
	Site     Site   `json:"site"`
	Root     string `json:"root"`
	URL      string `json:"url"`
	Query    Query  `json:"query"`
	Year     int    `json:"year"`
	Gender   string `json:"gender"`
	Category string `json:"category"`
	Event    string `json:"event,omitempty"`
}

// Key is the cache key of the job's request.
func (j Job) Key() string {
	return CacheKey(j.URL, j.Query)
}

// PlanConfig selects which pages a run requests.
type PlanConfig struct {
	ClubID        int
	FirstYear     int
	LastYear      int
	PowerOf10     bool
	Runbritain    bool
	PowerOf10URL  string
	RunbritainURL string
}

// Plan lists every request of a run: per year and gender, one Po10 page per
// Po10 category, then one Runbritain page per Runbritain event and category.
// Runbritain categories with an age range are queried by age because the
// site misses results when queried by category name.
func Plan(cfg PlanConfig, c *catalog.Catalog) []Job {
	var jobs []Job
	club := strconv.Itoa(cfg.ClubID)

	for year := cfg.FirstYear; year <= cfg.LastYear; year++ {
		y := strconv.Itoa(year)
		for _, gender := range catalog.Genders {
			if cfg.PowerOf10 {
				for _, category := range c.PowerOf10Categories() {
					jobs = append(jobs, Job{
						Site: SitePowerOf10,
						Root: cfg.PowerOf10URL,
						URL:  cfg.PowerOf10URL + powerOf10RankingsPath,
						Query: Query{}.
							Add("clubid", club).
							Add("agegroups", category).
							Add("sex", gender).
							Add("year", y).
							Add("firstclaimonly", "y").
							Add("limits", "n"),
						Year:     year,
						Gender:   gender,
						Category: category,
					})
				}
			}
			if cfg.Runbritain {
				for _, event := range c.RunbritainEvents() {
					for _, category := range c.Categories() {
						q := Query{}.
							Add("clubid", club).
							Add("sex", gender).
							Add("year", y).
							Add("event", event.Code).
							Add("limit", "n")
						if category.ByName() {
							q = q.Add("agegroup", category.Name)
						} else {
							q = q.Add("agemin", strconv.Itoa(category.MinAge)).
								Add("agemax", strconv.Itoa(category.MaxAge))
						}
						jobs = append(jobs, Job{
							Site:     SiteRunbritain,
							Root:     cfg.RunbritainURL,
							URL:      cfg.RunbritainURL + runbritainRankingsPath,
							Query:    q,
							Year:     year,
							Gender:   gender,
							Category: category.Name,
							Event:    event.Code,
						})
					}
				}
			}
		}
	}
	return jobs
}
