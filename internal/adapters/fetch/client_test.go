package fetch_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/okian/clubrecords/internal/adapters/fetch"
	"github.com/okian/clubrecords/internal/domain/catalog"
	"github.com/okian/clubrecords/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = logger.Init(logger.WithWriter(io.Discard))
}

func TestQuery(t *testing.T) {
	q := fetch.Query{}.Add("clubid", "238").Add("agegroups", "ALL").Add("sex", "W")

	assert.Equal(t, "clubid=238&agegroups=ALL&sex=W", q.Encode())
	assert.Equal(t, "https://x.test/r.aspx?clubid=238&agegroups=ALL&sex=W&", fetch.CacheKey("https://x.test/r.aspx", q))
	assert.Equal(t, "name=a+b%26c", fetch.Query{}.Add("name", "a b&c").Encode())
}

func TestClientGet(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotUA = r.UserAgent()
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, "<html>ok</html>")
	}))
	defer srv.Close()

	c := fetch.NewClient(fetch.WithTimeout(time.Second), fetch.WithDelay(0), fetch.WithUserAgent("test-agent"))
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		body, err := c.Get(ctx, fetch.SitePowerOf10, srv.URL+"/page", fetch.Query{}.Add("year", "2019").Add("sex", "M"))
		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", body)
		assert.Equal(t, "year=2019&sex=M", gotQuery)
		assert.Equal(t, "test-agent", gotUA)
	})

	t.Run("non-200", func(t *testing.T) {
		_, err := c.Get(ctx, fetch.SiteRunbritain, srv.URL+"/missing", nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, fetch.ErrHTTPStatus))
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("cancelled during delay", func(t *testing.T) {
		slow := fetch.NewClient(fetch.WithDelay(time.Hour))
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := slow.Get(cctx, fetch.SitePowerOf10, srv.URL, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClientDelayIsShared(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()

	const (
		delay    = 40 * time.Millisecond
		requests = 4
	)
	c := fetch.NewClient(fetch.WithDelay(delay))

	start := time.Now()
	var wg sync.WaitGroup
	errs := make(chan error, requests)
	for range requests {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Get(context.Background(), fetch.SitePowerOf10, srv.URL, nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), requests*delay)
}

func TestFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, runbritainPage)
	}))
	defer srv.Close()

	f := fetch.NewFetcher(fetch.NewClient(fetch.WithDelay(0)))
	job := fetch.Job{Site: fetch.SiteRunbritain, Root: srv.URL, URL: srv.URL + "/rankings/rankinglist.aspx", Year: 2019, Gender: "M", Category: "ALL", Event: "10K"}

	res, err := f.Fetch(context.Background(), job)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	require.Len(t, res.Fields, 2)
	assert.Equal(t, srv.URL+"/runners/profile.aspx?runnerid=5", res.Fields[0].NameURL)

	_, err = f.Fetch(context.Background(), fetch.Job{Site: fetch.Site(9), URL: srv.URL})
	assert.ErrorIs(t, err, fetch.ErrUnknownSite)
}

func TestPlan(t *testing.T) {
	c := catalog.Default()
	cfg := fetch.PlanConfig{
		ClubID: 238, FirstYear: 2018, LastYear: 2019,
		PowerOf10: true, Runbritain: true,
		PowerOf10URL: "https://po10.test", RunbritainURL: "https://rb.test",
	}

	jobs := fetch.Plan(cfg, c)

	perYearGender := len(c.PowerOf10Categories()) + len(c.RunbritainEvents())*len(c.Categories())
	assert.Len(t, jobs, 2*2*perYearGender)

	first := jobs[0]
	assert.Equal(t, fetch.SitePowerOf10, first.Site)
	assert.Equal(t, 2018, first.Year)
	assert.Equal(t, "W", first.Gender)
	assert.Equal(t, "https://po10.test/rankings/rankinglists.aspx?clubid=238&agegroups=ALL&sex=W&year=2018&firstclaimonly=y&limits=n&", first.Key())

	var byName, byAge int
	for _, j := range jobs {
		if j.Site != fetch.SiteRunbritain {
			continue
		}
		assert.NotEmpty(t, j.Event)
		switch j.Query[len(j.Query)-1].Key {
		case "agegroup":
			byName++
		case "agemax":
			byAge++
			if j.Category == "V50" {
				assert.Equal(t, fetch.Param{Key: "agemin", Value: "50"}, j.Query[len(j.Query)-2])
			}
		}
	}
	assert.Positive(t, byName)
	assert.Positive(t, byAge)

	t.Run("po10 only", func(t *testing.T) {
		cfg.Runbritain = false
		jobs := fetch.Plan(cfg, c)
		assert.Len(t, jobs, 2*2*len(c.PowerOf10Categories()))
	})
}
