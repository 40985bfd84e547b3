package fetch

import (
	"context"
	"fmt"

	"github.com/okian/clubrecords/internal/domain/model"
)

// Result is what one job produced. Warnings are record-scoped problems that
// did not stop the page from being read.
type Result struct {
	Fields   []model.Fields
	Warnings []error
}

// Fetcher downloads and parses the page of a job.
type Fetcher struct {
	client *Client
}

// NewFetcher wraps client.
func NewFetcher(client *Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch requests job's page and parses it with the site's parser.
func (f *Fetcher) Fetch(ctx context.Context, job Job) (Result, error) {
	page, err := f.client.Get(ctx, job.Site, job.URL, job.Query)
	if err != nil {
		return Result{}, err
	}

	var res Result
	switch job.Site {
	case SitePowerOf10:
		res.Fields, res.Warnings = ParsePowerOf10(page, job)
	case SiteRunbritain:
		res.Fields, res.Warnings = ParseRunbritain(page, job)
	default:
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownSite, job.Site)
	}
	return res, nil
}
