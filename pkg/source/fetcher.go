// Package source extracts the latest news item from the monitored agency pages.
// Each fetcher returns (nil, nil) when the page has no current item, and a *FetchError
// telling transient failures from permanent ones otherwise.
package source

import (
	"context"
	"fmt"

	"github.com/umputun/newsbot/pkg/domain"
)

// Fetcher extracts the latest item of a single source
type Fetcher interface {
	ID() domain.SourceID
	Fetch(ctx context.Context) (*domain.NewsItem, error)
}

// Params are shared by all fetchers
type Params struct {
	Client    HTTPClient
	URL       string            // news list page
	Headers   map[string]string // extra request headers
	UserAgent string
	Images    *Images // used by sources carrying images, nil disables downloads
}

// New makes the fetcher for the given source
func New(id domain.SourceID, p Params) (Fetcher, error) {
	if p.Client == nil {
		return nil, fmt.Errorf("http client is required for %s", id)
	}
	if p.URL == "" {
		return nil, fmt.Errorf("url is required for %s", id)
	}
	s := scraper{client: p.Client, userAgent: p.UserAgent, headers: p.Headers}
	switch id {
	case domain.AgencyA:
		return &Genproc{scraper: s, url: p.URL}, nil
	case domain.AgencyB:
		return &Sledcom{scraper: s, url: p.URL, images: p.Images}, nil
	case domain.AgencyC:
		return &MVD{scraper: s, url: p.URL}, nil
	}
	return nil, fmt.Errorf("unknown source %q", id)
}
