package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html/charset"
)

const maxPageBytes = 4 << 20 // 4 MiB

// page is a downloaded and parsed html document
type page struct {
	url  *url.URL
	html []byte // utf-8 decoded
	doc  *goquery.Document
}

// scraper holds what every fetcher needs to load pages
type scraper struct {
	client    HTTPClient
	userAgent string
	headers   map[string]string
}

// load downloads the page and parses it. Failures are classified as FetchError.
func (s *scraper) load(ctx context.Context, pageURL string) (*page, error) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, permanentf("invalid url %q", pageURL)
	}

	resp, err := s.client.Get(ctx, u.String(), browserHeaders(s.userAgent, s.headers))
	if err != nil {
		return nil, transientf("load %s: %w", u, err)
	}
	if err := checkStatus(resp.StatusCode(), u.String()); err != nil {
		return nil, err
	}

	body := resp.Body()
	if len(body) > maxPageBytes {
		lgr.Printf("[DEBUG] page %s truncated from %d to %d bytes", u, len(body), maxPageBytes)
		body = body[:maxPageBytes]
	}

	decoded, err := decode(body, resp.Header().Get("Content-Type"))
	if err != nil {
		return nil, permanentf("decode %s: %w", u, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(decoded))
	if err != nil {
		return nil, permanentf("parse %s: %w", u, err)
	}
	return &page{url: u, html: decoded, doc: doc}, nil
}

// checkStatus classifies http status, server errors and throttling are worth a retry
func checkStatus(code int, pageURL string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusTooManyRequests || code >= 500:
		return transientf("load %s: unexpected status %d", pageURL, code)
	default:
		return permanentf("load %s: unexpected status %d", pageURL, code)
	}
}

// decode converts the page to utf-8 using content type and meta tags
func decode(body []byte, contentType string) ([]byte, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, fmt.Errorf("charset reader: %w", err)
	}
	res, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read decoded: %w", err)
	}
	return res, nil
}

// resolve makes an absolute url from a link found on the page
func (p *page) resolve(link string) (string, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", fmt.Errorf("empty link")
	}
	ref, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse link %q: %w", link, err)
	}
	return p.url.ResolveReference(ref).String(), nil
}

// mainText extracts article text with trafilatura, used when the article selector finds nothing
func (p *page) mainText() string {
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		IncludeImages:   false,
		IncludeLinks:    false,
		Deduplicate:     true,
		OriginalURL:     p.url,
	}
	result, err := trafilatura.Extract(bytes.NewReader(p.html), opts)
	if err != nil || result == nil {
		lgr.Printf("[DEBUG] no main content extracted from %s: %v", p.url, err)
		return ""
	}
	return clean(result.ContentText)
}

// clean collapses any whitespace runs to single spaces
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// joinText joins non-empty cleaned texts of the selection with a space
func joinText(sel *goquery.Selection) string {
	parts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		if txt := clean(s.Text()); txt != "" {
			parts = append(parts, txt)
		}
	})
	return strings.Join(parts, " ")
}

// href returns trimmed href of the first element in selection
func href(sel *goquery.Selection) string {
	v, _ := sel.First().Attr("href")
	return strings.TrimSpace(v)
}
