package source

import (
	"context"
	"strings"

	"github.com/umputun/newsbot/pkg/domain"
)

const printMarker = "Распечатать"

// Genproc fetches news of the prosecutor's office
type Genproc struct {
	scraper
	url string
}

// ID returns source id
func (g *Genproc) ID() domain.SourceID { return domain.AgencyA }

// Fetch loads the news list, follows the first item and extracts its title and text
func (g *Genproc) Fetch(ctx context.Context) (*domain.NewsItem, error) {
	list, err := g.load(ctx, g.url)
	if err != nil {
		return nil, err
	}

	block := list.doc.Find("div.feeds-list__list_body.feeds-list__list_body--carousel").First()
	if block.Length() == 0 {
		return nil, nil // no news block, nothing published
	}
	articleURL, err := list.resolve(href(block.Find("div.feeds-list__list_item a[href]")))
	if err != nil {
		return nil, permanentf("genproc news link: %w", err)
	}

	article, err := g.load(ctx, articleURL)
	if err != nil {
		return nil, err
	}
	wrapper := article.doc.Find("div.wrapper.test-label-enable").First()
	title := clean(wrapper.Find("div.feeds-page__subtitle").First().Text())
	if title == "" {
		return nil, permanentf("genproc title not found on %s", articleURL)
	}

	text := wrapper.Find("div.feeds-page__article_text_block").First().Text()
	text, _, _ = strings.Cut(text, printMarker)
	body := clean(text)
	if body == "" {
		body = article.mainText()
	}

	return &domain.NewsItem{Title: title, Body: body, URL: articleURL}, nil
}
