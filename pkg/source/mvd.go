package source

import (
	"context"

	"github.com/umputun/newsbot/pkg/domain"
)

// MVD fetches news of the interior ministry. Unlike other sources a missing news block is a failure.
type MVD struct {
	scraper
	url string
}

// ID returns source id
func (m *MVD) ID() domain.SourceID { return domain.AgencyC }

// Fetch loads the news list, follows the first item and extracts its title and text
func (m *MVD) Fetch(ctx context.Context) (*domain.NewsItem, error) {
	list, err := m.load(ctx, m.url)
	if err != nil {
		return nil, err
	}

	block := list.doc.Find("div.b-news-holder").First()
	if block.Length() == 0 {
		return nil, permanentf("mvd news block not found on %s", m.url)
	}
	link := href(block.Find("div.sl-item-title a[href]"))
	if link == "" {
		return nil, permanentf("mvd news link not found on %s", m.url)
	}
	articleURL, err := list.resolve(link)
	if err != nil {
		return nil, permanentf("mvd news link: %w", err)
	}

	article, err := m.load(ctx, articleURL)
	if err != nil {
		return nil, err
	}
	title := clean(article.doc.Find("div.ln-content.wrapper.clearfix h1").First().Text())
	if title == "" {
		return nil, permanentf("mvd title not found on %s", articleURL)
	}
	body := joinText(article.doc.Find("div.article").First().Find("p"))
	if body == "" {
		body = article.mainText()
	}

	return &domain.NewsItem{Title: title, Body: body, URL: articleURL}, nil
}
