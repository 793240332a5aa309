package source

import (
	"context"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsbot/pkg/domain"
)

// Sledcom fetches news of the investigative committee, items carry an image
type Sledcom struct {
	scraper
	url    string
	images *Images
}

// ID returns source id
func (s *Sledcom) ID() domain.SourceID { return domain.AgencyB }

// Fetch loads the news list, follows the first item and extracts title, text and image.
// Image download is best-effort, the item is returned without image on any failure.
func (s *Sledcom) Fetch(ctx context.Context) (*domain.NewsItem, error) {
	list, err := s.load(ctx, s.url)
	if err != nil {
		return nil, err
	}

	container := list.doc.Find("div.bl-item.clearfix").First()
	if container.Length() == 0 {
		return nil, nil
	}
	articleURL, err := list.resolve(href(container.Find("a[href]")))
	if err != nil {
		return nil, permanentf("sledcom news link: %w", err)
	}

	article, err := s.load(ctx, articleURL)
	if err != nil {
		return nil, err
	}
	title := clean(article.doc.Find("h1.b-topic.t-h1.m_b4").First().Text())
	if title == "" {
		return nil, permanentf("sledcom title not found on %s", articleURL)
	}
	body := joinText(article.doc.Find("article.c-detail.m_b4").First().Find("p"))
	if body == "" {
		body = article.mainText()
	}

	item := &domain.NewsItem{Title: title, Body: body, URL: articleURL}
	item.ImagePath = s.image(ctx, article)
	return item, nil
}

// image saves the article image and returns its path, empty if there is none or it failed
func (s *Sledcom) image(ctx context.Context, article *page) string {
	if s.images == nil {
		return ""
	}
	src, _ := article.doc.Find("div.news_image.f_left img[src]").First().Attr("src")
	if strings.TrimSpace(src) == "" {
		lgr.Printf("[DEBUG] no image on %s", article.url)
		return ""
	}
	imageURL, err := article.resolve(src)
	if err != nil {
		lgr.Printf("[WARN] bad image link on %s: %v", article.url, err)
		return ""
	}
	path, err := s.images.Save(ctx, s.ID(), imageURL, article.url.String())
	if err != nil {
		lgr.Printf("[WARN] failed to save image for %s: %v", s.ID(), err)
		return ""
	}
	lgr.Printf("[DEBUG] saved image %s for %s", path, s.ID())
	return path
}
