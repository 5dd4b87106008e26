package extract

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"gipcrawl/pkg/models"
)

// appendixStrategy handles attachment-list pages. These are never
// paginated, so extraction works on the already-fetched document without a
// second request.
type appendixStrategy struct {
	log *logrus.Entry
}

func (s *appendixStrategy) Name() string { return "appendix" }

func (s *appendixStrategy) Matches(doc *goquery.Document) bool {
	return doc.Find(appendixSelector).Length() > 0
}

func (s *appendixStrategy) Extract(_ context.Context, doc *goquery.Document, pageURL string) ([]models.Link, error) {
	category := breadcrumbCategory(doc)

	var links []models.Link
	doc.Find(appendixLinkSelector).Each(func(_ int, anchor *goquery.Selection) {
		href, _ := anchor.Attr("href")
		linkURL, err := resolveHref(pageURL, href)
		if err != nil {
			s.log.Warnf("Skipping appendix link with bad href %q: %v", href, err)
			return
		}
		links = append(links, models.Link{
			Name:     anchor.Text(),
			URL:      linkURL,
			Category: category,
		})
	})
	return links, nil
}
