package extract

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"gipcrawl/pkg/models"
)

// simpleListStrategy is the catch-all for navigation pages that expose
// their children as a plain node list. Never paginated.
type simpleListStrategy struct {
	log *logrus.Entry
}

func (s *simpleListStrategy) Name() string { return "simple list" }

func (s *simpleListStrategy) Matches(doc *goquery.Document) bool {
	return doc.Find(simpleListSelector).Length() > 0
}

func (s *simpleListStrategy) Extract(_ context.Context, doc *goquery.Document, pageURL string) ([]models.Link, error) {
	var links []models.Link
	doc.Find(simpleListSelector).Each(func(_ int, anchor *goquery.Selection) {
		href, _ := anchor.Attr("href")
		linkURL, err := resolveHref(pageURL, href)
		if err != nil {
			s.log.Warnf("Skipping node link with bad href %q: %v", href, err)
			return
		}
		links = append(links, models.Link{
			Name: anchor.Text(),
			URL:  linkURL,
		})
	})
	return links, nil
}
