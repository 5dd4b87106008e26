package extract

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"gipcrawl/pkg/models"
)

// listStrategy handles listing pages rendered as a plain ul inside the list
// container.
type listStrategy struct {
	docs DocumentGetter
	log  *logrus.Entry
}

func (s *listStrategy) Name() string { return "list" }

func (s *listStrategy) Matches(doc *goquery.Document) bool {
	return doc.Find(listSelector).Length() > 0
}

func (s *listStrategy) Extract(ctx context.Context, _ *goquery.Document, pageURL string) ([]models.Link, error) {
	doc, err := fetchUnpaginated(ctx, s.docs, pageURL)
	if err != nil {
		return nil, err
	}

	var links []models.Link
	doc.Find(listSelector).First().Find("a").Each(func(_ int, anchor *goquery.Selection) {
		href, _ := anchor.Attr("href")
		linkURL, err := resolveHref(pageURL, href)
		if err != nil {
			s.log.Warnf("Skipping list item with bad href %q: %v", href, err)
			return
		}
		links = append(links, models.Link{
			Name: anchor.Text(),
			URL:  linkURL,
		})
	})
	return links, nil
}
