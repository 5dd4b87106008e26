package extract

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"gipcrawl/pkg/models"
)

// albumStrategy handles thumbnail-gallery pages. Each image cell carries a
// picture anchor followed by a caption anchor; the caption anchor is the
// one with the usable name, so the last anchor per cell wins.
type albumStrategy struct {
	docs DocumentGetter
	log  *logrus.Entry
}

func (s *albumStrategy) Name() string { return "album" }

func (s *albumStrategy) Matches(doc *goquery.Document) bool {
	return doc.Find(albumItemSelector).Length() > 0
}

func (s *albumStrategy) Extract(ctx context.Context, _ *goquery.Document, pageURL string) ([]models.Link, error) {
	doc, err := fetchUnpaginated(ctx, s.docs, pageURL)
	if err != nil {
		return nil, err
	}

	category := breadcrumbCategory(doc)

	var links []models.Link
	doc.Find(albumSelector).First().Find("div.image").Each(func(_ int, cell *goquery.Selection) {
		anchor := cell.Find("a").Last()
		if anchor.Length() == 0 {
			return
		}
		href, _ := anchor.Attr("href")
		linkURL, err := resolveHref(pageURL, href)
		if err != nil {
			s.log.Warnf("Skipping album cell with bad href %q: %v", href, err)
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
