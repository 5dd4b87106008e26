package extract

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"gipcrawl/pkg/models"
)

// tableStrategy handles listing pages rendered as a table, one row per
// entry. Tables sometimes carry a posting-date column, which is attached to
// each extracted link.
type tableStrategy struct {
	docs DocumentGetter
	log  *logrus.Entry
}

func (s *tableStrategy) Name() string { return "table" }

func (s *tableStrategy) Matches(doc *goquery.Document) bool {
	return doc.Find(tableSelector).Length() > 0
}

func (s *tableStrategy) Extract(ctx context.Context, _ *goquery.Document, pageURL string) ([]models.Link, error) {
	doc, err := fetchUnpaginated(ctx, s.docs, pageURL)
	if err != nil {
		return nil, err
	}

	table := doc.Find(tableSelector).First()

	// Locate the posting-date column, if the table has one.
	dateIndex := -1
	table.Find("th").EachWithBreak(func(i int, th *goquery.Selection) bool {
		if strings.TrimSpace(th.Text()) == postingDateLabel {
			dateIndex = i
			return false
		}
		return true
	})

	category := breadcrumbCategory(doc)

	var links []models.Link
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		anchor := row.Find("a").First()
		if anchor.Length() == 0 {
			return
		}
		href, _ := anchor.Attr("href")
		linkURL, err := resolveHref(pageURL, href)
		if err != nil {
			s.log.Warnf("Skipping table row with bad href %q: %v", href, err)
			return
		}

		link := models.Link{
			Name:     anchor.Text(),
			URL:      linkURL,
			Category: category,
		}
		if dateIndex >= 0 {
			link.Date = row.Find("td").Eq(dateIndex).Text()
		}
		links = append(links, link)
	})
	return links, nil
}
