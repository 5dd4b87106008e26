package extract

import (
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"gipcrawl/pkg/models"
	"gipcrawl/pkg/utils"
)

// Sitemap entries read like "1.2 公告事項"; the numbering is dropped and the
// first non-space run kept as the name.
var sitemapEntryRe = regexp.MustCompile(`^[\d.]+\s*(\S+)`)

// Sitemap returns the crawl's seed links from a sitemap document. Anchors
// whose text does not carry the expected numbering are skipped with a
// warning. An empty or missing sitemap tree is an error, since the crawl
// has nothing to start from.
func Sitemap(doc *goquery.Document, pageURL string, log *logrus.Entry) ([]models.Link, error) {
	tree := doc.Find(sitemapSelector)
	if tree.Length() == 0 {
		return nil, fmt.Errorf("%w: no sitemap tree at %q", utils.ErrParsing, pageURL)
	}

	var links []models.Link
	tree.First().Find("a").Each(func(_ int, anchor *goquery.Selection) {
		href, _ := anchor.Attr("href")
		linkURL, err := resolveHref(pageURL, href)
		if err != nil {
			log.Warnf("Skipping sitemap link with bad href %q: %v", href, err)
			return
		}

		match := sitemapEntryRe.FindStringSubmatch(anchor.Text())
		if match == nil {
			log.Warnf("Skipping sitemap entry with unexpected text %q", anchor.Text())
			return
		}

		links = append(links, models.Link{
			Name: match[1],
			URL:  linkURL,
		})
	})
	return links, nil
}
