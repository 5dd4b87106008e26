package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"gipcrawl/pkg/models"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// IsLeaf reports whether the document is a terminal content page. Leaf
// pages get a catalog entry but are never handed to the extractor.
func IsLeaf(doc *goquery.Document) bool {
	return doc.Find(leafSelector).Length() > 0
}

// PageInfo builds the catalog record for a fetched page. Values read from
// the page win; the caller-supplied link fields are fallbacks, except the
// name, where the sitemap/list-provided name is preferred over the page
// title when non-blank.
func PageInfo(doc *goquery.Document, pageURL string, link models.Link) models.PageRecord {
	rec := models.PageRecord{URL: pageURL}

	rec.Category = breadcrumbCategory(doc)
	if rec.Category == "" {
		rec.Category = link.Category
	}

	rec.Date = updatedDate(doc)
	if rec.Date == "" {
		rec.Date = link.Date
	}

	rec.Name = strings.TrimSpace(link.Name)
	if rec.Name == "" {
		rec.Name = strings.TrimSpace(doc.Find("title").First().Text())
	}

	rec.IsLeaf = IsLeaf(doc)
	return rec
}

// breadcrumbCategory reads the page's breadcrumb trail, collapses all
// whitespace, and strips the fixed current-location prefix. Empty when the
// page has no breadcrumb.
func breadcrumbCategory(doc *goquery.Document) string {
	crumb := doc.Find(breadcrumbSelector)
	if crumb.Length() == 0 {
		return ""
	}
	text := whitespaceRe.ReplaceAllString(crumb.First().Text(), "")
	runes := []rune(text)
	if len(runes) <= breadcrumbPrefixRunes {
		return ""
	}
	return string(runes[breadcrumbPrefixRunes:])
}

// updatedDate scans the page's info bar for the last-update line and
// returns its date span, or "".
func updatedDate(doc *goquery.Document) string {
	date := ""
	doc.Find(infoBarSelector).EachWithBreak(func(_ int, li *goquery.Selection) bool {
		if strings.HasPrefix(strings.TrimSpace(li.Text()), updatedDateLabel) {
			date = strings.TrimSpace(li.Find("span").First().Text())
			return false
		}
		return true
	})
	return date
}

// resolveHref turns an anchor's href into an absolute URL against the page
// it was found on. Relative, absolute and protocol-relative forms all go
// through url.ResolveReference.
func resolveHref(pageURL, href string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
