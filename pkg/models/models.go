package models

// Link is a single outgoing link extracted from a page or the sitemap.
// Category and Date are optional; they carry over to the PageRecord of the
// target page when the page itself has no better value.
type Link struct {
	Name     string
	URL      string
	Category string
	Date     string
}

// PageRecord is the catalog entry for one successfully fetched page,
// keyed by its canonical URL. Immutable once created.
type PageRecord struct {
	Name     string
	URL      string
	Category string
	Date     string
	IsLeaf   bool
}

// FailedPage identifies a page whose content matched no extraction
// strategy, or whose fetch gave up after retries.
type FailedPage struct {
	Name string
	URL  string
}
