// Package extract classifies a fetched page's link-container layout and
// pulls out its outgoing links and metadata. The selectors below are the
// structural contract with the portal's CMS markup; if the site layout
// changes, classification falls through to "unparseable" rather than
// crashing.
package extract

// Container classes and text labels of the target CMS.
const (
	breadcrumbSelector = "div.friendly div.path"
	leafSelector       = "div.cp"
	sitemapSelector    = "div.sitemap ul.mapTree"
	paginatorSelector  = "div.page ul"
	infoBarSelector    = "ul.info li"

	tableSelector        = "div.list table"
	listSelector         = "div.list ul"
	albumSelector        = "div.thumbnail"
	albumItemSelector    = "div.thumbnail div.image"
	appendixSelector     = "div.appendix"
	appendixLinkSelector = "div.appendix ul a"
	simpleListSelector   = "div.node ul a"

	// Breadcrumb text opens with a fixed "current location" label
	// (現在位置) that is stripped rune-wise.
	breadcrumbPrefixRunes = 5

	postingDateLabel = "張貼日"  // table column header carrying the post date
	updatedDateLabel = "更新日期" // info-bar line carrying the last update date
)
