package extract

import (
	"context"
	"errors"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"gipcrawl/pkg/canonical"
	"gipcrawl/pkg/models"
)

// Sentinel errors of the extraction layer.
var (
	// ErrNoStrategy means none of the known layouts matched the page. The
	// crawler records the page as failed and keeps going.
	ErrNoStrategy = errors.New("no extraction strategy matches page layout")

	// ErrPaginationStillActive means the large page-size request did not
	// collapse the paginator, so the strategy cannot guarantee it saw every
	// item. The dispatcher falls through to the next strategy.
	ErrPaginationStillActive = errors.New("pagination still active after large page-size request")
)

// DocumentGetter fetches and parses a page, returning the document and the
// effective URL it was served from. Implemented by session.Session.
type DocumentGetter interface {
	GetDocument(ctx context.Context, rawURL string) (*goquery.Document, string, error)
}

// Strategy recognizes one link-container layout and extracts its links.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string
	// Matches reports whether the document carries this strategy's layout
	// marker. Matching never fetches.
	Matches(doc *goquery.Document) bool
	// Extract pulls the outgoing links out of the page. Strategies that
	// defeat pagination may refetch through the session, so the passed doc
	// is only the classification snapshot.
	Extract(ctx context.Context, doc *goquery.Document, pageURL string) ([]models.Link, error)
}

// Extractor dispatches a page to the first matching strategy, in fixed
// priority order.
type Extractor struct {
	strategies []Strategy
	log        *logrus.Entry
}

// NewExtractor builds the dispatcher with the standard strategy order:
// table, album, appendix, list, simple list. Order matters — a table page
// also contains the generic list container, so the more specific layouts
// go first.
func NewExtractor(docs DocumentGetter, log *logrus.Entry) *Extractor {
	log = log.WithField("component", "extractor")
	return &Extractor{
		strategies: []Strategy{
			&tableStrategy{docs: docs, log: log},
			&albumStrategy{docs: docs, log: log},
			&appendixStrategy{log: log},
			&listStrategy{docs: docs, log: log},
			&simpleListStrategy{log: log},
		},
		log: log,
	}
}

// Extract classifies the page and returns its outgoing links. A strategy
// reporting ErrPaginationStillActive is skipped and the next one tried; any
// other extraction error aborts the page. When no strategy matches, the
// error is ErrNoStrategy.
func (e *Extractor) Extract(ctx context.Context, doc *goquery.Document, pageURL string) ([]models.Link, error) {
	for _, strategy := range e.strategies {
		if !strategy.Matches(doc) {
			continue
		}

		links, err := strategy.Extract(ctx, doc, pageURL)
		if errors.Is(err, ErrPaginationStillActive) {
			e.log.WithFields(logrus.Fields{
				"strategy": strategy.Name(),
				"url":      pageURL,
			}).Warn("Pagination still active, trying next strategy")
			continue
		}
		if err != nil {
			return nil, err
		}

		e.log.WithFields(logrus.Fields{
			"strategy": strategy.Name(),
			"url":      pageURL,
			"items":    len(links),
		}).Debugf("Successfully parsed %s and got %d items", strategy.Name(), len(links))
		return links, nil
	}
	return nil, ErrNoStrategy
}

// fetchUnpaginated re-requests the page with the pagination size forced
// large and verifies the paginator collapsed. A paginator that still offers
// page links means the workaround failed for this layout.
func fetchUnpaginated(ctx context.Context, docs DocumentGetter, pageURL string) (*goquery.Document, error) {
	doc, _, err := docs.GetDocument(ctx, canonical.WithLargePageSize(pageURL))
	if err != nil {
		return nil, err
	}

	pager := doc.Find(paginatorSelector)
	if pager.Length() > 0 && pager.First().Find("a").Length() > 0 {
		return nil, ErrPaginationStillActive
	}
	return doc, nil
}
