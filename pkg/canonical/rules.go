package canonical

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Pagination-size workaround: asking the CMS for an absurd page size makes
// list/table/album pages render every item in one response.
const (
	pageSizeParam = "pagesize"
	largePageSize = "10000"
)

// Rule rewrites URLs matching From to To. Learned from observed redirects,
// never configured.
type Rule struct {
	From Pattern
	To   Pattern
}

// RuleTable is the append-only table of learned redirect rules. Lookups scan
// in insertion order and stop at the first match, so the oldest matching
// rule wins ties between rules sharing a triple.
type RuleTable struct {
	mu    sync.RWMutex
	rules []Rule
	log   *logrus.Entry
}

// NewRuleTable creates an empty rule table.
func NewRuleTable(log *logrus.Entry) *RuleTable {
	return &RuleTable{log: log}
}

// Learn records that requesting one URL was served from another. Called by
// the fetch path whenever the effective URL differs from the requested one.
func (t *RuleTable) Learn(requestedURL, effectiveURL string) {
	from, err := MakePattern(requestedURL)
	if err != nil {
		t.log.Warnf("Cannot learn redirect from unparseable URL %q: %v", requestedURL, err)
		return
	}
	to, err := MakePattern(effectiveURL)
	if err != nil {
		t.log.Warnf("Cannot learn redirect to unparseable URL %q: %v", effectiveURL, err)
		return
	}

	t.mu.Lock()
	t.rules = append(t.rules, Rule{From: from, To: to})
	t.mu.Unlock()
	t.log.Debugf("Learned redirect rule: %s -> %s", requestedURL, effectiveURL)
}

// Redirect rewrites the URL to its learned destination, or returns it
// unchanged when no rule applies. A rule applies iff its from-triple equals
// the URL's triple and the URL's query contains every required pair of the
// from-query. The result keeps any extra pairs the caller supplied on top of
// the destination's own query.
func (t *RuleTable) Redirect(rawURL string) string {
	want, err := MakePattern(rawURL)
	if err != nil {
		return rawURL
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, rule := range t.rules {
		if !rule.From.SameTriple(want) {
			continue
		}
		if !want.QuerySuperset(rule.From) {
			continue
		}
		return rule.To.URL(want.minus(rule.From))
	}
	return rawURL
}

// Len returns the number of learned rules.
func (t *RuleTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rules)
}

// WithLargePageSize returns the URL with the pagination-size parameter
// forced to a very large constant, overwriting any existing value, so the
// page renders unpaginated. Unparseable URLs pass through unchanged.
func WithLargePageSize(rawURL string) string {
	pat, err := MakePattern(rawURL)
	if err != nil {
		return rawURL
	}
	for pair := range pat.Query {
		if pair.Key == pageSizeParam {
			delete(pat.Query, pair)
		}
	}
	pat.Query[Pair{Key: pageSizeParam, Value: largePageSize}] = struct{}{}
	return pat.URL(nil)
}
