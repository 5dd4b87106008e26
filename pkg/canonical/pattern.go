// Package canonical rewrites URLs to their effective destination using
// redirect rules learned during the crawl, so that redirect targets and
// pagination variants of the same logical page compare equal.
package canonical

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Pair is one query-string key/value pair.
type Pair struct {
	Key   string
	Value string
}

// QuerySet is an unordered set of query pairs with duplicates collapsed.
type QuerySet map[Pair]struct{}

// Pattern is the comparison key for a URL: the (scheme, host, path) triple
// taken verbatim, plus the query string as a set.
type Pattern struct {
	Scheme string
	Host   string
	Path   string
	Query  QuerySet
}

// MakePattern parses a URL into its matching pattern.
func MakePattern(rawURL string) (Pattern, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Pattern{}, fmt.Errorf("making pattern from %q: %w", rawURL, err)
	}

	query := make(QuerySet)
	for key, values := range u.Query() {
		for _, value := range values {
			query[Pair{Key: key, Value: value}] = struct{}{}
		}
	}

	return Pattern{
		Scheme: u.Scheme,
		Host:   u.Host,
		// Keep the encoded form so rebuilt URLs round-trip percent-escapes.
		Path:  u.EscapedPath(),
		Query: query,
	}, nil
}

// SameTriple reports whether both patterns share scheme, host and path.
func (p Pattern) SameTriple(o Pattern) bool {
	return p.Scheme == o.Scheme && p.Host == o.Host && p.Path == o.Path
}

// QuerySuperset reports whether p's query contains every pair of o's query.
func (p Pattern) QuerySuperset(o Pattern) bool {
	for pair := range o.Query {
		if _, ok := p.Query[pair]; !ok {
			return false
		}
	}
	return true
}

// URL rebuilds a URL string from the pattern's triple with query =
// p.Query ∪ extra. Pairs are emitted sorted by key then value so the same
// pattern always renders to the same string.
func (p Pattern) URL(extra QuerySet) string {
	merged := make([]Pair, 0, len(p.Query)+len(extra))
	seen := make(QuerySet, len(p.Query)+len(extra))
	for pair := range p.Query {
		seen[pair] = struct{}{}
	}
	for pair := range extra {
		seen[pair] = struct{}{}
	}
	for pair := range seen {
		merged = append(merged, pair)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Key != merged[j].Key {
			return merged[i].Key < merged[j].Key
		}
		return merged[i].Value < merged[j].Value
	})

	var sb strings.Builder
	sb.WriteString(p.Scheme)
	sb.WriteString("://")
	sb.WriteString(p.Host)
	sb.WriteString(p.Path)
	for i, pair := range merged {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(pair.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(pair.Value))
	}
	return sb.String()
}

// minus returns the pairs of p not present in o.
func (p Pattern) minus(o Pattern) QuerySet {
	diff := make(QuerySet)
	for pair := range p.Query {
		if _, ok := o.Query[pair]; !ok {
			diff[pair] = struct{}{}
		}
	}
	return diff
}
