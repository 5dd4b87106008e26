// Package session owns the per-run shared state of a crawl: the learned
// redirect-rule table, the parsed-document cache, and the HTTP fetcher.
// Every fetch goes through the session so that a rule learned while reading
// one page is applied when canonicalizing the next — the ordering this
// crawler's deduplication depends on.
package session

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"gipcrawl/pkg/canonical"
	"gipcrawl/pkg/config"
	"gipcrawl/pkg/fetch"
	"gipcrawl/pkg/utils"
)

// Session holds all mutable state shared across one crawl run. Nothing
// persists across runs.
type Session struct {
	id        uuid.UUID
	rules     *canonical.RuleTable
	fetcher   *fetch.Fetcher
	cache     map[string]*goquery.Document // keyed by effective (post-redirect) URL
	userAgent string
	log       *logrus.Entry
}

// New creates a fresh crawl session.
func New(cfg *config.AppConfig, fetcher *fetch.Fetcher, log *logrus.Entry) *Session {
	id := uuid.New()
	sessionLog := log.WithField("session_id", id.String())
	return &Session{
		id:        id,
		rules:     canonical.NewRuleTable(sessionLog),
		fetcher:   fetcher,
		cache:     make(map[string]*goquery.Document),
		userAgent: cfg.UserAgent,
		log:       sessionLog,
	}
}

// ID returns the session's run identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Canonicalize rewrites a URL through the learned redirect rules.
func (s *Session) Canonicalize(rawURL string) string {
	return s.rules.Redirect(rawURL)
}

// Rules exposes the redirect-rule table.
func (s *Session) Rules() *canonical.RuleTable {
	return s.rules
}

// GetDocument fetches and parses the page at rawURL, returning the document
// and the effective URL it was served from. The input URL is canonicalized
// first; when the server redirects anyway, the redirect is learned so later
// lookups rewrite to the destination directly. Documents are cached by
// effective URL, so a physical page downloads at most once per session.
func (s *Session) GetDocument(ctx context.Context, rawURL string) (*goquery.Document, string, error) {
	target := s.rules.Redirect(rawURL)
	docLog := s.log.WithField("url", target)
	docLog.Debug("Reading page")

	if doc, ok := s.cache[target]; ok {
		docLog.Debug("Returned from cache")
		return doc, target, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %q: %w", utils.ErrRequestCreation, target, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.fetcher.FetchWithRetry(ctx, req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, "", err
	}
	defer resp.Body.Close()

	effective := resp.Request.URL.String()
	if effective != target {
		docLog.Debugf("Server redirected to %s", effective)
		s.rules.Learn(target, effective)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: parsing HTML from %q: %w", utils.ErrParsing, effective, err)
	}

	s.cache[effective] = doc
	return doc, effective, nil
}
