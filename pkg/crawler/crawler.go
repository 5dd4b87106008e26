// Package crawler runs the tiered breadth-first walk over the portal: seed
// links come from the sitemap, each tier's pages are visited in order, and
// the links they yield form the next tier after filtering.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"gipcrawl/pkg/config"
	"gipcrawl/pkg/extract"
	"gipcrawl/pkg/models"
	"gipcrawl/pkg/session"
	"gipcrawl/pkg/utils"
)

// Result is the outcome of a full crawl run.
type Result struct {
	// Finished holds one record per successfully visited page, in visit
	// order.
	Finished []models.PageRecord
	// Failed lists pages that fetched or classified unsuccessfully. The
	// crawl continues past them.
	Failed []models.FailedPage
	// Tiers is the number of breadth-first tiers processed.
	Tiers int
}

// Crawler drives one crawl run. Not safe for concurrent use: tier ordering
// is what lets a redirect rule learned from one page canonicalize the next.
type Crawler struct {
	cfg       *config.AppConfig
	session   *session.Session
	extractor *extract.Extractor
	log       *logrus.Entry

	finished    []models.PageRecord
	finishedSet map[string]struct{}
	failed      []models.FailedPage
	failedSet   map[string]struct{}
}

// New creates a crawler bound to one session.
func New(cfg *config.AppConfig, sess *session.Session, extractor *extract.Extractor, log *logrus.Entry) *Crawler {
	return &Crawler{
		cfg:         cfg,
		session:     sess,
		extractor:   extractor,
		log:         log.WithField("component", "crawler"),
		finishedSet: make(map[string]struct{}),
		failedSet:   make(map[string]struct{}),
	}
}

// Run crawls the site from the configured sitemap until no new pages turn
// up. Per-page failures are recorded and skipped; only a sitemap failure or
// a cancelled context aborts the run.
func (c *Crawler) Run(ctx context.Context) (*Result, error) {
	c.log.Info("Loading sitemap")

	doc, effective, err := c.session.GetDocument(ctx, c.cfg.SitemapURL)
	if err != nil {
		return nil, fmt.Errorf("loading sitemap %q: %w", c.cfg.SitemapURL, err)
	}
	newPages, err := extract.Sitemap(doc, effective, c.log)
	if err != nil {
		return nil, err
	}

	tier := 0
	for len(newPages) > 0 {
		targets := c.filterTier(newPages)
		newPages = nil

		tier++
		c.log.Infof("Start tier %d; %d pages", tier, len(targets))
		for i, link := range targets {
			c.log.Debugf("[%d] %s\t%s", i, link.Name, link.URL)
		}

		for _, link := range targets {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			newPages = append(newPages, c.visit(ctx, link)...)
		}
	}

	return &Result{Finished: c.finished, Failed: c.failed, Tiers: tier}, nil
}

// filterTier turns the raw links gathered from the previous tier into this
// tier's visit list: external domains out, URLs canonicalized, duplicates
// and already-handled pages dropped, file links skipped.
func (c *Crawler) filterTier(links []models.Link) []models.Link {
	targets := make([]models.Link, 0, len(links))
	seen := make(map[string]struct{}, len(links))

	for _, link := range links {
		if !c.inDomain(link.URL) {
			c.log.Debugf("Dropping external link %s", link.URL)
			continue
		}

		link.URL = c.session.Canonicalize(link.URL)

		if _, ok := seen[link.URL]; ok {
			continue
		}
		if _, ok := c.finishedSet[link.URL]; ok {
			continue
		}
		if _, ok := c.failedSet[link.URL]; ok {
			continue
		}
		if c.hasSkippedExtension(link.URL) {
			c.log.Debugf("Dropping file link %s", link.URL)
			continue
		}

		seen[link.URL] = struct{}{}
		targets = append(targets, link)
	}
	return targets
}

// visit fetches one page, records its catalog entry, and returns the links
// it contributes to the next tier. Failures mark the page failed and return
// nothing.
func (c *Crawler) visit(ctx context.Context, link models.Link) []models.Link {
	doc, effective, err := c.session.GetDocument(ctx, link.URL)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"url":            link.URL,
			"error_category": utils.CategorizeError(err),
		}).Warnf("Failed to fetch page: %v", err)
		c.recordFailed(link.Name, link.URL)
		return nil
	}

	rec := extract.PageInfo(doc, effective, link)
	if _, ok := c.finishedSet[rec.URL]; ok {
		// A redirect learned mid-tier landed on a page already visited.
		c.log.Debugf("Already visited %s, skipping", rec.URL)
		return nil
	}
	c.finished = append(c.finished, rec)
	c.finishedSet[rec.URL] = struct{}{}

	if rec.IsLeaf {
		return nil
	}

	children, err := c.extractor.Extract(ctx, doc, effective)
	if err != nil {
		if errors.Is(err, extract.ErrNoStrategy) {
			c.log.Errorf("NOT ABLE TO PARSE: %s; URL: %s", rec.Name, rec.URL)
		} else {
			c.log.WithFields(logrus.Fields{
				"url":            rec.URL,
				"error_category": utils.CategorizeError(err),
			}).Errorf("Extraction failed: %v", err)
		}
		c.recordFailed(rec.Name, rec.URL)
		return nil
	}
	return children
}

func (c *Crawler) recordFailed(name, pageURL string) {
	if _, ok := c.failedSet[pageURL]; ok {
		return
	}
	c.failed = append(c.failed, models.FailedPage{Name: name, URL: pageURL})
	c.failedSet[pageURL] = struct{}{}
}

// inDomain reports whether the URL's host is the allowed domain or one of
// its subdomains. Unparseable URLs are out.
func (c *Crawler) inDomain(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	domain := strings.ToLower(c.cfg.AllowedDomain)
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// hasSkippedExtension reports whether the URL points at a downloadable file
// rather than a page.
func (c *Crawler) hasSkippedExtension(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, ext := range c.cfg.SkipExtensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
