package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"gipcrawl/pkg/utils"
)

// Validate checks AppConfig fields and applies sensible defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *AppConfig) Validate() (warnings []string, err error) {
	// Required: SitemapURL
	if c.SitemapURL == "" {
		return nil, fmt.Errorf("%w: sitemap_url is required", utils.ErrConfigValidation)
	}
	parsed, parseErr := url.ParseRequestURI(c.SitemapURL)
	if parseErr != nil {
		return nil, fmt.Errorf("%w: sitemap_url %q: %v", utils.ErrConfigValidation, c.SitemapURL, parseErr)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: sitemap_url must be http(s), got %q", utils.ErrConfigValidation, parsed.Scheme)
	}

	// Required: AllowedDomain
	if c.AllowedDomain == "" {
		return nil, fmt.Errorf("%w: allowed_domain is required", utils.ErrConfigValidation)
	}

	// Skip extensions must carry the dot so suffix matching works
	for i, ext := range c.SkipExtensions {
		if ext == "" {
			return nil, fmt.Errorf("%w: skip_extensions contains an empty entry", utils.ErrConfigValidation)
		}
		if !strings.HasPrefix(ext, ".") {
			warnings = append(warnings, fmt.Sprintf("skip_extensions entry %q has no leading dot, adding one", ext))
			c.SkipExtensions[i] = "." + ext
		}
	}

	// OutputPath
	if c.OutputPath == "" {
		warnings = append(warnings, "output_path is empty, defaulting to 'site.csv'")
		c.OutputPath = "site.csv"
	}

	// UserAgent
	if c.UserAgent == "" {
		c.UserAgent = "gipcrawl/1.0"
	}

	// LogLevel
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	// MaxRetries
	if c.MaxRetries < 0 {
		warnings = append(warnings, "max_retries cannot be negative, setting to 0")
		c.MaxRetries = 0
	}
	if c.MaxRetries == 0 && c.InitialRetryDelay == 0 {
		c.MaxRetries = 3
	}

	// Retry delays (only if retries enabled)
	if c.MaxRetries > 0 {
		if c.InitialRetryDelay <= 0 {
			c.InitialRetryDelay = 1 * time.Second
		}
		if c.MaxRetryDelay <= 0 {
			c.MaxRetryDelay = 30 * time.Second
		}
	}

	// InitialRetryDelay > MaxRetryDelay check
	if c.InitialRetryDelay > c.MaxRetryDelay && c.MaxRetryDelay > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"initial_retry_delay (%v) > max_retry_delay (%v), using max_retry_delay for initial",
			c.InitialRetryDelay, c.MaxRetryDelay))
		c.InitialRetryDelay = c.MaxRetryDelay
	}

	// HTTPClientSettings defaults
	c.validateHTTPClientSettings()

	return warnings, nil
}

// validateHTTPClientSettings applies defaults to HTTP client settings.
func (c *AppConfig) validateHTTPClientSettings() {
	h := &c.HTTPClientSettings
	if h.Timeout <= 0 {
		h.Timeout = 45 * time.Second
	}
	if h.MaxIdleConns <= 0 {
		h.MaxIdleConns = 100
	}
	if h.MaxIdleConnsPerHost <= 0 {
		h.MaxIdleConnsPerHost = 2
	}
	if h.IdleConnTimeout <= 0 {
		h.IdleConnTimeout = 90 * time.Second
	}
	if h.TLSHandshakeTimeout <= 0 {
		h.TLSHandshakeTimeout = 10 * time.Second
	}
	if h.ExpectContinueTimeout <= 0 {
		h.ExpectContinueTimeout = 1 * time.Second
	}
	if h.DialerTimeout <= 0 {
		h.DialerTimeout = 15 * time.Second
	}
	if h.DialerKeepAlive <= 0 {
		h.DialerKeepAlive = 30 * time.Second
	}
}
