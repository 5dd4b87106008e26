package config

import "time"

// AppConfig holds the full crawler configuration, loadable from YAML and
// overridable by CLI flags.
type AppConfig struct {
	SitemapURL     string   `yaml:"sitemap_url"`
	AllowedDomain  string   `yaml:"allowed_domain"`
	SkipExtensions []string `yaml:"skip_extensions,omitempty"` // file suffixes never crawled (.pdf, .xls, ...)
	OutputPath     string   `yaml:"output_path,omitempty"`     // .csv by default, .xlsx switches the writer
	UserAgent      string   `yaml:"user_agent,omitempty"`

	LogLevel string `yaml:"log_level,omitempty"`
	LogFile  string `yaml:"log_file,omitempty"` // optional secondary log destination

	MaxRetries        int           `yaml:"max_retries,omitempty"`
	InitialRetryDelay time.Duration `yaml:"initial_retry_delay,omitempty"`
	MaxRetryDelay     time.Duration `yaml:"max_retry_delay,omitempty"`

	HTTPClientSettings HTTPClientConfig `yaml:"http_client_settings,omitempty"`
}

// HTTPClientConfig holds settings for the shared HTTP client
type HTTPClientConfig struct {
	Timeout               time.Duration `yaml:"timeout,omitempty"`                 // Overall request timeout
	MaxIdleConns          int           `yaml:"max_idle_conns,omitempty"`          // Max total idle connections
	MaxIdleConnsPerHost   int           `yaml:"max_idle_conns_per_host,omitempty"` // Max idle connections per host
	IdleConnTimeout       time.Duration `yaml:"idle_conn_timeout,omitempty"`       // Timeout for idle connections
	TLSHandshakeTimeout   time.Duration `yaml:"tls_handshake_timeout,omitempty"`   // Timeout for TLS handshake
	ExpectContinueTimeout time.Duration `yaml:"expect_continue_timeout,omitempty"` // Timeout for 100-continue
	DialerTimeout         time.Duration `yaml:"dialer_timeout,omitempty"`          // Connection dial timeout
	DialerKeepAlive       time.Duration `yaml:"dialer_keep_alive,omitempty"`       // TCP keep-alive interval
}

// Default returns the configuration used when no config file is supplied.
// The defaults target the coast guard administration portal the selectors
// in pkg/extract were written for.
func Default() *AppConfig {
	return &AppConfig{
		SitemapURL:     "https://www.cga.gov.tw/GipOpen/wSite/sitemap?mp=9997",
		AllowedDomain:  "cga.gov.tw",
		SkipExtensions: []string{".pdf", ".doc", ".docx", ".odt", ".xls", ".xlsx", ".ods"},
		OutputPath:     "site.csv",
		UserAgent:      "gipcrawl/1.0",
		LogLevel:       "info",
	}
}
