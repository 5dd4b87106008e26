package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gipcrawl/pkg/config"
)

func TestPrintUsageTo(t *testing.T) {
	var buf bytes.Buffer
	printUsageTo(&buf)

	out := buf.String()
	assert.Contains(t, out, "crawl")
	assert.Contains(t, out, "validate")
	assert.Contains(t, out, "version")
}

func TestLoadConfigEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.Default().SitemapURL, cfg.SitemapURL)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("sitemap_url: https://a.tw/sitemap\nallowed_domain: a.tw\noutput_path: out.xlsx\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://a.tw/sitemap", cfg.SitemapURL)
	assert.Equal(t, "a.tw", cfg.AllowedDomain)
	assert.Equal(t, "out.xlsx", cfg.OutputPath)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sitemap_url: [unclosed"), 0o644))

	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default()
	applyOverrides(cfg, crawlFlags{
		sitemapURL: "https://b.tw/sitemap",
		domain:     "b.tw",
		output:     "catalog.xlsx",
		logLevel:   "debug",
		logFile:    "crawl.log",
	})

	assert.Equal(t, "https://b.tw/sitemap", cfg.SitemapURL)
	assert.Equal(t, "b.tw", cfg.AllowedDomain)
	assert.Equal(t, "catalog.xlsx", cfg.OutputPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "crawl.log", cfg.LogFile)
}

func TestApplyOverridesKeepsConfigValues(t *testing.T) {
	cfg := config.Default()
	want := cfg.SitemapURL
	applyOverrides(cfg, crawlFlags{})
	assert.Equal(t, want, cfg.SitemapURL)
}

func TestDoValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("sitemap_url: https://a.tw/sitemap\nallowed_domain: a.tw\nskip_extensions: [pdf]\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	var stdout, stderr bytes.Buffer
	code := doValidate(path, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "WARN")
	assert.Contains(t, stdout.String(), "Configuration valid.")
	assert.Empty(t, stderr.String())
}

func TestDoValidateInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("allowed_domain: a.tw\nsitemap_url: ''\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := doValidate(path, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "ERROR")
}

func TestDoValidateMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := doValidate(filepath.Join(t.TempDir(), "nope.yaml"), &stdout, &stderr)
	assert.Equal(t, 1, code)
}
