package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gipcrawl/pkg/utils"
)

func TestValidateDefaults(t *testing.T) {
	cfg := Default()
	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.InitialRetryDelay)
	assert.Equal(t, 30*time.Second, cfg.MaxRetryDelay)
	assert.Equal(t, 45*time.Second, cfg.HTTPClientSettings.Timeout)
	assert.Equal(t, 100, cfg.HTTPClientSettings.MaxIdleConns)
}

func TestValidateMissingSitemapURL(t *testing.T) {
	cfg := &AppConfig{AllowedDomain: "a.tw"}
	_, err := cfg.Validate()
	assert.ErrorIs(t, err, utils.ErrConfigValidation)
}

func TestValidateBadSitemapScheme(t *testing.T) {
	cfg := &AppConfig{SitemapURL: "ftp://a.tw/sitemap", AllowedDomain: "a.tw"}
	_, err := cfg.Validate()
	assert.ErrorIs(t, err, utils.ErrConfigValidation)
}

func TestValidateMissingDomain(t *testing.T) {
	cfg := &AppConfig{SitemapURL: "https://a.tw/sitemap"}
	_, err := cfg.Validate()
	assert.ErrorIs(t, err, utils.ErrConfigValidation)
}

func TestValidateFixesDotlessExtensions(t *testing.T) {
	cfg := Default()
	cfg.SkipExtensions = []string{"pdf", ".xls"}

	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Len(t, warnings, 1)
	assert.Equal(t, []string{".pdf", ".xls"}, cfg.SkipExtensions)
}

func TestValidateEmptyExtensionIsFatal(t *testing.T) {
	cfg := Default()
	cfg.SkipExtensions = []string{""}
	_, err := cfg.Validate()
	assert.ErrorIs(t, err, utils.ErrConfigValidation)
}

func TestValidateAppliesOutputDefault(t *testing.T) {
	cfg := Default()
	cfg.OutputPath = ""

	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)
	assert.Equal(t, "site.csv", cfg.OutputPath)
}

func TestValidateNegativeRetries(t *testing.T) {
	cfg := Default()
	cfg.MaxRetries = -2

	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)
	assert.GreaterOrEqual(t, cfg.MaxRetries, 0)
}

func TestValidateInitialDelayCappedByMax(t *testing.T) {
	cfg := Default()
	cfg.MaxRetries = 2
	cfg.InitialRetryDelay = time.Minute
	cfg.MaxRetryDelay = time.Second

	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)
	assert.Equal(t, time.Second, cfg.InitialRetryDelay)
}
