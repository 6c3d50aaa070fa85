package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltedev/compuzone-search/internal/site"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "http", cfg.Search.Fetcher)
	assert.Equal(t, "mining", cfg.Search.BrandStrategy)
	assert.Equal(t, 100, cfg.Search.PageSize)
	assert.Equal(t, 10, cfg.Search.DefaultLimit)
	assert.Equal(t, 10*time.Second, cfg.Search.Timeout)
	assert.Equal(t, site.DefaultSearchURL, cfg.Profile().SearchURL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("FETCHER", "browser")
	t.Setenv("BRAND_STRATEGY", "facet")
	t.Setenv("SEARCH_TIMEOUT", "5s")
	t.Setenv("SEARCH_URL", "http://127.0.0.1:8000/search_list.php")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, http://localhost:5173")
	t.Setenv("SEARCH_PAGE_SIZE", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "browser", cfg.Search.Fetcher)
	assert.Equal(t, "facet", cfg.Search.BrandStrategy)
	assert.Equal(t, 5*time.Second, cfg.Search.Timeout)
	assert.Equal(t, 100, cfg.Search.PageSize)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "http://127.0.0.1:8000/search_list.php", cfg.Profile().SearchURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"Unknown strategy", func(c *Config) { c.Search.BrandStrategy = "ouija" }, "BRAND_STRATEGY"},
		{"Unknown fetcher", func(c *Config) { c.Search.Fetcher = "curl" }, "FETCHER"},
		{"Zero page size", func(c *Config) { c.Search.PageSize = 0 }, "SEARCH_PAGE_SIZE"},
		{"Zero limit", func(c *Config) { c.Search.DefaultLimit = 0 }, "SEARCH_DEFAULT_LIMIT"},
		{"Zero timeout", func(c *Config) { c.Search.Timeout = 0 }, "SEARCH_TIMEOUT"},
		{"Relative URL", func(c *Config) { c.Search.SearchURL = "/search_list.php" }, "SEARCH_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)

			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
