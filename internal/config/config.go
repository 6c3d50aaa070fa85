package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/maltedev/compuzone-search/internal/brand"
	"github.com/maltedev/compuzone-search/internal/fetcher"
	"github.com/maltedev/compuzone-search/internal/site"
)

type Config struct {
	Server  ServerConfig
	Search  SearchConfig
	Browser BrowserConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	DocsDir         string
}

type SearchConfig struct {
	SearchURL     string
	UserAgent     string
	Fetcher       string
	BrandStrategy string
	PageSize      int
	DefaultLimit  int
	Timeout       time.Duration
}

type BrowserConfig struct {
	Headless    bool
	Timeout     time.Duration
	ProxyServer string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", "8080"),
			Host:            getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 30*time.Second),
			RequestTimeout:  getDurationOrDefault("SERVER_REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CORSOrigins:     getStringSliceOrDefault("CORS_ORIGINS", []string{"*"}),
			DocsDir:         getEnvOrDefault("DOCS_DIR", "docs"),
		},
		Search: SearchConfig{
			SearchURL:     getEnvOrDefault("SEARCH_URL", site.DefaultSearchURL),
			UserAgent:     getEnvOrDefault("SEARCH_USER_AGENT", site.DefaultUserAgent),
			Fetcher:       getEnvOrDefault("FETCHER", fetcher.NameHTTP),
			BrandStrategy: getEnvOrDefault("BRAND_STRATEGY", brand.DefaultStrategy),
			PageSize:      getIntOrDefault("SEARCH_PAGE_SIZE", fetcher.DefaultPageSize),
			DefaultLimit:  getIntOrDefault("SEARCH_DEFAULT_LIMIT", 10),
			Timeout:       getDurationOrDefault("SEARCH_TIMEOUT", fetcher.DefaultTimeout),
		},
		Browser: BrowserConfig{
			Headless:    getBoolOrDefault("BROWSER_HEADLESS", true),
			Timeout:     getDurationOrDefault("BROWSER_TIMEOUT", 30*time.Second),
			ProxyServer: getEnvOrDefault("BROWSER_PROXY", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if !brand.Valid(c.Search.BrandStrategy) {
		return fmt.Errorf("BRAND_STRATEGY must be one of %s, got %q",
			strings.Join(brand.Names(), ", "), c.Search.BrandStrategy)
	}

	if c.Search.Fetcher != fetcher.NameHTTP && c.Search.Fetcher != fetcher.NameBrowser {
		return fmt.Errorf("FETCHER must be %s or %s, got %q",
			fetcher.NameHTTP, fetcher.NameBrowser, c.Search.Fetcher)
	}

	if c.Search.PageSize < 1 {
		return fmt.Errorf("SEARCH_PAGE_SIZE must be at least 1")
	}

	if c.Search.DefaultLimit < 1 {
		return fmt.Errorf("SEARCH_DEFAULT_LIMIT must be at least 1")
	}

	if c.Search.Timeout <= 0 {
		return fmt.Errorf("SEARCH_TIMEOUT must be positive")
	}

	if u, err := url.Parse(c.Search.SearchURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("SEARCH_URL must be an absolute URL, got %q", c.Search.SearchURL)
	}

	return nil
}

// Profile returns the site profile with the configured overrides applied.
func (c *Config) Profile() *site.Profile {
	profile := site.Compuzone()
	profile.SearchURL = c.Search.SearchURL
	profile.UserAgent = c.Search.UserAgent
	return profile
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getStringSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
