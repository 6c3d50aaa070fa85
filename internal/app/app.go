// Package app assembles the search core from configuration.
package app

import (
	"fmt"
	"log/slog"

	"github.com/maltedev/compuzone-search/internal/brand"
	"github.com/maltedev/compuzone-search/internal/browser"
	"github.com/maltedev/compuzone-search/internal/config"
	"github.com/maltedev/compuzone-search/internal/fetcher"
	"github.com/maltedev/compuzone-search/internal/parser"
	"github.com/maltedev/compuzone-search/internal/search"
)

// App is a wired search service plus whatever it must release on exit.
type App struct {
	Service  *search.Service
	Strategy brand.Strategy
	Fetcher  fetcher.Fetcher

	browser *browser.Browser
}

// New builds the fetcher, parser and brand strategy named in cfg.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	profile := cfg.Profile()
	opts := fetcher.Options{
		Profile:  profile,
		PageSize: cfg.Search.PageSize,
		Timeout:  cfg.Search.Timeout,
		Logger:   logger,
	}

	a := &App{}

	switch cfg.Search.Fetcher {
	case fetcher.NameBrowser:
		browserOpts := browser.DefaultOptions()
		browserOpts.Headless = cfg.Browser.Headless
		browserOpts.Timeout = cfg.Browser.Timeout
		browserOpts.UserAgent = profile.UserAgent
		browserOpts.ProxyServer = cfg.Browser.ProxyServer

		b, err := browser.New(browserOpts, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize browser: %w", err)
		}
		a.browser = b
		a.Fetcher = fetcher.NewBrowserFetcher(b, opts)
	default:
		a.Fetcher = fetcher.NewHTTPFetcher(opts)
	}

	p := parser.NewProductParser(profile, logger)

	strategy, err := brand.NewStrategy(cfg.Search.BrandStrategy, brand.Deps{
		Fetcher: a.Fetcher,
		Parser:  p,
		Profile: profile,
		Logger:  logger,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Strategy = strategy
	a.Service = search.NewService(a.Fetcher, p, strategy, cfg.Search.DefaultLimit, logger)
	return a, nil
}

func (a *App) Close() error {
	if a.browser != nil {
		return a.browser.Close()
	}
	return nil
}
