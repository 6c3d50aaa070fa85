package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/maltedev/compuzone-search/internal/browser"
	"github.com/maltedev/compuzone-search/internal/observability"
	"github.com/maltedev/compuzone-search/internal/site"
)

const NameBrowser = "browser"

// PageLoader is the part of a headless browser the fetcher needs.
type PageLoader interface {
	Get(ctx context.Context, url string, headers map[string]string) (*browser.Response, error)
}

// BrowserFetcher loads the search fragment through a real browser. It is
// slower than HTTPFetcher but carries the browser's own fingerprint.
type BrowserFetcher struct {
	loader   PageLoader
	profile  *site.Profile
	pageSize int
	logger   *slog.Logger
}

var _ Fetcher = (*BrowserFetcher)(nil)

func NewBrowserFetcher(loader PageLoader, opts Options) *BrowserFetcher {
	opts = opts.withDefaults()
	return &BrowserFetcher{
		loader:   loader,
		profile:  opts.Profile,
		pageSize: opts.PageSize,
		logger:   opts.Logger.With("component", "fetcher", "fetcher", NameBrowser),
	}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, query string, extra url.Values) (string, error) {
	start := time.Now()
	body, err := f.fetch(ctx, query, extra)
	observability.ObserveFetch(NameBrowser, start, err)
	return body, err
}

func (f *BrowserFetcher) fetch(ctx context.Context, query string, extra url.Values) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &FetchError{Query: query, Err: err}
	}

	target := SearchURL(f.profile, query, f.pageSize, extra)

	resp, err := f.loader.Get(ctx, target, Headers(f.profile, query))
	if err != nil {
		f.logger.Warn("browser navigation failed", "query", query, "error", err)
		return "", &FetchError{Query: query, Err: err}
	}

	if resp.Status < 200 || resp.Status > 299 {
		return "", &FetchError{
			Query:      query,
			StatusCode: resp.Status,
			Err:        fmt.Errorf("unexpected status %d", resp.Status),
		}
	}

	body, err := decodeBody(resp.Body, f.profile.Charset)
	if err != nil {
		return "", &FetchError{Query: query, StatusCode: resp.Status, Err: err}
	}

	f.logger.Debug("fetched search fragment", "query", query, "status", resp.Status, "bytes", len(body))
	return body, nil
}
