package fetcher

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/maltedev/compuzone-search/internal/observability"
	"github.com/maltedev/compuzone-search/internal/site"
)

const NameHTTP = "http"

// HTTPFetcher issues the search request with a fresh colly collector per
// call.
type HTTPFetcher struct {
	profile  *site.Profile
	pageSize int
	timeout  time.Duration
	logger   *slog.Logger
}

var _ Fetcher = (*HTTPFetcher)(nil)

func NewHTTPFetcher(opts Options) *HTTPFetcher {
	opts = opts.withDefaults()
	return &HTTPFetcher{
		profile:  opts.Profile,
		pageSize: opts.PageSize,
		timeout:  opts.Timeout,
		logger:   opts.Logger.With("component", "fetcher", "fetcher", NameHTTP),
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, query string, extra url.Values) (string, error) {
	start := time.Now()
	body, err := f.fetch(ctx, query, extra)
	observability.ObserveFetch(NameHTTP, start, err)
	return body, err
}

func (f *HTTPFetcher) fetch(ctx context.Context, query string, extra url.Values) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &FetchError{Query: query, Err: err}
	}

	target := SearchURL(f.profile, query, f.pageSize, extra)
	headers := Headers(f.profile, query)

	c := colly.NewCollector(
		colly.UserAgent(f.profile.UserAgent),
		colly.AllowURLRevisit(),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(f.timeout)

	c.OnRequest(func(r *colly.Request) {
		for key, value := range headers {
			r.Headers.Set(key, value)
		}
		r.ResponseCharacterEncoding = f.profile.Charset
		f.logger.Debug("requesting search fragment", "query", query, "url", r.URL.String())
	})

	var (
		body   string
		status int
		reqErr error
	)

	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = string(r.Body)
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		reqErr = err
	})

	if err := c.Visit(target); err != nil && reqErr == nil {
		reqErr = err
	}
	if err := ctx.Err(); err != nil && reqErr == nil {
		reqErr = err
	}

	if reqErr != nil {
		f.logger.Warn("search request failed", "query", query, "status", status, "error", reqErr)
		return "", &FetchError{Query: query, StatusCode: status, Err: reqErr}
	}

	f.logger.Debug("fetched search fragment", "query", query, "status", status, "bytes", len(body))
	return body, nil
}
