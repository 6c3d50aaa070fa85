// Package fetcher retrieves raw search result fragments.
package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/maltedev/compuzone-search/internal/site"
)

const (
	DefaultTimeout  = 10 * time.Second
	DefaultPageSize = 100
)

// Fetcher returns the UTF-8 markup of one search request. Values in extra
// replace the matching envelope parameters.
type Fetcher interface {
	Fetch(ctx context.Context, query string, extra url.Values) (string, error)
}

type Options struct {
	Profile  *site.Profile
	PageSize int
	Timeout  time.Duration
	Logger   *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Profile == nil {
		o.Profile = site.Compuzone()
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// SearchURL builds the full request URL for query.
func SearchURL(profile *site.Profile, query string, pageSize int, extra url.Values) string {
	params := profile.Params(query, pageSize)
	for key, values := range extra {
		params[key] = append([]string(nil), values...)
	}
	return profile.SearchURL + "?" + params.Encode()
}

// Headers are the request headers the endpoint expects from its own search
// page. User-Agent is set by each transport.
func Headers(profile *site.Profile, query string) map[string]string {
	return map[string]string{
		"Accept":           "*/*",
		"Accept-Language":  "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
		"Referer":          profile.Referer(query),
		"X-Requested-With": "XMLHttpRequest",
	}
}

// decodeBody converts body from the named charset to UTF-8.
func decodeBody(body []byte, label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" || strings.EqualFold(label, "utf-8") {
		return string(body), nil
	}

	enc, _ := charset.Lookup(label)
	if enc == nil {
		return "", fmt.Errorf("unknown charset %q", label)
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s body: %w", label, err)
	}
	return string(decoded), nil
}
