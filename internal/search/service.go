// Package search runs brand discovery and product searches end to end.
package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/maltedev/compuzone-search/internal/brand"
	"github.com/maltedev/compuzone-search/internal/fetcher"
	"github.com/maltedev/compuzone-search/internal/models"
	"github.com/maltedev/compuzone-search/internal/observability"
	"github.com/maltedev/compuzone-search/internal/parser"
)

// Request is one product search.
type Request struct {
	Keyword    string   `json:"keyword"`
	BrandCodes []string `json:"brand_codes,omitempty"`
	Limit      int      `json:"limit,omitempty"`
}

// Response carries the products of one search. ID identifies the response in
// logs.
type Response struct {
	ID       string           `json:"id"`
	Keyword  string           `json:"keyword"`
	Products []models.Product `json:"products"`
}

// Service holds no state between calls. Every failure degrades to an empty
// result.
type Service struct {
	fetcher      fetcher.Fetcher
	parser       parser.Parser
	strategy     brand.Strategy
	defaultLimit int
	logger       *slog.Logger
}

// NewService builds a service. defaultLimit applies to requests without a
// positive limit; zero or less means DefaultLimit.
func NewService(f fetcher.Fetcher, p parser.Parser, strategy brand.Strategy, defaultLimit int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	return &Service{
		fetcher:      f,
		parser:       p,
		strategy:     strategy,
		defaultLimit: defaultLimit,
		logger:       logger.With("component", "search"),
	}
}

func (s *Service) DiscoverBrands(ctx context.Context, keyword string) []models.BrandOption {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []models.BrandOption{}
	}

	options, err := s.strategy.Extract(ctx, keyword)
	observability.ObserveSearch(observability.OperationBrands, len(options), err)
	if err != nil {
		s.logger.Warn("brand discovery failed", "keyword", keyword, "strategy", s.strategy.Name(), "error", err)
		return []models.BrandOption{}
	}
	if options == nil {
		options = []models.BrandOption{}
	}

	s.logger.Info("discovered brands", "keyword", keyword, "strategy", s.strategy.Name(), "count", len(options))
	return options
}

func (s *Service) SearchProducts(ctx context.Context, req Request) Response {
	resp := Response{
		ID:       uuid.NewString(),
		Keyword:  strings.TrimSpace(req.Keyword),
		Products: []models.Product{},
	}
	logger := s.logger.With("search_id", resp.ID, "keyword", resp.Keyword)

	if resp.Keyword == "" {
		logger.Debug("empty keyword")
		return resp
	}

	html, err := s.fetcher.Fetch(ctx, resp.Keyword, nil)
	if err != nil {
		observability.ObserveSearch(observability.OperationProducts, 0, err)
		logger.Warn("product fetch failed", "error", err)
		return resp
	}

	records, err := s.parser.ParseListing(html, parser.CriteriaFor(resp.Keyword, req.BrandCodes))
	if err != nil {
		observability.ObserveSearch(observability.OperationProducts, 0, err)
		logger.Warn("product parse failed", "error", err)
		return resp
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	resp.Products = SortByPrice(Assemble(records, limit))

	observability.ObserveSearch(observability.OperationProducts, len(resp.Products), nil)
	logger.Info("search completed", "brands", req.BrandCodes, "parsed", len(records), "returned", len(resp.Products))
	return resp
}
