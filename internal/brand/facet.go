package brand

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maltedev/compuzone-search/internal/fetcher"
	"github.com/maltedev/compuzone-search/internal/models"
	"github.com/maltedev/compuzone-search/internal/parser"
)

const FacetMaxBrands = 20

// Facet reads the manufacturer checkboxes rendered with the results.
type Facet struct {
	fetcher   fetcher.Fetcher
	parser    parser.Parser
	maxBrands int
	logger    *slog.Logger
}

func NewFacet(deps Deps) *Facet {
	return &Facet{
		fetcher:   deps.Fetcher,
		parser:    deps.Parser,
		maxBrands: FacetMaxBrands,
		logger:    deps.Logger.With("component", "brand", "strategy", StrategyFacet),
	}
}

func (f *Facet) Name() string { return StrategyFacet }

func (f *Facet) Extract(ctx context.Context, keyword string) ([]models.BrandOption, error) {
	html, err := f.fetcher.Fetch(ctx, keyword, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch facet page: %w", err)
	}

	options, err := f.parser.ScrapeFacets(html, f.maxBrands)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape facets: %w", err)
	}

	f.logger.Debug("scraped brand facets", "keyword", keyword, "brands", len(options))
	return options, nil
}
