package brand

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/maltedev/compuzone-search/internal/fetcher"
	"github.com/maltedev/compuzone-search/internal/models"
	"github.com/maltedev/compuzone-search/internal/parser"
)

// Keywords matches a fixed list of common brands against the result names.
// Codes are the brand names themselves.
type Keywords struct {
	fetcher fetcher.Fetcher
	parser  parser.Parser
	brands  []string
	logger  *slog.Logger
}

func NewKeywords(deps Deps) *Keywords {
	return &Keywords{
		fetcher: deps.Fetcher,
		parser:  deps.Parser,
		brands:  deps.Profile.CommonBrands,
		logger:  deps.Logger.With("component", "brand", "strategy", StrategyKeywords),
	}
}

func (k *Keywords) Name() string { return StrategyKeywords }

func (k *Keywords) Extract(ctx context.Context, keyword string) ([]models.BrandOption, error) {
	html, err := k.fetcher.Fetch(ctx, keyword, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}

	names, err := k.parser.ItemNames(html, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to read item names: %w", err)
	}

	options := MatchCommonBrands(names, k.brands)
	k.logger.Debug("matched common brands", "keyword", keyword, "items", len(names), "brands", len(options))
	return options, nil
}

// MatchCommonBrands returns every brand of the list found in any name,
// sorted.
func MatchCommonBrands(names, brands []string) []models.BrandOption {
	found := make(map[string]bool)
	for _, name := range names {
		upper := strings.ToUpper(name)
		for _, b := range brands {
			if strings.Contains(upper, strings.ToUpper(b)) {
				found[b] = true
			}
		}
	}

	matched := make([]string, 0, len(found))
	for b := range found {
		matched = append(matched, b)
	}
	sort.Strings(matched)

	options := make([]models.BrandOption, 0, len(matched))
	for _, b := range matched {
		options = append(options, models.BrandOption{Name: b, Code: b})
	}
	return options
}
