package brand

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"

	"github.com/maltedev/compuzone-search/internal/fetcher"
	"github.com/maltedev/compuzone-search/internal/models"
	"github.com/maltedev/compuzone-search/internal/parser"
	"github.com/maltedev/compuzone-search/internal/site"
)

const (
	MiningSampleSize = 50
	MiningMaxBrands  = 15
)

// Mining ranks the bracketed brand tags of the first result items by
// frequency.
type Mining struct {
	fetcher    fetcher.Fetcher
	parser     parser.Parser
	brands     site.BrandTable
	sampleSize int
	maxBrands  int
	logger     *slog.Logger
}

func NewMining(deps Deps) *Mining {
	return &Mining{
		fetcher:    deps.Fetcher,
		parser:     deps.Parser,
		brands:     deps.Profile.Brands,
		sampleSize: MiningSampleSize,
		maxBrands:  MiningMaxBrands,
		logger:     deps.Logger.With("component", "brand", "strategy", StrategyMining),
	}
}

func (m *Mining) Name() string { return StrategyMining }

func (m *Mining) Extract(ctx context.Context, keyword string) ([]models.BrandOption, error) {
	html, err := m.fetcher.Fetch(ctx, keyword, url.Values{"PageCount": {strconv.Itoa(m.sampleSize)}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch brand sample: %w", err)
	}

	names, err := m.parser.ItemNames(html, m.sampleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read item names: %w", err)
	}

	options := RankBrands(names, m.brands, m.maxBrands)
	m.logger.Debug("mined brands", "keyword", keyword, "items", len(names), "brands", len(options))
	return options, nil
}

// RankBrands tallies the first bracketed tag of each name and returns the
// most frequent brands. Ties keep first-seen order. Codes come from the
// manufacturer table, falling back to the name.
func RankBrands(names []string, table site.BrandTable, limit int) []models.BrandOption {
	type tally struct {
		name  string
		count int
	}

	var order []*tally
	byName := make(map[string]*tally)
	for _, name := range names {
		b := parser.ExtractBracketBrand(name)
		if b == "" {
			continue
		}
		if t, ok := byName[b]; ok {
			t.count++
			continue
		}
		t := &tally{name: b, count: 1}
		byName[b] = t
		order = append(order, t)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].count > order[j].count
	})

	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}

	options := make([]models.BrandOption, 0, len(order))
	for _, t := range order {
		code, ok := table.Code(t.name)
		if !ok {
			code = t.name
		}
		options = append(options, models.BrandOption{Name: t.name, Code: code})
	}
	return options
}
