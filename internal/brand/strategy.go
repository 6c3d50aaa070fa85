// Package brand discovers the manufacturers present in a keyword's search
// results.
package brand

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/maltedev/compuzone-search/internal/fetcher"
	"github.com/maltedev/compuzone-search/internal/models"
	"github.com/maltedev/compuzone-search/internal/parser"
	"github.com/maltedev/compuzone-search/internal/site"
)

const (
	StrategyMining   = "mining"
	StrategyFacet    = "facet"
	StrategyKeywords = "keywords"

	DefaultStrategy = StrategyMining
)

var ErrUnknownStrategy = errors.New("unknown brand strategy")

// Strategy extracts brand options for a keyword.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, keyword string) ([]models.BrandOption, error)
}

// Deps are shared by every strategy.
type Deps struct {
	Fetcher fetcher.Fetcher
	Parser  parser.Parser
	Profile *site.Profile
	Logger  *slog.Logger
}

func Names() []string {
	return []string{StrategyMining, StrategyFacet, StrategyKeywords}
}

func Valid(name string) bool {
	for _, n := range Names() {
		if n == name {
			return true
		}
	}
	return false
}

// NewStrategy builds the named strategy. An empty name selects the default.
func NewStrategy(name string, deps Deps) (Strategy, error) {
	if deps.Profile == nil {
		deps.Profile = site.Compuzone()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	switch name {
	case StrategyMining, "":
		return NewMining(deps), nil
	case StrategyFacet:
		return NewFacet(deps), nil
	case StrategyKeywords:
		return NewKeywords(deps), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
