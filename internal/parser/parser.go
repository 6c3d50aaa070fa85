package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/maltedev/compuzone-search/internal/models"
)

type Parser interface {
	ParseListing(html string, c Criteria) ([]models.Product, error)
	ItemNames(html string, limit int) ([]string, error)
	ScrapeFacets(html string, limit int) ([]models.BrandOption, error)
}

// Criteria narrows what a listing item may emit. The zero value accepts
// everything.
type Criteria struct {
	BrandCodes []string
	Capacity   *models.CapacityFilter
}

// CriteriaFor derives the capacity filter from the search keyword.
func CriteriaFor(keyword string, brandCodes []string) Criteria {
	c := Criteria{BrandCodes: brandCodes}
	if capacity, ok := models.ParseCapacityFilter(keyword); ok {
		c.Capacity = &capacity
	}
	return c
}

func ParseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{Field: "document", Err: fmt.Errorf("failed to parse HTML: %w", err)}
	}
	return doc, nil
}

// firstText returns the cleaned text of the first selector with a non-empty
// match inside s.
func firstText(s *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		text := cleanText(s.Find(selector).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

func firstAttr(s *goquery.Selection, selectors []string, attr string) string {
	for _, selector := range selectors {
		if v, ok := s.Find(selector).First().Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
