package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/maltedev/compuzone-search/internal/models"
)

// ScrapeFacets reads the manufacturer checkboxes of a result page. Selector
// families are tried in priority order and the first family that matches
// any element is the only one read. Only numeric IDs are kept.
func (p *ProductParser) ScrapeFacets(html string, limit int) ([]models.BrandOption, error) {
	doc, err := ParseDocument(html)
	if err != nil {
		return nil, err
	}

	options := []models.BrandOption{}
	for _, family := range p.profile.Selectors.FacetFamilies {
		inputs := doc.Find(family)
		if inputs.Length() == 0 {
			continue
		}

		seen := make(map[string]bool)
		inputs.EachWithBreak(func(_ int, input *goquery.Selection) bool {
			if limit > 0 && len(options) >= limit {
				return false
			}
			name, id := facetPair(doc, input)
			if name == "" || !isNumeric(id) || seen[id] {
				return true
			}
			seen[id] = true
			options = append(options, models.BrandOption{Name: name, Code: id})
			return true
		})

		p.logger.Debug("scraped facets", "family", family, "inputs", inputs.Length(), "brands", len(options))
		break
	}

	return options, nil
}

// facetPair reads "{brand}|{id}" from the value, or the id from the value
// and the name from data-name, a label[for] or a wrapping label.
func facetPair(doc *goquery.Document, input *goquery.Selection) (name, id string) {
	value := strings.TrimSpace(input.AttrOr("value", ""))
	if brand, code, ok := strings.Cut(value, "|"); ok {
		return strings.TrimSpace(brand), strings.TrimSpace(code)
	}

	id = value
	if dataName := strings.TrimSpace(input.AttrOr("data-name", "")); dataName != "" {
		return dataName, id
	}

	if inputID := input.AttrOr("id", ""); inputID != "" {
		if label := cleanText(doc.Find(`label[for="` + inputID + `"]`).First().Text()); label != "" {
			return label, id
		}
	}

	if label := cleanText(input.Closest("label").Text()); label != "" {
		return label, id
	}

	return cleanText(input.NextFiltered("label").Text()), id
}
