package parser

import (
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"github.com/maltedev/compuzone-search/internal/models"
	"github.com/maltedev/compuzone-search/internal/site"
	"github.com/maltedev/compuzone-search/internal/specs"
)

// ProductParser turns listing items into product records.
type ProductParser struct {
	profile    *site.Profile
	normalizer *specs.Normalizer
	logger     *slog.Logger
}

var _ Parser = (*ProductParser)(nil)

func NewProductParser(profile *site.Profile, logger *slog.Logger) *ProductParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductParser{
		profile:    profile,
		normalizer: specs.NewNormalizer(profile.Specs, profile.Placeholder),
		logger:     logger.With("component", "parser"),
	}
}

// ParseListing parses every item in a search fragment. Items that fail to
// parse are skipped.
func (p *ProductParser) ParseListing(html string, c Criteria) ([]models.Product, error) {
	doc, err := ParseDocument(html)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	items := p.Items(doc)

	items.Each(func(i int, item *goquery.Selection) {
		records, err := p.ParseItem(item, c)
		if err != nil {
			p.logger.Debug("skipping listing item", "index", i, "error", err)
			return
		}
		products = append(products, records...)
	})

	p.logger.Debug("parsed listing", "items", items.Length(), "products", len(products))
	return products, nil
}

// Items selects the listing items of a parsed fragment.
func (p *ProductParser) Items(doc *goquery.Document) *goquery.Selection {
	return doc.Find(p.profile.Selectors.Item)
}

// ParseItem expands one listing item into zero or more records: none when
// the brand filter rejects it, one per surviving option row when it has
// options, otherwise exactly one.
func (p *ProductParser) ParseItem(item *goquery.Selection, c Criteria) ([]models.Product, error) {
	sel := p.profile.Selectors

	name := firstText(item, sel.Title)
	if name == "" {
		return nil, &ParseError{Field: "title", Err: ErrMissingTitle}
	}

	if !p.matchesAnyBrand(name, c.BrandCodes) {
		return nil, nil
	}

	link := p.profile.AbsoluteURL(firstAttr(item, sel.TitleLink, "href"))
	description := p.description(item)

	rows := item.Find(sel.OptionRow)
	if rows.Length() == 0 {
		price := models.PriceFromText(firstText(item, sel.Price))
		return []models.Product{p.newProduct(name, price, description, link)}, nil
	}

	var products []models.Product
	rows.Each(func(_ int, row *goquery.Selection) {
		label := firstText(row, sel.OptionLabel)
		if label == "" {
			return
		}
		if c.Capacity != nil && !c.Capacity.Matches(label) {
			return
		}

		price := models.PriceFromText(firstText(row, sel.OptionPrice))
		products = append(products, p.newProduct(name+" "+label, price, description, link))
	})

	return products, nil
}

// ItemNames returns the titles of the first limit items.
func (p *ProductParser) ItemNames(html string, limit int) ([]string, error) {
	doc, err := ParseDocument(html)
	if err != nil {
		return nil, err
	}

	var names []string
	p.Items(doc).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if limit > 0 && len(names) >= limit {
			return false
		}
		if name := firstText(item, p.profile.Selectors.Title); name != "" {
			names = append(names, name)
		}
		return true
	})

	return names, nil
}

func (p *ProductParser) newProduct(name, price, description, link string) models.Product {
	return models.Product{
		Name:           name,
		Price:          price,
		Specifications: p.normalizer.Build(name, description),
		Link:           link,
	}
}

// description prefers the finer sub-text block over the coarse info block.
func (p *ProductParser) description(item *goquery.Selection) string {
	sel := p.profile.Selectors
	if sub := cleanText(item.Find(sel.SubText).First().Text()); sub != "" {
		return sub
	}
	return cleanText(item.Find(sel.Info).First().Text())
}
