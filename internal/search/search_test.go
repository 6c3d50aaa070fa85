package search

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltedev/compuzone-search/internal/brand"
	"github.com/maltedev/compuzone-search/internal/fetcher"
	"github.com/maltedev/compuzone-search/internal/models"
	"github.com/maltedev/compuzone-search/internal/parser"
	"github.com/maltedev/compuzone-search/internal/site"
)

type fakeFetcher struct {
	html    string
	err     error
	queries []string
}

func (f *fakeFetcher) Fetch(_ context.Context, query string, _ url.Values) (string, error) {
	f.queries = append(f.queries, query)
	return f.html, f.err
}

func newService(t *testing.T, f fetcher.Fetcher) *Service {
	t.Helper()
	return newServiceWithLimit(t, f, 0)
}

func newServiceWithLimit(t *testing.T, f fetcher.Fetcher, defaultLimit int) *Service {
	t.Helper()
	profile := site.Compuzone()
	p := parser.NewProductParser(profile, nil)
	strategy, err := brand.NewStrategy(brand.StrategyMining, brand.Deps{Fetcher: f, Parser: p, Profile: profile})
	require.NoError(t, err)
	return NewService(f, p, strategy, defaultLimit, nil)
}

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func prices(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Price)
	}
	return out
}

func TestAssemble(t *testing.T) {
	records := []models.Product{
		{Name: "A", Price: "1,000원"},
		{Name: "B", Price: "2,000원"},
		{Name: "A", Price: "500원"},
		{Name: "C", Price: "3,000원"},
	}

	tests := []struct {
		name     string
		limit    int
		expected []string
	}{
		{"Dedupes first wins", 10, []string{"A", "B", "C"}},
		{"Limit counts unique records", 2, []string{"A", "B"}},
		{"Zero means default", 0, []string{"A", "B", "C"}},
		{"Negative means default", -5, []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Assemble(records, tt.limit)
			assert.Equal(t, tt.expected, names(out))
		})
	}

	assert.Equal(t, "1,000원", Assemble(records, 10)[0].Price)
}

func TestAssembleDefaultLimit(t *testing.T) {
	var records []models.Product
	for i := 0; i < 15; i++ {
		records = append(records, models.Product{Name: string(rune('a' + i)), Price: "1원"})
	}

	assert.Len(t, Assemble(records, 0), DefaultLimit)
	assert.Empty(t, Assemble(nil, 5))
}

func TestSortByPrice(t *testing.T) {
	records := []models.Product{
		{Name: "sold out", Price: models.PriceSoldOut},
		{Name: "thousand", Price: "1,000원"},
		{Name: "five hundred", Price: "500원"},
	}

	sorted := SortByPrice(records)
	assert.Equal(t, []string{"500원", "1,000원", models.PriceSoldOut}, prices(sorted))

	stable := SortByPrice([]models.Product{
		{Name: "x", Price: models.PriceSoldOut},
		{Name: "y", Price: "100원"},
		{Name: "z", Price: models.PriceSoldOut},
		{Name: "w", Price: "100원"},
	})
	assert.Equal(t, []string{"y", "w", "x", "z"}, names(stable))
}

const listingHTML = `<ul>
	<li class="li-obj">
		<div class="prd_info_name prdTxt">[ASUS] 지포스 RTX 5070 PRIME OC D7 12GB</div>
		<div class="prd_price"><span class="number">1,000,000</span></div>
	</li>
	<li class="li-obj">
		<div class="prd_info_name prdTxt">[MSI] 지포스 RTX 5070 벤투스 2X OC D7 12GB</div>
		<div class="prd_price"><span class="number">900,000</span></div>
	</li>
	<li class="li-obj">
		<div class="prd_info_name prdTxt">[ASUS] 지포스 RTX 5070 PRIME OC D7 12GB</div>
		<div class="prd_price"><span class="number">950,000</span></div>
	</li>
</ul>`

func TestSearchProducts(t *testing.T) {
	f := &fakeFetcher{html: listingHTML}
	svc := newService(t, f)

	resp := svc.SearchProducts(context.Background(), Request{Keyword: " RTX 5070 ", Limit: 10})

	_, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "RTX 5070", resp.Keyword)
	assert.Equal(t, []string{"RTX 5070"}, f.queries)

	require.Len(t, resp.Products, 2)
	assert.Equal(t, "[MSI] 지포스 RTX 5070 벤투스 2X OC D7 12GB", resp.Products[0].Name)
	assert.Equal(t, "900,000원", resp.Products[0].Price)
	assert.Equal(t, "[ASUS] 지포스 RTX 5070 PRIME OC D7 12GB", resp.Products[1].Name)
	assert.Equal(t, "1,000,000원", resp.Products[1].Price)
	assert.Equal(t, "VRAM 12GB / RTX 5070", resp.Products[1].Specifications)
}

func TestSearchProductsBrandFilter(t *testing.T) {
	svc := newService(t, &fakeFetcher{html: listingHTML})

	resp := svc.SearchProducts(context.Background(), Request{Keyword: "RTX 5070", BrandCodes: []string{"24"}})
	assert.Equal(t, []string{"[MSI] 지포스 RTX 5070 벤투스 2X OC D7 12GB"}, names(resp.Products))
}

func TestSearchProductsConfiguredDefaultLimit(t *testing.T) {
	svc := newServiceWithLimit(t, &fakeFetcher{html: listingHTML}, 1)

	resp := svc.SearchProducts(context.Background(), Request{Keyword: "RTX 5070"})
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "[ASUS] 지포스 RTX 5070 PRIME OC D7 12GB", resp.Products[0].Name)

	resp = svc.SearchProducts(context.Background(), Request{Keyword: "RTX 5070", Limit: 5})
	assert.Len(t, resp.Products, 2)
}

func TestSearchProductsDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *fakeFetcher
		keyword string
	}{
		{"Blank keyword", &fakeFetcher{html: listingHTML}, "   "},
		{"Fetch failure", &fakeFetcher{err: &fetcher.FetchError{Query: "RTX", StatusCode: 500, Err: errors.New("Internal Server Error")}}, "RTX"},
		{"No items", &fakeFetcher{html: "<p>검색결과가 없습니다</p>"}, "RTX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := newService(t, tt.fetcher).SearchProducts(context.Background(), Request{Keyword: tt.keyword})
			assert.NotEmpty(t, resp.ID)
			assert.NotNil(t, resp.Products)
			assert.Empty(t, resp.Products)
		})
	}
}

func TestDiscoverBrands(t *testing.T) {
	svc := newService(t, &fakeFetcher{html: listingHTML})

	options := svc.DiscoverBrands(context.Background(), "RTX 5070")
	assert.Equal(t, []models.BrandOption{
		{Name: "ASUS", Code: "3"},
		{Name: "MSI", Code: "24"},
	}, options)
}

func TestDiscoverBrandsDegradesToEmpty(t *testing.T) {
	f := &fakeFetcher{err: &fetcher.FetchError{Query: "RTX", Err: context.DeadlineExceeded}}
	svc := newService(t, f)

	options := svc.DiscoverBrands(context.Background(), "RTX")
	assert.NotNil(t, options)
	assert.Empty(t, options)

	options = svc.DiscoverBrands(context.Background(), "")
	assert.NotNil(t, options)
	assert.Empty(t, options)
	assert.Len(t, f.queries, 1)
}
