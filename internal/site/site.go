// Package site holds everything about the Compuzone search endpoint that is
// expected to drift over time: the endpoint and its parameter envelope, the
// markup selectors, the static manufacturer tables and the specification keyword
// tables. Parsing code never hard-codes any of these.
package site

import (
	"net/url"
	"regexp"
	"strconv"
)

const (
	DefaultSearchURL  = "https://www.compuzone.co.kr/search/search_list.php"
	DefaultRefererURL = "https://www.compuzone.co.kr/search/search.htm"
	DefaultBaseURL    = "https://www.compuzone.co.kr"

	// The AJAX endpoint answers in EUC-KR even though the outer page is UTF-8.
	DefaultCharset = "euc-kr"

	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36"
)

// Profile describes one search endpoint and the markup it returns.
type Profile struct {
	SearchURL  string
	RefererURL string
	BaseURL    string
	Charset    string
	UserAgent  string

	Selectors Selectors
	Brands    BrandTable
	Specs     SpecTables

	// CommonBrands feeds the keyword brand strategy.
	CommonBrands []string

	// Placeholder is used when no spec token can be extracted.
	Placeholder string
}

// Selectors are goquery selectors. Slices are tried in order and the first
// non-empty match wins.
type Selectors struct {
	Item        string
	Title       []string
	TitleLink   []string
	Price       []string
	OptionRow   string
	OptionLabel []string
	OptionPrice []string
	SubText     string
	Info        string

	// FacetFamilies are tried in priority order; the first family yielding
	// any element is the only one used.
	FacetFamilies []string
}

// Compuzone returns the production profile.
func Compuzone() *Profile {
	return &Profile{
		SearchURL:  DefaultSearchURL,
		RefererURL: DefaultRefererURL,
		BaseURL:    DefaultBaseURL,
		Charset:    DefaultCharset,
		UserAgent:  DefaultUserAgent,
		Selectors: Selectors{
			Item: "li.li-obj",
			Title: []string{
				".prd_info_name.prdTxt",
				".prd_info_name",
				".prd_name",
			},
			TitleLink: []string{
				"a.prd_info_name",
				".prd_info_name a",
				"a.prdTxt",
			},
			Price: []string{
				".prd_price .number",
				".prd_price .price",
				".price_sect .number",
				".prd_price",
			},
			OptionRow: ".prd_option_list li, .option_list li, ul.prd_opt li",
			OptionLabel: []string{
				".opt_name",
				".option_name",
				".opt_txt",
			},
			OptionPrice: []string{
				".opt_price .number",
				".option_price .number",
				".opt_price",
				".option_price",
			},
			SubText: ".prd_subTxt",
			Info:    ".prd_info",
			FacetFamilies: []string{
				`input[type="checkbox"][name^="MakerNo"]`,
				`input[type="checkbox"][value*="|"]`,
				`.maker_list input[type="checkbox"], #makerList input[type="checkbox"]`,
			},
		},
		Brands: NewBrandTable(defaultBrandIDs),
		Specs:  defaultSpecTables(),
		CommonBrands: []string{
			"ASUS", "MSI", "GIGABYTE", "EVGA", "ZOTAC", "PALIT", "GALAX", "INNO3D",
			"SAMSUNG", "삼성전자", "SK하이닉스", "CRUCIAL", "KINGSTON", "WD", "Seagate",
			"CORSAIR", "마이크로닉스", "SEASONIC", "COOLER MASTER", "THERMALTAKE",
			"INTEL", "AMD", "NVIDIA", "LG전자", "HP", "DELL", "LENOVO",
		},
		Placeholder: "컴퓨존 상품",
	}
}

// Params builds the fixed query envelope for a search. The maker filter is
// left blank; brand filtering happens on the parsed items.
func (p *Profile) Params(query string, pageSize int) url.Values {
	v := url.Values{}
	v.Set("actype", "list")
	v.Set("SearchType", "small")
	v.Set("SearchText", query)
	v.Set("PreOrder", "sale_order")
	v.Set("PageCount", strconv.Itoa(pageSize))
	v.Set("StartNum", "0")
	v.Set("PageNum", "1")
	v.Set("ListType", "0")
	v.Set("BigDivNo", "")
	v.Set("MediumDivNo", "")
	v.Set("DivNo", "")
	v.Set("MinPrice", "0")
	v.Set("MaxPrice", "0")
	v.Set("MakerNo", "")
	return v
}

// Referer is the human-facing search page for query.
func (p *Profile) Referer(query string) string {
	return p.RefererURL + "?SearchProductKey=" + url.QueryEscape(query)
}

// AbsoluteURL resolves href against the site base URL.
func (p *Profile) AbsoluteURL(href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	base, err := url.Parse(p.BaseURL)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// SpecTables are the keyword and pattern lists used by the specification normalizer.
type SpecTables struct {
	GPUKeywords     []string
	SeriesPatterns  []*regexp.Regexp
	MemoryTypes     []string
	CapacityKeyword []string
}

func defaultSpecTables() SpecTables {
	return SpecTables{
		GPUKeywords: []string{
			"RTX", "GTX", "GEFORCE", "RADEON", "RX ", "ARC A", "그래픽카드", "VGA",
		},
		SeriesPatterns: []*regexp.Regexp{
			regexp.MustCompile(`RTX\s?\d{4}(?:\s?TI)?(?:\s?SUPER)?`),
			regexp.MustCompile(`GTX\s?\d{3,4}(?:\s?TI)?`),
			regexp.MustCompile(`RX\s?\d{4}(?:\s?XTX|\s?XT|\s?GRE)?`),
			regexp.MustCompile(`I\d-\d+K?F?`),
			regexp.MustCompile(`RYZEN\s?\d\s\d+X?3?D?`),
		},
		MemoryTypes: []string{"DDR5", "DDR4", "GDDR6X", "GDDR6", "HBM3", "HBM2"},
		CapacityKeyword: []string{
			"VRAM", "RAM", "MEMORY", "메모리", "용량", "CAPACITY", "DDR", "저장",
		},
	}
}
