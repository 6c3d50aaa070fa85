package models

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	// PriceSoldOut is the one sentinel used for listings without a
	// purchasable numeric price (sold out or inquiry-only).
	PriceSoldOut = "품절"

	CurrencySuffix = "원"
)

// Product is a single purchasable listing or option variant.
type Product struct {
	Name           string `json:"name"`
	Price          string `json:"price"`
	Specifications string `json:"specifications"`
	Link           string `json:"link,omitempty"`
}

// Amount returns the numeric price. ok is false for the sentinel.
func (p Product) Amount() (int64, bool) {
	if p.Price == PriceSoldOut {
		return 0, false
	}
	return ParsePrice(p.Price)
}

func (p Product) IsSoldOut() bool {
	_, ok := p.Amount()
	return !ok
}

// BrandOption is a manufacturer facet. Code is either a numeric manufacturer
// ID or, when the ID is unknown, the display name itself.
type BrandOption struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// ParsePrice strips everything but digits. An empty or zero result is not a
// price.
func ParsePrice(text string) (int64, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	if digits == "" {
		return 0, false
	}

	amount, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || amount == 0 {
		return 0, false
	}
	return amount, true
}

// FormatPrice renders 1234567 as "1,234,567원".
func FormatPrice(amount int64) string {
	return humanize.Comma(amount) + CurrencySuffix
}

// PriceFromText is ParsePrice followed by FormatPrice, falling back to the
// sentinel.
func PriceFromText(text string) string {
	amount, ok := ParsePrice(text)
	if !ok {
		return PriceSoldOut
	}
	return FormatPrice(amount)
}

var capacityPattern = regexp.MustCompile(`(?i)(\d+)\s*(KB|MB|GB|TB)`)

var unitPower = map[string]int{"KB": 1, "MB": 2, "GB": 3, "TB": 4}

// maxCapacityValue keeps Value*1024^4 inside int64.
const maxCapacityValue = 1 << 20

// CapacityFilter restricts option variants to one storage capacity.
type CapacityFilter struct {
	Value int64
	Unit  string
}

// ParseCapacityFilter takes the first capacity mentioned in a search keyword.
func ParseCapacityFilter(keyword string) (CapacityFilter, bool) {
	caps := FindCapacities(keyword)
	if len(caps) == 0 {
		return CapacityFilter{}, false
	}
	return caps[0], true
}

// FindCapacities returns every number+unit pair in text, in order. Values
// above maxCapacityValue are skipped.
func FindCapacities(text string) []CapacityFilter {
	matches := capacityPattern.FindAllStringSubmatch(text, -1)
	caps := make([]CapacityFilter, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil || v > maxCapacityValue {
			continue
		}
		caps = append(caps, CapacityFilter{Value: v, Unit: strings.ToUpper(m[2])})
	}
	return caps
}

// Bytes normalizes the capacity with binary multipliers, so 1TB == 1024GB.
func (c CapacityFilter) Bytes() int64 {
	n := c.Value
	for i := 0; i < unitPower[c.Unit]; i++ {
		n *= 1024
	}
	return n
}

func (c CapacityFilter) Equal(other CapacityFilter) bool {
	if c.Value == other.Value && c.Unit == other.Unit {
		return true
	}
	return c.Bytes() == other.Bytes()
}

// Matches reports whether any capacity in label equals the filter. Numbers
// are compared whole, so 8GB never matches 128GB.
func (c CapacityFilter) Matches(label string) bool {
	for _, found := range FindCapacities(label) {
		if c.Equal(found) {
			return true
		}
	}
	return false
}

func (c CapacityFilter) String() string {
	return strconv.FormatInt(c.Value, 10) + c.Unit
}
