package parser

import (
	"regexp"
	"strings"
)

var bracketBrand = regexp.MustCompile(`\[([^\]]+)\]`)

// ExtractBracketBrand returns the first "[Brand]" tag in a product name.
func ExtractBracketBrand(name string) string {
	m := bracketBrand.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// MatchBrand reports whether a selected brand code refers to the bracketed
// brand of a product. Numeric codes are resolved through the manufacturer
// table; names match case-insensitively, including substrings either way.
func (p *ProductParser) MatchBrand(bracketed, code string) bool {
	code = strings.TrimSpace(code)
	if code == "" || bracketed == "" {
		return false
	}

	if isNumeric(code) {
		if name, ok := p.profile.Brands.Name(code); ok {
			return strings.EqualFold(name, bracketed)
		}
	}

	if strings.EqualFold(code, bracketed) {
		return true
	}

	lowerCode, lowerBrand := strings.ToLower(code), strings.ToLower(bracketed)
	return strings.Contains(lowerBrand, lowerCode) || strings.Contains(lowerCode, lowerBrand)
}

func (p *ProductParser) matchesAnyBrand(name string, codes []string) bool {
	if len(codes) == 0 {
		return true
	}

	bracketed := ExtractBracketBrand(name)
	for _, code := range codes {
		if bracketed != "" {
			if p.MatchBrand(bracketed, code) {
				return true
			}
			continue
		}
		if p.nameContainsBrand(name, code) {
			return true
		}
	}
	return false
}

// nameContainsBrand is the fallback for names without a bracketed tag.
func (p *ProductParser) nameContainsBrand(name, code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	if isNumeric(code) {
		resolved, ok := p.profile.Brands.Name(code)
		if !ok {
			return false
		}
		code = resolved
	}
	return strings.Contains(strings.ToUpper(name), strings.ToUpper(code))
}
