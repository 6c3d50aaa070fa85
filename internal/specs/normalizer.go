// Package specs turns a product name and its description block into a short,
// deduplicated list of specification tokens.
package specs

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/maltedev/compuzone-search/internal/models"
	"github.com/maltedev/compuzone-search/internal/site"
)

const (
	Separator = " / "

	maxNameTokens      = 3
	minDescriptionLen  = 10
	maxDescriptionRune = 200
)

var (
	capacityToken = regexp.MustCompile(`\d+[KMGT]B`)
	seriesFamily  = regexp.MustCompile(`(RTX|GTX|RX|RYZEN\s?\d|I\d)[\s-]?(\d{3,5})`)
	whitespace    = regexp.MustCompile(`\s+`)
)

type Normalizer struct {
	tables      site.SpecTables
	placeholder string
}

func NewNormalizer(tables site.SpecTables, placeholder string) *Normalizer {
	return &Normalizer{
		tables:      tables,
		placeholder: placeholder,
	}
}

// Build returns the " / "-joined spec string for one record. It is never
// empty.
func (n *Normalizer) Build(name, description string) string {
	tokens := n.NameTokens(name)
	if desc := n.DescriptionToken(description); desc != "" {
		tokens = append(tokens, desc)
	}

	tokens = n.Dedupe(tokens)
	if len(tokens) == 0 {
		return n.placeholder
	}
	return strings.Join(tokens, Separator)
}

// NameTokens extracts at most one capacity, one series and one memory-type
// token from the product name.
func (n *Normalizer) NameTokens(name string) []string {
	upper := strings.ToUpper(name)
	tokens := make([]string, 0, maxNameTokens)

	if capacity := capacityToken.FindString(upper); capacity != "" {
		if n.isGraphicsCard(upper) {
			tokens = append(tokens, "VRAM "+capacity)
		} else {
			tokens = append(tokens, capacity)
		}
	}

	for _, pattern := range n.tables.SeriesPatterns {
		if series := pattern.FindString(upper); series != "" {
			tokens = append(tokens, series)
			break
		}
	}

	for _, memType := range n.tables.MemoryTypes {
		if strings.Contains(upper, memType) {
			tokens = append(tokens, memType)
			break
		}
	}

	if len(tokens) > maxNameTokens {
		tokens = tokens[:maxNameTokens]
	}
	return tokens
}

// DescriptionToken cleans a description block. Short blocks are dropped.
func (n *Normalizer) DescriptionToken(description string) string {
	desc := strings.TrimSpace(whitespace.ReplaceAllString(description, " "))
	if utf8.RuneCountInString(desc) <= minDescriptionLen {
		return ""
	}
	if utf8.RuneCountInString(desc) > maxDescriptionRune {
		desc = string([]rune(desc)[:maxDescriptionRune])
	}
	return desc
}

// Dedupe walks tokens in order, comparing each against every token kept so
// far. A token that duplicates kept tokens replaces all of them only when it
// is strictly longer than each; otherwise it is dropped.
func (n *Normalizer) Dedupe(tokens []string) []string {
	out := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		size := utf8.RuneCountInString(tok)
		hits := make(map[int]bool)
		first, longest := -1, true

		for i, kept := range out {
			if !n.Duplicates(kept, tok) {
				continue
			}
			hits[i] = true
			if first < 0 {
				first = i
			}
			if size <= utf8.RuneCountInString(kept) {
				longest = false
			}
		}

		switch {
		case first < 0:
			out = append(out, tok)
		case longest:
			merged := out[:0]
			for i, kept := range out {
				switch {
				case i == first:
					merged = append(merged, tok)
				case !hits[i]:
					merged = append(merged, kept)
				}
			}
			out = merged
		}
	}

	return out
}

// Duplicates reports whether a and b state the same fact.
func (n *Normalizer) Duplicates(a, b string) bool {
	if strings.EqualFold(a, b) {
		return true
	}

	upperA, upperB := strings.ToUpper(a), strings.ToUpper(b)

	capsA, capsB := models.FindCapacities(upperA), models.FindCapacities(upperB)
	if len(capsA) > 0 && len(capsB) > 0 && capsA[0] == capsB[0] &&
		n.hasCapacityKeyword(upperA) && n.hasCapacityKeyword(upperB) {
		return true
	}

	famA, numA, okA := series(upperA)
	famB, numB, okB := series(upperB)
	return okA && okB && famA == famB && numA == numB
}

func (n *Normalizer) isGraphicsCard(upper string) bool {
	for _, kw := range n.tables.GPUKeywords {
		if strings.Contains(upper, strings.ToUpper(kw)) {
			return true
		}
	}
	return false
}

func (n *Normalizer) hasCapacityKeyword(upper string) bool {
	for _, kw := range n.tables.CapacityKeyword {
		if strings.Contains(upper, strings.ToUpper(kw)) {
			return true
		}
	}
	return false
}

func series(upper string) (family, number string, ok bool) {
	m := seriesFamily.FindStringSubmatch(upper)
	if m == nil {
		return "", "", false
	}
	return strings.ReplaceAll(m[1], " ", ""), m[2], true
}
