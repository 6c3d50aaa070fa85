package search

import (
	"sort"

	"github.com/maltedev/compuzone-search/internal/models"
)

const DefaultLimit = 10

// Assemble keeps the first record per name, in emission order, until limit
// records are collected. A limit of zero or less means DefaultLimit.
func Assemble(records []models.Product, limit int) []models.Product {
	if limit <= 0 {
		limit = DefaultLimit
	}

	out := make([]models.Product, 0, min(limit, len(records)))
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if len(out) >= limit {
			break
		}
		if seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		out = append(out, r)
	}
	return out
}

// SortByPrice orders records by ascending amount in place. Records without
// a numeric price go last, keeping their relative order.
func SortByPrice(records []models.Product) []models.Product {
	sort.SliceStable(records, func(i, j int) bool {
		a, okA := records[i].Amount()
		b, okB := records[j].Amount()
		switch {
		case okA && okB:
			return a < b
		default:
			return okA && !okB
		}
	})
	return records
}
