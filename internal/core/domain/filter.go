package domain

import "strings"

type ProductFilter struct {
	Search   string
	Category string
}

func (f ProductFilter) IsEmpty() bool {
	return f.Search == "" && f.Category == ""
}

func (f ProductFilter) Matches(p *Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// FilterProducts keeps the relative order of products. An empty filter
// returns the input slice itself.
func FilterProducts(products []*Product, filter ProductFilter) []*Product {
	if filter.IsEmpty() {
		return products
	}
	filtered := make([]*Product, 0, len(products))
	for _, p := range products {
		if filter.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// DistinctCategories lists each category once, in order of first appearance.
func DistinctCategories(products []*Product) []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}
