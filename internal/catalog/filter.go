package catalog

import (
	"strings"

	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/domain"
)

// AllCategories selects every category in Filter.
const AllCategories = "All"

// MaxRelated caps the "you might also like" list on the product page.
const MaxRelated = 5

// Filter keeps products in the selected category whose title contains the query,
// ignoring case. A blank query matches everything.
func Filter(products []domain.Product, query, category string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != AllCategories && p.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories lists "All" followed by each distinct category in first-seen order.
func Categories(products []domain.Product) []string {
	if len(products) == 0 {
		return []string{}
	}

	seen := make(map[string]struct{})
	out := []string{AllCategories}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// Related returns up to limit other products from the same category as current.
func Related(products []domain.Product, current domain.Product, limit int) []domain.Product {
	out := []domain.Product{}
	if current.Category == "" {
		return out
	}
	for _, p := range products {
		if len(out) == limit {
			break
		}
		if p.Category == current.Category && p.ID != current.ID {
			out = append(out, p)
		}
	}
	return out
}
