package catalog

import (
	"sort"
	"strings"

	"pgclosets-api/internal/domain"
)

// Sort identifies the ordering applied to a filtered product list.
type Sort string

const (
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
	SortNameAsc   Sort = "name-asc"
	SortNameDesc  Sort = "name-desc"
	SortNewest    Sort = "newest"
)

// DefaultPageSize is used when the caller passes a non-positive limit.
const DefaultPageSize = 20

// Criteria holds the filter predicates for a product search. Zero values
// mean "no constraint": an empty category or search text and nil price/stock
// bounds never exclude anything. All present predicates must hold (AND).
type Criteria struct {
	Category   string
	MinPrice   *int64
	MaxPrice   *int64
	InStock    *bool
	SearchText string
}

// Pagination selects a 1-indexed page of results.
type Pagination struct {
	Page  int
	Limit int
}

// Page is one page of search results plus the total match count, so the
// caller can render pagination controls.
type Page struct {
	Items   []*domain.Product `json:"items"`
	Total   int               `json:"total"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
	HasMore bool              `json:"has_more"`
}

// Search filters, sorts, and paginates the product collection. It never
// mutates its input and never fails: malformed criteria are treated as
// unconstrained, an unknown sort falls back to newest-first, and a page
// past the end yields empty items with the correct total.
func Search(products []*domain.Product, criteria Criteria, sortBy Sort, pg Pagination) Page {
	matched := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, criteria) {
			matched = append(matched, p)
		}
	}

	sortProducts(matched, sortBy)

	if pg.Page < 1 {
		pg.Page = 1
	}
	if pg.Limit < 1 {
		pg.Limit = DefaultPageSize
	}

	// Page and limit arrive straight from query strings, so the slice
	// positions are computed without multiplying or adding unbounded
	// values; a page past the end is just an empty page, never a panic.
	total := len(matched)
	start := total
	if total > 0 && pg.Page-1 <= (total-1)/pg.Limit {
		start = (pg.Page - 1) * pg.Limit
	}
	end := total
	if pg.Limit < total-start {
		end = start + pg.Limit
	}

	return Page{
		Items:   matched[start:end],
		Total:   total,
		Page:    pg.Page,
		Limit:   pg.Limit,
		HasMore: end < total,
	}
}

// Matches reports whether a product satisfies every present predicate.
func Matches(p *domain.Product, c Criteria) bool {
	if c.Category != "" && p.Category != c.Category {
		return false
	}

	if c.MinPrice != nil || c.MaxPrice != nil {
		price := p.EffectivePrice()
		if price == nil {
			return false
		}
		if c.MinPrice != nil && *price < *c.MinPrice {
			return false
		}
		if c.MaxPrice != nil && *price > *c.MaxPrice {
			return false
		}
	}

	if c.InStock != nil && p.InStock != *c.InStock {
		return false
	}

	if c.SearchText != "" {
		needle := strings.ToLower(c.SearchText)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}

	return true
}

// sortProducts orders products in place with a stable sort. Products without
// a usable price sort last under both price orderings, and every ordering
// breaks ties by ID ascending so identical input always yields identical
// output.
func sortProducts(products []*domain.Product, sortBy Sort) {
	var less func(a, b *domain.Product) int

	switch sortBy {
	case SortPriceAsc:
		less = func(a, b *domain.Product) int { return comparePrices(a, b, false) }
	case SortPriceDesc:
		less = func(a, b *domain.Product) int { return comparePrices(a, b, true) }
	case SortNameAsc:
		less = compareNames
	case SortNameDesc:
		less = func(a, b *domain.Product) int { return -compareNames(a, b) }
	case SortNewest:
		fallthrough
	default:
		less = func(a, b *domain.Product) int {
			// Newest first.
			if a.CreatedAt.After(b.CreatedAt) {
				return -1
			}
			if b.CreatedAt.After(a.CreatedAt) {
				return 1
			}
			return 0
		}
	}

	sort.SliceStable(products, func(i, j int) bool {
		if c := less(products[i], products[j]); c != 0 {
			return c < 0
		}
		return products[i].ID.String() < products[j].ID.String()
	})
}

// comparePrices orders by effective price. A nil price compares greater
// than any listed price under both directions, so unpriced products always
// land at the end.
func comparePrices(a, b *domain.Product, desc bool) int {
	pa, pb := a.EffectivePrice(), b.EffectivePrice()
	switch {
	case pa == nil && pb == nil:
		return 0
	case pa == nil:
		return 1
	case pb == nil:
		return -1
	}

	c := 0
	switch {
	case *pa < *pb:
		c = -1
	case *pa > *pb:
		c = 1
	}
	if desc {
		c = -c
	}
	return c
}

func compareNames(a, b *domain.Product) int {
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}
