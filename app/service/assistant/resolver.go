package assistant

import (
	"context"
	"fmt"
	"strings"

	"shopassist/app/store"

	"github.com/elliotchance/pie/v2"
)

const (
	searchLimit    = 3
	recommendLimit = 5
)

type searchFilters struct {
	category string
	minPrice int64
	maxPrice int64
}

func (f searchFilters) apply(products []store.Product) []store.Product {
	return pie.Filter(products, func(p store.Product) bool {
		if f.category != "" && !strings.EqualFold(p.Category, f.category) {
			return false
		}
		if f.minPrice > 0 && p.Price < f.minPrice {
			return false
		}
		if f.maxPrice > 0 && p.Price > f.maxPrice {
			return false
		}

		return true
	})
}

// searchCatalog runs the tiered fallback: name match, then brand match over
// the turn snapshot, then description match. Category and price bounds are a
// post-filter on whichever tier produced results, not re-run per tier.
func (s *Service) searchCatalog(ctx context.Context, term string, filters searchFilters, snapshot []store.Product) ([]store.Product, error) {
	results, err := s.catalog.FindByNameContains(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("catalog name search: %w", err)
	}

	if len(results) == 0 {
		lower := strings.ToLower(term)
		results = pie.Filter(snapshot, func(p store.Product) bool {
			return strings.Contains(strings.ToLower(p.Brand), lower)
		})
	}

	if len(results) == 0 {
		results, err = s.catalog.FindByDescriptionContains(ctx, term)
		if err != nil {
			return nil, fmt.Errorf("catalog description search: %w", err)
		}
	}

	results = filters.apply(results)

	return dedupeByID(results), nil
}

func dedupeByID(products []store.Product) []store.Product {
	seen := make(map[int64]bool, len(products))
	result := make([]store.Product, 0, len(products))

	for _, p := range products {
		if !p.Active || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		result = append(result, p)
	}

	return result
}

// findNamedProduct picks the catalog entry whose name occurs in the message,
// preferring the longest name so "Pro Max" is not shadowed by "Pro".
func findNamedProduct(products []store.Product, message string) (store.Product, bool) {
	lower := strings.ToLower(message)

	var best store.Product
	found := false

	for _, p := range products {
		if !strings.Contains(lower, strings.ToLower(p.Name)) {
			continue
		}
		if !found || len(p.Name) > len(best.Name) {
			best = p
			found = true
		}
	}

	return best, found
}

// findNamedProducts collects up to limit entries named in the message, in
// catalog order.
func findNamedProducts(products []store.Product, message string, limit int) []store.Product {
	lower := strings.ToLower(message)

	var found []store.Product
	for _, p := range products {
		if strings.Contains(lower, strings.ToLower(p.Name)) {
			found = append(found, p)
			if len(found) == limit {
				break
			}
		}
	}

	return found
}

func limitProducts(products []store.Product, limit int) []store.Product {
	if len(products) > limit {
		return products[:limit]
	}

	return products
}
