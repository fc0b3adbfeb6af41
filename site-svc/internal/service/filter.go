package service

import (
	"sort"
	"strings"

	"flavor-heaven/site-svc/internal/domain"
)

const (
	budgetCeiling = 15.0
	luxuryFloor   = 25.0
)

// ApplyFilters narrows catalog by filters and returns a new, sorted slice.
// The input catalog is never modified.
func ApplyFilters(catalog []domain.MenuItem, filters domain.FilterState) []domain.MenuItem {
	search := strings.ToLower(strings.TrimSpace(filters.Search))

	items := make([]domain.MenuItem, 0, len(catalog))
	for _, item := range catalog {
		if !matchesCategory(item, filters.Category) {
			continue
		}
		if !matchesDietary(item, filters.Dietary, filters.DietaryMatch) {
			continue
		}
		if !matchesPrice(item, filters.PriceRange) {
			continue
		}
		if search != "" && !matchesSearch(item, search) {
			continue
		}
		items = append(items, item)
	}

	sortItems(items, filters.Sort)
	return items
}

func matchesCategory(item domain.MenuItem, category string) bool {
	return category == "" || category == domain.CategoryAll || item.Category == category
}

// matchesDietary keeps an item when it carries any selected tag. The "spicy"
// tag is answered by the item's spicy flag.
func matchesDietary(item domain.MenuItem, tags []string, mode domain.DietaryMatch) bool {
	if len(tags) == 0 {
		return true
	}
	if mode == domain.MatchAll {
		for _, tag := range tags {
			if !hasDietary(item, tag) {
				return false
			}
		}
		return true
	}
	for _, tag := range tags {
		if hasDietary(item, tag) {
			return true
		}
	}
	return false
}

func hasDietary(item domain.MenuItem, tag string) bool {
	if tag == domain.TagSpicy {
		return item.Spicy
	}
	return item.HasTag(tag)
}

func matchesPrice(item domain.MenuItem, priceRange domain.PriceRange) bool {
	switch priceRange {
	case domain.PriceBudget:
		return item.Price < budgetCeiling
	case domain.PricePremium:
		return item.Price >= budgetCeiling && item.Price <= luxuryFloor
	case domain.PriceLuxury:
		return item.Price > luxuryFloor
	default:
		return true
	}
}

func matchesSearch(item domain.MenuItem, search string) bool {
	return strings.Contains(strings.ToLower(item.Name), search) ||
		strings.Contains(strings.ToLower(item.Description), search)
}

func sortItems(items []domain.MenuItem, key domain.SortKey) {
	var less func(a, b domain.MenuItem) bool
	switch key {
	case domain.SortNameAsc:
		less = func(a, b domain.MenuItem) bool { return compareNames(a.Name, b.Name) < 0 }
	case domain.SortNameDesc:
		less = func(a, b domain.MenuItem) bool { return compareNames(a.Name, b.Name) > 0 }
	case domain.SortPriceAsc:
		less = func(a, b domain.MenuItem) bool { return a.Price < b.Price }
	case domain.SortPriceDesc:
		less = func(a, b domain.MenuItem) bool { return a.Price > b.Price }
	case domain.SortPopular:
		less = func(a, b domain.MenuItem) bool { return a.Popular && !b.Popular }
	default:
		return
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

func compareNames(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
