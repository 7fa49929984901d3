package views

import (
	"sort"

	"homeinventory/pkg/domain"
)

// AvailableCategories is the sorted union of the built-in categories and
// every non-empty category in use.
func AvailableCategories(items []domain.Item) []string {
	values := append([]string{}, domain.Categories...)
	for _, it := range items {
		if it.Category != "" {
			values = append(values, it.Category)
		}
	}
	return distinctSorted(values)
}

// KnownBrands lists the distinct non-empty brands in use, sorted.
func KnownBrands(items []domain.Item) []string {
	values := make([]string, 0, len(items))
	for _, it := range items {
		if it.Brand != "" {
			values = append(values, it.Brand)
		}
	}
	return distinctSorted(values)
}

// KnownTypes lists the distinct non-empty item types in use, sorted.
func KnownTypes(items []domain.Item) []string {
	values := make([]string, 0, len(items))
	for _, it := range items {
		if it.Type != "" {
			values = append(values, it.Type)
		}
	}
	return distinctSorted(values)
}

func distinctSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
