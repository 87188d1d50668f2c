// Package filter narrows catalog listings with a set of optional predicates.
// Application is pure: the input slice is never mutated and relative order is
// preserved, so clearing the predicates restores the original listing.
package filter

import (
	"strings"

	"github.com/trekora/trekdesk/internal/model"
)

// Sentinel values that mean "no constraint" for selector predicates.
const (
	SentinelAny = "any"
	SentinelAll = "All"
)

// PredicateSet holds the active filter controls of a catalog view. Zero-value
// string fields and the documented sentinels are treated as absent; nil price
// and rating bounds are absent.
type PredicateSet struct {
	Location   string
	Speciality string
	Search     string
	Category   string
	Brand      string
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64
}

// Clear resets every predicate to its absent state.
func (predicates *PredicateSet) Clear() {
	*predicates = PredicateSet{}
}

func selectorAbsent(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == "" || trimmed == SentinelAny || trimmed == SentinelAll
}

func containsFold(haystack string, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Apply returns the items matching every present predicate, in their original
// order. An empty predicate set is the identity.
func Apply(items []model.CatalogItem, predicates PredicateSet) []model.CatalogItem {
	matched := make([]model.CatalogItem, 0, len(items))
	for _, item := range items {
		if matches(item, predicates) {
			matched = append(matched, item)
		}
	}
	return matched
}

func matches(item model.CatalogItem, predicates PredicateSet) bool {
	if strings.TrimSpace(predicates.Location) != "" && !containsFold(item.Location, predicates.Location) {
		return false
	}
	if strings.TrimSpace(predicates.Speciality) != "" && !containsFold(item.Speciality, predicates.Speciality) {
		return false
	}
	if searchTerm := strings.TrimSpace(predicates.Search); searchTerm != "" {
		if !containsFold(item.Name, searchTerm) && !containsFold(item.Difficulty, searchTerm) {
			return false
		}
	}
	if !selectorAbsent(predicates.Category) && !strings.EqualFold(item.CategoryLabel, predicates.Category) {
		return false
	}
	if !selectorAbsent(predicates.Brand) && !strings.EqualFold(item.Brand, predicates.Brand) {
		return false
	}
	unitPrice := item.UnitPrice()
	if predicates.MinPrice != nil && unitPrice < *predicates.MinPrice {
		return false
	}
	if predicates.MaxPrice != nil && unitPrice > *predicates.MaxPrice {
		return false
	}
	if predicates.MinRating != nil && item.Rating < *predicates.MinRating {
		return false
	}
	return true
}
