package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Sentinel facet values meaning "do not filter on this facet".
const (
	AllCategories = "All Categories"
	AllLocations  = "All Locations"
)

// PriceRange is an inclusive [Min, Max] price bound.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Empty reports whether the range can contain no price at all (min > max).
func (r PriceRange) Empty() bool {
	return r.Min > r.Max
}

// Contains reports inclusive containment of price in the range.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// SearchFilter is a typed facet specification consumed uniformly by the
// in-memory predicate below and by the SQL query builder in the repository
// layer. A nil facet matches everything for that dimension.
type SearchFilter struct {
	Query      *string
	Category   *string
	Location   *string
	PriceRange *PriceRange
	SellerID   *uuid.UUID
}

// HasCategory reports whether the category facet actually constrains results,
// i.e. it is present and not the "All Categories" sentinel.
func (f SearchFilter) HasCategory() bool {
	return f.Category != nil && *f.Category != AllCategories
}

// HasLocation reports whether the location facet actually constrains results.
func (f SearchFilter) HasLocation() bool {
	return f.Location != nil && *f.Location != AllLocations
}

// HasQuery reports whether a non-empty text facet is present.
func (f SearchFilter) HasQuery() bool {
	return f.Query != nil && strings.TrimSpace(*f.Query) != ""
}

// Matches reports whether a product satisfies every provided facet.
// Text matching is a case-insensitive substring test against the product
// title, category and seller name. Category and location are exact matches.
// Price containment is inclusive; an inverted range matches nothing.
func (f SearchFilter) Matches(p Product) bool {
	if f.HasQuery() {
		q := strings.ToLower(strings.TrimSpace(*f.Query))
		if !strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) &&
			!strings.Contains(strings.ToLower(p.SellerName), q) {
			return false
		}
	}

	if f.HasCategory() && p.Category != *f.Category {
		return false
	}

	if f.HasLocation() && p.Location != *f.Location {
		return false
	}

	if f.PriceRange != nil && !f.PriceRange.Contains(p.Price) {
		return false
	}

	if f.SellerID != nil && p.SellerID != *f.SellerID {
		return false
	}

	return true
}

// FilterProducts applies the filter to an in-memory collection, preserving
// input order. It must stay result-equivalent to the repository's SQL path.
func FilterProducts(products []Product, f SearchFilter) []Product {
	matched := []Product{}
	for _, p := range products {
		if f.Matches(p) {
			matched = append(matched, p)
		}
	}
	return matched
}
