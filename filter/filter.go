// Package filter derives the visible subsets of the marketplace collections.
// Every function is pure and keeps the relative order of its input.
package filter

import (
	"strings"

	"github.com/example/condo-marketplace/domain/product"
	"github.com/example/condo-marketplace/domain/resident"
)

// AllCategories is the category token that matches every product.
const AllCategories = product.AllCategories

// Criteria is the pair of filter inputs held by the store.
type Criteria struct {
	Category   string `json:"category"`
	SearchTerm string `json:"search_term"`
}

// Apply is DeriveVisibleProducts with the receiver's criteria.
func (c Criteria) Apply(products []product.Product) []product.Product {
	return DeriveVisibleProducts(products, c.Category, c.SearchTerm)
}

// DeriveVisibleProducts returns the products matching both the category and the
// search term. The search term is trimmed, so a blank term matches everything.
func DeriveVisibleProducts(products []product.Product, category, searchTerm string) []product.Product {
	term := normalize(searchTerm)

	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if MatchCategory(p, category) && matchSearch(p, term) {
			out = append(out, p)
		}
	}
	return out
}

// MatchCategory reports whether p passes the category filter. Matching is exact
// and case-sensitive, so unknown tokens match nothing.
func MatchCategory(p product.Product, category string) bool {
	return category == AllCategories || string(p.Category) == category
}

// matchSearch expects term to be normalized already. It checks the title, the
// description and every tag.
func matchSearch(p product.Product, term string) bool {
	if term == "" {
		return true
	}
	if contains(p.Title, term) || contains(p.Description, term) {
		return true
	}
	for _, tag := range p.Tags {
		if contains(tag, term) {
			return true
		}
	}
	return false
}

// SearchResidents returns the residents whose name, apartment or email contain
// the term, ignoring case.
func SearchResidents(residents []resident.Resident, searchTerm string) []resident.Resident {
	term := normalize(searchTerm)

	out := make([]resident.Resident, 0, len(residents))
	for _, r := range residents {
		if term == "" || contains(r.Name, term) || contains(r.Apartment, term) || contains(r.Email, term) {
			out = append(out, r)
		}
	}
	return out
}

func normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// contains expects term to be normalized already.
func contains(field, term string) bool {
	return strings.Contains(strings.ToLower(field), term)
}
