package filter

import (
	"github.com/example/condo-marketplace/domain/product"
	"github.com/example/condo-marketplace/domain/resident"
)

// Stats are the dashboard counters.
type Stats struct {
	Products        int                      `json:"products"`
	Residents       int                      `json:"residents"`
	ActiveResidents int                      `json:"active_residents"`
	ByCategory      map[product.Category]int `json:"by_category"`
	ByStatus        map[product.Status]int   `json:"by_status"`
}

// Summarize counts the collections. Every known category and status is present
// in the maps, with zero when unused.
func Summarize(products []product.Product, residents []resident.Resident) Stats {
	s := Stats{
		Products:   len(products),
		Residents:  len(residents),
		ByCategory: make(map[product.Category]int, len(product.Categories)),
		ByStatus:   make(map[product.Status]int, 3),
	}
	for _, c := range product.Categories {
		s.ByCategory[c] = 0
	}
	for _, st := range []product.Status{product.StatusAvailable, product.StatusReserved, product.StatusCompleted} {
		s.ByStatus[st] = 0
	}

	for _, p := range products {
		s.ByCategory[p.Category]++
		s.ByStatus[p.Status]++
	}
	for _, r := range residents {
		if r.IsActive {
			s.ActiveResidents++
		}
	}
	return s
}
