// Package store holds the single authoritative copy of the marketplace state.
//
// A Store is created once and injected into whatever needs it. All methods are
// safe for concurrent use. Every mutation runs under the write lock and bumps
// the version stamp, so readers observe either the state before a mutation or
// the state after it. Values returned to callers are deep copies.
package store

import (
	"sync"

	"github.com/example/condo-marketplace/domain/product"
	"github.com/example/condo-marketplace/domain/resident"
	"github.com/example/condo-marketplace/filter"
)

// State is a consistent snapshot of the store.
type State struct {
	Products         []product.Product   `json:"products"`
	Residents        []resident.Resident `json:"residents"`
	SelectedCategory string              `json:"selected_category"`
	SearchTerm       string              `json:"search_term"`
	Version          uint64              `json:"version"`
}

// Criteria returns the filter pair of the snapshot.
func (s State) Criteria() filter.Criteria {
	return filter.Criteria{Category: s.SelectedCategory, SearchTerm: s.SearchTerm}
}

// Store is the in-memory marketplace state.
type Store struct {
	mu        sync.RWMutex
	products  []product.Product
	residents []resident.Resident
	category  string
	search    string
	version   uint64
}

// Option configures a new Store.
type Option func(*Store)

// WithProducts sets the initial product collection.
func WithProducts(products []product.Product) Option {
	return func(s *Store) {
		s.products = cloneProducts(products)
	}
}

// WithResidents sets the initial resident collection.
func WithResidents(residents []resident.Resident) Option {
	return func(s *Store) {
		s.residents = cloneResidents(residents)
	}
}

// New creates an empty store showing every category with no search term.
func New(opts ...Option) *Store {
	s := &Store{
		products:  []product.Product{},
		residents: []resident.Resident{},
		category:  filter.AllCategories,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadState returns a snapshot of the whole store.
func (s *Store) ReadState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return State{
		Products:         cloneProducts(s.products),
		Residents:        cloneResidents(s.residents),
		SelectedCategory: s.category,
		SearchTerm:       s.search,
		Version:          s.version,
	}
}

// Products returns a copy of the product collection, newest first.
func (s *Store) Products() []product.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.products)
}

// Residents returns a copy of the resident collection, newest first.
func (s *Store) Residents() []resident.Resident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneResidents(s.residents)
}

// Criteria returns the active filter state.
func (s *Store) Criteria() filter.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter.Criteria{Category: s.category, SearchTerm: s.search}
}

// Version returns the number of mutations applied so far.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Product looks up a product by id.
func (s *Store) Product(id string) (product.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.productIndex(id); i >= 0 {
		return s.products[i].Clone(), true
	}
	return product.Product{}, false
}

// AddProduct prepends p. It does not validate p or check its id.
func (s *Store) AddProduct(p product.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append([]product.Product{p.Clone()}, s.products...)
	s.version++
}

// RemoveProduct removes the product with the given id and reports whether one
// was found. Removing an unknown id leaves the collection untouched.
func (s *Store) RemoveProduct(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return false
	}
	next := make([]product.Product, 0, len(s.products)-1)
	next = append(next, s.products[:i]...)
	next = append(next, s.products[i+1:]...)
	s.products = next
	s.version++
	return true
}

// AddResident prepends r. It does not validate r or check its id.
func (s *Store) AddResident(r resident.Resident) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.residents = append([]resident.Resident{r}, s.residents...)
	s.version++
}

// ReplaceProducts swaps in a new product collection.
func (s *Store) ReplaceProducts(products []product.Product) {
	cloned := cloneProducts(products)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = cloned
	s.version++
}

// ReplaceResidents swaps in a new resident collection.
func (s *Store) ReplaceResidents(residents []resident.Resident) {
	cloned := cloneResidents(residents)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.residents = cloned
	s.version++
}

// SetSelectedCategory stores the category token as given. Unknown tokens are
// accepted here and simply match nothing when filtering.
func (s *Store) SetSelectedCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.category = category
	s.version++
}

// SetSearchTerm stores the search text as given.
func (s *Store) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.search = term
	s.version++
}

// ResetFilters shows every category with no search term. Both fields change
// in a single mutation.
func (s *Store) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.category = filter.AllCategories
	s.search = ""
	s.version++
}

// productIndex must be called with the lock held.
func (s *Store) productIndex(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneProducts(products []product.Product) []product.Product {
	out := make([]product.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}

func cloneResidents(residents []resident.Resident) []resident.Resident {
	out := make([]resident.Resident, len(residents))
	copy(out, residents)
	return out
}
