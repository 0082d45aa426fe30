package store

import (
	"fmt"

	"github.com/example/condo-marketplace/domain/product"
	"github.com/example/condo-marketplace/domain/resident"
)

// MarkReserved moves an available product to reserved.
func (s *Store) MarkReserved(id string) (product.Product, error) {
	return s.transition(id, product.StatusAvailable, product.StatusReserved)
}

// MarkCompleted moves a reserved product to completed.
func (s *Store) MarkCompleted(id string) (product.Product, error) {
	return s.transition(id, product.StatusReserved, product.StatusCompleted)
}

func (s *Store) transition(id string, from, to product.Status) (product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return product.Product{}, fmt.Errorf("%w: %s", product.ErrProductNotFound, id)
	}
	if s.products[i].Status != from {
		return product.Product{}, fmt.Errorf("%w: %s is %s, want %s",
			product.ErrInvalidTransition, id, s.products[i].Status, from)
	}

	s.products[i].Status = to
	s.version++
	return s.products[i].Clone(), nil
}

// DeactivateResident clears the active flag. Deactivating an inactive resident
// is a no-op and does not bump the version.
func (s *Store) DeactivateResident(id string) (resident.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.residents {
		if s.residents[i].ID != id {
			continue
		}
		if s.residents[i].IsActive {
			s.residents[i].IsActive = false
			s.version++
		}
		return s.residents[i], nil
	}
	return resident.Resident{}, fmt.Errorf("%w: %s", resident.ErrResidentNotFound, id)
}
