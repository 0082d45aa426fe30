// Package marketplace wraps the store in a mono module. It owns the only Store
// instance, validates drafts at the creation boundary and publishes events
// after each successful mutation.
package marketplace

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/condo-marketplace/domain/ident"
	"github.com/example/condo-marketplace/domain/product"
	"github.com/example/condo-marketplace/domain/resident"
	"github.com/example/condo-marketplace/events"
	"github.com/example/condo-marketplace/filter"
	"github.com/example/condo-marketplace/modules/cache"
	"github.com/example/condo-marketplace/store"
	"github.com/go-monolith/mono"
	"golang.org/x/sync/singleflight"
)

// Service implements MarketplacePort directly on a Store.
type Service struct {
	store   *store.Store
	newID   ident.Generator
	now     func() time.Time
	bus     mono.EventBus
	cache   cache.ViewCache
	sfGroup singleflight.Group
	// epoch scopes cache keys to this store's lifetime; the version stamp
	// restarts at zero in every process.
	epoch string
}

var _ MarketplacePort = (*Service)(nil)

// NewService creates a service over st. Event publishing and caching stay off
// until SetEventBus and SetCache are called.
func NewService(st *store.Store, newID ident.Generator) *Service {
	return &Service{
		store: st,
		newID: newID,
		now:   time.Now,
		epoch: ident.NewUUID()(),
	}
}

// SetEventBus enables event publishing.
func (s *Service) SetEventBus(bus mono.EventBus) {
	s.bus = bus
}

// SetCache enables caching of derived product views.
func (s *Service) SetCache(c cache.ViewCache) {
	s.cache = c
}

func (s *Service) ReadState(_ context.Context) (store.State, error) {
	return s.store.ReadState(), nil
}

func (s *Service) VisibleProducts(ctx context.Context, criteria *filter.Criteria) ([]product.Product, error) {
	c := s.store.Criteria()
	if criteria != nil {
		c = *criteria
	}

	if s.cache == nil {
		return c.Apply(s.store.Products()), nil
	}

	version := s.store.Version()
	key := visibleKey(s.epoch, version, c)

	cached, found, err := s.cache.Products(ctx, key)
	if err != nil {
		log.Printf("[marketplace] Cache error for %s: %v", key, err)
	}
	if found {
		return cached, nil
	}

	val, err, _ := s.sfGroup.Do(key, func() (any, error) {
		state := s.store.ReadState()
		visible := c.Apply(state.Products)
		// only cache what was computed at the version the key names
		if state.Version == version {
			if err := s.cache.PutProducts(ctx, key, visible); err != nil {
				log.Printf("[marketplace] Warning: failed to cache %s: %v", key, err)
			}
		}
		return visible, nil
	})
	if err != nil {
		return nil, err
	}

	shared := val.([]product.Product)
	out := make([]product.Product, len(shared))
	for i, p := range shared {
		out[i] = p.Clone()
	}
	return out, nil
}

// visibleKey embeds the store version so every mutation retires older entries.
// The criteria are quoted so no category/term pair can collide with another.
func visibleKey(epoch string, version uint64, c filter.Criteria) string {
	return fmt.Sprintf("visible:%s:%d:%q:%q", epoch, version, c.Category, c.SearchTerm)
}

func (s *Service) AddProduct(_ context.Context, draft product.Draft) (product.Product, error) {
	p, err := draft.Build(s.newID, s.now())
	if err != nil {
		return product.Product{}, err
	}
	s.store.AddProduct(p)
	log.Printf("[marketplace] Product listed: %s (%s) by %s", p.ID, p.Category, p.Owner.Name)

	s.publish("ProductListed", p.ID, func() error {
		return events.ProductListedV1.Publish(s.bus, events.ProductListedEvent{
			ProductID:      p.ID,
			Title:          p.Title,
			Category:       string(p.Category),
			OwnerName:      p.Owner.Name,
			OwnerApartment: p.Owner.Apartment,
			ListedAt:       p.CreatedAt,
		}, nil)
	})
	return p, nil
}

func (s *Service) RemoveProduct(_ context.Context, id string) (bool, error) {
	existing, found := s.store.Product(id)
	if !s.store.RemoveProduct(id) {
		return false, nil
	}
	log.Printf("[marketplace] Product removed: %s", id)

	title := ""
	if found {
		title = existing.Title
	}
	s.publish("ProductRemoved", id, func() error {
		return events.ProductRemovedV1.Publish(s.bus, events.ProductRemovedEvent{
			ProductID: id,
			Title:     title,
			RemovedAt: s.now().UTC(),
		}, nil)
	})
	return true, nil
}

func (s *Service) ReserveProduct(_ context.Context, id string) (product.Product, error) {
	p, err := s.store.MarkReserved(id)
	if err != nil {
		return product.Product{}, err
	}
	s.publishStatus(p, "ProductReserved")
	return p, nil
}

func (s *Service) CompleteProduct(_ context.Context, id string) (product.Product, error) {
	p, err := s.store.MarkCompleted(id)
	if err != nil {
		return product.Product{}, err
	}
	s.publishStatus(p, "ProductCompleted")
	return p, nil
}

func (s *Service) publishStatus(p product.Product, name string) {
	def := events.ProductReservedV1
	if p.Status == product.StatusCompleted {
		def = events.ProductCompletedV1
	}
	log.Printf("[marketplace] Product %s is now %s", p.ID, p.Status)
	s.publish(name, p.ID, func() error {
		return def.Publish(s.bus, events.ProductStatusChangedEvent{
			ProductID: p.ID,
			Title:     p.Title,
			Status:    string(p.Status),
			ChangedAt: s.now().UTC(),
		}, nil)
	})
}

func (s *Service) ReplaceProducts(_ context.Context, products []product.Product) error {
	s.store.ReplaceProducts(products)
	log.Printf("[marketplace] Product collection replaced (%d products)", len(products))
	return nil
}

func (s *Service) AddResident(_ context.Context, draft resident.Draft) (resident.Resident, error) {
	r, err := draft.Build(s.newID, s.now())
	if err != nil {
		return resident.Resident{}, err
	}
	s.store.AddResident(r)
	log.Printf("[marketplace] Resident registered: %s (%s)", r.ID, r.Apartment)

	s.publish("ResidentRegistered", r.ID, func() error {
		return events.ResidentRegisteredV1.Publish(s.bus, residentEvent(r, r.CreatedAt), nil)
	})
	return r, nil
}

func (s *Service) SearchResidents(_ context.Context, term string) ([]resident.Resident, error) {
	return filter.SearchResidents(s.store.Residents(), term), nil
}

func (s *Service) DeactivateResident(_ context.Context, id string) (resident.Resident, error) {
	r, err := s.store.DeactivateResident(id)
	if err != nil {
		return resident.Resident{}, err
	}
	s.publish("ResidentDeactivated", r.ID, func() error {
		return events.ResidentDeactivatedV1.Publish(s.bus, residentEvent(r, s.now().UTC()), nil)
	})
	return r, nil
}

func (s *Service) ReplaceResidents(_ context.Context, residents []resident.Resident) error {
	s.store.ReplaceResidents(residents)
	log.Printf("[marketplace] Resident collection replaced (%d residents)", len(residents))
	return nil
}

func (s *Service) SetSelectedCategory(_ context.Context, category string) (filter.Criteria, error) {
	s.store.SetSelectedCategory(category)
	return s.store.Criteria(), nil
}

func (s *Service) SetSearchTerm(_ context.Context, term string) (filter.Criteria, error) {
	s.store.SetSearchTerm(term)
	return s.store.Criteria(), nil
}

func (s *Service) ResetFilters(_ context.Context) (filter.Criteria, error) {
	s.store.ResetFilters()
	return s.store.Criteria(), nil
}

func (s *Service) Stats(_ context.Context) (filter.Stats, error) {
	state := s.store.ReadState()
	return filter.Summarize(state.Products, state.Residents), nil
}

// publish is best-effort: a failed publish is logged and never fails the
// mutation that triggered it.
func (s *Service) publish(name, subject string, send func() error) {
	if s.bus == nil {
		return
	}
	if err := send(); err != nil {
		log.Printf("[marketplace] Warning: failed to publish %s event for %s: %v", name, subject, err)
	}
}

func residentEvent(r resident.Resident, at time.Time) events.ResidentEvent {
	return events.ResidentEvent{
		ResidentID: r.ID,
		Name:       r.Name,
		Apartment:  r.Apartment,
		At:         at,
	}
}
