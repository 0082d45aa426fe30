package marketplace

import (
	"context"
	"fmt"
	"log"

	"github.com/example/condo-marketplace/domain/ident"
	"github.com/example/condo-marketplace/events"
	"github.com/example/condo-marketplace/modules/cache"
	"github.com/example/condo-marketplace/store"
	"github.com/go-monolith/mono"
)

// Module exposes the marketplace store as request-reply services.
type Module struct {
	service *Service
	cache   *cache.PluginModule
}

var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.UsePluginModule       = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates the module around st.
func NewModule(st *store.Store, newID ident.Generator) *Module {
	return &Module{service: NewService(st, newID)}
}

func (m *Module) Name() string {
	return "marketplace"
}

func (m *Module) SetEventBus(bus mono.EventBus) {
	m.service.SetEventBus(bus)
}

func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.ProductListedV1.ToBase(),
		events.ProductRemovedV1.ToBase(),
		events.ProductReservedV1.ToBase(),
		events.ProductCompletedV1.ToBase(),
		events.ResidentRegisteredV1.ToBase(),
		events.ResidentDeactivatedV1.ToBase(),
	}
}

// SetPlugin picks up the optional "cache" plugin.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != "cache" {
		return
	}
	if cachePlugin, ok := plugin.(*cache.PluginModule); ok {
		m.cache = cachePlugin
		log.Println("[marketplace] Cache plugin injected")
	}
}

func (m *Module) Start(_ context.Context) error {
	if m.cache != nil {
		views := m.cache.Views()
		if views == nil {
			return fmt.Errorf("cache plugin registered but not started")
		}
		m.service.SetCache(views)
	}
	if m.service.bus == nil {
		log.Println("[marketplace] Warning: eventBus not set, events will not be published")
	}
	log.Printf("[marketplace] Module started (cache enabled: %t)", m.service.cache != nil)
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	log.Println("[marketplace] Module stopped")
	return nil
}

func (m *Module) Health(_ context.Context) mono.HealthStatus {
	state := m.service.store.ReadState()
	details := map[string]any{
		"products":  len(state.Products),
		"residents": len(state.Residents),
		"version":   state.Version,
		"cache":     m.service.cache != nil,
	}
	if m.cache != nil {
		details["cache_views"] = m.cache.Counters()
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}
