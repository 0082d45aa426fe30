package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/condo-marketplace/domain/ident"
	"github.com/example/condo-marketplace/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ServiceListActivity returns the newest entries of the feed.
const ServiceListActivity = "list-activity"

type ListRequest struct {
	Limit int `json:"limit"`
}

type ListResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

// Module subscribes to marketplace events and records them in a Feed.
type Module struct {
	feed *Feed
}

var (
	_ mono.Module                = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

func NewModule(capacity int) *Module {
	return &Module{feed: NewFeed(capacity, ident.NewUUID())}
}

func (m *Module) Name() string {
	return "activity"
}

func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.ProductListedV1, m.handleProductListed, m); err != nil {
		return fmt.Errorf("failed to register ProductListed consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.ProductRemovedV1, m.handleProductRemoved, m); err != nil {
		return fmt.Errorf("failed to register ProductRemoved consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.ProductReservedV1, m.handleProductStatus, m); err != nil {
		return fmt.Errorf("failed to register ProductReserved consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.ProductCompletedV1, m.handleProductStatus, m); err != nil {
		return fmt.Errorf("failed to register ProductCompleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.ResidentRegisteredV1, m.handleResidentRegistered, m); err != nil {
		return fmt.Errorf("failed to register ResidentRegistered consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.ResidentDeactivatedV1, m.handleResidentDeactivated, m); err != nil {
		return fmt.Errorf("failed to register ResidentDeactivated consumer: %w", err)
	}

	log.Printf("[activity] Registered event consumers: ProductListed, ProductRemoved, ProductReserved, ProductCompleted, ResidentRegistered, ResidentDeactivated")
	return nil
}

func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListActivity, json.Unmarshal, json.Marshal, m.listActivity,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListActivity, err)
	}
	return nil
}

func (m *Module) handleProductListed(_ context.Context, e events.ProductListedEvent, _ *mono.Msg) error {
	m.feed.Append("product_listed", e.ProductID,
		fmt.Sprintf("%s (%s) listed %q for %s", e.OwnerName, e.OwnerApartment, e.Title, e.Category), e.ListedAt)
	return nil
}

func (m *Module) handleProductRemoved(_ context.Context, e events.ProductRemovedEvent, _ *mono.Msg) error {
	m.feed.Append("product_removed", e.ProductID, fmt.Sprintf("%q was removed", e.Title), e.RemovedAt)
	return nil
}

func (m *Module) handleProductStatus(_ context.Context, e events.ProductStatusChangedEvent, _ *mono.Msg) error {
	m.feed.Append("product_"+e.Status, e.ProductID, fmt.Sprintf("%q is now %s", e.Title, e.Status), e.ChangedAt)
	return nil
}

func (m *Module) handleResidentRegistered(_ context.Context, e events.ResidentEvent, _ *mono.Msg) error {
	m.feed.Append("resident_registered", e.ResidentID, fmt.Sprintf("%s joined from %s", e.Name, e.Apartment), e.At)
	return nil
}

func (m *Module) handleResidentDeactivated(_ context.Context, e events.ResidentEvent, _ *mono.Msg) error {
	m.feed.Append("resident_deactivated", e.ResidentID, fmt.Sprintf("%s (%s) was deactivated", e.Name, e.Apartment), e.At)
	return nil
}

func (m *Module) listActivity(_ context.Context, req ListRequest, _ *mono.Msg) (ListResponse, error) {
	entries := m.feed.Recent(req.Limit)
	return ListResponse{Entries: entries, Total: m.feed.Len()}, nil
}

func (m *Module) Start(_ context.Context) error {
	log.Println("[activity] Module started - listening for marketplace events")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	log.Println("[activity] Module stopped")
	return nil
}

func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"entries":  m.feed.Len(),
			"capacity": m.feed.capacity,
		},
	}
}
