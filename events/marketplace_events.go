// Package events declares the typed events emitted by the marketplace module.
package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// ProductListedEvent is emitted after a product is added to the store.
type ProductListedEvent struct {
	ProductID      string    `json:"product_id"`
	Title          string    `json:"title"`
	Category       string    `json:"category"`
	OwnerName      string    `json:"owner_name"`
	OwnerApartment string    `json:"owner_apartment"`
	ListedAt       time.Time `json:"listed_at"`
}

// ProductListedV1 subject: events.marketplace.v1.product-listed
var ProductListedV1 = helper.EventDefinition[ProductListedEvent](
	"marketplace", "ProductListed", "v1",
)

// ProductRemovedEvent is emitted only when a removal matched a product.
type ProductRemovedEvent struct {
	ProductID string    `json:"product_id"`
	Title     string    `json:"title"`
	RemovedAt time.Time `json:"removed_at"`
}

// ProductRemovedV1 subject: events.marketplace.v1.product-removed
var ProductRemovedV1 = helper.EventDefinition[ProductRemovedEvent](
	"marketplace", "ProductRemoved", "v1",
)

// ProductStatusChangedEvent is emitted when a listing is reserved or completed.
type ProductStatusChangedEvent struct {
	ProductID string    `json:"product_id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}

// ProductReservedV1 subject: events.marketplace.v1.product-reserved
var ProductReservedV1 = helper.EventDefinition[ProductStatusChangedEvent](
	"marketplace", "ProductReserved", "v1",
)

// ProductCompletedV1 subject: events.marketplace.v1.product-completed
var ProductCompletedV1 = helper.EventDefinition[ProductStatusChangedEvent](
	"marketplace", "ProductCompleted", "v1",
)

// ResidentEvent carries the resident fields the activity feed shows.
type ResidentEvent struct {
	ResidentID string    `json:"resident_id"`
	Name       string    `json:"name"`
	Apartment  string    `json:"apartment"`
	At         time.Time `json:"at"`
}

// ResidentRegisteredV1 subject: events.marketplace.v1.resident-registered
var ResidentRegisteredV1 = helper.EventDefinition[ResidentEvent](
	"marketplace", "ResidentRegistered", "v1",
)

// ResidentDeactivatedV1 subject: events.marketplace.v1.resident-deactivated
var ResidentDeactivatedV1 = helper.EventDefinition[ResidentEvent](
	"marketplace", "ResidentDeactivated", "v1",
)
