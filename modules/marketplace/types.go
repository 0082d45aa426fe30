package marketplace

import (
	"context"

	"github.com/example/condo-marketplace/domain/product"
	"github.com/example/condo-marketplace/domain/resident"
	"github.com/example/condo-marketplace/filter"
	"github.com/example/condo-marketplace/store"
)

// MarketplacePort is the store boundary as seen by other modules.
// Service implements it in-process and the adapter implements it over the
// module's request-reply services.
type MarketplacePort interface {
	ReadState(ctx context.Context) (store.State, error)
	// VisibleProducts filters with criteria, or with the store's own filter
	// state when criteria is nil.
	VisibleProducts(ctx context.Context, criteria *filter.Criteria) ([]product.Product, error)
	AddProduct(ctx context.Context, draft product.Draft) (product.Product, error)
	RemoveProduct(ctx context.Context, id string) (bool, error)
	ReserveProduct(ctx context.Context, id string) (product.Product, error)
	CompleteProduct(ctx context.Context, id string) (product.Product, error)
	ReplaceProducts(ctx context.Context, products []product.Product) error

	AddResident(ctx context.Context, draft resident.Draft) (resident.Resident, error)
	SearchResidents(ctx context.Context, term string) ([]resident.Resident, error)
	DeactivateResident(ctx context.Context, id string) (resident.Resident, error)
	ReplaceResidents(ctx context.Context, residents []resident.Resident) error

	SetSelectedCategory(ctx context.Context, category string) (filter.Criteria, error)
	SetSearchTerm(ctx context.Context, term string) (filter.Criteria, error)
	ResetFilters(ctx context.Context) (filter.Criteria, error)
	Stats(ctx context.Context) (filter.Stats, error)
}

// Service names registered by the module.
const (
	ServiceReadState          = "read-state"
	ServiceVisibleProducts    = "visible-products"
	ServiceAddProduct         = "add-product"
	ServiceRemoveProduct      = "remove-product"
	ServiceReserveProduct     = "reserve-product"
	ServiceCompleteProduct    = "complete-product"
	ServiceReplaceProducts    = "replace-products"
	ServiceAddResident        = "add-resident"
	ServiceSearchResidents    = "search-residents"
	ServiceDeactivateResident = "deactivate-resident"
	ServiceReplaceResidents   = "replace-residents"
	ServiceSetCategory        = "set-category"
	ServiceSetSearchTerm      = "set-search-term"
	ServiceResetFilters       = "reset-filters"
	ServiceReadStats          = "read-stats"
)

// EmptyRequest is sent to services that take no input.
type EmptyRequest struct{}

type VisibleProductsRequest struct {
	Criteria *filter.Criteria `json:"criteria,omitempty"`
}

type ProductsResponse struct {
	Products []product.Product `json:"products"`
	Total    int               `json:"total"`
}

type AddProductRequest struct {
	Draft product.Draft `json:"draft"`
}

// AddProductResponse carries rejected fields in Invalid instead of an error so
// they survive the request-reply hop.
type AddProductResponse struct {
	Product product.Product   `json:"product"`
	Invalid map[string]string `json:"invalid,omitempty"`
}

type ProductIDRequest struct {
	ID string `json:"id"`
}

type RemoveProductResponse struct {
	Removed bool `json:"removed"`
}

type ProductResponse struct {
	Product product.Product `json:"product"`
}

type ReplaceProductsRequest struct {
	Products []product.Product `json:"products"`
}

type ReplaceResponse struct {
	Count   int    `json:"count"`
	Version uint64 `json:"version"`
}

type AddResidentRequest struct {
	Draft resident.Draft `json:"draft"`
}

type AddResidentResponse struct {
	Resident resident.Resident `json:"resident"`
	Invalid  map[string]string `json:"invalid,omitempty"`
}

type SearchResidentsRequest struct {
	Term string `json:"term"`
}

type ResidentsResponse struct {
	Residents []resident.Resident `json:"residents"`
	Total     int                 `json:"total"`
}

type ResidentIDRequest struct {
	ID string `json:"id"`
}

type ResidentResponse struct {
	Resident resident.Resident `json:"resident"`
}

type ReplaceResidentsRequest struct {
	Residents []resident.Resident `json:"residents"`
}

type SetCategoryRequest struct {
	Category string `json:"category"`
}

type SetSearchTermRequest struct {
	Term string `json:"term"`
}
