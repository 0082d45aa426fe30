package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/condo-marketplace/domain/product"
	"github.com/example/condo-marketplace/domain/resident"
	"github.com/example/condo-marketplace/domain/validate"
	"github.com/example/condo-marketplace/filter"
	"github.com/example/condo-marketplace/store"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// adapter implements MarketplacePort over the module's service container.
type adapter struct {
	container mono.ServiceContainer
}

// NewAdapter wraps the container received through SetDependencyServiceContainer.
func NewAdapter(container mono.ServiceContainer) MarketplacePort {
	if container == nil {
		panic("marketplace adapter requires non-nil ServiceContainer")
	}
	return &adapter{container: container}
}

func call[Req, Resp any](ctx context.Context, container mono.ServiceContainer, name string, req *Req) (Resp, error) {
	var resp Resp
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		name,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return resp, fmt.Errorf("%s service call failed: %w", name, mapServiceError(err))
	}
	return resp, nil
}

func (a *adapter) ReadState(ctx context.Context) (store.State, error) {
	return call[EmptyRequest, store.State](ctx, a.container, ServiceReadState, &EmptyRequest{})
}

func (a *adapter) VisibleProducts(ctx context.Context, criteria *filter.Criteria) ([]product.Product, error) {
	resp, err := call[VisibleProductsRequest, ProductsResponse](ctx, a.container, ServiceVisibleProducts,
		&VisibleProductsRequest{Criteria: criteria})
	if err != nil {
		return nil, err
	}
	return nonNil(resp.Products), nil
}

func (a *adapter) AddProduct(ctx context.Context, draft product.Draft) (product.Product, error) {
	resp, err := call[AddProductRequest, AddProductResponse](ctx, a.container, ServiceAddProduct,
		&AddProductRequest{Draft: draft})
	if err != nil {
		return product.Product{}, err
	}
	if len(resp.Invalid) > 0 {
		return product.Product{}, &validate.Error{Fields: resp.Invalid}
	}
	return resp.Product, nil
}

func (a *adapter) RemoveProduct(ctx context.Context, id string) (bool, error) {
	resp, err := call[ProductIDRequest, RemoveProductResponse](ctx, a.container, ServiceRemoveProduct,
		&ProductIDRequest{ID: id})
	return resp.Removed, err
}

func (a *adapter) ReserveProduct(ctx context.Context, id string) (product.Product, error) {
	resp, err := call[ProductIDRequest, ProductResponse](ctx, a.container, ServiceReserveProduct,
		&ProductIDRequest{ID: id})
	return resp.Product, err
}

func (a *adapter) CompleteProduct(ctx context.Context, id string) (product.Product, error) {
	resp, err := call[ProductIDRequest, ProductResponse](ctx, a.container, ServiceCompleteProduct,
		&ProductIDRequest{ID: id})
	return resp.Product, err
}

func (a *adapter) ReplaceProducts(ctx context.Context, products []product.Product) error {
	_, err := call[ReplaceProductsRequest, ReplaceResponse](ctx, a.container, ServiceReplaceProducts,
		&ReplaceProductsRequest{Products: products})
	return err
}

func (a *adapter) AddResident(ctx context.Context, draft resident.Draft) (resident.Resident, error) {
	resp, err := call[AddResidentRequest, AddResidentResponse](ctx, a.container, ServiceAddResident,
		&AddResidentRequest{Draft: draft})
	if err != nil {
		return resident.Resident{}, err
	}
	if len(resp.Invalid) > 0 {
		return resident.Resident{}, &validate.Error{Fields: resp.Invalid}
	}
	return resp.Resident, nil
}

func (a *adapter) SearchResidents(ctx context.Context, term string) ([]resident.Resident, error) {
	resp, err := call[SearchResidentsRequest, ResidentsResponse](ctx, a.container, ServiceSearchResidents,
		&SearchResidentsRequest{Term: term})
	if err != nil {
		return nil, err
	}
	if resp.Residents == nil {
		return []resident.Resident{}, nil
	}
	return resp.Residents, nil
}

func (a *adapter) DeactivateResident(ctx context.Context, id string) (resident.Resident, error) {
	resp, err := call[ResidentIDRequest, ResidentResponse](ctx, a.container, ServiceDeactivateResident,
		&ResidentIDRequest{ID: id})
	return resp.Resident, err
}

func (a *adapter) ReplaceResidents(ctx context.Context, residents []resident.Resident) error {
	_, err := call[ReplaceResidentsRequest, ReplaceResponse](ctx, a.container, ServiceReplaceResidents,
		&ReplaceResidentsRequest{Residents: residents})
	return err
}

func (a *adapter) SetSelectedCategory(ctx context.Context, category string) (filter.Criteria, error) {
	return call[SetCategoryRequest, filter.Criteria](ctx, a.container, ServiceSetCategory,
		&SetCategoryRequest{Category: category})
}

func (a *adapter) SetSearchTerm(ctx context.Context, term string) (filter.Criteria, error) {
	return call[SetSearchTermRequest, filter.Criteria](ctx, a.container, ServiceSetSearchTerm,
		&SetSearchTermRequest{Term: term})
}

func (a *adapter) ResetFilters(ctx context.Context) (filter.Criteria, error) {
	return call[EmptyRequest, filter.Criteria](ctx, a.container, ServiceResetFilters, &EmptyRequest{})
}

func (a *adapter) Stats(ctx context.Context) (filter.Stats, error) {
	return call[EmptyRequest, filter.Stats](ctx, a.container, ServiceReadStats, &EmptyRequest{})
}

func nonNil(products []product.Product) []product.Product {
	if products == nil {
		return []product.Product{}
	}
	return products
}

// mapServiceError restores domain sentinels from error text, which is all that
// survives the request-reply hop.
func mapServiceError(err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, product.ErrProductNotFound.Error()):
		return fmt.Errorf("%w: %s", product.ErrProductNotFound, err.Error())
	case strings.Contains(msg, resident.ErrResidentNotFound.Error()):
		return fmt.Errorf("%w: %s", resident.ErrResidentNotFound, err.Error())
	case strings.Contains(msg, product.ErrInvalidTransition.Error()):
		return fmt.Errorf("%w: %s", product.ErrInvalidTransition, err.Error())
	}
	return err
}
