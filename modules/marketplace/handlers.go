package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/example/condo-marketplace/domain/validate"
	"github.com/example/condo-marketplace/filter"
	"github.com/example/condo-marketplace/store"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	registrations := []struct {
		name     string
		register func() error
	}{
		{ServiceReadState, func() error {
			return helper.RegisterTypedRequestReplyService(container, ServiceReadState, json.Unmarshal, json.Marshal, m.readState)
		}},
		{ServiceVisibleProducts, func() error {
			return helper.RegisterTypedRequestReplyService(container, ServiceVisibleProducts, json.Unmarshal, json.Marshal, m.visibleProducts)
		}},
		{ServiceAddProduct, func() error {
			return helper.RegisterTypedRequestReplyService(container, ServiceAddProduct, json.Unmarshal, json.Marshal, m.addProduct)
		}},
		{ServiceRemoveProduct, func() error {
			return helper.RegisterTypedRequestReplyService(container, ServiceRemoveProduct, json.Unmarshal, json.Marshal, m.removeProduct)
		}},
		{ServiceReserveProduct, func() error {
			return helper.RegisterTypedRequestReplyService(container, ServiceReserveProduct, json.Unmarshal, json.Marshal, m.reserveProduct)
		}},
		{ServiceCompleteProduct, func() error {
			return helper.RegisterTypedRequestReplyService(container, ServiceCompleteProduct, json.Unmarshal, json.Marshal, m.completeProduct)
		}},
		{ServiceReplaceProducts, func() error {
			return helper.RegisterTypedRequestReplyService(container, ServiceReplaceProducts, json.Unmarshal, json.Marshal, m.replaceProducts)
		}},
		{ServiceAddResident, func() error {
			return helper.RegisterTypedRequestReplyService(container, ServiceAddResident, json.Unmarshal, json.Marshal, m.addResident)
		}},
		{ServiceSearchResidents, func() error {
			return helper.RegisterTypedRequestReplyService(container, ServiceSearchResidents, json.Unmarshal, json.Marshal, m.searchResidents)
		}},
		{ServiceDeactivateResident, func() error {
			return helper.RegisterTypedRequestReplyService(container, ServiceDeactivateResident, json.Unmarshal, json.Marshal, m.deactivateResident)
		}},
		{ServiceReplaceResidents, func() error {
			return helper.RegisterTypedRequestReplyService(container, ServiceReplaceResidents, json.Unmarshal, json.Marshal, m.replaceResidents)
		}},
		{ServiceSetCategory, func() error {
			return helper.RegisterTypedRequestReplyService(container, ServiceSetCategory, json.Unmarshal, json.Marshal, m.setCategory)
		}},
		{ServiceSetSearchTerm, func() error {
			return helper.RegisterTypedRequestReplyService(container, ServiceSetSearchTerm, json.Unmarshal, json.Marshal, m.setSearchTerm)
		}},
		{ServiceResetFilters, func() error {
			return helper.RegisterTypedRequestReplyService(container, ServiceResetFilters, json.Unmarshal, json.Marshal, m.resetFilters)
		}},
		{ServiceReadStats, func() error {
			return helper.RegisterTypedRequestReplyService(container, ServiceReadStats, json.Unmarshal, json.Marshal, m.readStats)
		}},
	}

	for _, r := range registrations {
		if err := r.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", r.name, err)
		}
	}

	log.Printf("[marketplace] Registered %d services", len(registrations))
	return nil
}

func (m *Module) readState(ctx context.Context, _ EmptyRequest, _ *mono.Msg) (store.State, error) {
	return m.service.ReadState(ctx)
}

func (m *Module) visibleProducts(ctx context.Context, req VisibleProductsRequest, _ *mono.Msg) (ProductsResponse, error) {
	products, err := m.service.VisibleProducts(ctx, req.Criteria)
	if err != nil {
		return ProductsResponse{}, err
	}
	return ProductsResponse{Products: products, Total: len(products)}, nil
}

func (m *Module) addProduct(ctx context.Context, req AddProductRequest, _ *mono.Msg) (AddProductResponse, error) {
	p, err := m.service.AddProduct(ctx, req.Draft)
	if fields, ok := invalidFields(err); ok {
		return AddProductResponse{Invalid: fields}, nil
	}
	if err != nil {
		return AddProductResponse{}, err
	}
	return AddProductResponse{Product: p}, nil
}

func (m *Module) removeProduct(ctx context.Context, req ProductIDRequest, _ *mono.Msg) (RemoveProductResponse, error) {
	removed, err := m.service.RemoveProduct(ctx, req.ID)
	return RemoveProductResponse{Removed: removed}, err
}

func (m *Module) reserveProduct(ctx context.Context, req ProductIDRequest, _ *mono.Msg) (ProductResponse, error) {
	p, err := m.service.ReserveProduct(ctx, req.ID)
	return ProductResponse{Product: p}, err
}

func (m *Module) completeProduct(ctx context.Context, req ProductIDRequest, _ *mono.Msg) (ProductResponse, error) {
	p, err := m.service.CompleteProduct(ctx, req.ID)
	return ProductResponse{Product: p}, err
}

func (m *Module) replaceProducts(ctx context.Context, req ReplaceProductsRequest, _ *mono.Msg) (ReplaceResponse, error) {
	if err := m.service.ReplaceProducts(ctx, req.Products); err != nil {
		return ReplaceResponse{}, err
	}
	return ReplaceResponse{Count: len(req.Products), Version: m.service.store.Version()}, nil
}

func (m *Module) addResident(ctx context.Context, req AddResidentRequest, _ *mono.Msg) (AddResidentResponse, error) {
	r, err := m.service.AddResident(ctx, req.Draft)
	if fields, ok := invalidFields(err); ok {
		return AddResidentResponse{Invalid: fields}, nil
	}
	if err != nil {
		return AddResidentResponse{}, err
	}
	return AddResidentResponse{Resident: r}, nil
}

func (m *Module) searchResidents(ctx context.Context, req SearchResidentsRequest, _ *mono.Msg) (ResidentsResponse, error) {
	residents, err := m.service.SearchResidents(ctx, req.Term)
	if err != nil {
		return ResidentsResponse{}, err
	}
	return ResidentsResponse{Residents: residents, Total: len(residents)}, nil
}

func (m *Module) deactivateResident(ctx context.Context, req ResidentIDRequest, _ *mono.Msg) (ResidentResponse, error) {
	r, err := m.service.DeactivateResident(ctx, req.ID)
	return ResidentResponse{Resident: r}, err
}

func (m *Module) replaceResidents(ctx context.Context, req ReplaceResidentsRequest, _ *mono.Msg) (ReplaceResponse, error) {
	if err := m.service.ReplaceResidents(ctx, req.Residents); err != nil {
		return ReplaceResponse{}, err
	}
	return ReplaceResponse{Count: len(req.Residents), Version: m.service.store.Version()}, nil
}

func (m *Module) setCategory(ctx context.Context, req SetCategoryRequest, _ *mono.Msg) (filter.Criteria, error) {
	return m.service.SetSelectedCategory(ctx, req.Category)
}

func (m *Module) setSearchTerm(ctx context.Context, req SetSearchTermRequest, _ *mono.Msg) (filter.Criteria, error) {
	return m.service.SetSearchTerm(ctx, req.Term)
}

func (m *Module) resetFilters(ctx context.Context, _ EmptyRequest, _ *mono.Msg) (filter.Criteria, error) {
	return m.service.ResetFilters(ctx)
}

func (m *Module) readStats(ctx context.Context, _ EmptyRequest, _ *mono.Msg) (filter.Stats, error) {
	return m.service.Stats(ctx)
}

func invalidFields(err error) (map[string]string, bool) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}
