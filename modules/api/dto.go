package api

import (
	"github.com/example/condo-marketplace/domain/product"
	"github.com/example/condo-marketplace/domain/resident"
	"github.com/example/condo-marketplace/modules/activity"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

type ProductsResponse struct {
	Products []product.Product `json:"products"`
	Total    int               `json:"total"`
}

type ResidentsResponse struct {
	Residents []resident.Resident `json:"residents"`
	Total     int                 `json:"total"`
}

type ActivityResponse struct {
	Entries []activity.Entry `json:"entries"`
	Total   int              `json:"total"`
}

type SetCategoryRequest struct {
	Category string `json:"category"`
}

type SetSearchTermRequest struct {
	Term string `json:"term"`
}
