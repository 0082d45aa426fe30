package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/condo-marketplace/domain/product"
	"github.com/example/condo-marketplace/domain/resident"
	"github.com/example/condo-marketplace/filter"
	"github.com/example/condo-marketplace/modules/activity"
	"github.com/example/condo-marketplace/modules/marketplace"
	"github.com/example/condo-marketplace/store"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockActivityPort implements activity.ActivityPort for testing.
type mockActivityPort struct {
	recentFunc func(ctx context.Context, limit int) ([]activity.Entry, error)
}

func (m *mockActivityPort) Recent(ctx context.Context, limit int) ([]activity.Entry, error) {
	if m.recentFunc != nil {
		return m.recentFunc(ctx, limit)
	}
	return []activity.Entry{}, nil
}

type testEnv struct {
	app   *fiber.App
	store *store.Store
}

func newTestEnv(t *testing.T, products ...product.Product) *testEnv {
	t.Helper()

	st := store.New(
		store.WithProducts(products),
		store.WithResidents([]resident.Resident{
			{ID: "r1", Name: "Maria Silva", Apartment: "Apt 301", Email: "maria@email.com", IsActive: true},
		}),
	)
	n := 0
	svc := marketplace.NewService(st, func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	})

	m := NewModule(Config{Port: 3000})
	m.marketplace = svc
	m.activity = &mockActivityPort{}
	return &testEnv{app: m.newApp(), store: st}
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func seedProducts() []product.Product {
	return []product.Product{
		{ID: "P1", Title: "Leather Sofa", Category: product.CategorySale, Status: product.StatusAvailable, Tags: []string{"furniture"}},
		{ID: "P2", Title: "Romance novels", Category: product.CategoryDonation, Status: product.StatusAvailable},
	}
}

func decodeProducts(t *testing.T, data []byte) []string {
	t.Helper()
	var resp ProductsResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	ids := make([]string, 0, len(resp.Products))
	for _, p := range resp.Products {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestAPI_EndToEndListing(t *testing.T) {
	env := newTestEnv(t, seedProducts()...)

	body := `{"title":"Kids bicycle","description":"16 inch","category":"trade",
		"images":["https://img/b.jpg",""],"owner_name":"Ana Costa","owner_apartment":"Apt 102",
		"owner_contact":"(11) 77777-7777","tags":["sports"," "]}`
	resp, data := env.do(t, http.MethodPost, "/api/v1/products", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	var created product.Product
	require.NoError(t, json.Unmarshal(data, &created))
	assert.Equal(t, "new-1", created.ID)
	assert.Equal(t, product.StatusAvailable, created.Status)
	assert.Equal(t, []string{"https://img/b.jpg"}, created.Images)
	assert.Equal(t, []string{"sports"}, created.Tags)

	_, data = env.do(t, http.MethodGet, "/api/v1/products", "")
	assert.Equal(t, []string{"new-1", "P1", "P2"}, decodeProducts(t, data))

	resp, _ = env.do(t, http.MethodDelete, "/api/v1/products/P1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, data = env.do(t, http.MethodGet, "/api/v1/products?category=trade", "")
	assert.Equal(t, []string{"new-1"}, decodeProducts(t, data))
}

func TestAPI_ListProducts(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "no criteria", path: "/api/v1/products", want: []string{"P1", "P2"}},
		{name: "category only", path: "/api/v1/products?category=donation", want: []string{"P2"}},
		{name: "search defaults to all categories", path: "/api/v1/products?search=SOFA", want: []string{"P1"}},
		{name: "tag search", path: "/api/v1/products?search=furniture", want: []string{"P1"}},
		{name: "combined miss", path: "/api/v1/products?category=donation&search=sofa", want: []string{}},
		{name: "unknown category", path: "/api/v1/products?category=auction", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, seedProducts()...)
			resp, data := env.do(t, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want, decodeProducts(t, data))
		})
	}
}

func TestAPI_FilterStateDrivesDefaultListing(t *testing.T) {
	env := newTestEnv(t, seedProducts()...)

	resp, data := env.do(t, http.MethodPut, "/api/v1/filters/category", `{"category":"donation"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var criteria filter.Criteria
	require.NoError(t, json.Unmarshal(data, &criteria))
	assert.Equal(t, "donation", criteria.Category)

	_, data = env.do(t, http.MethodGet, "/api/v1/products", "")
	assert.Equal(t, []string{"P2"}, decodeProducts(t, data))

	env.do(t, http.MethodPut, "/api/v1/filters/category", `{"category":"all"}`)
	env.do(t, http.MethodPut, "/api/v1/filters/search", `{"term":"leather"}`)
	_, data = env.do(t, http.MethodGet, "/api/v1/products", "")
	assert.Equal(t, []string{"P1"}, decodeProducts(t, data))

	state := env.store.ReadState()
	assert.Equal(t, "leather", state.SearchTerm)
}

func TestAPI_ResetFilters(t *testing.T) {
	env := newTestEnv(t, seedProducts()...)
	env.do(t, http.MethodPut, "/api/v1/filters/category", `{"category":"donation"}`)
	env.do(t, http.MethodPut, "/api/v1/filters/search", `{"term":"novels"}`)
	before := env.store.Version()

	resp, data := env.do(t, http.MethodDelete, "/api/v1/filters", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var criteria filter.Criteria
	require.NoError(t, json.Unmarshal(data, &criteria))
	assert.Equal(t, filter.Criteria{Category: filter.AllCategories}, criteria)
	assert.Equal(t, before+1, env.store.Version())

	_, data = env.do(t, http.MethodGet, "/api/v1/products", "")
	assert.Equal(t, []string{"P1", "P2"}, decodeProducts(t, data))
}

func TestAPI_AddProductValidation(t *testing.T) {
	env := newTestEnv(t)

	resp, data := env.do(t, http.MethodPost, "/api/v1/products", `{"title":"","category":"auction"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "validation_error", body.Error)
	assert.Contains(t, body.Fields, "title")
	assert.Equal(t, "title is required", body.Fields["title"])
	assert.Equal(t, "category must be one of sale, donation, trade", body.Fields["category"])
	assert.Empty(t, env.store.Products())
}

func TestAPI_MalformedBody(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodPost, "/api/v1/residents", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_RemoveUnknownProductIsNoContent(t *testing.T) {
	env := newTestEnv(t, seedProducts()...)
	before := env.store.ReadState()

	resp, _ := env.do(t, http.MethodDelete, "/api/v1/products/missing", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, before, env.store.ReadState())
}

func TestAPI_StatusTransitions(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "complete before reserve", path: "/api/v1/products/P1/complete", wantStatus: http.StatusConflict},
		{name: "reserve unknown", path: "/api/v1/products/ghost/reserve", wantStatus: http.StatusNotFound},
		{name: "reserve available", path: "/api/v1/products/P1/reserve", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, seedProducts()...)
			resp, data := env.do(t, http.MethodPost, tt.path, "")
			assert.Equal(t, tt.wantStatus, resp.StatusCode, string(data))
		})
	}
}

func TestAPI_Residents(t *testing.T) {
	env := newTestEnv(t)

	body := `{"name":"Joao Santos","email":"joao@email.com","apartment":"Apt 205","phone":"(11) 88888-8888"}`
	resp, data := env.do(t, http.MethodPost, "/api/v1/residents", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	var created resident.Resident
	require.NoError(t, json.Unmarshal(data, &created))
	assert.True(t, created.IsActive)

	_, data = env.do(t, http.MethodGet, "/api/v1/residents?search=apt%20205", "")
	var list ResidentsResponse
	require.NoError(t, json.Unmarshal(data, &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, created.ID, list.Residents[0].ID)

	resp, _ = env.do(t, http.MethodPost, "/api/v1/residents/"+created.ID+"/deactivate", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/api/v1/residents/ghost/deactivate", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, data = env.do(t, http.MethodPost, "/api/v1/residents", `{"name":"Only name"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(data))
}

func TestAPI_StatsAndCategories(t *testing.T) {
	env := newTestEnv(t, seedProducts()...)

	_, data := env.do(t, http.MethodGet, "/api/v1/stats", "")
	var stats filter.Stats
	require.NoError(t, json.Unmarshal(data, &stats))
	assert.Equal(t, 2, stats.Products)
	assert.Equal(t, 1, stats.ActiveResidents)
	assert.Equal(t, 1, stats.ByCategory[product.CategorySale])

	_, data = env.do(t, http.MethodGet, "/api/v1/categories", "")
	var categories []product.CategoryInfo
	require.NoError(t, json.Unmarshal(data, &categories))
	require.Len(t, categories, 4)
	assert.Equal(t, filter.AllCategories, categories[0].ID)
}

func TestAPI_Activity(t *testing.T) {
	env := newTestEnv(t)
	var gotLimit int
	m := NewModule(Config{})
	m.marketplace = marketplace.NewService(env.store, func() string { return "x" })
	m.activity = &mockActivityPort{
		recentFunc: func(_ context.Context, limit int) ([]activity.Entry, error) {
			gotLimit = limit
			return []activity.Entry{{ID: "e1", Kind: "product_listed", At: time.Now()}}, nil
		},
	}
	env.app = m.newApp()

	resp, data := env.do(t, http.MethodGet, "/api/v1/activity?limit=5", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 5, gotLimit)

	var body ActivityResponse
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, 1, body.Total)

	env.do(t, http.MethodGet, "/api/v1/activity?limit=-3", "")
	assert.Equal(t, defaultActivityLimit, gotLimit)

	m.activity = &mockActivityPort{
		recentFunc: func(context.Context, int) ([]activity.Entry, error) {
			return nil, errors.New("nats timeout")
		},
	}
	env.app = m.newApp()
	resp, _ = env.do(t, http.MethodGet, "/api/v1/activity", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
