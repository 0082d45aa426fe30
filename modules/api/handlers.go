package api

import (
	"errors"

	"github.com/example/condo-marketplace/domain/product"
	"github.com/example/condo-marketplace/domain/resident"
	"github.com/example/condo-marketplace/domain/validate"
	"github.com/example/condo-marketplace/filter"
	"github.com/gofiber/fiber/v2"
)

const defaultActivityLimit = 20

func (m *Module) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	api := app.Group("/api/v1")
	api.Get("/state", m.readState)
	api.Get("/categories", m.listCategories)
	api.Get("/stats", m.readStats)
	api.Get("/activity", m.listActivity)

	products := api.Group("/products")
	products.Get("/", m.listProducts)
	products.Post("/", m.addProduct)
	products.Delete("/:id", m.removeProduct)
	products.Post("/:id/reserve", m.reserveProduct)
	products.Post("/:id/complete", m.completeProduct)

	residents := api.Group("/residents")
	residents.Get("/", m.listResidents)
	residents.Post("/", m.addResident)
	residents.Post("/:id/deactivate", m.deactivateResident)

	filters := api.Group("/filters")
	filters.Put("/category", m.setCategory)
	filters.Put("/search", m.setSearchTerm)
	filters.Delete("/", m.resetFilters)
}

func (m *Module) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "healthy",
		Details: map[string]any{"module": "api", "port": m.cfg.Port},
	})
}

// readState handles GET /api/v1/state.
func (m *Module) readState(c *fiber.Ctx) error {
	state, err := m.marketplace.ReadState(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(state)
}

// listCategories handles GET /api/v1/categories.
func (m *Module) listCategories(c *fiber.Ctx) error {
	return c.JSON(product.Catalog())
}

// listProducts handles GET /api/v1/products. Without query parameters the
// store's own filter state applies.
func (m *Module) listProducts(c *fiber.Ctx) error {
	var criteria *filter.Criteria
	category, search := c.Query("category"), c.Query("search")
	if category != "" || search != "" {
		if category == "" {
			category = filter.AllCategories
		}
		criteria = &filter.Criteria{Category: category, SearchTerm: search}
	}

	products, err := m.marketplace.VisibleProducts(c.Context(), criteria)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ProductsResponse{Products: products, Total: len(products)})
}

// addProduct handles POST /api/v1/products.
func (m *Module) addProduct(c *fiber.Ctx) error {
	var draft product.Draft
	if err := c.BodyParser(&draft); err != nil {
		return badBody(c)
	}

	p, err := m.marketplace.AddProduct(c.Context(), draft)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// removeProduct handles DELETE /api/v1/products/:id. Unknown ids still get 204.
func (m *Module) removeProduct(c *fiber.Ctx) error {
	if _, err := m.marketplace.RemoveProduct(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (m *Module) reserveProduct(c *fiber.Ctx) error {
	p, err := m.marketplace.ReserveProduct(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}

func (m *Module) completeProduct(c *fiber.Ctx) error {
	p, err := m.marketplace.CompleteProduct(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}

// listResidents handles GET /api/v1/residents?search=.
func (m *Module) listResidents(c *fiber.Ctx) error {
	residents, err := m.marketplace.SearchResidents(c.Context(), c.Query("search"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ResidentsResponse{Residents: residents, Total: len(residents)})
}

// addResident handles POST /api/v1/residents.
func (m *Module) addResident(c *fiber.Ctx) error {
	var draft resident.Draft
	if err := c.BodyParser(&draft); err != nil {
		return badBody(c)
	}

	r, err := m.marketplace.AddResident(c.Context(), draft)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

func (m *Module) deactivateResident(c *fiber.Ctx) error {
	r, err := m.marketplace.DeactivateResident(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(r)
}

// setCategory handles PUT /api/v1/filters/category.
func (m *Module) setCategory(c *fiber.Ctx) error {
	var req SetCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	criteria, err := m.marketplace.SetSelectedCategory(c.Context(), req.Category)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(criteria)
}

// setSearchTerm handles PUT /api/v1/filters/search.
func (m *Module) setSearchTerm(c *fiber.Ctx) error {
	var req SetSearchTermRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	criteria, err := m.marketplace.SetSearchTerm(c.Context(), req.Term)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(criteria)
}

// resetFilters handles DELETE /api/v1/filters.
func (m *Module) resetFilters(c *fiber.Ctx) error {
	criteria, err := m.marketplace.ResetFilters(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(criteria)
}

func (m *Module) readStats(c *fiber.Ctx) error {
	stats, err := m.marketplace.Stats(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}

// listActivity handles GET /api/v1/activity?limit=.
func (m *Module) listActivity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultActivityLimit)
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	entries, err := m.activity.Recent(c.Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ActivityResponse{Entries: entries, Total: len(entries)})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_request",
		Message: "Invalid request body",
	})
}

// writeError maps domain errors to status codes.
func writeError(c *fiber.Ctx, err error) error {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: "One or more fields are invalid",
			Fields:  verr.Fields,
		})
	case errors.Is(err, product.ErrProductNotFound), errors.Is(err, resident.ErrResidentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, product.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "invalid_transition",
			Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}
