// Package product defines marketplace listings and their creation boundary.
package product

import (
	"slices"
	"time"
)

// Category is the listing type of a product.
type Category string

const (
	CategorySale     Category = "sale"
	CategoryDonation Category = "donation"
	CategoryTrade    Category = "trade"
)

// Categories is the closed set of listing types, in display order.
var Categories = []Category{CategorySale, CategoryDonation, CategoryTrade}

// IsValid reports whether c belongs to the closed set.
func (c Category) IsValid() bool {
	switch c {
	case CategorySale, CategoryDonation, CategoryTrade:
		return true
	}
	return false
}

// Status is the availability of a listing.
type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusCompleted Status = "completed"
)

// IsValid reports whether s belongs to the closed set.
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusCompleted:
		return true
	}
	return false
}

// Owner is a snapshot of the listing resident taken when the product was created.
// It is not kept in sync with the resident collection.
type Owner struct {
	Name      string `json:"name"`
	Apartment string `json:"apartment"`
	Contact   string `json:"contact"`
}

// Product is a listing offered by a resident.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       *float64  `json:"price,omitempty"`
	Category    Category  `json:"category"`
	Images      []string  `json:"images"`
	Owner       Owner     `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
	Status      Status    `json:"status"`
	Tags        []string  `json:"tags"`
}

// Clone returns a deep copy so callers never share slices or the price pointer.
func (p Product) Clone() Product {
	c := p
	if p.Price != nil {
		price := *p.Price
		c.Price = &price
	}
	c.Images = slices.Clone(p.Images)
	c.Tags = slices.Clone(p.Tags)
	return c
}

// CategoryInfo describes one entry of the category filter bar.
type CategoryInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// AllCategories is the filter token that matches every category.
const AllCategories = "all"

// Catalog returns the filter bar entries, starting with the AllCategories sentinel.
func Catalog() []CategoryInfo {
	return []CategoryInfo{
		{ID: AllCategories, Label: "All"},
		{ID: string(CategorySale), Label: "For sale"},
		{ID: string(CategoryDonation), Label: "Donations"},
		{ID: string(CategoryTrade), Label: "Trades"},
	}
}
