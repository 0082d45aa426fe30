package product

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/example/condo-marketplace/domain/validate"
)

// Draft is the raw listing form before it becomes a Product.
type Draft struct {
	Title          string   `json:"title" validate:"notblank"`
	Description    string   `json:"description" validate:"notblank"`
	Price          string   `json:"price"`
	Category       Category `json:"category" validate:"oneof=sale donation trade"`
	Images         []string `json:"images"`
	OwnerName      string   `json:"owner_name" validate:"notblank"`
	OwnerApartment string   `json:"owner_apartment" validate:"notblank"`
	OwnerContact   string   `json:"owner_contact" validate:"notblank"`
	Tags           []string `json:"tags"`
}

// Build validates the draft and returns a new available Product.
// Blank image and tag fields are dropped. The price is kept only for sale
// listings and only when it parses to a positive number.
func (d Draft) Build(newID func() string, now time.Time) (Product, error) {
	if err := validate.Struct(d); err != nil {
		return Product{}, err
	}

	var price *float64
	if d.Category == CategorySale {
		price = ParsePrice(d.Price)
	}

	return Product{
		ID:          newID(),
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Price:       price,
		Category:    d.Category,
		Images:      CompactFields(d.Images),
		Owner: Owner{
			Name:      strings.TrimSpace(d.OwnerName),
			Apartment: strings.TrimSpace(d.OwnerApartment),
			Contact:   strings.TrimSpace(d.OwnerContact),
		},
		CreatedAt: now.UTC(),
		Status:    StatusAvailable,
		Tags:      CompactFields(d.Tags),
	}, nil
}

// ParsePrice parses free text into a positive price. It returns nil when the
// text is blank, not a finite number or not positive.
func ParsePrice(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}

// CompactFields trims each entry and drops the blank ones, keeping order.
// It never returns nil.
func CompactFields(fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
