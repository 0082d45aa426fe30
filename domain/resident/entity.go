// Package resident defines condominium residents and their creation boundary.
package resident

import (
	"errors"
	"strings"
	"time"

	"github.com/example/condo-marketplace/domain/validate"
)

// ErrResidentNotFound indicates no resident has the given id.
var ErrResidentNotFound = errors.New("resident not found")

// Resident is a registered member of the condominium.
type Resident struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Apartment string    `json:"apartment"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

// Draft is the raw registration form.
type Draft struct {
	Name      string `json:"name" validate:"notblank"`
	Email     string `json:"email" validate:"notblank"`
	Apartment string `json:"apartment" validate:"notblank"`
	Phone     string `json:"phone" validate:"notblank"`
}

// Build validates the draft and returns a new active Resident.
func (d Draft) Build(newID func() string, now time.Time) (Resident, error) {
	if err := validate.Struct(d); err != nil {
		return Resident{}, err
	}

	return Resident{
		ID:        newID(),
		Name:      strings.TrimSpace(d.Name),
		Email:     strings.TrimSpace(d.Email),
		Apartment: strings.TrimSpace(d.Apartment),
		Phone:     strings.TrimSpace(d.Phone),
		CreatedAt: now.UTC(),
		IsActive:  true,
	}, nil
}
