// Package ident generates collision-resistant identifiers for new records.
package ident

import (
	"fmt"

	"github.com/google/uuid"
	nanoid "github.com/jaevor/go-nanoid"
)

// DefaultLength is the nanoid length used for products and residents.
const DefaultLength = 21

// Generator returns a fresh identifier on every call.
type Generator func() string

// NewNanoID returns a URL-safe nanoid generator of DefaultLength.
func NewNanoID() (Generator, error) {
	gen, err := nanoid.Standard(DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to create nanoid generator: %w", err)
	}
	return Generator(gen), nil
}

// NewUUID returns a random (v4) UUID generator.
func NewUUID() Generator {
	return func() string {
		return uuid.New().String()
	}
}
