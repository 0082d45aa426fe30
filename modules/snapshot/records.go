// Package snapshot loads the initial marketplace collections from sqlite.
package snapshot

import (
	"time"

	"github.com/example/condo-marketplace/domain/product"
	"github.com/example/condo-marketplace/domain/resident"
)

// ProductRecord is the stored form of a product.
type ProductRecord struct {
	ID             string `gorm:"primaryKey"`
	Title          string `gorm:"not null"`
	Description    string `gorm:"not null"`
	Price          *float64
	Category       string   `gorm:"index;not null"`
	Images         []string `gorm:"serializer:json"`
	OwnerName      string
	OwnerApartment string
	OwnerContact   string
	Status         string    `gorm:"not null;default:available"`
	Tags           []string  `gorm:"serializer:json"`
	CreatedAt      time.Time `gorm:"index"`
}

func (ProductRecord) TableName() string {
	return "products"
}

// ResidentRecord is the stored form of a resident.
type ResidentRecord struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string
	Apartment string `gorm:"index"`
	Phone     string
	IsActive  bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

func (ResidentRecord) TableName() string {
	return "residents"
}

func (r ProductRecord) toDomain() product.Product {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return product.Product{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Category:    product.Category(r.Category),
		Images:      images,
		Owner: product.Owner{
			Name:      r.OwnerName,
			Apartment: r.OwnerApartment,
			Contact:   r.OwnerContact,
		},
		CreatedAt: r.CreatedAt.UTC(),
		Status:    product.Status(r.Status),
		Tags:      tags,
	}
}

func productRecord(p product.Product) ProductRecord {
	return ProductRecord{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		Price:          p.Price,
		Category:       string(p.Category),
		Images:         p.Images,
		OwnerName:      p.Owner.Name,
		OwnerApartment: p.Owner.Apartment,
		OwnerContact:   p.Owner.Contact,
		Status:         string(p.Status),
		Tags:           p.Tags,
		CreatedAt:      p.CreatedAt,
	}
}

func (r ResidentRecord) toDomain() resident.Resident {
	return resident.Resident{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Apartment: r.Apartment,
		Phone:     r.Phone,
		CreatedAt: r.CreatedAt.UTC(),
		IsActive:  r.IsActive,
	}
}

func residentRecord(r resident.Resident) ResidentRecord {
	return ResidentRecord{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Apartment: r.Apartment,
		Phone:     r.Phone,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
	}
}
