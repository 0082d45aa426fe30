package snapshot

import (
	"context"
	"fmt"

	"github.com/example/condo-marketplace/domain/product"
	"github.com/example/condo-marketplace/domain/resident"
	"gorm.io/gorm"
)

// Repository reads the snapshot tables. Seed is its only write path.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the snapshot tables.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&ProductRecord{}, &ResidentRecord{}); err != nil {
		return fmt.Errorf("failed to migrate snapshot tables: %w", err)
	}
	return nil
}

// Count returns the number of stored products and residents.
func (r *Repository) Count(ctx context.Context) (products, residents int64, err error) {
	if err := r.db.WithContext(ctx).Model(&ProductRecord{}).Count(&products).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count products: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&ResidentRecord{}).Count(&residents).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count residents: %w", err)
	}
	return products, residents, nil
}

// ListProducts returns every product, newest first.
func (r *Repository) ListProducts(ctx context.Context) ([]product.Product, error) {
	var records []ProductRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	out := make([]product.Product, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

// ListResidents returns every resident, newest first.
func (r *Repository) ListResidents(ctx context.Context) ([]resident.Resident, error) {
	var records []ResidentRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list residents: %w", err)
	}

	out := make([]resident.Resident, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

// Seed inserts the given collections in one transaction.
func (r *Repository) Seed(ctx context.Context, products []product.Product, residents []resident.Resident) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range products {
			rec := productRecord(p)
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
			}
		}
		for _, res := range residents {
			rec := residentRecord(res)
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to seed resident %s: %w", res.ID, err)
			}
		}
		return nil
	})
}
