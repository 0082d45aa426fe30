package snapshot

import (
	"context"
	"fmt"
	"log"

	"github.com/example/condo-marketplace/domain/product"
	"github.com/example/condo-marketplace/domain/resident"
	"golang.org/x/sync/errgroup"
)

// Replacer is the part of the marketplace port the loader needs.
type Replacer interface {
	ReplaceProducts(ctx context.Context, products []product.Product) error
	ReplaceResidents(ctx context.Context, residents []resident.Resident) error
}

// LoadResult reports what a Load call did.
type LoadResult struct {
	Seeded    bool `json:"seeded"`
	Products  int  `json:"products"`
	Residents int  `json:"residents"`
}

// Loader copies the snapshot tables into the marketplace store.
type Loader struct {
	repo *Repository
	seed bool
}

func NewLoader(repo *Repository, seed bool) *Loader {
	return &Loader{repo: repo, seed: seed}
}

// Load optionally seeds an empty database, then replaces both collections in
// the target exactly once.
func (l *Loader) Load(ctx context.Context, target Replacer) (LoadResult, error) {
	var result LoadResult

	if l.seed {
		products, residents, err := l.repo.Count(ctx)
		if err != nil {
			return result, err
		}
		if products == 0 && residents == 0 {
			if err := l.repo.Seed(ctx, DemoProducts(), DemoResidents()); err != nil {
				return result, fmt.Errorf("failed to seed demo data: %w", err)
			}
			result.Seeded = true
			log.Println("[snapshot] Seeded empty database with demo catalogue")
		}
	}

	var (
		products  []product.Product
		residents []resident.Resident
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = l.repo.ListProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		residents, err = l.repo.ListResidents(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return result, err
	}

	if err := target.ReplaceProducts(ctx, products); err != nil {
		return result, fmt.Errorf("failed to replace products: %w", err)
	}
	if err := target.ReplaceResidents(ctx, residents); err != nil {
		return result, fmt.Errorf("failed to replace residents: %w", err)
	}

	result.Products = len(products)
	result.Residents = len(residents)
	return result, nil
}
