package filter

import (
	"reflect"
	"testing"

	"github.com/example/condo-marketplace/domain/product"
	"github.com/example/condo-marketplace/domain/resident"
)

func ids(products []product.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func catalogue() []product.Product {
	return []product.Product{
		{ID: "sofa", Title: "Leather Sofa", Description: "Brown, three seats", Category: product.CategorySale, Tags: []string{"furniture"}},
		{ID: "books", Title: "Romance novels", Description: "Fifteen books", Category: product.CategoryDonation, Tags: []string{"books", "reading"}},
		{ID: "bike", Title: "Kids bicycle", Description: "Will trade for skates", Category: product.CategoryTrade, Tags: []string{"sports"}},
		{ID: "table", Title: "Dining Table", Description: "Solid wood with six chairs", Category: product.CategorySale, Tags: []string{"furniture", "dining"}},
		{ID: "clothes", Title: "Baby clothes", Description: "Twenty pieces", Category: product.CategoryDonation, Tags: []string{"kids"}},
		{ID: "desk", Title: "Desk", Description: "Office desk", Category: product.CategorySale, Tags: []string{"Coffee TABLE set"}},
	}
}

func TestDeriveVisibleProducts(t *testing.T) {
	tests := []struct {
		name     string
		category string
		search   string
		want     []string
	}{
		{name: "identity", category: AllCategories, search: "", want: []string{"sofa", "books", "bike", "table", "clothes", "desk"}},
		{name: "donation only", category: "donation", search: "", want: []string{"books", "clothes"}},
		{name: "trade only", category: "trade", search: "", want: []string{"bike"}},
		{name: "title any case", category: AllCategories, search: "SOFA", want: []string{"sofa"}},
		{name: "tag match", category: AllCategories, search: "furniture", want: []string{"sofa", "table"}},
		{name: "description match", category: AllCategories, search: "skates", want: []string{"bike"}},
		{name: "no match", category: AllCategories, search: "bicycle lamp", want: []string{}},
		{name: "combined sale and table", category: "sale", search: "table", want: []string{"table", "desk"}},
		{name: "combined donation and table", category: "donation", search: "table", want: []string{}},
		{name: "unknown category", category: "auction", search: "", want: []string{}},
		{name: "category is case-sensitive", category: "Sale", search: "", want: []string{}},
		{name: "whitespace term is trimmed", category: "trade", search: "   ", want: []string{"bike"}},
		{name: "padded term is trimmed", category: AllCategories, search: "  novels ", want: []string{"books"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(DeriveVisibleProducts(catalogue(), tt.category, tt.search))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DeriveVisibleProducts(%q, %q) = %v, want %v", tt.category, tt.search, got, tt.want)
			}
		})
	}
}

func TestDeriveVisibleProducts_Idempotent(t *testing.T) {
	criteria := []Criteria{
		{Category: AllCategories},
		{Category: "sale", SearchTerm: "table"},
		{Category: "donation"},
		{Category: AllCategories, SearchTerm: "kids"},
	}

	for _, c := range criteria {
		once := c.Apply(catalogue())
		twice := c.Apply(once)
		if !reflect.DeepEqual(ids(once), ids(twice)) {
			t.Errorf("filtering twice with %+v changed the result: %v then %v", c, ids(once), ids(twice))
		}
	}
}

func TestDeriveVisibleProducts_DoesNotMutateInput(t *testing.T) {
	src := catalogue()
	before := ids(src)

	_ = DeriveVisibleProducts(src, "sale", "table")

	if !reflect.DeepEqual(ids(src), before) {
		t.Errorf("input was reordered: %v", ids(src))
	}
}

func TestDeriveVisibleProducts_Empty(t *testing.T) {
	got := DeriveVisibleProducts(nil, AllCategories, "")
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %#v", got)
	}
}

func TestSearchResidents(t *testing.T) {
	residents := []resident.Resident{
		{ID: "1", Name: "Maria Silva", Apartment: "Apt 301", Email: "maria.silva@email.com"},
		{ID: "2", Name: "Joao Santos", Apartment: "Apt 205", Email: "joao@email.com"},
	}

	tests := []struct {
		search string
		want   []string
	}{
		{search: "", want: []string{"1", "2"}},
		{search: "maria", want: []string{"1"}},
		{search: "205", want: []string{"2"}},
		{search: "EMAIL.COM", want: []string{"1", "2"}},
		{search: "nobody", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			var got []string
			for _, r := range SearchResidents(residents, tt.search) {
				got = append(got, r.ID)
			}
			if got == nil {
				got = []string{}
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SearchResidents(%q) = %v, want %v", tt.search, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	products := catalogue()
	products[0].Status = product.StatusReserved
	residents := []resident.Resident{{ID: "1", IsActive: true}, {ID: "2", IsActive: false}}

	s := Summarize(products, residents)

	if s.Products != 6 || s.Residents != 2 || s.ActiveResidents != 1 {
		t.Errorf("unexpected totals: %+v", s)
	}
	if s.ByCategory[product.CategorySale] != 3 || s.ByCategory[product.CategoryTrade] != 1 {
		t.Errorf("unexpected category counts: %v", s.ByCategory)
	}
	if s.ByStatus[product.StatusReserved] != 1 || s.ByStatus[product.StatusCompleted] != 0 {
		t.Errorf("unexpected status counts: %v", s.ByStatus)
	}
}
