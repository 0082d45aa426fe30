package snapshot

import (
	"time"

	"github.com/example/condo-marketplace/domain/product"
	"github.com/example/condo-marketplace/domain/resident"
)

// DemoProducts is the catalogue seeded into an empty snapshot database.
func DemoProducts() []product.Product {
	price := func(v float64) *float64 { return &v }
	at := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}

	return []product.Product{
		{
			ID:          "1",
			Title:       "Three-seat Leather Sofa",
			Description: "Brown sofa in excellent condition, very comfortable. Used for only two years.",
			Price:       price(800),
			Category:    product.CategorySale,
			Images:      []string{"https://images.pexels.com/photos/1350789/pexels-photo-1350789.jpeg"},
			Owner:       product.Owner{Name: "Maria Silva", Apartment: "Apt 301", Contact: "(11) 99999-9999"},
			CreatedAt:   at("2024-01-15T10:30:00Z"),
			Status:      product.StatusAvailable,
			Tags:        []string{"furniture", "living room", "leather"},
		},
		{
			ID:          "2",
			Title:       "Romance Novels",
			Description: "Collection of 15 romance novels in great condition. Perfect for keen readers.",
			Category:    product.CategoryDonation,
			Images:      []string{"https://images.pexels.com/photos/1029141/pexels-photo-1029141.jpeg"},
			Owner:       product.Owner{Name: "Joao Santos", Apartment: "Apt 205", Contact: "(11) 88888-8888"},
			CreatedAt:   at("2024-01-14T15:45:00Z"),
			Status:      product.StatusAvailable,
			Tags:        []string{"books", "literature", "romance"},
		},
		{
			ID:          "3",
			Title:       "Kids Bicycle",
			Description: "16-inch bicycle in good condition. Will trade for roller skates or a kids skateboard.",
			Category:    product.CategoryTrade,
			Images:      []string{"https://images.pexels.com/photos/276517/pexels-photo-276517.jpeg"},
			Owner:       product.Owner{Name: "Ana Costa", Apartment: "Apt 102", Contact: "(11) 77777-7777"},
			CreatedAt:   at("2024-01-13T09:20:00Z"),
			Status:      product.StatusAvailable,
			Tags:        []string{"bicycle", "kids", "sports"},
		},
		{
			ID:          "4",
			Title:       "Dining Table with 6 Chairs",
			Description: "Solid wood table with six upholstered chairs. Ideal for a large family.",
			Price:       price(1200),
			Category:    product.CategorySale,
			Images:      []string{"https://images.pexels.com/photos/1080721/pexels-photo-1080721.jpeg"},
			Owner:       product.Owner{Name: "Carlos Oliveira", Apartment: "Apt 405", Contact: "(11) 66666-6666"},
			CreatedAt:   at("2024-01-12T14:10:00Z"),
			Status:      product.StatusAvailable,
			Tags:        []string{"furniture", "dining", "wood"},
		},
		{
			ID:          "5",
			Title:       "Baby Clothes",
			Description: "Bundle of 20 baby clothes (0 to 6 months) in excellent condition.",
			Category:    product.CategoryDonation,
			Images:      []string{"https://images.pexels.com/photos/1257110/pexels-photo-1257110.jpeg"},
			Owner:       product.Owner{Name: "Paula Ferreira", Apartment: "Apt 503", Contact: "(11) 55555-5555"},
			CreatedAt:   at("2024-01-11T11:30:00Z"),
			Status:      product.StatusAvailable,
			Tags:        []string{"clothes", "baby", "kids"},
		},
		{
			ID:          "6",
			Title:       "Dell Notebook",
			Description: "Dell Inspiron 15, 8GB RAM, 256GB SSD. Will trade for a tablet or smartphone.",
			Category:    product.CategoryTrade,
			Images:      []string{"https://images.pexels.com/photos/205421/pexels-photo-205421.jpeg"},
			Owner:       product.Owner{Name: "Roberto Lima", Apartment: "Apt 201", Contact: "(11) 44444-4444"},
			CreatedAt:   at("2024-01-10T16:45:00Z"),
			Status:      product.StatusAvailable,
			Tags:        []string{"electronics", "notebook", "computers"},
		},
	}
}

// DemoResidents are the residents seeded into an empty snapshot database.
func DemoResidents() []resident.Resident {
	return []resident.Resident{
		{
			ID:        "2",
			Name:      "Joao Santos",
			Email:     "joao.santos@email.com",
			Apartment: "Apt 205",
			Phone:     "(11) 88888-8888",
			CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			IsActive:  true,
		},
		{
			ID:        "1",
			Name:      "Maria Silva",
			Email:     "maria.silva@email.com",
			Apartment: "Apt 301",
			Phone:     "(11) 99999-9999",
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			IsActive:  true,
		},
	}
}
