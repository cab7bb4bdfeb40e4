package seed

import (
	"context"
	"fmt"

	"marketplace-storefront/internal/domain"
)

// Saver stores a listing; the product service validates before writing.
type Saver interface {
	Save(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type productSeed struct {
	Key           string
	Title         string
	Description   string
	Price         float64
	Currency      string
	Stock         int
	Category      string
	SellerID      string
	SellerCountry string
	Digital       bool
}

var products = []productSeed{
	{
		Key:           "demo-kikoy",
		Title:         "Kikoy Beach Wrap",
		Description:   "Hand-loomed cotton kikoy from Zanzibar",
		Price:         35000,
		Currency:      "TZS",
		Stock:         12,
		Category:      "fashion",
		SellerID:      "seller-zanzibar",
		SellerCountry: "TZ",
	},
	{
		Key:           "demo-kiondo",
		Title:         "Kiondo Sisal Basket",
		Description:   "Woven sisal basket with leather handles",
		Price:         2800,
		Currency:      "KES",
		Stock:         6,
		Category:      "home",
		SellerID:      "seller-nairobi",
		SellerCountry: "KE",
	},
	{
		Key:           "demo-coffee",
		Title:         "Bugisu Arabica Coffee 500g",
		Description:   "Single-origin beans from Mount Elgon",
		Price:         42000,
		Currency:      "UGX",
		Stock:         30,
		Category:      "food",
		SellerID:      "seller-mbale",
		SellerCountry: "UG",
	},
	{
		Key:           "demo-imigongo",
		Title:         "Imigongo Wall Panel",
		Description:   "Geometric cow-dung art panel",
		Price:         65000,
		Currency:      "RWF",
		Stock:         2,
		Category:      "art",
		SellerID:      "seller-kigali",
		SellerCountry: "RW",
	},
	{
		Key:           "demo-phrasebook",
		Title:         "Swahili Phrasebook (PDF)",
		Description:   "Downloadable travel phrasebook",
		Price:         4.99,
		Currency:      "USD",
		Category:      "digital",
		SellerID:      "seller-dar",
		SellerCountry: "TZ",
		Digital:       true,
	},
	{
		Key:           "demo-earbuds",
		Title:         "Wireless Earbuds",
		Description:   "Bluetooth earbuds with charging case",
		Price:         24.5,
		Currency:      "GBP",
		Stock:         8,
		Category:      "electronics",
		SellerID:      "seller-london",
		SellerCountry: "GB",
	},
}

// Apply saves the demo catalogue for manual testing. It is idempotent because
// products upsert by key.
func Apply(ctx context.Context, saver Saver) (int, error) {
	for _, s := range products {
		p := domain.Product{
			Key:           s.Key,
			Title:         s.Title,
			Description:   s.Description,
			Price:         s.Price,
			Currency:      s.Currency,
			Category:      s.Category,
			SellerID:      s.SellerID,
			SellerCountry: s.SellerCountry,
			IsDigital:     s.Digital,
		}
		if !s.Digital {
			stock := s.Stock
			p.StockQuantity = &stock
		}
		if _, err := saver.Save(ctx, p); err != nil {
			return 0, fmt.Errorf("upsert product %s: %w", s.Key, err)
		}
	}
	return len(products), nil
}
