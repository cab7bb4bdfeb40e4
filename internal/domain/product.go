package domain

import "time"

type Product struct {
	ID            string    `json:"id"`
	Key           string    `json:"key"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	Currency      string    `json:"currency"`
	StockQuantity *int      `json:"stockQuantity"`
	Category      string    `json:"category,omitempty"`
	SellerID      string    `json:"sellerId"`
	SellerCountry string    `json:"sellerCountry,omitempty"`
	Image         string    `json:"image,omitempty"`
	IsDigital     bool      `json:"isDigital"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CartLine builds a cart entry snapshot for the product.
func (p Product) CartLine() CartLineItem {
	return CartLineItem{
		ID:            p.ID,
		Title:         p.Title,
		Price:         p.Price,
		Currency:      p.Currency,
		Quantity:      1,
		Image:         p.Image,
		StockQuantity: p.StockQuantity,
		SellerID:      p.SellerID,
	}
}

// WishlistItem builds a wishlist entry snapshot for the product.
func (p Product) WishlistItem() WishlistItem {
	return WishlistItem{
		ID:            p.ID,
		Title:         p.Title,
		Price:         p.Price,
		Currency:      p.Currency,
		Image:         p.Image,
		Category:      p.Category,
		SellerID:      p.SellerID,
		StockQuantity: p.StockQuantity,
	}
}
