package domain

// WishlistItem is a product saved for later.
type WishlistItem struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	Image         string  `json:"image,omitempty"`
	Category      string  `json:"category,omitempty"`
	SellerID      string  `json:"seller_id"`
	StockQuantity *int    `json:"stock_quantity"`
}
