package domain

import "time"

// SearchFilters narrows a product search.
type SearchFilters struct {
	Categories []string `json:"categories,omitempty"`
	MinPrice   *float64 `json:"minPrice,omitempty"`
	MaxPrice   *float64 `json:"maxPrice,omitempty"`
}

// SavedSearch is a named query a shopper can rerun.
type SavedSearch struct {
	ID        string        `json:"id"`
	Label     string        `json:"label"`
	Query     string        `json:"query"`
	Filters   SearchFilters `json:"filters"`
	CreatedAt time.Time     `json:"createdAt"`
}
