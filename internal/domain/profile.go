package domain

import "time"

// Profile holds the per-user settings the storefront reads and writes.
type Profile struct {
	UserID             string    `json:"userId"`
	CurrencyPreference string    `json:"currency_preference,omitempty"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
