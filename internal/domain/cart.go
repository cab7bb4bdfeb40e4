package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CartLineItem is one product entry in a shopper's cart.
type CartLineItem struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	Quantity      int     `json:"quantity"`
	Image         string  `json:"image,omitempty"`
	StockQuantity *int    `json:"stock_quantity"`
	SellerID      string  `json:"seller_id"`
}

type cartLineWire struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Price         interface{} `json:"price"`
	Currency      string      `json:"currency"`
	Quantity      interface{} `json:"quantity"`
	Image         string      `json:"image,omitempty"`
	StockQuantity interface{} `json:"stock_quantity"`
	SellerID      string      `json:"seller_id"`
}

// MarshalJSON writes non-finite prices as null so a damaged line still round-trips.
func (l CartLineItem) MarshalJSON() ([]byte, error) {
	w := cartLineWire{
		ID:       l.ID,
		Title:    l.Title,
		Currency: l.Currency,
		Quantity: l.Quantity,
		Image:    l.Image,
		SellerID: l.SellerID,
	}
	if !math.IsNaN(l.Price) && !math.IsInf(l.Price, 0) {
		w.Price = l.Price
	}
	if l.StockQuantity != nil {
		w.StockQuantity = *l.StockQuantity
	}
	return json.Marshal(w)
}

// UnmarshalJSON coerces numeric fields leniently. An unreadable price becomes NaN
// and an unreadable quantity becomes 0; aggregates then skip the line.
func (l *CartLineItem) UnmarshalJSON(data []byte) error {
	var w cartLineWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*l = CartLineItem{
		ID:       w.ID,
		Title:    w.Title,
		Currency: w.Currency,
		Image:    w.Image,
		SellerID: w.SellerID,
		Price:    math.NaN(),
	}
	if v, ok := CoerceNumber(w.Price); ok {
		l.Price = v
	}
	if v, ok := CoerceNumber(w.Quantity); ok && v >= 0 && v <= math.MaxInt32 {
		l.Quantity = int(v)
	}
	if v, ok := CoerceNumber(w.StockQuantity); ok && v >= 0 && v <= math.MaxInt32 {
		stock := int(v)
		l.StockQuantity = &stock
	}
	return nil
}

// CoerceNumber reads a decoded JSON value as a finite float.
func CoerceNumber(raw interface{}) (float64, bool) {
	var v float64
	switch t := raw.(type) {
	case float64:
		v = t
	case int:
		v = float64(t)
	case int64:
		v = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
