package httpserver

import (
	"math"

	"marketplace-storefront/internal/currency"
	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/service/shopper"
)

type cartLineView struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Price              *float64 `json:"price"`
	Currency           string   `json:"currency"`
	Quantity           int      `json:"quantity"`
	Image              string   `json:"image,omitempty"`
	StockQuantity      *int     `json:"stockQuantity"`
	SellerID           string   `json:"sellerId"`
	FormattedPrice     string   `json:"formattedPrice,omitempty"`
	FormattedLineTotal string   `json:"formattedLineTotal,omitempty"`
}

type cartResponse struct {
	Items          []cartLineView `json:"items"`
	TotalItems     int            `json:"totalItems"`
	TotalPrice     float64        `json:"totalPrice"`
	BaseCurrency   currency.Code  `json:"baseCurrency"`
	Currency       currency.Code  `json:"currency"`
	FormattedTotal string         `json:"formattedTotal"`
	Open           bool           `json:"open"`
	Notice         domain.Notice  `json:"notice,omitempty"`
}

type wishlistItemView struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Price          *float64 `json:"price"`
	Currency       string   `json:"currency"`
	Image          string   `json:"image,omitempty"`
	Category       string   `json:"category,omitempty"`
	SellerID       string   `json:"sellerId"`
	StockQuantity  *int     `json:"stockQuantity"`
	FormattedPrice string   `json:"formattedPrice,omitempty"`
}

type wishlistResponse struct {
	Items      []wishlistItemView `json:"items"`
	TotalItems int                `json:"totalItems"`
	Currency   currency.Code      `json:"currency"`
	Notice     domain.Notice      `json:"notice,omitempty"`
}

type productView struct {
	domain.Product
	DisplayCurrency currency.Code `json:"displayCurrency"`
	DisplayPrice    float64       `json:"displayPrice"`
	FormattedPrice  string        `json:"formattedPrice"`
}

type currencyResponse struct {
	Currency  currency.Code `json:"currency"`
	Persisted currency.Code `json:"persisted,omitempty"`
	State     string        `json:"state"`
	Phase     string        `json:"phase"`
	Info      currency.Info `json:"info"`
}

func toCartResponse(sh *shopper.Shopper, notice domain.Notice) cartResponse {
	summary := sh.Cart.Summary()
	display := sh.Currency.Current()
	lines := make([]cartLineView, 0, len(summary.Items))
	for _, item := range summary.Items {
		view := cartLineView{
			ID:            item.ID,
			Title:         item.Title,
			Price:         finite(item.Price),
			Currency:      item.Currency,
			Quantity:      item.Quantity,
			Image:         item.Image,
			StockQuantity: item.StockQuantity,
			SellerID:      item.SellerID,
		}
		if view.Price != nil {
			code := currency.Code(item.Currency)
			view.FormattedPrice = sh.Currency.FormatPrice(item.Price, code)
			view.FormattedLineTotal = sh.Currency.FormatPrice(item.Price*float64(item.Quantity), code)
		}
		lines = append(lines, view)
	}
	return cartResponse{
		Items:          lines,
		TotalItems:     summary.TotalItems,
		TotalPrice:     summary.TotalPrice,
		BaseCurrency:   currency.Base,
		Currency:       display,
		FormattedTotal: sh.Currency.FormatPrice(summary.TotalPrice, currency.Base),
		Open:           summary.Open,
		Notice:         notice,
	}
}

func toWishlistResponse(sh *shopper.Shopper, notice domain.Notice) wishlistResponse {
	items := sh.Wishlist.Items()
	views := make([]wishlistItemView, 0, len(items))
	for _, item := range items {
		view := wishlistItemView{
			ID:            item.ID,
			Title:         item.Title,
			Price:         finite(item.Price),
			Currency:      item.Currency,
			Image:         item.Image,
			Category:      item.Category,
			SellerID:      item.SellerID,
			StockQuantity: item.StockQuantity,
		}
		if view.Price != nil {
			view.FormattedPrice = sh.Currency.FormatPrice(item.Price, currency.Code(item.Currency))
		}
		views = append(views, view)
	}
	return wishlistResponse{
		Items:      views,
		TotalItems: len(views),
		Currency:   sh.Currency.Current(),
		Notice:     notice,
	}
}

func toProductViews(products []domain.Product, display currency.Code) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, toProductView(p, display))
	}
	return out
}

func toProductView(p domain.Product, display currency.Code) productView {
	from := currency.Code(p.Currency)
	if from == "" {
		from = currency.Base
	}
	amount := currency.Round(currency.Convert(p.Price, from, display), display)
	return productView{
		Product:         p,
		DisplayCurrency: display,
		DisplayPrice:    amount,
		FormattedPrice:  currency.FormatPriceWithConversion(p.Price, from, display),
	}
}

func toCurrencyResponse(sh *shopper.Shopper) currencyResponse {
	code := sh.Currency.Current()
	info, _ := currency.Lookup(string(code))
	return currencyResponse{
		Currency:  code,
		Persisted: sh.Currency.Persisted(),
		State:     sh.Currency.State().String(),
		Phase:     sh.Currency.Phase().String(),
		Info:      info,
	}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
