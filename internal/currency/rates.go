package currency

import "context"

// RateProvider supplies the exchange-rate table.
type RateProvider interface {
	Rates(ctx context.Context) (ExchangeRateTable, error)
}

// StaticRates serves the embedded table. It stands in for a live refresh hook.
type StaticRates struct{}

func (StaticRates) Rates(_ context.Context) (ExchangeRateTable, error) {
	return Rates(), nil
}
