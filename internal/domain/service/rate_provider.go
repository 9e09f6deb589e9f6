package service

import (
	"context"
	"time"

	"invoicefx/internal/domain/entity"
)

// RateProvider defines the interface for fetching mid-market exchange rates
// against the local currency.
type RateProvider interface {
	// GetExchangeRate retrieves the quotation for a currency code on a date.
	GetExchangeRate(ctx context.Context, code string, date time.Time) (*entity.ExchangeRateQuote, error)
}
