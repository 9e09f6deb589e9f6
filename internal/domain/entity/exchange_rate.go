package entity

import (
	"errors"
	"time"
)

// RateEntry is a single published rate within a quotation
type RateEntry struct {
	No            string    `json:"no"`
	EffectiveDate time.Time `json:"effective_date"`
	Mid           float64   `json:"mid"`
}

// ExchangeRateQuote represents a quotation for one currency on one date as
// published by the rate authority. Quotes are immutable once fetched.
type ExchangeRateQuote struct {
	Table    string      `json:"table"`
	Currency string      `json:"currency"`
	Code     string      `json:"code"`
	Rates    []RateEntry `json:"rates"`
}

// Validate ensures the quotation carries at least one published rate
func (q *ExchangeRateQuote) Validate() error {
	if len(q.Rates) == 0 {
		return errors.New("quote must contain at least one rate entry")
	}
	return nil
}

// Mid returns the mid-market rate of the first published entry. The engine
// only ever uses the first entry; the provider and the store both enforce
// at least one.
func (q *ExchangeRateQuote) Mid() float64 {
	return q.Rates[0].Mid
}
