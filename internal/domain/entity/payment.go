package entity

import (
	"errors"
	"time"
)

// Payment represents a payment booked against an invoice. Many payments may
// reference the same invoice.
type Payment struct {
	ID        string    `json:"id"`
	InvoiceID string    `json:"invoice_id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Date      time.Time `json:"date"`

	// ExchangeRateDifference is the signed local-currency gain or loss caused
	// purely by rate movement between the invoice date and the payment date.
	// Nil until the reconciliation engine computes it.
	ExchangeRateDifference *float64           `json:"exchange_rate_difference,omitempty"`
	ExchangeRate           *ExchangeRateQuote `json:"exchange_rate,omitempty"`
}

// Validate ensures the payment meets all requirements
func (p *Payment) Validate() error {
	if p.InvoiceID == "" {
		return errors.New("payment must reference an invoice")
	}

	if p.Amount <= 0 {
		return errors.New("amount must be a positive value")
	}

	if len(p.Currency) != 3 {
		return errors.New("currency must be a 3-letter code")
	}

	return nil
}
