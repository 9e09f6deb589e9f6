package entity

import (
	"errors"
	"time"
)

// InvoiceStatus classifies an invoice against the sum of its payments once
// both sides are expressed in the local currency.
type InvoiceStatus string

const (
	// StatusUnpaid means the invoice value exceeds the paid total.
	StatusUnpaid InvoiceStatus = "UNPAID"
	// StatusPaid means the paid total matches the invoice value exactly.
	StatusPaid InvoiceStatus = "PAID"
	// StatusOverpaid means the paid total exceeds the invoice value.
	StatusOverpaid InvoiceStatus = "OVERPAID"
)

// Invoice represents a single issued invoice
type Invoice struct {
	ID           string             `json:"id"`
	Amount       float64            `json:"amount"`
	Currency     string             `json:"currency"`
	Date         time.Time          `json:"date"`
	Status       InvoiceStatus      `json:"status"`
	ExchangeRate *ExchangeRateQuote `json:"exchange_rate,omitempty"`
}

// Validate ensures the invoice meets all requirements
func (i *Invoice) Validate() error {
	if i.Amount <= 0 {
		return errors.New("amount must be a positive value")
	}

	if len(i.Currency) != 3 {
		return errors.New("currency must be a 3-letter code")
	}

	return nil
}
