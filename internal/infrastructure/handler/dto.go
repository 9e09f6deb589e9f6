package handler

import (
	"invoicefx/internal/domain/entity"
)

// CreateInvoiceRequest represents the request body for creating an invoice
type CreateInvoiceRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Date     string  `json:"date"`
}

// CreatePaymentRequest represents the request body for creating a payment
type CreatePaymentRequest struct {
	InvoiceID string  `json:"invoice_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Date      string  `json:"date"`
}

// InvoiceResponse represents the response for invoice endpoints
type InvoiceResponse struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Date     string  `json:"date"`
	Status   string  `json:"status"`
}

// PaymentResponse represents the response for payment endpoints
type PaymentResponse struct {
	ID                     string   `json:"id"`
	InvoiceID              string   `json:"invoice_id"`
	Amount                 float64  `json:"amount"`
	Currency               string   `json:"currency"`
	Date                   string   `json:"date"`
	ExchangeRateDifference *float64 `json:"exchange_rate_difference,omitempty"`
}

// SettlementResponse represents the response for the settlement endpoint
type SettlementResponse struct {
	InvoiceID    string  `json:"invoice_id"`
	PaidTotal    float64 `json:"paid_total"`
	InvoiceValue float64 `json:"invoice_value"`
	Status       string  `json:"status"`
}

// DifferenceResponse represents the response for the difference endpoint
type DifferenceResponse struct {
	PaymentID  string  `json:"payment_id"`
	Difference float64 `json:"difference"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}

func invoiceResponse(inv *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:       inv.ID,
		Amount:   inv.Amount,
		Currency: inv.Currency,
		Date:     inv.Date.Format("2006-01-02"),
		Status:   string(inv.Status),
	}
}

func paymentResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                     p.ID,
		InvoiceID:              p.InvoiceID,
		Amount:                 p.Amount,
		Currency:               p.Currency,
		Date:                   p.Date.Format("2006-01-02"),
		ExchangeRateDifference: p.ExchangeRateDifference,
	}
}
