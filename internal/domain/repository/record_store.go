// Package repository internal/domain/repository/record_store.go
package repository

import (
	"invoicefx/internal/domain/entity"
)

// RecordStore defines the interface for the invoice/payment document store.
// The store exclusively owns all records; the engine reads them and writes
// results back through UpdateInvoiceStatus and CommitDifference.
type RecordStore interface {
	// Load reads the persisted document. A missing file initializes an empty
	// document; a malformed one leaves in-memory state untouched.
	Load() error

	// Save overwrites the persisted document with the full in-memory state.
	Save() error

	// AddInvoice assigns a fresh identifier and default status, appends the
	// invoice and returns the stored copy.
	AddInvoice(inv entity.Invoice) (*entity.Invoice, error)

	// AddPayment assigns a fresh identifier and appends the payment. The
	// owning invoice must exist.
	AddPayment(p entity.Payment) (*entity.Payment, error)

	// GetInvoice retrieves an invoice by position in insertion order.
	GetInvoice(index int) (*entity.Invoice, error)

	// GetInvoiceByID retrieves an invoice by its unique identifier.
	GetInvoiceByID(id string) (*entity.Invoice, error)

	// GetInvoices returns all invoices in insertion order.
	GetInvoices() []entity.Invoice

	// GetPayment retrieves a payment by its unique identifier.
	GetPayment(id string) (*entity.Payment, error)

	// GetPayments returns all payments in insertion order, filtered to one
	// invoice when invoiceID is non-empty.
	GetPayments(invoiceID string) []entity.Payment

	// UpdateInvoiceStatus replaces the stored settlement status of an invoice.
	UpdateInvoiceStatus(id string, status entity.InvoiceStatus) error

	// CommitDifference applies a computed exchange-rate difference and the
	// quotes backing it in one step. Nothing is written if either record is
	// missing.
	CommitDifference(invoiceID, paymentID string, difference float64, invoiceQuote, paymentQuote *entity.ExchangeRateQuote) error
}
