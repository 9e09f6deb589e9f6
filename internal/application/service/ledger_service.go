package service

import (
	"context"
	"fmt"
	"time"

	"invoicefx/internal/apperrors"
	"invoicefx/internal/domain/entity"
	"invoicefx/internal/domain/repository"
	"invoicefx/internal/infrastructure/logger"
	"invoicefx/internal/platform/config"

	"github.com/go-playground/validator/v10"
)

// InvoiceDraft carries user input for a new invoice
type InvoiceDraft struct {
	Amount   float64   `validate:"required,gt=0"`
	Currency string    `validate:"required,len=3,alpha,uppercase"`
	Date     time.Time `validate:"required"`
}

// PaymentDraft carries user input for a new payment
type PaymentDraft struct {
	InvoiceID string    `validate:"required,uuid4"`
	Amount    float64   `validate:"required,gt=0"`
	Currency  string    `validate:"required,len=3,alpha,uppercase"`
	Date      time.Time `validate:"required"`
}

// LedgerService handles creation and lookup of invoices and payments
type LedgerService struct {
	store    repository.RecordStore
	cfg      *config.Config
	validate *validator.Validate
	logger   logger.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(store repository.RecordStore, cfg *config.Config, log logger.Logger) *LedgerService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &LedgerService{
		store:    store,
		cfg:      cfg,
		validate: validator.New(),
		logger:   log,
	}
}

// CreateInvoice validates a draft, stores it and persists the document
func (s *LedgerService) CreateInvoice(ctx context.Context, draft InvoiceDraft) (*entity.Invoice, error) {
	if err := s.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	if !s.cfg.IsAllowedCurrency(draft.Currency) {
		return nil, fmt.Errorf("%w: currency code %s is not allowed", apperrors.ErrValidation, draft.Currency)
	}

	inv, err := s.store.AddInvoice(entity.Invoice{
		Amount:   draft.Amount,
		Currency: draft.Currency,
		Date:     draft.Date,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(); err != nil {
		return nil, fmt.Errorf("failed to persist invoice: %w", err)
	}

	s.logger.Info("Invoice created", map[string]interface{}{
		"id":       inv.ID,
		"amount":   inv.Amount,
		"currency": inv.Currency,
		"date":     inv.Date.Format("2006-01-02"),
	})

	return inv, nil
}

// CreatePayment validates a draft, stores it and persists the document. The
// referenced invoice must exist; the payment collection is untouched
// otherwise.
func (s *LedgerService) CreatePayment(ctx context.Context, draft PaymentDraft) (*entity.Payment, error) {
	if err := s.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	if !s.cfg.IsAllowedCurrency(draft.Currency) {
		return nil, fmt.Errorf("%w: currency code %s is not allowed", apperrors.ErrValidation, draft.Currency)
	}

	p, err := s.store.AddPayment(entity.Payment{
		InvoiceID: draft.InvoiceID,
		Amount:    draft.Amount,
		Currency:  draft.Currency,
		Date:      draft.Date,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(); err != nil {
		return nil, fmt.Errorf("failed to persist payment: %w", err)
	}

	s.logger.Info("Payment created", map[string]interface{}{
		"id":         p.ID,
		"invoice_id": p.InvoiceID,
		"amount":     p.Amount,
		"currency":   p.Currency,
		"date":       p.Date.Format("2006-01-02"),
	})

	return p, nil
}

// ListInvoices returns all invoices in insertion order
func (s *LedgerService) ListInvoices(ctx context.Context) []entity.Invoice {
	return s.store.GetInvoices()
}

// GetInvoice retrieves an invoice by position in insertion order
func (s *LedgerService) GetInvoice(ctx context.Context, index int) (*entity.Invoice, error) {
	return s.store.GetInvoice(index)
}

// GetInvoiceByID retrieves an invoice by its identifier
func (s *LedgerService) GetInvoiceByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return s.store.GetInvoiceByID(id)
}

// GetPayment retrieves a payment by its identifier
func (s *LedgerService) GetPayment(ctx context.Context, id string) (*entity.Payment, error) {
	return s.store.GetPayment(id)
}

// ListPayments returns payments in insertion order, filtered to one invoice
// when invoiceID is non-empty.
func (s *LedgerService) ListPayments(ctx context.Context, invoiceID string) []entity.Payment {
	return s.store.GetPayments(invoiceID)
}
