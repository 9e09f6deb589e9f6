// Package service internal/application/service/reconciliation_service.go
package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"invoicefx/internal/domain/entity"
	"invoicefx/internal/domain/repository"
	domainservice "invoicefx/internal/domain/service"
	"invoicefx/internal/infrastructure/logger"
	"invoicefx/internal/platform/config"
)

// SettlementResult carries the outcome of a settlement computation, all
// monetary values expressed in the local currency.
type SettlementResult struct {
	PaidTotal    float64              `json:"paid_total"`
	InvoiceValue float64              `json:"invoice_value"`
	Status       entity.InvoiceStatus `json:"status"`
}

// DifferenceResult carries a computed exchange-rate difference and the quotes
// backing it.
type DifferenceResult struct {
	Difference   float64                   `json:"difference"`
	InvoiceQuote *entity.ExchangeRateQuote `json:"invoice_quote,omitempty"`
	PaymentQuote *entity.ExchangeRateQuote `json:"payment_quote,omitempty"`
}

// ReconciliationService computes settlement statuses and exchange-rate
// differences for invoices and their payments.
type ReconciliationService struct {
	store    repository.RecordStore
	provider domainservice.RateProvider
	cfg      *config.Config
	logger   logger.Logger
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(store repository.RecordStore, provider domainservice.RateProvider, cfg *config.Config, log logger.Logger) *ReconciliationService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ReconciliationService{
		store:    store,
		provider: provider,
		cfg:      cfg,
		logger:   log,
	}
}

// ComputeInvoiceStatus converts the invoice and all of its payments into the
// local currency, derives the settlement status from scratch and persists it.
func (s *ReconciliationService) ComputeInvoiceStatus(ctx context.Context, invoiceID string) (*SettlementResult, error) {
	inv, err := s.store.GetInvoiceByID(invoiceID)
	if err != nil {
		return nil, err
	}

	invoiceValue := inv.Amount
	if inv.Currency != s.cfg.LocalCurrency {
		quote, err := s.provider.GetExchangeRate(ctx, inv.Currency, inv.Date)
		if err != nil {
			s.logger.Error("Failed to quote invoice currency", map[string]interface{}{
				"invoice_id": inv.ID,
				"currency":   inv.Currency,
				"date":       inv.Date.Format("2006-01-02"),
				"error":      err.Error(),
			})
			return nil, err
		}
		invoiceValue = inv.Amount * quote.Mid()
	}

	payments := s.store.GetPayments(inv.ID)
	if len(payments) == 0 {
		if err := s.commitStatus(inv.ID, entity.StatusUnpaid); err != nil {
			return nil, err
		}

		s.logger.Info("Settlement computed", map[string]interface{}{
			"invoice_id":    inv.ID,
			"invoice_value": invoiceValue,
			"paid_total":    0.0,
			"status":        entity.StatusUnpaid,
		})

		return &SettlementResult{
			PaidTotal:    0,
			InvoiceValue: invoiceValue,
			Status:       entity.StatusUnpaid,
		}, nil
	}

	var paidTotal float64
	for _, p := range payments {
		if p.Currency == s.cfg.LocalCurrency {
			paidTotal += p.Amount
			continue
		}

		quote, err := s.provider.GetExchangeRate(ctx, p.Currency, p.Date)
		if err != nil {
			s.logger.Error("Failed to quote payment currency", map[string]interface{}{
				"invoice_id": inv.ID,
				"payment_id": p.ID,
				"currency":   p.Currency,
				"date":       p.Date.Format("2006-01-02"),
				"error":      err.Error(),
			})
			return nil, err
		}
		paidTotal += p.Amount * quote.Mid()
	}

	status := settlementStatus(invoiceValue, paidTotal)
	if err := s.commitStatus(inv.ID, status); err != nil {
		return nil, err
	}

	s.logger.Info("Settlement computed", map[string]interface{}{
		"invoice_id":    inv.ID,
		"invoice_value": invoiceValue,
		"paid_total":    paidTotal,
		"status":        status,
	})

	return &SettlementResult{
		PaidTotal:    paidTotal,
		InvoiceValue: invoiceValue,
		Status:       status,
	}, nil
}

// ComputeExchangeRateDifference computes the local-currency gain or loss
// caused purely by rate movement between the invoice date and the payment
// date, holding the invoice's foreign-currency amount fixed. The result and
// both quotes are committed to the records in one step only after every quote
// lookup has succeeded.
func (s *ReconciliationService) ComputeExchangeRateDifference(ctx context.Context, paymentID string) (*DifferenceResult, error) {
	payment, err := s.store.GetPayment(paymentID)
	if err != nil {
		return nil, err
	}

	inv, err := s.store.GetInvoiceByID(payment.InvoiceID)
	if err != nil {
		return nil, err
	}

	// Same currency on both sides means no rate movement can apply. No quote
	// is looked up and cached quotes stay as they are.
	if inv.Currency == payment.Currency {
		s.logger.Debug("Invoice and payment share a currency", map[string]interface{}{
			"invoice_id": inv.ID,
			"payment_id": payment.ID,
			"currency":   inv.Currency,
		})
		return &DifferenceResult{Difference: 0}, nil
	}

	invoiceQuote, err := s.quoteAt(ctx, inv.ExchangeRate, payment.Currency, inv.Date)
	if err != nil {
		return nil, err
	}

	paymentQuote, err := s.quoteAt(ctx, payment.ExchangeRate, payment.Currency, payment.Date)
	if err != nil {
		return nil, err
	}

	difference := roundToCent((paymentQuote.Mid() - invoiceQuote.Mid()) * inv.Amount)

	if err := s.store.CommitDifference(inv.ID, payment.ID, difference, invoiceQuote, paymentQuote); err != nil {
		return nil, err
	}

	if err := s.store.Save(); err != nil {
		return nil, fmt.Errorf("failed to persist difference: %w", err)
	}

	s.logger.Info("Exchange rate difference computed", map[string]interface{}{
		"invoice_id":  inv.ID,
		"payment_id":  payment.ID,
		"currency":    payment.Currency,
		"invoice_mid": invoiceQuote.Mid(),
		"payment_mid": paymentQuote.Mid(),
		"difference":  difference,
	})

	return &DifferenceResult{
		Difference:   difference,
		InvoiceQuote: invoiceQuote,
		PaymentQuote: paymentQuote,
	}, nil
}

// quoteAt reuses a quote cached on a record when its code matches, otherwise
// fetches a fresh one from the provider.
func (s *ReconciliationService) quoteAt(ctx context.Context, cached *entity.ExchangeRateQuote, code string, date time.Time) (*entity.ExchangeRateQuote, error) {
	if cached != nil && cached.Code == code {
		s.logger.Debug("Reusing cached quote", map[string]interface{}{
			"code": code,
			"date": date.Format("2006-01-02"),
		})
		return cached, nil
	}
	return s.provider.GetExchangeRate(ctx, code, date)
}

func (s *ReconciliationService) commitStatus(invoiceID string, status entity.InvoiceStatus) error {
	if err := s.store.UpdateInvoiceStatus(invoiceID, status); err != nil {
		return err
	}
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("failed to persist status: %w", err)
	}
	return nil
}

// settlementStatus derives the status from exact comparison of the converted
// local-currency totals.
func settlementStatus(invoiceValue, paidTotal float64) entity.InvoiceStatus {
	switch {
	case paidTotal == invoiceValue:
		return entity.StatusPaid
	case invoiceValue > paidTotal:
		return entity.StatusUnpaid
	default:
		return entity.StatusOverpaid
	}
}

// roundToCent rounds to two decimal places
func roundToCent(v float64) float64 {
	return math.Round(v*100) / 100
}
