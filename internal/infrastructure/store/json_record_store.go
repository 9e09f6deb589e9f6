// Package store internal/infrastructure/store/json_record_store.go
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"invoicefx/internal/apperrors"
	"invoicefx/internal/domain/entity"
	"invoicefx/internal/infrastructure/logger"

	"github.com/google/uuid"
)

// document is the persisted shape: the full set of invoices and payments as
// one consistent unit.
type document struct {
	Invoices []entity.Invoice `json:"invoices"`
	Payments []entity.Payment `json:"payments"`
}

// validate checks every record against the entity rules so that a document
// that decoded cleanly but violates the schema is rejected as a whole.
func (d *document) validate() error {
	for i := range d.Invoices {
		inv := &d.Invoices[i]
		if err := inv.Validate(); err != nil {
			return fmt.Errorf("invoice %s: %w", inv.ID, err)
		}
		if inv.ExchangeRate != nil {
			if err := inv.ExchangeRate.Validate(); err != nil {
				return fmt.Errorf("invoice %s: %w", inv.ID, err)
			}
		}
	}

	for i := range d.Payments {
		p := &d.Payments[i]
		if err := p.Validate(); err != nil {
			return fmt.Errorf("payment %s: %w", p.ID, err)
		}
		if p.ExchangeRate != nil {
			if err := p.ExchangeRate.Validate(); err != nil {
				return fmt.Errorf("payment %s: %w", p.ID, err)
			}
		}
	}

	return nil
}

// JSONRecordStore holds all invoices and payments in memory and snapshots
// them to a single JSON file. Writes always overwrite the whole file.
type JSONRecordStore struct {
	path   string
	logger logger.Logger

	mutex sync.RWMutex
	doc   document
}

// NewJSONRecordStore creates a record store backed by the given file path
func NewJSONRecordStore(path string, log logger.Logger) *JSONRecordStore {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &JSONRecordStore{
		path:   path,
		logger: log,
	}
}

// Load reads the persisted document. A missing file is treated as an empty
// database and the file is established immediately. A file that fails to
// parse or violates the record schema is logged and leaves the in-memory
// document unchanged.
func (s *JSONRecordStore) Load() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.doc = document{}
		return s.save()
	}
	if err != nil {
		s.logger.Error("Failed to read database file", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return fmt.Errorf("failed to read database file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Error("Malformed database file, keeping current state", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return fmt.Errorf("malformed database file: %w", err)
	}

	if err := doc.validate(); err != nil {
		s.logger.Error("Database file violates the record schema, keeping current state", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return fmt.Errorf("malformed database file: %w", err)
	}

	s.doc = doc
	return nil
}

// Save serializes the entire in-memory document, fully overwriting the file
func (s *JSONRecordStore) Save() error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.save()
}

func (s *JSONRecordStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal database: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.Error("Failed to write database file", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return fmt.Errorf("failed to write database file: %w", err)
	}

	return nil
}

// AddInvoice assigns a fresh identifier and default status, appends the
// invoice and returns the stored copy.
func (s *JSONRecordStore) AddInvoice(inv entity.Invoice) (*entity.Invoice, error) {
	if err := inv.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	inv.ID = uuid.New().String()
	if inv.Status == "" {
		inv.Status = entity.StatusUnpaid
	}

	s.doc.Invoices = append(s.doc.Invoices, inv)
	return &inv, nil
}

// AddPayment assigns a fresh identifier and appends the payment. The owning
// invoice must already exist; nothing is appended otherwise.
func (s *JSONRecordStore) AddPayment(p entity.Payment) (*entity.Payment, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.invoiceIndex(p.InvoiceID) < 0 {
		return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, p.InvoiceID)
	}

	p.ID = uuid.New().String()
	s.doc.Payments = append(s.doc.Payments, p)
	return &p, nil
}

// GetInvoice retrieves an invoice by position in insertion order
func (s *JSONRecordStore) GetInvoice(index int) (*entity.Invoice, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if index < 0 || index >= len(s.doc.Invoices) {
		return nil, fmt.Errorf("%w: invoice index %d", apperrors.ErrNotFound, index)
	}

	inv := s.doc.Invoices[index]
	return &inv, nil
}

// GetInvoiceByID retrieves an invoice by its unique identifier
func (s *JSONRecordStore) GetInvoiceByID(id string) (*entity.Invoice, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	idx := s.invoiceIndex(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, id)
	}

	inv := s.doc.Invoices[idx]
	return &inv, nil
}

// GetInvoices returns all invoices in insertion order
func (s *JSONRecordStore) GetInvoices() []entity.Invoice {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	invoices := make([]entity.Invoice, len(s.doc.Invoices))
	copy(invoices, s.doc.Invoices)
	return invoices
}

// GetPayment retrieves a payment by its unique identifier
func (s *JSONRecordStore) GetPayment(id string) (*entity.Payment, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	idx := s.paymentIndex(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, id)
	}

	p := s.doc.Payments[idx]
	return &p, nil
}

// GetPayments returns all payments in insertion order, filtered to one
// invoice when invoiceID is non-empty.
func (s *JSONRecordStore) GetPayments(invoiceID string) []entity.Payment {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	payments := make([]entity.Payment, 0, len(s.doc.Payments))
	for _, p := range s.doc.Payments {
		if invoiceID == "" || p.InvoiceID == invoiceID {
			payments = append(payments, p)
		}
	}
	return payments
}

// UpdateInvoiceStatus replaces the stored settlement status of an invoice
func (s *JSONRecordStore) UpdateInvoiceStatus(id string, status entity.InvoiceStatus) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	idx := s.invoiceIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, id)
	}

	s.doc.Invoices[idx].Status = status
	return nil
}

// CommitDifference applies a computed exchange-rate difference together with
// both backing quotes in one step. If either record is missing nothing is
// written.
func (s *JSONRecordStore) CommitDifference(invoiceID, paymentID string, difference float64, invoiceQuote, paymentQuote *entity.ExchangeRateQuote) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	invIdx := s.invoiceIndex(invoiceID)
	if invIdx < 0 {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
	}

	payIdx := s.paymentIndex(paymentID)
	if payIdx < 0 {
		return fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
	}

	s.doc.Payments[payIdx].ExchangeRateDifference = &difference
	s.doc.Payments[payIdx].ExchangeRate = paymentQuote
	s.doc.Invoices[invIdx].ExchangeRate = invoiceQuote
	return nil
}

// invoiceIndex and paymentIndex expect the caller to hold the mutex.

func (s *JSONRecordStore) invoiceIndex(id string) int {
	for i, inv := range s.doc.Invoices {
		if inv.ID == id {
			return i
		}
	}
	return -1
}

func (s *JSONRecordStore) paymentIndex(id string) int {
	for i, p := range s.doc.Payments {
		if p.ID == id {
			return i
		}
	}
	return -1
}
