// internal/mocks/mocks.go
package mocks

import (
	"context"
	"time"

	"invoicefx/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockRateProvider mocks the RateProvider interface
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) GetExchangeRate(ctx context.Context, code string, date time.Time) (*entity.ExchangeRateQuote, error) {
	args := m.Called(ctx, code, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ExchangeRateQuote), args.Error(1)
}

// MockRecordStore mocks the RecordStore interface
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) Load() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockRecordStore) Save() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockRecordStore) AddInvoice(inv entity.Invoice) (*entity.Invoice, error) {
	args := m.Called(inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Invoice), args.Error(1)
}

func (m *MockRecordStore) AddPayment(p entity.Payment) (*entity.Payment, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *MockRecordStore) GetInvoice(index int) (*entity.Invoice, error) {
	args := m.Called(index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Invoice), args.Error(1)
}

func (m *MockRecordStore) GetInvoiceByID(id string) (*entity.Invoice, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Invoice), args.Error(1)
}

func (m *MockRecordStore) GetInvoices() []entity.Invoice {
	args := m.Called()
	return args.Get(0).([]entity.Invoice)
}

func (m *MockRecordStore) GetPayment(id string) (*entity.Payment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *MockRecordStore) GetPayments(invoiceID string) []entity.Payment {
	args := m.Called(invoiceID)
	return args.Get(0).([]entity.Payment)
}

func (m *MockRecordStore) UpdateInvoiceStatus(id string, status entity.InvoiceStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockRecordStore) CommitDifference(invoiceID, paymentID string, difference float64, invoiceQuote, paymentQuote *entity.ExchangeRateQuote) error {
	args := m.Called(invoiceID, paymentID, difference, invoiceQuote, paymentQuote)
	return args.Error(0)
}
