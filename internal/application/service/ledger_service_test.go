package service

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"invoicefx/internal/apperrors"
	"invoicefx/internal/domain/entity"
	"invoicefx/internal/infrastructure/logger"
	"invoicefx/internal/infrastructure/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerFixture(t *testing.T) *LedgerService {
	t.Helper()

	log := logger.NewJSONLogger(io.Discard, logger.ErrorLevel)
	recordStore := store.NewJSONRecordStore(filepath.Join(t.TempDir(), "database.json"), log)
	require.NoError(t, recordStore.Load())

	return NewLedgerService(recordStore, testConfig(), log)
}

func TestCreateInvoice(t *testing.T) {
	ctx := context.Background()
	issueDate := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("Valid draft gets an id and the unpaid status", func(t *testing.T) {
		ledger := newLedgerFixture(t)

		inv, err := ledger.CreateInvoice(ctx, InvoiceDraft{Amount: 100, Currency: "EUR", Date: issueDate})

		require.NoError(t, err)
		assert.NotEmpty(t, inv.ID)
		assert.Equal(t, entity.StatusUnpaid, inv.Status)
		assert.Len(t, ledger.ListInvoices(ctx), 1)
	})

	t.Run("Local currency is implicitly allowed", func(t *testing.T) {
		ledger := newLedgerFixture(t)

		_, err := ledger.CreateInvoice(ctx, InvoiceDraft{Amount: 100, Currency: "PLN", Date: issueDate})

		assert.NoError(t, err)
	})

	t.Run("Zero amount fails validation", func(t *testing.T) {
		ledger := newLedgerFixture(t)

		_, err := ledger.CreateInvoice(ctx, InvoiceDraft{Amount: 0, Currency: "EUR", Date: issueDate})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Empty(t, ledger.ListInvoices(ctx))
	})

	t.Run("Lowercase currency fails validation", func(t *testing.T) {
		ledger := newLedgerFixture(t)

		_, err := ledger.CreateInvoice(ctx, InvoiceDraft{Amount: 100, Currency: "eur", Date: issueDate})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Currency off the allow-list is rejected", func(t *testing.T) {
		ledger := newLedgerFixture(t)

		_, err := ledger.CreateInvoice(ctx, InvoiceDraft{Amount: 100, Currency: "CHF", Date: issueDate})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestCreatePayment(t *testing.T) {
	ctx := context.Background()
	issueDate := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("Valid draft is stored against its invoice", func(t *testing.T) {
		ledger := newLedgerFixture(t)

		inv, err := ledger.CreateInvoice(ctx, InvoiceDraft{Amount: 100, Currency: "EUR", Date: issueDate})
		require.NoError(t, err)

		p, err := ledger.CreatePayment(ctx, PaymentDraft{
			InvoiceID: inv.ID,
			Amount:    50,
			Currency:  "PLN",
			Date:      issueDate.AddDate(0, 1, 0),
		})

		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)

		payments := ledger.ListPayments(ctx, inv.ID)
		require.Len(t, payments, 1)
		assert.Equal(t, p.ID, payments[0].ID)
	})

	t.Run("Malformed invoice id fails validation", func(t *testing.T) {
		ledger := newLedgerFixture(t)

		_, err := ledger.CreatePayment(ctx, PaymentDraft{
			InvoiceID: "not-a-uuid",
			Amount:    50,
			Currency:  "EUR",
			Date:      issueDate,
		})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Unknown invoice is rejected", func(t *testing.T) {
		ledger := newLedgerFixture(t)

		_, err := ledger.CreatePayment(ctx, PaymentDraft{
			InvoiceID: "8f2dd2ab-6bc0-4d15-9375-19d39ec12af3",
			Amount:    50,
			Currency:  "EUR",
			Date:      issueDate,
		})

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Empty(t, ledger.ListPayments(ctx, ""))
	})
}

func TestGetInvoiceByPosition(t *testing.T) {
	ctx := context.Background()
	issueDate := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	ledger := newLedgerFixture(t)

	first, err := ledger.CreateInvoice(ctx, InvoiceDraft{Amount: 100, Currency: "EUR", Date: issueDate})
	require.NoError(t, err)
	second, err := ledger.CreateInvoice(ctx, InvoiceDraft{Amount: 200, Currency: "USD", Date: issueDate})
	require.NoError(t, err)

	got, err := ledger.GetInvoice(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	got, err = ledger.GetInvoice(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	_, err = ledger.GetInvoice(ctx, 5)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
